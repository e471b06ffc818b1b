package experiment

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/dataset"
	"github.com/skylearn/imbalance/internal/config"
	"github.com/skylearn/imbalance/linear"
	"github.com/skylearn/imbalance/metrics"
	"github.com/skylearn/imbalance/pkg/errors"
	"github.com/skylearn/imbalance/preprocessing"
)

// Result holds the outcome of one strategy branch. Err is set when the
// branch failed (for example InsufficientSamplesError from SMOTE); the other
// fields are then zero.
type Result struct {
	Strategy   Strategy
	TrainRows  int
	TrainNeg   int
	TrainPos   int
	Report     *metrics.Report
	AUC        float64
	Iterations int
	Err        error
}

// Runner executes the configured strategies over one dataset split.
type Runner struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// NewRunner creates a Runner.
func NewRunner(cfg *config.Config, logger zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, logger: logger}
}

// Run loads the configured dataset, splits it, fits the feature pipeline on
// the training partition and evaluates every configured strategy against the
// fixed test partition. A failing strategy yields a Result with Err set; the
// run only fails as a whole when loading or preprocessing fails.
func (r *Runner) Run() ([]Result, error) {
	table, err := dataset.Load(r.cfg.Data.Path,
		dataset.WithLabelColumn(r.cfg.Data.LabelColumn),
		dataset.WithDelimiter(delimiterRune(r.cfg.Data.Delimiter)),
	)
	if err != nil {
		return nil, err
	}
	r.logger.Info().
		Int("rows", table.NumRows()).
		Int("columns", len(table.Columns())).
		Str("label", table.LabelName()).
		Msg("dataset loaded")

	train, test, err := preprocessing.TrainTestSplitTable(table, r.cfg.Split.TestSize, r.cfg.Split.Seed)
	if err != nil {
		return nil, err
	}

	pipeline := preprocessing.NewFeaturePipeline(nil, nil)
	XTrain, yTrain, err := pipeline.FitTransform(train)
	if err != nil {
		return nil, err
	}
	XTest, yTest, err := pipeline.Transform(test)
	if err != nil {
		return nil, err
	}
	r.logger.Info().
		Int("train_rows", train.NumRows()).
		Int("test_rows", test.NumRows()).
		Int("features", pipeline.NumFeatures()).
		Msg("split and encoded")

	return r.RunOnSplit(XTrain, yTrain, XTest, yTest)
}

// RunOnSplit evaluates every configured strategy on an already prepared
// split. The test partition is never resampled.
func (r *Runner) RunOnSplit(XTrain mat.Matrix, yTrain *mat.VecDense, XTest mat.Matrix, yTest *mat.VecDense) ([]Result, error) {
	strategies, err := Strategies(r.cfg.Sampling.Strategies)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(strategies))
	for _, strategy := range strategies {
		result := Result{Strategy: strategy}
		err := errors.SafeExecute(string(strategy), func() error {
			var runErr error
			result, runErr = r.runStrategy(strategy, XTrain, yTrain, XTest, yTest)
			return runErr
		})
		if err != nil {
			r.logger.Error().Err(err).Str("strategy", string(strategy)).Msg("strategy failed")
			result = Result{Strategy: strategy, Err: err}
		}
		results = append(results, result)
	}
	return results, nil
}

// runStrategy treats the training set, fits the classifier and scores it on
// the test partition.
func (r *Runner) runStrategy(strategy Strategy, XTrain mat.Matrix, yTrain *mat.VecDense, XTest mat.Matrix, yTest *mat.VecDense) (Result, error) {
	result := Result{Strategy: strategy}

	sampler, err := strategy.sampler(r.cfg)
	if err != nil {
		return result, err
	}

	X, y := XTrain, yTrain
	if sampler != nil {
		X, y, err = sampler.FitResample(XTrain, yTrain)
		if err != nil {
			return result, err
		}
	}

	result.TrainRows = y.Len()
	for i := 0; i < y.Len(); i++ {
		if y.AtVec(i) == 1 {
			result.TrainPos++
		} else {
			result.TrainNeg++
		}
	}
	r.logger.Debug().
		Str("strategy", string(strategy)).
		Int("rows", result.TrainRows).
		Int("negative", result.TrainNeg).
		Int("positive", result.TrainPos).
		Msg("training set treated")

	opts := []linear.LogisticRegressionOption{
		linear.WithLRMaxIter(r.cfg.Training.MaxIter),
		linear.WithLRTol(r.cfg.Training.Tol),
		linear.WithLRC(r.cfg.Training.C),
		linear.WithLRRandomState(r.cfg.Split.Seed),
	}
	if strategy == StrategyClassWeight {
		opts = append(opts, linear.WithLRClassWeight(linear.WeightBalanced))
	}

	clf := linear.NewLogisticRegression(opts...)
	if err := clf.Fit(X, y); err != nil {
		return result, err
	}
	result.Iterations = clf.NIter()

	yPred, err := clf.Predict(XTest)
	if err != nil {
		return result, err
	}
	result.Report, err = metrics.ClassificationReport(yTest, yPred)
	if err != nil {
		return result, err
	}

	probas, err := clf.PredictProba(XTest)
	if err != nil {
		return result, err
	}
	scores := mat.NewVecDense(yTest.Len(), nil)
	for i := 0; i < yTest.Len(); i++ {
		scores.SetVec(i, probas.At(i, 1))
	}
	result.AUC, err = metrics.ROCAUC(yTest, scores)
	if err != nil {
		return result, err
	}

	r.logger.Info().
		Str("strategy", string(strategy)).
		Float64("accuracy", result.Report.Accuracy).
		Float64("minority_f1", result.Report.PerClass[1].F1).
		Float64("auc", result.AUC).
		Msg("strategy evaluated")
	return result, nil
}

// RenderComparison renders the per-strategy reports plus a closing summary
// table, minority-class metrics side by side.
func RenderComparison(results []Result) string {
	var b strings.Builder
	for _, result := range results {
		fmt.Fprintf(&b, "=== %s ===\n", result.Strategy)
		if result.Err != nil {
			fmt.Fprintf(&b, "skipped: %v\n\n", result.Err)
			continue
		}
		fmt.Fprintf(&b, "training rows: %d (negative %d / positive %d)\n\n",
			result.TrainRows, result.TrainNeg, result.TrainPos)
		b.WriteString(result.Report.String())
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%-14s %9s %9s %9s %9s\n", "strategy", "precision", "recall", "f1-score", "auc")
	for _, result := range results {
		if result.Err != nil {
			fmt.Fprintf(&b, "%-14s %39s\n", result.Strategy, "failed")
			continue
		}
		m := result.Report.PerClass[1]
		fmt.Fprintf(&b, "%-14s %9.4f %9.4f %9.4f %9.4f\n",
			result.Strategy, m.Precision, m.Recall, m.F1, result.AUC)
	}
	return b.String()
}

// delimiterRune interprets the configured delimiter string, defaulting to a
// comma.
func delimiterRune(s string) rune {
	if s == "" {
		return ','
	}
	return []rune(s)[0]
}
