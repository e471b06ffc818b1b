// Package linear implements the classification models of the project. The
// only estimator is a binary logistic regression trained by batch gradient
// descent, with optional inverse-frequency class weighting for imbalanced
// training sets.
package linear

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/core/model"
	"github.com/skylearn/imbalance/pkg/errors"
)

// Class weight modes.
const (
	// WeightUniform gives every sample weight 1.
	WeightUniform = "uniform"
	// WeightBalanced weighs each sample by n / (2 * count(class)), so both
	// classes contribute equally to the loss regardless of their frequency.
	WeightBalanced = "balanced"
)

// LogisticRegression is a binary logistic regression classifier trained by
// batch gradient descent with L2 regularization. Labels must be 0 and 1;
// class 1 is the positive class.
type LogisticRegression struct {
	state *model.StateManager

	c            float64 // inverse regularization strength
	fitIntercept bool
	classWeight  string
	randomState  int64
	maxIter      int
	tol          float64

	coef_      []float64
	intercept_ float64
	classes_   []int
	nFeatures_ int
	nIter_     int

	rand *rand.Rand
}

// LogisticRegressionOption is a functional option for LogisticRegression.
type LogisticRegressionOption func(*LogisticRegression)

// WithLRC sets the inverse regularization strength (default 1.0).
func WithLRC(c float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.c = c
	}
}

// WithLRFitIntercept sets whether an intercept term is fitted (default true).
func WithLRFitIntercept(fit bool) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.fitIntercept = fit
	}
}

// WithLRClassWeight sets the class weight mode, WeightUniform or
// WeightBalanced (default WeightUniform).
func WithLRClassWeight(mode string) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.classWeight = mode
	}
}

// WithLRMaxIter sets the maximum number of gradient descent iterations
// (default 1000).
func WithLRMaxIter(maxIter int) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithLRTol sets the stopping tolerance on the gradient infinity norm
// (default 1e-4).
func WithLRTol(tol float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.tol = tol
	}
}

// WithLRRandomState sets the seed for weight initialization. Negative seeds
// give a non-deterministic initialization.
func WithLRRandomState(seed int64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.randomState = seed
	}
}

// NewLogisticRegression creates a new LogisticRegression classifier.
func NewLogisticRegression(opts ...LogisticRegressionOption) *LogisticRegression {
	lr := &LogisticRegression{
		state:        model.NewStateManager(),
		c:            1.0,
		fitIntercept: true,
		classWeight:  WeightUniform,
		randomState:  -1,
		maxIter:      1000,
		tol:          1e-4,
	}
	for _, opt := range opts {
		opt(lr)
	}

	if lr.randomState >= 0 {
		lr.rand = rand.New(rand.NewSource(lr.randomState))
	} else {
		lr.rand = rand.New(rand.NewSource(rand.Int63()))
	}
	return lr
}

// Fit trains the model on (X, y). Labels must be 0/1 with both classes
// present. When the gradient has not dropped below the tolerance within
// maxIter iterations a ConvergenceWarning is emitted and the partially
// converged model is kept.
func (lr *LogisticRegression) Fit(X mat.Matrix, y *mat.VecDense) error {
	nSamples, nFeatures := X.Dims()
	if nSamples == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != nSamples {
		return errors.NewDimensionError("LogisticRegression.Fit", nSamples, y.Len(), 0)
	}

	sampleWeights, err := lr.sampleWeights(y)
	if err != nil {
		return err
	}

	lr.classes_ = []int{0, 1}
	lr.nFeatures_ = nFeatures
	lr.coef_ = make([]float64, nFeatures)
	lr.intercept_ = 0
	for j := range lr.coef_ {
		lr.coef_[j] = lr.rand.NormFloat64() * 0.01
	}

	weightSum := 0.0
	for _, w := range sampleWeights {
		weightSum += w
	}

	lambda := 1.0 / lr.c
	baseLearningRate := 1.0
	converged := false

	gradWeights := make([]float64, nFeatures)
	for iter := 0; iter < lr.maxIter; iter++ {
		for j := range gradWeights {
			gradWeights[j] = 0
		}
		gradIntercept := 0.0

		for i := 0; i < nSamples; i++ {
			z := lr.intercept_
			for j := 0; j < nFeatures; j++ {
				z += X.At(i, j) * lr.coef_[j]
			}
			residual := sampleWeights[i] * (sigmoid(z) - y.AtVec(i))
			gradIntercept += residual
			for j := 0; j < nFeatures; j++ {
				gradWeights[j] += residual * X.At(i, j)
			}
		}

		for j := range gradWeights {
			gradWeights[j] = gradWeights[j]/weightSum + lambda*lr.coef_[j]
		}
		gradIntercept /= weightSum

		learningRate := baseLearningRate / (1.0 + 0.1*float64(iter))
		for j := range lr.coef_ {
			lr.coef_[j] -= learningRate * gradWeights[j]
		}
		if lr.fitIntercept {
			lr.intercept_ -= learningRate * gradIntercept
		}
		lr.nIter_ = iter + 1

		if err := errors.CheckNumericalStability("LogisticRegression.Fit", lr.coef_, iter); err != nil {
			return err
		}

		maxGrad := math.Abs(gradIntercept)
		for _, g := range gradWeights {
			if math.Abs(g) > maxGrad {
				maxGrad = math.Abs(g)
			}
		}
		if maxGrad < lr.tol {
			converged = true
			break
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", lr.nIter_, ""))
	}

	lr.state.SetDimensions(nFeatures, nSamples)
	lr.state.SetFitted()
	return nil
}

// sampleWeights validates the labels and returns the per-sample loss weights
// for the configured class weight mode.
func (lr *LogisticRegression) sampleWeights(y *mat.VecDense) ([]float64, error) {
	n := y.Len()
	counts := [2]int{}
	for i := 0; i < n; i++ {
		v := y.AtVec(i)
		if v != 0 && v != 1 {
			return nil, errors.Wrapf(errors.ErrNotBinary, "LogisticRegression.Fit: found label %v", v)
		}
		counts[int(v)]++
	}
	if counts[0] == 0 || counts[1] == 0 {
		return nil, errors.NewValueError("LogisticRegression.Fit", "both classes must be present")
	}

	classWeights := [2]float64{1, 1}
	switch lr.classWeight {
	case WeightUniform:
	case WeightBalanced:
		classWeights[0] = float64(n) / (2 * float64(counts[0]))
		classWeights[1] = float64(n) / (2 * float64(counts[1]))
	default:
		return nil, errors.NewValueError("LogisticRegression.Fit", "unknown class weight mode "+lr.classWeight)
	}

	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		weights[i] = classWeights[int(y.AtVec(i))]
	}
	return weights, nil
}

// DecisionFunction returns the signed distance of each row from the decision
// boundary, before the sigmoid.
func (lr *LogisticRegression) DecisionFunction(X mat.Matrix) (*mat.VecDense, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "DecisionFunction")
	}
	nSamples, nFeatures := X.Dims()
	if nFeatures != lr.nFeatures_ {
		return nil, errors.NewDimensionError("LogisticRegression.DecisionFunction", lr.nFeatures_, nFeatures, 1)
	}

	scores := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		z := lr.intercept_
		for j := 0; j < nFeatures; j++ {
			z += X.At(i, j) * lr.coef_[j]
		}
		scores.SetVec(i, z)
	}
	return scores, nil
}

// Predict returns the predicted class (0 or 1) for each row of X, using a
// 0.5 probability threshold.
func (lr *LogisticRegression) Predict(X mat.Matrix) (*mat.VecDense, error) {
	scores, err := lr.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	predictions := mat.NewVecDense(scores.Len(), nil)
	for i := 0; i < scores.Len(); i++ {
		if sigmoid(scores.AtVec(i)) >= 0.5 {
			predictions.SetVec(i, 1)
		}
	}
	return predictions, nil
}

// PredictProba returns an (n, 2) matrix of class probabilities with columns
// ordered as Classes().
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	scores, err := lr.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	probas := mat.NewDense(scores.Len(), 2, nil)
	for i := 0; i < scores.Len(); i++ {
		p := sigmoid(scores.AtVec(i))
		probas.Set(i, 0, 1-p)
		probas.Set(i, 1, p)
	}
	return probas, nil
}

// Score returns the mean accuracy on the given data and labels.
func (lr *LogisticRegression) Score(X mat.Matrix, y *mat.VecDense) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	if y.Len() != predictions.Len() {
		return 0, errors.NewDimensionError("LogisticRegression.Score", predictions.Len(), y.Len(), 0)
	}

	correct := 0
	for i := 0; i < y.Len(); i++ {
		if predictions.AtVec(i) == y.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(y.Len()), nil
}

// Classes returns the class labels, always [0, 1].
func (lr *LogisticRegression) Classes() []int {
	out := make([]int, len(lr.classes_))
	copy(out, lr.classes_)
	return out
}

// Coef returns a copy of the fitted coefficients.
func (lr *LogisticRegression) Coef() []float64 {
	out := make([]float64, len(lr.coef_))
	copy(out, lr.coef_)
	return out
}

// Intercept returns the fitted intercept term.
func (lr *LogisticRegression) Intercept() float64 {
	return lr.intercept_
}

// NIter returns the number of gradient descent iterations actually run.
func (lr *LogisticRegression) NIter() int {
	return lr.nIter_
}

// GetParams returns the model hyperparameters.
func (lr *LogisticRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"C":             lr.c,
		"fit_intercept": lr.fitIntercept,
		"class_weight":  lr.classWeight,
		"random_state":  lr.randomState,
		"max_iter":      lr.maxIter,
		"tol":           lr.tol,
	}
}

// sigmoid computes the logistic function with overflow protection on the
// exponential.
func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + errors.StabilizeExp(-z))
}
