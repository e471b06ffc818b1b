package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/core/model"
	"github.com/skylearn/imbalance/dataset"
	"github.com/skylearn/imbalance/pkg/errors"
)

// FeaturePipeline turns a dataset table into a numeric feature matrix:
// categorical columns are one-hot encoded, then the assembled matrix
// (numeric columns first, indicator columns after) is scaled. Both steps are
// fitted on the training table only and applied unchanged to the test table,
// so the train and test matrices share one column space.
type FeaturePipeline struct {
	model.BaseEstimator

	// NumericColumns and CategoricalColumns name the feature columns to
	// use. Left empty, they default to every feature column of the table
	// given to Fit.
	NumericColumns     []string
	CategoricalColumns []string

	encoder *OneHotEncoder
	scaler  *MaxAbsScaler
}

// NewFeaturePipeline creates a FeaturePipeline over the named columns.
// Pass nil slices to use every feature column of the fitted table.
func NewFeaturePipeline(numeric, categorical []string) *FeaturePipeline {
	return &FeaturePipeline{
		NumericColumns:     numeric,
		CategoricalColumns: categorical,
		encoder:            NewOneHotEncoder(),
		scaler:             NewMaxAbsScaler(),
	}
}

// Fit learns the encoding vocabulary and scaling statistics from the
// training table. Returns a SchemaError when a named column is absent or of
// the wrong kind.
func (p *FeaturePipeline) Fit(t *dataset.Table) error {
	if p.NumericColumns == nil {
		p.NumericColumns = t.NumericNames()
	}
	if p.CategoricalColumns == nil {
		p.CategoricalColumns = t.CategoricalNames()
	}
	if len(p.NumericColumns) == 0 && len(p.CategoricalColumns) == 0 {
		return errors.NewValueError("FeaturePipeline.Fit", "no feature columns")
	}

	raw, err := p.assemble(t)
	if err != nil {
		return err
	}

	if err := p.scaler.Fit(raw); err != nil {
		return err
	}

	p.SetFitted()
	return nil
}

// Transform encodes and scales the given table with the fitted parameters.
// It returns the feature matrix and the label vector.
func (p *FeaturePipeline) Transform(t *dataset.Table) (mat.Matrix, *mat.VecDense, error) {
	if !p.IsFitted() {
		return nil, nil, errors.NewNotFittedError("FeaturePipeline", "Transform")
	}

	raw, err := p.assemble(t)
	if err != nil {
		return nil, nil, err
	}

	X, err := p.scaler.Transform(raw)
	if err != nil {
		return nil, nil, err
	}
	return X, t.Labels(), nil
}

// FitTransform fits on the table and transforms it in one call.
func (p *FeaturePipeline) FitTransform(t *dataset.Table) (mat.Matrix, *mat.VecDense, error) {
	if err := p.Fit(t); err != nil {
		return nil, nil, err
	}
	return p.Transform(t)
}

// assemble builds the unscaled feature matrix: numeric columns first, then
// one-hot indicator columns. The encoder is fitted on first use.
func (p *FeaturePipeline) assemble(t *dataset.Table) (*mat.Dense, error) {
	var numeric *mat.Dense
	if len(p.NumericColumns) > 0 {
		var err error
		numeric, err = t.NumericMatrix(p.NumericColumns)
		if err != nil {
			return nil, err
		}
	}

	var encoded *mat.Dense
	if len(p.CategoricalColumns) > 0 {
		cols, err := t.CategoricalColumns(p.CategoricalColumns)
		if err != nil {
			return nil, err
		}
		if !p.encoder.IsFitted() {
			if err := p.encoder.Fit(cols); err != nil {
				return nil, err
			}
		}
		encoded, err = p.encoder.Transform(cols)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case numeric == nil:
		return encoded, nil
	case encoded == nil:
		return numeric, nil
	default:
		return hstack(numeric, encoded), nil
	}
}

// FeatureNames returns the name of every output column: numeric names first,
// then "column=category" indicator names.
func (p *FeaturePipeline) FeatureNames() ([]string, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("FeaturePipeline", "FeatureNames")
	}

	names := append([]string(nil), p.NumericColumns...)
	if len(p.CategoricalColumns) > 0 {
		encoded, err := p.encoder.FeatureNames(p.CategoricalColumns)
		if err != nil {
			return nil, err
		}
		names = append(names, encoded...)
	}
	return names, nil
}

// NumFeatures returns the width of the output feature matrix.
func (p *FeaturePipeline) NumFeatures() int {
	return len(p.NumericColumns) + p.encoder.NumFeatures()
}

// String returns a string representation of the pipeline.
func (p *FeaturePipeline) String() string {
	return fmt.Sprintf("FeaturePipeline(numeric=%d, categorical=%d, fitted=%t)",
		len(p.NumericColumns), len(p.CategoricalColumns), p.IsFitted())
}

// hstack concatenates two matrices with equal row counts side by side.
func hstack(a, b *mat.Dense) *mat.Dense {
	ar, ac := a.Dims()
	_, bc := b.Dims()

	out := mat.NewDense(ar, ac+bc, nil)
	out.Slice(0, ar, 0, ac).(*mat.Dense).Copy(a)
	out.Slice(0, ar, ac, ac+bc).(*mat.Dense).Copy(b)
	return out
}
