package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/core/model"
	"github.com/skylearn/imbalance/pkg/errors"
)

// StandardScaler standardizes features to zero mean and unit variance.
// Statistics are computed by Fit on the training partition only and applied
// unchanged by Transform, so the test partition never leaks into them.
type StandardScaler struct {
	model.BaseEstimator

	// Mean is the per-feature mean.
	Mean []float64

	// Scale is the per-feature standard deviation.
	Scale []float64

	// NFeatures is the number of features seen during Fit.
	NFeatures int

	// WithMean controls whether the mean is subtracted (default: true).
	WithMean bool

	// WithStd controls whether values are divided by the standard
	// deviation (default: true).
	WithStd bool
}

// NewStandardScaler creates a new StandardScaler.
//
// Example:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	err := scaler.Fit(XTrain)
//	XScaled, err := scaler.Transform(XTest)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault creates a StandardScaler with default settings.
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit computes the per-feature mean and standard deviation from X.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	if s.WithMean {
		for j := 0; j < c; j++ {
			sum := 0.0
			for i := 0; i < r; i++ {
				sum += X.At(i, j)
			}
			s.Mean[j] = sum / float64(r)
		}
	}

	if s.WithStd {
		for j := 0; j < c; j++ {
			sumSquares := 0.0
			for i := 0; i < r; i++ {
				diff := X.At(i, j) - s.Mean[j]
				sumSquares += diff * diff
			}
			variance := sumSquares / float64(r)
			s.Scale[j] = math.Sqrt(variance)

			// Constant features keep scale 1 to avoid division by zero.
			if math.Abs(s.Scale[j]) < 1e-8 {
				s.Scale[j] = 1.0
			}
		}
	} else {
		for j := 0; j < c; j++ {
			s.Scale[j] = 1.0
		}
	}

	s.SetFitted()
	return nil
}

// Transform standardizes X using the fitted statistics.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}

	return result, nil
}

// FitTransform fits on X and transforms the same data.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized data back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*s.Scale[j]+s.Mean[j])
		}
	}

	return result, nil
}

// GetParams returns the scaler's parameters.
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

// String returns a string representation of the scaler.
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, s.NFeatures)
}

// MaxAbsScaler scales each feature by its maximum absolute value, mapping
// values into [-1, 1] without centering. Centering would destroy the
// sparsity of one-hot indicator columns, so this is the scaler the feature
// pipeline uses after encoding.
type MaxAbsScaler struct {
	model.BaseEstimator

	// MaxAbs is the per-feature maximum absolute value.
	MaxAbs []float64

	// NFeatures is the number of features seen during Fit.
	NFeatures int
}

// NewMaxAbsScaler creates a new MaxAbsScaler.
func NewMaxAbsScaler() *MaxAbsScaler {
	return &MaxAbsScaler{}
}

// Fit computes the per-feature maximum absolute value from X.
func (m *MaxAbsScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("MaxAbsScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	m.NFeatures = c
	m.MaxAbs = make([]float64, c)

	for j := 0; j < c; j++ {
		maxAbs := 0.0
		for i := 0; i < r; i++ {
			if v := math.Abs(X.At(i, j)); v > maxAbs {
				maxAbs = v
			}
		}
		// Constant zero features keep scale 1 to avoid division by zero.
		if maxAbs < 1e-8 {
			maxAbs = 1.0
		}
		m.MaxAbs[j] = maxAbs
	}

	m.SetFitted()
	return nil
}

// Transform scales X using the fitted maxima.
func (m *MaxAbsScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MaxAbsScaler", "Transform")
	}

	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("MaxAbsScaler.Transform", m.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)/m.MaxAbs[j])
		}
	}

	return result, nil
}

// FitTransform fits on X and transforms the same data.
func (m *MaxAbsScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// GetParams returns the scaler's parameters.
func (m *MaxAbsScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{}
}

// String returns a string representation of the scaler.
func (m *MaxAbsScaler) String() string {
	if !m.IsFitted() {
		return "MaxAbsScaler()"
	}
	return fmt.Sprintf("MaxAbsScaler(n_features=%d)", m.NFeatures)
}
