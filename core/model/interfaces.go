// Package model provides the shared estimator interfaces and fitted-state
// management used by the preprocessing, resample and linear packages.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Classifier combines the interfaces for classification models.
type Classifier interface {
	Fitter
	Predictor

	// PredictProba returns probability estimates for each class.
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Classes returns the unique classes seen during fitting.
	Classes() []int
}

// Sampler is the interface for training-set resampling strategies: a pure
// function from one labeled feature set to another. Samplers must never be
// applied to the test partition.
type Sampler interface {
	// FitResample returns a resampled copy of (X, y). The inputs are not
	// mutated and the result is reproducible for a fixed seed.
	FitResample(X mat.Matrix, y *mat.VecDense) (mat.Matrix, *mat.VecDense, error)
}

// ParameterGetter is the interface for estimators that expose their
// hyperparameters.
type ParameterGetter interface {
	// GetParams returns the estimator's hyperparameters.
	GetParams() map[string]interface{}
}
