package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for trainable estimators.
type Fitter interface {
	// Fit trains the estimator on X and labels y.
	Fit(X mat.Matrix, y *mat.VecDense) error
}

// Predictor is the interface for estimators that can predict.
type Predictor interface {
	// Predict returns predicted labels for X.
	Predict(X mat.Matrix) (*mat.VecDense, error)
}
