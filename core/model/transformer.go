package model

import "gonum.org/v1/gonum/mat"

// Transformer is the interface for feature transformations that are fitted
// on the training partition and then applied unchanged to other partitions.
type Transformer interface {
	// Fit learns the transformation parameters from X.
	Fit(X mat.Matrix) error

	// Transform applies the fitted transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform runs Fit and Transform in one call.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
