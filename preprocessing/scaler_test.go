package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/pkg/errors"
)

func TestStandardScaler_FitTransform(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{
		0, 10,
		2, 30,
	})

	scaler := NewStandardScalerDefault()
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	want := [][]float64{
		{-1, -1},
		{1, 1},
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(XScaled.At(i, j)-want[i][j]) > 1e-9 {
				t.Errorf("XScaled[%d][%d] = %v, want %v", i, j, XScaled.At(i, j), want[i][j])
			}
		}
	}
}

func TestStandardScaler_TrainStatisticsOnly(t *testing.T) {
	XTrain := mat.NewDense(2, 1, []float64{0, 2})
	XTest := mat.NewDense(1, 1, []float64{4})

	scaler := NewStandardScalerDefault()
	if err := scaler.Fit(XTrain); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Test rows are scaled with the train mean/std, not their own.
	XScaled, err := scaler.Transform(XTest)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if got := XScaled.At(0, 0); math.Abs(got-3.0) > 1e-9 {
		t.Errorf("XScaled[0][0] = %v, want 3", got)
	}
}

func TestStandardScaler_ConstantFeature(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{5, 5, 5})

	scaler := NewStandardScalerDefault()
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if got := XScaled.At(i, 0); got != 0 {
			t.Errorf("constant feature should scale to 0, got %v", got)
		}
	}
}

func TestStandardScaler_InverseTransform(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 100,
		2, 200,
		3, 300,
	})

	scaler := NewStandardScalerDefault()
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	XBack, err := scaler.InverseTransform(XScaled)
	if err != nil {
		t.Fatalf("InverseTransform failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(XBack.At(i, j)-X.At(i, j)) > 1e-9 {
				t.Errorf("round trip mismatch at (%d,%d): %v != %v", i, j, XBack.At(i, j), X.At(i, j))
			}
		}
	}
}

func TestStandardScaler_NotFitted(t *testing.T) {
	scaler := NewStandardScalerDefault()
	_, err := scaler.Transform(mat.NewDense(1, 1, []float64{1}))
	if err == nil {
		t.Fatal("expected NotFittedError")
	}
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Errorf("expected *NotFittedError, got %T", err)
	}
}

func TestStandardScaler_DimensionMismatch(t *testing.T) {
	scaler := NewStandardScalerDefault()
	if err := scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	_, err := scaler.Transform(mat.NewDense(1, 3, []float64{1, 2, 3}))
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected *DimensionError, got %v", err)
	}
}

func TestMaxAbsScaler_FitTransform(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{
		-2, 1,
		4, 0.5,
	})

	scaler := NewMaxAbsScaler()
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	want := [][]float64{
		{-0.5, 1},
		{1, 0.5},
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(XScaled.At(i, j)-want[i][j]) > 1e-9 {
				t.Errorf("XScaled[%d][%d] = %v, want %v", i, j, XScaled.At(i, j), want[i][j])
			}
		}
	}
}

func TestMaxAbsScaler_PreservesIndicatorSparsity(t *testing.T) {
	// One-hot indicator columns must stay 0/1 after scaling.
	X := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 0,
	})

	scaler := NewMaxAbsScaler()
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			got := XScaled.At(i, j)
			if got != 0 && got != 1 {
				t.Errorf("indicator value changed at (%d,%d): %v", i, j, got)
			}
		}
	}
}

func TestMaxAbsScaler_ZeroColumn(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{0, 0})

	scaler := NewMaxAbsScaler()
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}
	if got := XScaled.At(0, 0); got != 0 {
		t.Errorf("zero column should stay zero, got %v", got)
	}
}

func TestMaxAbsScaler_EmptyData(t *testing.T) {
	scaler := NewMaxAbsScaler()
	err := scaler.Fit(&mat.Dense{})
	if !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
}
