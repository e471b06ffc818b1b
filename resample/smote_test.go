package resample

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/pkg/errors"
)

// makeSMOTEData builds a two-feature dataset with ten majority rows far from
// the origin and six minority rows on the diagonal y = x, so every convex
// combination of two minority rows stays on that diagonal.
func makeSMOTEData() (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(16, 2, nil)
	y := mat.NewVecDense(16, nil)
	for i := 0; i < 10; i++ {
		X.Set(i, 0, 100+float64(i))
		X.Set(i, 1, 50)
	}
	for i := 0; i < 6; i++ {
		X.Set(10+i, 0, float64(i))
		X.Set(10+i, 1, float64(i))
		y.SetVec(10+i, 1)
	}
	return X, y
}

func TestSMOTE_EqualizesCounts(t *testing.T) {
	X, y := makeSMOTEData()

	sampler := NewSMOTE(WithSMOTESeed(42))
	XRes, yRes, err := sampler.FitResample(X, y)
	if err != nil {
		t.Fatalf("FitResample failed: %v", err)
	}

	neg, pos := classCounts(yRes)
	if neg != 10 || pos != 10 {
		t.Errorf("class counts = (%d, %d), want (10, 10)", neg, pos)
	}

	r, _ := XRes.Dims()
	if r != 20 {
		t.Errorf("total rows = %d, want 20", r)
	}
}

func TestSMOTE_PreservesOriginalRows(t *testing.T) {
	X, y := makeSMOTEData()

	XRes, yRes, err := NewSMOTE(WithSMOTESeed(1)).FitResample(X, y)
	if err != nil {
		t.Fatalf("FitResample failed: %v", err)
	}

	for i := 0; i < 16; i++ {
		for j := 0; j < 2; j++ {
			if XRes.At(i, j) != X.At(i, j) {
				t.Errorf("original row %d changed: got %v, want %v", i, XRes.At(i, j), X.At(i, j))
			}
		}
		if yRes.AtVec(i) != y.AtVec(i) {
			t.Errorf("original label %d changed", i)
		}
	}
}

func TestSMOTE_SyntheticRowsInterpolateParents(t *testing.T) {
	X, y := makeSMOTEData()

	XRes, yRes, err := NewSMOTE(WithSMOTESeed(7)).FitResample(X, y)
	if err != nil {
		t.Fatalf("FitResample failed: %v", err)
	}

	// The minority rows sit on the diagonal in [0, 5], so interpolated rows
	// must too. Landing off the diagonal would mean a majority row leaked
	// into the synthesis.
	r, _ := XRes.Dims()
	for i := 16; i < r; i++ {
		x0, x1 := XRes.At(i, 0), XRes.At(i, 1)
		if x0 != x1 {
			t.Errorf("synthetic row %d off the minority diagonal: (%v, %v)", i, x0, x1)
		}
		if x0 < 0 || x0 > 5 {
			t.Errorf("synthetic row %d outside the minority range: %v", i, x0)
		}
		if yRes.AtVec(i) != 1 {
			t.Errorf("synthetic row %d carries label %v, want 1", i, yRes.AtVec(i))
		}
	}
}

func TestSMOTE_Deterministic(t *testing.T) {
	X, y := makeSMOTEData()

	X1, y1, err := NewSMOTE(WithSMOTESeed(99)).FitResample(X, y)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	X2, y2, err := NewSMOTE(WithSMOTESeed(99)).FitResample(X, y)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if !mat.Equal(X1, X2) || !mat.Equal(y1, y2) {
		t.Error("same seed produced different resampled data")
	}
}

func TestSMOTE_InsufficientMinoritySamples(t *testing.T) {
	// Four minority rows cannot supply five neighbours each.
	X, y := makeImbalanced(10, 4)

	_, _, err := NewSMOTE(WithSMOTESeed(0)).FitResample(X, y)
	var insErr *errors.InsufficientSamplesError
	if !errors.As(err, &insErr) {
		t.Fatalf("expected *InsufficientSamplesError, got %v", err)
	}
	if insErr.Sampler != "SMOTE" {
		t.Errorf("Sampler = %q, want %q", insErr.Sampler, "SMOTE")
	}
}

func TestSMOTE_CustomNeighborCount(t *testing.T) {
	X, y := makeImbalanced(10, 4)

	// k = 3 fits within four minority rows.
	XRes, yRes, err := NewSMOTE(WithSMOTESeed(0), WithSMOTENeighbors(3)).FitResample(X, y)
	if err != nil {
		t.Fatalf("FitResample failed: %v", err)
	}

	neg, pos := classCounts(yRes)
	if neg != 10 || pos != 10 {
		t.Errorf("class counts = (%d, %d), want (10, 10)", neg, pos)
	}
	r, _ := XRes.Dims()
	if r != 20 {
		t.Errorf("total rows = %d, want 20", r)
	}
}

func TestSMOTE_BalancedInputIsUnchanged(t *testing.T) {
	X := mat.NewDense(12, 1, nil)
	y := mat.NewVecDense(12, nil)
	for i := 0; i < 12; i++ {
		X.Set(i, 0, float64(i))
		if i >= 6 {
			y.SetVec(i, 1)
		}
	}

	XRes, yRes, err := NewSMOTE(WithSMOTESeed(0)).FitResample(X, y)
	if err != nil {
		t.Fatalf("FitResample failed: %v", err)
	}
	if !mat.Equal(XRes, X) || !mat.Equal(yRes, y) {
		t.Error("balanced input should pass through unchanged")
	}
}

func TestSMOTE_RejectsNonPositiveK(t *testing.T) {
	X, y := makeSMOTEData()

	_, _, err := NewSMOTE(WithSMOTENeighbors(0)).FitResample(X, y)
	var valErr *errors.ValueError
	if !errors.As(err, &valErr) {
		t.Errorf("expected *ValueError, got %v", err)
	}
}
