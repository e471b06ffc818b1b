package resample

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/pkg/errors"
)

// makeImbalanced builds a dataset whose single feature encodes the row
// index, with nMaj majority (class 0) rows followed by nMin minority
// (class 1) rows.
func makeImbalanced(nMaj, nMin int) (*mat.Dense, *mat.VecDense) {
	n := nMaj + nMin
	X := mat.NewDense(n, 1, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		if i >= nMaj {
			y.SetVec(i, 1)
		}
	}
	return X, y
}

func classCounts(y *mat.VecDense) (neg, pos int) {
	for i := 0; i < y.Len(); i++ {
		if y.AtVec(i) == 1 {
			pos++
		} else {
			neg++
		}
	}
	return neg, pos
}

func TestRandomUnderSampler_EqualizesCounts(t *testing.T) {
	X, y := makeImbalanced(8, 3)

	sampler := NewRandomUnderSampler(WithUnderSeed(42))
	XRes, yRes, err := sampler.FitResample(X, y)
	if err != nil {
		t.Fatalf("FitResample failed: %v", err)
	}

	neg, pos := classCounts(yRes)
	if neg != 3 || pos != 3 {
		t.Errorf("class counts = (%d, %d), want (3, 3)", neg, pos)
	}

	r, _ := XRes.Dims()
	if r != 2*3 {
		t.Errorf("total rows = %d, want %d", r, 2*3)
	}

	// Every surviving row is an original row carrying its own label.
	for i := 0; i < r; i++ {
		origin := int(XRes.At(i, 0))
		wantLabel := 0.0
		if origin >= 8 {
			wantLabel = 1.0
		}
		if yRes.AtVec(i) != wantLabel {
			t.Errorf("row %d (origin %d) carries label %v, want %v", i, origin, yRes.AtVec(i), wantLabel)
		}
	}
}

func TestRandomUnderSampler_KeepsAllMinorityRows(t *testing.T) {
	X, y := makeImbalanced(10, 4)

	sampler := NewRandomUnderSampler(WithUnderSeed(1))
	XRes, yRes, err := sampler.FitResample(X, y)
	if err != nil {
		t.Fatalf("FitResample failed: %v", err)
	}

	seen := make(map[int]bool)
	r, _ := XRes.Dims()
	for i := 0; i < r; i++ {
		if yRes.AtVec(i) == 1 {
			seen[int(XRes.At(i, 0))] = true
		}
	}
	for origin := 10; origin < 14; origin++ {
		if !seen[origin] {
			t.Errorf("minority row %d was dropped", origin)
		}
	}
}

func TestRandomUnderSampler_SamplesWithoutReplacement(t *testing.T) {
	X, y := makeImbalanced(20, 5)

	sampler := NewRandomUnderSampler(WithUnderSeed(3))
	XRes, yRes, err := sampler.FitResample(X, y)
	if err != nil {
		t.Fatalf("FitResample failed: %v", err)
	}

	seen := make(map[int]bool)
	r, _ := XRes.Dims()
	for i := 0; i < r; i++ {
		if yRes.AtVec(i) == 0 {
			origin := int(XRes.At(i, 0))
			if seen[origin] {
				t.Errorf("majority row %d sampled twice", origin)
			}
			seen[origin] = true
		}
	}
}

func TestRandomOverSampler_EqualizesCounts(t *testing.T) {
	X, y := makeImbalanced(8, 3)

	sampler := NewRandomOverSampler(WithOverSeed(42))
	XRes, yRes, err := sampler.FitResample(X, y)
	if err != nil {
		t.Fatalf("FitResample failed: %v", err)
	}

	neg, pos := classCounts(yRes)
	if neg != 8 || pos != 8 {
		t.Errorf("class counts = (%d, %d), want (8, 8)", neg, pos)
	}

	r, _ := XRes.Dims()
	if r != 2*8 {
		t.Errorf("total rows = %d, want %d", r, 2*8)
	}
}

func TestRandomOverSampler_KeepsEveryOriginalRow(t *testing.T) {
	X, y := makeImbalanced(6, 2)

	sampler := NewRandomOverSampler(WithOverSeed(7))
	XRes, yRes, err := sampler.FitResample(X, y)
	if err != nil {
		t.Fatalf("FitResample failed: %v", err)
	}

	// The first len(X) rows are the untouched originals.
	for i := 0; i < 8; i++ {
		if XRes.At(i, 0) != float64(i) {
			t.Errorf("original row %d moved: got %v", i, XRes.At(i, 0))
		}
	}

	// Duplicates are minority rows only.
	r, _ := XRes.Dims()
	for i := 8; i < r; i++ {
		origin := int(XRes.At(i, 0))
		if origin < 6 {
			t.Errorf("duplicated a majority row: %d", origin)
		}
		if yRes.AtVec(i) != 1 {
			t.Errorf("duplicate carries label %v, want 1", yRes.AtVec(i))
		}
	}
}

func TestRandomSamplers_Deterministic(t *testing.T) {
	X, y := makeImbalanced(30, 10)

	for name, factory := range map[string]func() func() (mat.Matrix, *mat.VecDense, error){
		"under": func() func() (mat.Matrix, *mat.VecDense, error) {
			return func() (mat.Matrix, *mat.VecDense, error) {
				return NewRandomUnderSampler(WithUnderSeed(99)).FitResample(X, y)
			}
		},
		"over": func() func() (mat.Matrix, *mat.VecDense, error) {
			return func() (mat.Matrix, *mat.VecDense, error) {
				return NewRandomOverSampler(WithOverSeed(99)).FitResample(X, y)
			}
		},
	} {
		t.Run(name, func(t *testing.T) {
			run := factory()
			X1, y1, err := run()
			if err != nil {
				t.Fatalf("first run failed: %v", err)
			}
			X2, y2, err := run()
			if err != nil {
				t.Fatalf("second run failed: %v", err)
			}

			if !mat.Equal(X1, X2) {
				t.Error("same seed produced different feature matrices")
			}
			if !mat.Equal(y1, y2) {
				t.Error("same seed produced different label vectors")
			}
		})
	}
}

func TestRandomSamplers_DoNotMutateInput(t *testing.T) {
	X, y := makeImbalanced(8, 3)
	XOrig := mat.DenseCopyOf(X)
	yOrig := mat.VecDenseCopyOf(y)

	if _, _, err := NewRandomUnderSampler(WithUnderSeed(5)).FitResample(X, y); err != nil {
		t.Fatalf("under failed: %v", err)
	}
	if _, _, err := NewRandomOverSampler(WithOverSeed(5)).FitResample(X, y); err != nil {
		t.Fatalf("over failed: %v", err)
	}

	if !mat.Equal(X, XOrig) || !mat.Equal(y, yOrig) {
		t.Error("samplers must not mutate their input")
	}
}

func TestSamplers_RejectBadLabels(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})

	t.Run("non-binary", func(t *testing.T) {
		y := mat.NewVecDense(4, []float64{0, 1, 2, 1})
		_, _, err := NewRandomUnderSampler(WithUnderSeed(0)).FitResample(X, y)
		if !errors.Is(err, errors.ErrNotBinary) {
			t.Errorf("expected ErrNotBinary, got %v", err)
		}
	})

	t.Run("single class", func(t *testing.T) {
		y := mat.NewVecDense(4, []float64{1, 1, 1, 1})
		_, _, err := NewRandomOverSampler(WithOverSeed(0)).FitResample(X, y)
		if err == nil {
			t.Error("expected error when only one class is present")
		}
	})

	t.Run("length mismatch", func(t *testing.T) {
		y := mat.NewVecDense(3, []float64{0, 1, 0})
		_, _, err := NewRandomUnderSampler(WithUnderSeed(0)).FitResample(X, y)
		var dimErr *errors.DimensionError
		if !errors.As(err, &dimErr) {
			t.Errorf("expected *DimensionError, got %v", err)
		}
	})
}
