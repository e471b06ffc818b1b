package resample

import (
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestKNearest(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 1, 3, 7})

	got, err := kNearest(X, 2)
	if err != nil {
		t.Fatalf("kNearest failed: %v", err)
	}

	want := [][]int{
		{1, 2}, // 0: nearest 1 then 3
		{0, 2}, // 1: nearest 0 then 3
		{1, 0}, // 3: nearest 1 then 0
		{2, 1}, // 7: nearest 3 then 1
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("neighbors = %v, want %v", got, want)
	}
}

func TestKNearest_TieBreaksOnLowerIndex(t *testing.T) {
	// Rows 1 and 2 are equidistant from row 0.
	X := mat.NewDense(3, 1, []float64{0, -1, 1})

	got, err := kNearest(X, 1)
	if err != nil {
		t.Fatalf("kNearest failed: %v", err)
	}
	if got[0][0] != 1 {
		t.Errorf("tie resolved to row %d, want 1", got[0][0])
	}
}

func TestKNearest_Errors(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{0, 1, 2})

	if _, err := kNearest(X, 0); err == nil {
		t.Error("expected error for k = 0")
	}
	if _, err := kNearest(X, 3); err == nil {
		t.Error("expected error when k >= row count")
	}
}
