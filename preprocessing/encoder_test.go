package preprocessing

import (
	"reflect"
	"testing"

	"github.com/skylearn/imbalance/pkg/errors"
)

func TestOneHotEncoder_FitTransform(t *testing.T) {
	columns := [][]string{
		{"Delta", "United", "Delta", "Southwest"},
		{"0800-0859", "0800-0859", "1700-1759", "0600-0659"},
	}

	enc := NewOneHotEncoder()
	X, err := enc.FitTransform(columns)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	wantCats := [][]string{
		{"Delta", "Southwest", "United"},
		{"0600-0659", "0800-0859", "1700-1759"},
	}
	if !reflect.DeepEqual(enc.Categories, wantCats) {
		t.Errorf("Categories = %v, want %v", enc.Categories, wantCats)
	}

	r, c := X.Dims()
	if r != 4 || c != 6 {
		t.Fatalf("encoded shape = (%d,%d), want (4,6)", r, c)
	}

	// Row 0: Delta + 0800-0859.
	wantRow0 := []float64{1, 0, 0, 0, 1, 0}
	for j, want := range wantRow0 {
		if X.At(0, j) != want {
			t.Errorf("X[0][%d] = %v, want %v", j, X.At(0, j), want)
		}
	}

	// Every row has exactly one indicator per input column.
	for i := 0; i < r; i++ {
		sum := 0.0
		for j := 0; j < c; j++ {
			sum += X.At(i, j)
		}
		if sum != 2 {
			t.Errorf("row %d indicator sum = %v, want 2", i, sum)
		}
	}
}

func TestOneHotEncoder_UnseenCategoryIsAllZero(t *testing.T) {
	enc := NewOneHotEncoder()
	if err := enc.Fit([][]string{{"Delta", "United"}}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	X, err := enc.Transform([][]string{{"Alaska", "Delta"}})
	if err != nil {
		t.Fatalf("Transform must not fail on unseen categories: %v", err)
	}

	// Unseen "Alaska" encodes to an all-zero row.
	if X.At(0, 0) != 0 || X.At(0, 1) != 0 {
		t.Errorf("unseen category row = [%v %v], want [0 0]", X.At(0, 0), X.At(0, 1))
	}
	if X.At(1, 0) != 1 {
		t.Errorf("known category should still encode, got %v", X.At(1, 0))
	}
}

func TestOneHotEncoder_FeatureNames(t *testing.T) {
	enc := NewOneHotEncoder()
	if err := enc.Fit([][]string{{"b", "a"}, {"x", "x"}}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	names, err := enc.FeatureNames([]string{"CARRIER_NAME", "DEP_TIME_BLK"})
	if err != nil {
		t.Fatalf("FeatureNames failed: %v", err)
	}

	want := []string{"CARRIER_NAME=a", "CARRIER_NAME=b", "DEP_TIME_BLK=x"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("FeatureNames = %v, want %v", names, want)
	}
}

func TestOneHotEncoder_NotFitted(t *testing.T) {
	enc := NewOneHotEncoder()
	_, err := enc.Transform([][]string{{"a"}})
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Fatalf("expected *NotFittedError, got %v", err)
	}
}

func TestOneHotEncoder_ColumnCountMismatch(t *testing.T) {
	enc := NewOneHotEncoder()
	if err := enc.Fit([][]string{{"a"}, {"x"}}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	_, err := enc.Transform([][]string{{"a"}})
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected *DimensionError, got %v", err)
	}
}

func TestOneHotEncoder_EmptyData(t *testing.T) {
	enc := NewOneHotEncoder()
	if err := enc.Fit(nil); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
	if err := enc.Fit([][]string{{}}); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
}
