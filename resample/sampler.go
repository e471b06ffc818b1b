// Package resample implements training-set resampling strategies for
// class-imbalanced binary classification: random undersampling, random
// oversampling, SMOTE, edited-nearest-neighbour cleaning and the combined
// SMOTE+ENN strategy.
//
// Every sampler implements model.Sampler: a pure function from one labeled
// feature set to another, reproducible for a fixed seed. Samplers are meant
// for the training partition only; applying one to the test partition leaks
// information and invalidates every metric computed on it.
package resample

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/pkg/errors"
)

// classIndex holds the row indices of both classes of a binary label
// vector, split by class.
type classIndex struct {
	rows map[int][]int
}

// buildClassIndex validates that y is binary and groups row indices by
// class.
func buildClassIndex(op string, X mat.Matrix, y *mat.VecDense) (*classIndex, error) {
	r, _ := X.Dims()
	if r == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if y.Len() != r {
		return nil, errors.NewDimensionError(op, r, y.Len(), 0)
	}

	idx := &classIndex{rows: make(map[int][]int, 2)}
	for i := 0; i < y.Len(); i++ {
		v := y.AtVec(i)
		if v != 0 && v != 1 {
			return nil, errors.Wrapf(errors.ErrNotBinary, "%s: found label %v", op, v)
		}
		idx.rows[int(v)] = append(idx.rows[int(v)], i)
	}

	if len(idx.rows[0]) == 0 || len(idx.rows[1]) == 0 {
		return nil, errors.NewValueError(op, "both classes must be present")
	}
	return idx, nil
}

// minority returns the class label with fewer rows. Ties resolve to class 1,
// the conventional positive class.
func (c *classIndex) minority() int {
	if len(c.rows[0]) < len(c.rows[1]) {
		return 0
	}
	return 1
}

// majority returns the class label with more rows.
func (c *classIndex) majority() int {
	return 1 - c.minority()
}

// count returns the number of rows of the given class.
func (c *classIndex) count(class int) int {
	return len(c.rows[class])
}

// takeRows copies the given rows of X, in order, into a new matrix.
func takeRows(X mat.Matrix, indices []int) *mat.Dense {
	_, c := X.Dims()
	out := mat.NewDense(len(indices), c, nil)
	for i, idx := range indices {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(idx, j))
		}
	}
	return out
}

// takeLabels copies the given entries of y, in order, into a new vector.
func takeLabels(y *mat.VecDense, indices []int) *mat.VecDense {
	out := mat.NewVecDense(len(indices), nil)
	for i, idx := range indices {
		out.SetVec(i, y.AtVec(idx))
	}
	return out
}

// sortedUnion merges index sets and restores the original row order.
func sortedUnion(sets ...[]int) []int {
	var out []int
	for _, s := range sets {
		out = append(out, s...)
	}
	sort.Ints(out)
	return out
}
