package resample

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/pkg/errors"
)

// kNearest returns, for every row of X, the indices of its k nearest other
// rows by Euclidean distance, nearest first. The search is brute force: for
// the dataset sizes this library targets the quadratic scan dominates the
// run time of the SMOTE-family strategies, and that cost is expected, not a
// hang.
func kNearest(X *mat.Dense, k int) ([][]int, error) {
	r, _ := X.Dims()
	if k <= 0 {
		return nil, errors.NewValueError("kNearest", "k must be positive")
	}
	if r <= k {
		return nil, errors.NewValueError("kNearest", "need more rows than neighbors")
	}

	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = X.RawRowView(i)
	}

	type distIdx struct {
		dist float64
		idx  int
	}

	out := make([][]int, r)
	scratch := make([]distIdx, 0, r-1)
	for i := 0; i < r; i++ {
		scratch = scratch[:0]
		for j := 0; j < r; j++ {
			if j == i {
				continue
			}
			scratch = append(scratch, distIdx{
				dist: floats.Distance(rows[i], rows[j], 2),
				idx:  j,
			})
		}
		// Ties break on the lower row index so results are deterministic.
		sort.Slice(scratch, func(a, b int) bool {
			if scratch[a].dist != scratch[b].dist {
				return scratch[a].dist < scratch[b].dist
			}
			return scratch[a].idx < scratch[b].idx
		})

		neighbors := make([]int, k)
		for n := 0; n < k; n++ {
			neighbors[n] = scratch[n].idx
		}
		out[i] = neighbors
	}

	return out, nil
}
