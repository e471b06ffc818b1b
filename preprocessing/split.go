package preprocessing

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/dataset"
	"github.com/skylearn/imbalance/pkg/errors"
)

// TrainTestSplitIndices permutes row indices 0..n-1 with the given seed and
// splits them into train and test index sets. The shuffle guards against
// ordering artifacts such as temporal clustering of the minority class.
// The two sets are disjoint and together cover every index exactly once.
func TrainTestSplitIndices(n int, testSize float64, seed int64) (trainIdx, testIdx []int, err error) {
	if n <= 1 {
		return nil, nil, errors.NewValueError("TrainTestSplitIndices", "need at least two rows to split")
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, errors.NewValueError("TrainTestSplitIndices", "testSize must be in (0, 1)")
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	nTest := int(float64(n) * testSize)
	if nTest == 0 {
		nTest = 1
	}
	if nTest == n {
		nTest = n - 1
	}

	return perm[nTest:], perm[:nTest], nil
}

// TrainTestSplit splits features X and labels y into train and test
// partitions after a seeded shuffle. Deterministic for a fixed seed; no row
// appears in both partitions.
func TrainTestSplit(X mat.Matrix, y *mat.VecDense, testSize float64, seed int64) (XTrain, XTest *mat.Dense, yTrain, yTest *mat.VecDense, err error) {
	r, c := X.Dims()
	if y.Len() != r {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", r, y.Len(), 0)
	}

	trainIdx, testIdx, err := TrainTestSplitIndices(r, testSize, seed)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	take := func(indices []int) (*mat.Dense, *mat.VecDense) {
		Xs := mat.NewDense(len(indices), c, nil)
		ys := mat.NewVecDense(len(indices), nil)
		for i, idx := range indices {
			for j := 0; j < c; j++ {
				Xs.Set(i, j, X.At(idx, j))
			}
			ys.SetVec(i, y.AtVec(idx))
		}
		return Xs, ys
	}

	XTrain, yTrain = take(trainIdx)
	XTest, yTest = take(testIdx)
	return XTrain, XTest, yTrain, yTest, nil
}

// TrainTestSplitTable splits a loaded table into train and test tables after
// a seeded shuffle. Encoding and scaling are fitted on the train table only,
// so the split has to happen before any transformation.
func TrainTestSplitTable(t *dataset.Table, testSize float64, seed int64) (train, test *dataset.Table, err error) {
	trainIdx, testIdx, err := TrainTestSplitIndices(t.NumRows(), testSize, seed)
	if err != nil {
		return nil, nil, err
	}
	return t.Subset(trainIdx), t.Subset(testIdx), nil
}
