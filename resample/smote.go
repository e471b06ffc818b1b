package resample

import (
	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/pkg/errors"
)

// DefaultSMOTENeighbors is the neighbour count used by SMOTE when none is
// configured.
const DefaultSMOTENeighbors = 5

// SMOTE implements the Synthetic Minority Over-sampling Technique: each
// synthetic row is a random convex combination of a minority row and one of
// its k nearest minority neighbours. Synthesis continues until the minority
// count equals the majority count.
type SMOTE struct {
	k           int
	randomState int64
}

// SMOTEOption is a functional option for SMOTE.
type SMOTEOption func(*SMOTE)

// WithSMOTENeighbors sets the neighbour count k (default 5).
func WithSMOTENeighbors(k int) SMOTEOption {
	return func(s *SMOTE) {
		s.k = k
	}
}

// WithSMOTESeed sets the random seed. Negative seeds give a
// non-deterministic sampler.
func WithSMOTESeed(seed int64) SMOTEOption {
	return func(s *SMOTE) {
		s.randomState = seed
	}
}

// NewSMOTE creates a new SMOTE sampler.
func NewSMOTE(opts ...SMOTEOption) *SMOTE {
	s := &SMOTE{
		k:           DefaultSMOTENeighbors,
		randomState: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FitResample returns (X, y) extended with synthetic minority rows until
// both classes have the majority count. Original rows keep their order;
// synthetic rows are appended.
//
// Returns an InsufficientSamplesError when the minority class has fewer
// than k+1 members, which aborts this strategy only.
func (s *SMOTE) FitResample(X mat.Matrix, y *mat.VecDense) (mat.Matrix, *mat.VecDense, error) {
	if s.k <= 0 {
		return nil, nil, errors.NewValueError("SMOTE.FitResample", "neighbor count must be positive")
	}

	idx, err := buildClassIndex("SMOTE.FitResample", X, y)
	if err != nil {
		return nil, nil, err
	}

	minClass := idx.minority()
	minRows := idx.rows[minClass]
	deficit := idx.count(idx.majority()) - idx.count(minClass)

	if len(minRows) <= s.k {
		return nil, nil, errors.NewInsufficientSamplesError("SMOTE", len(minRows), s.k)
	}

	r, c := X.Dims()
	out := mat.NewDense(r+deficit, c, nil)
	yOut := mat.NewVecDense(r+deficit, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(i, j))
		}
		yOut.SetVec(i, y.AtVec(i))
	}

	if deficit == 0 {
		return out, yOut, nil
	}

	minX := takeRows(X, minRows)
	neighbors, err := kNearest(minX, s.k)
	if err != nil {
		return nil, nil, err
	}

	rng := newRand(s.randomState)
	for n := 0; n < deficit; n++ {
		base := rng.Intn(len(minRows))
		nb := neighbors[base][rng.Intn(s.k)]
		gap := rng.Float64()

		// Interpolate between the base row and the chosen neighbour, so
		// every synthetic value stays within the convex hull of its two
		// parents.
		for j := 0; j < c; j++ {
			a := minX.At(base, j)
			b := minX.At(nb, j)
			out.Set(r+n, j, a+gap*(b-a))
		}
		yOut.SetVec(r+n, float64(minClass))
	}

	return out, yOut, nil
}

// GetParams returns the sampler's hyperparameters.
func (s *SMOTE) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"k_neighbors":  s.k,
		"random_state": s.randomState,
	}
}
