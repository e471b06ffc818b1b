package resample

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// RandomUnderSampler equalizes class counts by removing majority-class rows
// chosen uniformly at random without replacement, until the majority count
// matches the minority count. The surviving rows keep their original order.
type RandomUnderSampler struct {
	randomState int64
}

// RandomUnderSamplerOption is a functional option for RandomUnderSampler.
type RandomUnderSamplerOption func(*RandomUnderSampler)

// WithUnderSeed sets the random seed. Negative seeds give a
// non-deterministic sampler.
func WithUnderSeed(seed int64) RandomUnderSamplerOption {
	return func(s *RandomUnderSampler) {
		s.randomState = seed
	}
}

// NewRandomUnderSampler creates a new RandomUnderSampler.
func NewRandomUnderSampler(opts ...RandomUnderSamplerOption) *RandomUnderSampler {
	s := &RandomUnderSampler{randomState: -1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FitResample returns a class-balanced copy of (X, y). The result holds
// every minority row plus a uniformly sampled subset of majority rows of
// the same size, so the total is twice the minority count.
func (s *RandomUnderSampler) FitResample(X mat.Matrix, y *mat.VecDense) (mat.Matrix, *mat.VecDense, error) {
	idx, err := buildClassIndex("RandomUnderSampler.FitResample", X, y)
	if err != nil {
		return nil, nil, err
	}

	rng := newRand(s.randomState)
	minClass := idx.minority()
	majClass := idx.majority()
	target := idx.count(minClass)

	majRows := idx.rows[majClass]
	perm := rng.Perm(len(majRows))
	kept := make([]int, target)
	for i := 0; i < target; i++ {
		kept[i] = majRows[perm[i]]
	}

	keep := sortedUnion(idx.rows[minClass], kept)
	return takeRows(X, keep), takeLabels(y, keep), nil
}

// GetParams returns the sampler's hyperparameters.
func (s *RandomUnderSampler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"random_state": s.randomState,
	}
}

// newRand builds the sampler RNG: seeded when randomState is non-negative,
// time-seeded otherwise.
func newRand(randomState int64) *rand.Rand {
	if randomState >= 0 {
		return rand.New(rand.NewSource(randomState))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}
