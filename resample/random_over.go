package resample

import (
	"gonum.org/v1/gonum/mat"
)

// RandomOverSampler equalizes class counts by duplicating minority-class
// rows chosen uniformly at random with replacement, until the minority
// count matches the majority count. The original rows keep their order;
// duplicates are appended after them.
type RandomOverSampler struct {
	randomState int64
}

// RandomOverSamplerOption is a functional option for RandomOverSampler.
type RandomOverSamplerOption func(*RandomOverSampler)

// WithOverSeed sets the random seed. Negative seeds give a
// non-deterministic sampler.
func WithOverSeed(seed int64) RandomOverSamplerOption {
	return func(s *RandomOverSampler) {
		s.randomState = seed
	}
}

// NewRandomOverSampler creates a new RandomOverSampler.
func NewRandomOverSampler(opts ...RandomOverSamplerOption) *RandomOverSampler {
	s := &RandomOverSampler{randomState: -1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FitResample returns a class-balanced copy of (X, y): all original rows
// plus enough random minority duplicates to reach twice the majority count
// in total.
func (s *RandomOverSampler) FitResample(X mat.Matrix, y *mat.VecDense) (mat.Matrix, *mat.VecDense, error) {
	idx, err := buildClassIndex("RandomOverSampler.FitResample", X, y)
	if err != nil {
		return nil, nil, err
	}

	rng := newRand(s.randomState)
	minClass := idx.minority()
	majClass := idx.majority()
	minRows := idx.rows[minClass]
	deficit := idx.count(majClass) - idx.count(minClass)

	r, _ := X.Dims()
	keep := make([]int, 0, r+deficit)
	for i := 0; i < r; i++ {
		keep = append(keep, i)
	}
	for i := 0; i < deficit; i++ {
		keep = append(keep, minRows[rng.Intn(len(minRows))])
	}

	return takeRows(X, keep), takeLabels(y, keep), nil
}

// GetParams returns the sampler's hyperparameters.
func (s *RandomOverSampler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"random_state": s.randomState,
	}
}
