package resample

import (
	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/pkg/errors"
)

// DefaultENNNeighbors is the neighbour count used by EditedNearestNeighbours
// when none is configured.
const DefaultENNNeighbors = 3

// EditedNearestNeighbours removes every row whose label disagrees with the
// strict majority vote of its k nearest neighbours in the full training set.
// A tied vote keeps the row. Cleaning can shrink either class, so class
// counts are generally unequal afterwards.
type EditedNearestNeighbours struct {
	k int
}

// ENNOption is a functional option for EditedNearestNeighbours.
type ENNOption func(*EditedNearestNeighbours)

// WithENNNeighbors sets the neighbour count k (default 3).
func WithENNNeighbors(k int) ENNOption {
	return func(e *EditedNearestNeighbours) {
		e.k = k
	}
}

// NewEditedNearestNeighbours creates a new EditedNearestNeighbours cleaner.
func NewEditedNearestNeighbours(opts ...ENNOption) *EditedNearestNeighbours {
	e := &EditedNearestNeighbours{k: DefaultENNNeighbors}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FitResample returns (X, y) with label-discordant rows removed. All votes
// are computed against the original input, then flagged rows are dropped in
// one pass, so removal order cannot influence the outcome. ENN has no
// random element: results depend only on the input.
func (e *EditedNearestNeighbours) FitResample(X mat.Matrix, y *mat.VecDense) (mat.Matrix, *mat.VecDense, error) {
	if e.k <= 0 {
		return nil, nil, errors.NewValueError("EditedNearestNeighbours.FitResample", "neighbor count must be positive")
	}

	if _, err := buildClassIndex("EditedNearestNeighbours.FitResample", X, y); err != nil {
		return nil, nil, err
	}

	r, c := X.Dims()
	if r <= e.k {
		return nil, nil, errors.NewInsufficientSamplesError("EditedNearestNeighbours", r, e.k)
	}

	dense := mat.NewDense(r, c, nil)
	dense.Copy(X)

	neighbors, err := kNearest(dense, e.k)
	if err != nil {
		return nil, nil, err
	}

	var keep []int
	for i := 0; i < r; i++ {
		agree := 0
		for _, nb := range neighbors[i] {
			if y.AtVec(nb) == y.AtVec(i) {
				agree++
			}
		}
		disagree := e.k - agree
		// Strict majority of neighbours must disagree for removal; a tie
		// keeps the row.
		if disagree <= agree {
			keep = append(keep, i)
		}
	}

	if len(keep) == 0 {
		return nil, nil, errors.NewValueError("EditedNearestNeighbours.FitResample", "cleaning removed every row")
	}

	return takeRows(X, keep), takeLabels(y, keep), nil
}

// GetParams returns the cleaner's hyperparameters.
func (e *EditedNearestNeighbours) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_neighbors": e.k,
	}
}

// SMOTEENN combines SMOTE oversampling with edited-nearest-neighbour
// cleaning: first the minority class is synthesized up to the majority
// count, then rows in label-discordant neighbourhoods are removed. The
// cleaning pass can leave the classes unequal again; that is inherent to
// the method, not a defect.
type SMOTEENN struct {
	smote *SMOTE
	enn   *EditedNearestNeighbours
}

// SMOTEENNOption is a functional option for SMOTEENN.
type SMOTEENNOption func(*SMOTEENN)

// WithSMOTEENNSeed sets the random seed of the SMOTE pass.
func WithSMOTEENNSeed(seed int64) SMOTEENNOption {
	return func(s *SMOTEENN) {
		s.smote = NewSMOTE(WithSMOTESeed(seed), WithSMOTENeighbors(s.smote.k))
	}
}

// WithSMOTEENNSamplers overrides both stages, for callers that need custom
// neighbour counts.
func WithSMOTEENNSamplers(smote *SMOTE, enn *EditedNearestNeighbours) SMOTEENNOption {
	return func(s *SMOTEENN) {
		s.smote = smote
		s.enn = enn
	}
}

// NewSMOTEENN creates a new SMOTEENN sampler with default stages.
func NewSMOTEENN(opts ...SMOTEENNOption) *SMOTEENN {
	s := &SMOTEENN{
		smote: NewSMOTE(),
		enn:   NewEditedNearestNeighbours(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FitResample runs the SMOTE stage and then the ENN cleaning stage.
func (s *SMOTEENN) FitResample(X mat.Matrix, y *mat.VecDense) (mat.Matrix, *mat.VecDense, error) {
	XOver, yOver, err := s.smote.FitResample(X, y)
	if err != nil {
		return nil, nil, err
	}
	return s.enn.FitResample(XOver, yOver)
}

// GetParams returns the hyperparameters of both stages.
func (s *SMOTEENN) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"smote": s.smote.GetParams(),
		"enn":   s.enn.GetParams(),
	}
}
