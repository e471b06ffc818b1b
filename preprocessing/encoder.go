package preprocessing

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/core/model"
	"github.com/skylearn/imbalance/pkg/errors"
)

// OneHotEncoder turns categorical columns into indicator columns. The
// category vocabulary is learned by Fit on the training partition only;
// Transform maps a value unseen during Fit to an all-zero indicator block
// instead of failing, so the test partition can always be encoded.
type OneHotEncoder struct {
	model.BaseEstimator

	// Categories holds, per input column, the sorted vocabulary seen
	// during Fit.
	Categories [][]string

	// NColumns is the number of input columns seen during Fit.
	NColumns int

	index []map[string]int
}

// NewOneHotEncoder creates a new OneHotEncoder.
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

// Fit learns the category vocabulary of each input column.
// columns[j] holds the values of the j-th categorical column, one entry per
// row.
func (e *OneHotEncoder) Fit(columns [][]string) error {
	if len(columns) == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	nRows := len(columns[0])
	if nRows == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	e.NColumns = len(columns)
	e.Categories = make([][]string, len(columns))
	e.index = make([]map[string]int, len(columns))

	for j, col := range columns {
		if len(col) != nRows {
			return errors.NewDimensionError("OneHotEncoder.Fit", nRows, len(col), 0)
		}
		seen := make(map[string]bool)
		for _, v := range col {
			seen[v] = true
		}
		cats := make([]string, 0, len(seen))
		for v := range seen {
			cats = append(cats, v)
		}
		sort.Strings(cats)

		e.Categories[j] = cats
		e.index[j] = make(map[string]int, len(cats))
		for i, v := range cats {
			e.index[j][v] = i
		}
	}

	e.SetFitted()
	return nil
}

// Transform encodes the given columns using the fitted vocabulary. The
// output has one indicator column per fitted category, in column order then
// vocabulary order. Unseen values produce an all-zero block.
func (e *OneHotEncoder) Transform(columns [][]string) (*mat.Dense, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	if len(columns) != e.NColumns {
		return nil, errors.NewDimensionError("OneHotEncoder.Transform", e.NColumns, len(columns), 1)
	}

	nRows := 0
	if e.NColumns > 0 {
		nRows = len(columns[0])
	}
	for _, col := range columns {
		if len(col) != nRows {
			return nil, errors.NewDimensionError("OneHotEncoder.Transform", nRows, len(col), 0)
		}
	}

	width := e.NumFeatures()
	out := mat.NewDense(nRows, width, nil)

	unseen := 0
	offset := 0
	for j, col := range columns {
		for i, v := range col {
			if k, ok := e.index[j][v]; ok {
				out.Set(i, offset+k, 1.0)
			} else {
				// Unseen category: the whole block stays zero.
				unseen++
			}
		}
		offset += len(e.Categories[j])
	}
	if unseen > 0 {
		log.Debug().Int("values", unseen).Msg("unseen categories encoded as zero rows")
	}

	return out, nil
}

// FitTransform fits on columns and transforms the same data.
func (e *OneHotEncoder) FitTransform(columns [][]string) (*mat.Dense, error) {
	if err := e.Fit(columns); err != nil {
		return nil, err
	}
	return e.Transform(columns)
}

// NumFeatures returns the width of the encoded output.
func (e *OneHotEncoder) NumFeatures() int {
	width := 0
	for _, cats := range e.Categories {
		width += len(cats)
	}
	return width
}

// FeatureNames returns one name per output column, formed as
// "inputName=category". names must have one entry per fitted input column.
func (e *OneHotEncoder) FeatureNames(names []string) ([]string, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "FeatureNames")
	}
	if len(names) != e.NColumns {
		return nil, errors.NewDimensionError("OneHotEncoder.FeatureNames", e.NColumns, len(names), 1)
	}

	out := make([]string, 0, e.NumFeatures())
	for j, cats := range e.Categories {
		for _, c := range cats {
			out = append(out, names[j]+"="+c)
		}
	}
	return out, nil
}

// String returns a string representation of the encoder.
func (e *OneHotEncoder) String() string {
	if !e.IsFitted() {
		return "OneHotEncoder()"
	}
	return fmt.Sprintf("OneHotEncoder(n_columns=%d, n_features=%d)", e.NColumns, e.NumFeatures())
}
