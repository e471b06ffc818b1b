// Package dataset provides loading and inspection of delimited tabular
// datasets with a single binary label column.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/skylearn/imbalance/pkg/errors"
)

// ColumnKind distinguishes numeric from categorical columns.
type ColumnKind int

const (
	// Numeric columns hold float64 values.
	Numeric ColumnKind = iota
	// Categorical columns hold string labels.
	Categorical
)

func (k ColumnKind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Column describes one column of a Table.
type Column struct {
	Name string
	Kind ColumnKind
}

// Table is an ordered, fixed-schema collection of rows held column-wise in
// memory. Exactly one column is the binary label. A Table is immutable after
// load; derived views are produced with Subset.
type Table struct {
	cols    []Column
	numeric [][]float64 // per column, nil for categorical columns
	strs    [][]string  // per column, nil for numeric columns
	label   int         // index of the label column
	nRows   int
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.nRows }

// Columns returns the schema, label column included.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.cols))
	copy(out, t.cols)
	return out
}

// LabelName returns the name of the label column.
func (t *Table) LabelName() string { return t.cols[t.label].Name }

// columnIndex returns the index of the named column, or -1.
func (t *Table) columnIndex(name string) int {
	for i, c := range t.cols {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.columnIndex(name) >= 0
}

// Labels returns the binary label column as a vector.
func (t *Table) Labels() *mat.VecDense {
	return mat.NewVecDense(t.nRows, append([]float64(nil), t.numeric[t.label]...))
}

// ClassCounts returns the number of rows per label value.
func (t *Table) ClassCounts() map[int]int {
	counts := make(map[int]int, 2)
	for _, v := range t.numeric[t.label] {
		counts[int(v)]++
	}
	return counts
}

// NumericColumn returns the values of a numeric column.
func (t *Table) NumericColumn(name string) ([]float64, error) {
	i := t.columnIndex(name)
	if i < 0 {
		return nil, errors.NewSchemaError(name, "column not found")
	}
	if t.cols[i].Kind != Numeric {
		return nil, errors.NewSchemaError(name, "expected a numeric column")
	}
	return append([]float64(nil), t.numeric[i]...), nil
}

// CategoricalColumn returns the values of a categorical column.
func (t *Table) CategoricalColumn(name string) ([]string, error) {
	i := t.columnIndex(name)
	if i < 0 {
		return nil, errors.NewSchemaError(name, "column not found")
	}
	if t.cols[i].Kind != Categorical {
		return nil, errors.NewSchemaError(name, "expected a categorical column")
	}
	return append([]string(nil), t.strs[i]...), nil
}

// NumericNames returns the names of all numeric feature columns, excluding
// the label.
func (t *Table) NumericNames() []string {
	var names []string
	for i, c := range t.cols {
		if i == t.label || c.Kind != Numeric {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

// CategoricalNames returns the names of all categorical columns.
func (t *Table) CategoricalNames() []string {
	var names []string
	for _, c := range t.cols {
		if c.Kind != Categorical {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

// NumericMatrix assembles the named numeric columns into a dense matrix,
// one column per name in order.
func (t *Table) NumericMatrix(names []string) (*mat.Dense, error) {
	if len(names) == 0 {
		return nil, errors.NewValueError("Table.NumericMatrix", "no columns requested")
	}
	out := mat.NewDense(t.nRows, len(names), nil)
	for j, name := range names {
		col, err := t.NumericColumn(name)
		if err != nil {
			return nil, err
		}
		for i, v := range col {
			out.Set(i, j, v)
		}
	}
	return out, nil
}

// CategoricalColumns returns the named categorical columns, one slice per
// name in order.
func (t *Table) CategoricalColumns(names []string) ([][]string, error) {
	out := make([][]string, len(names))
	for j, name := range names {
		col, err := t.CategoricalColumn(name)
		if err != nil {
			return nil, err
		}
		out[j] = col
	}
	return out, nil
}

// Subset returns a new Table containing the given rows in the given order.
// Indices may repeat; the schema is shared.
func (t *Table) Subset(indices []int) *Table {
	sub := &Table{
		cols:    t.cols,
		numeric: make([][]float64, len(t.cols)),
		strs:    make([][]string, len(t.cols)),
		label:   t.label,
		nRows:   len(indices),
	}
	for j := range t.cols {
		if t.numeric[j] != nil {
			col := make([]float64, len(indices))
			for i, idx := range indices {
				col[i] = t.numeric[j][idx]
			}
			sub.numeric[j] = col
		}
		if t.strs[j] != nil {
			col := make([]string, len(indices))
			for i, idx := range indices {
				col[i] = t.strs[j][idx]
			}
			sub.strs[j] = col
		}
	}
	return sub
}
