package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/skylearn/imbalance/pkg/errors"
)

// NumericSummary holds summary statistics for one numeric column.
type NumericSummary struct {
	Name   string
	Mean   float64
	Median float64
	Std    float64
	Min    float64
	Max    float64
	Q1     float64
	Q3     float64
}

// CategoricalSummary holds summary statistics for one categorical column.
type CategoricalSummary struct {
	Name        string
	Cardinality int
	Top         string
	TopCount    int
}

// Summary is a read-only description of a Table: per-column statistics plus
// the class balance of the label.
type Summary struct {
	Rows        int
	ClassCounts map[int]int
	Numeric     []NumericSummary
	Categorical []CategoricalSummary
}

// Describe computes summary statistics for every feature column and the
// label balance. It is the exploratory first step of an imbalance study:
// the ratio in ClassCounts is what the resampling strategies exist to fix.
func Describe(t *Table) (*Summary, error) {
	if t == nil || t.NumRows() == 0 {
		return nil, errors.NewValueError("Describe", "empty table")
	}

	s := &Summary{
		Rows:        t.NumRows(),
		ClassCounts: t.ClassCounts(),
	}

	for _, name := range t.NumericNames() {
		col, err := t.NumericColumn(name)
		if err != nil {
			return nil, err
		}
		data := stats.Float64Data(col)

		mean, err := data.Mean()
		if err != nil {
			return nil, errors.Wrapf(err, "Describe: mean of %q", name)
		}
		median, err := data.Median()
		if err != nil {
			return nil, errors.Wrapf(err, "Describe: median of %q", name)
		}
		std, err := data.StandardDeviation()
		if err != nil {
			return nil, errors.Wrapf(err, "Describe: stddev of %q", name)
		}
		min, err := data.Min()
		if err != nil {
			return nil, errors.Wrapf(err, "Describe: min of %q", name)
		}
		max, err := data.Max()
		if err != nil {
			return nil, errors.Wrapf(err, "Describe: max of %q", name)
		}
		quartiles, err := stats.Quartile(data)
		if err != nil {
			return nil, errors.Wrapf(err, "Describe: quartiles of %q", name)
		}

		s.Numeric = append(s.Numeric, NumericSummary{
			Name:   name,
			Mean:   mean,
			Median: median,
			Std:    std,
			Min:    min,
			Max:    max,
			Q1:     quartiles.Q1,
			Q3:     quartiles.Q3,
		})
	}

	for _, name := range t.CategoricalNames() {
		col, err := t.CategoricalColumn(name)
		if err != nil {
			return nil, err
		}
		counts := make(map[string]int)
		for _, v := range col {
			counts[v]++
		}
		top, topCount := "", 0
		for v, c := range counts {
			if c > topCount || (c == topCount && v < top) {
				top, topCount = v, c
			}
		}
		s.Categorical = append(s.Categorical, CategoricalSummary{
			Name:        name,
			Cardinality: len(counts),
			Top:         top,
			TopCount:    topCount,
		})
	}

	return s, nil
}

// String renders the summary as a fixed-precision console report.
func (s *Summary) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "rows: %d\n", s.Rows)

	classes := make([]int, 0, len(s.ClassCounts))
	for c := range s.ClassCounts {
		classes = append(classes, c)
	}
	sort.Ints(classes)
	b.WriteString("class balance:\n")
	for _, c := range classes {
		n := s.ClassCounts[c]
		fmt.Fprintf(&b, "  %d: %d (%.4f)\n", c, n, float64(n)/float64(s.Rows))
	}

	if len(s.Numeric) > 0 {
		fmt.Fprintf(&b, "%-24s %12s %12s %12s %12s %12s\n",
			"numeric column", "mean", "std", "min", "median", "max")
		for _, ns := range s.Numeric {
			fmt.Fprintf(&b, "%-24s %12.4f %12.4f %12.4f %12.4f %12.4f\n",
				ns.Name, ns.Mean, ns.Std, ns.Min, ns.Median, ns.Max)
		}
	}

	if len(s.Categorical) > 0 {
		fmt.Fprintf(&b, "%-24s %12s  %s\n", "categorical column", "cardinality", "top")
		for _, cs := range s.Categorical {
			fmt.Fprintf(&b, "%-24s %12d  %s (%d)\n", cs.Name, cs.Cardinality, cs.Top, cs.TopCount)
		}
	}

	return b.String()
}
