package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/skylearn/imbalance/pkg/errors"
)

// LoadOption is a functional option for Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	delimiter rune
	label     string
}

// WithDelimiter sets the field delimiter (default ',').
func WithDelimiter(d rune) LoadOption {
	return func(c *loadConfig) {
		c.delimiter = d
	}
}

// WithLabelColumn sets the name of the binary label column
// (default "DEP_DEL15").
func WithLabelColumn(name string) LoadOption {
	return func(c *loadConfig) {
		c.label = name
	}
}

// DefaultLabelColumn is the label column of the reference flights dataset:
// 1 when the departure was delayed by 15 minutes or more.
const DefaultLabelColumn = "DEP_DEL15"

// Load reads a delimited file with a header row into a Table.
//
// Column kinds are inferred from the data: a column is numeric when every
// value parses as a float64, categorical otherwise. The label column must be
// present and binary. Loading is fail-fast: a missing file, a ragged row or
// a bad label aborts with a DataLoadError and there are no retries.
func Load(path string, opts ...LoadOption) (*Table, error) {
	cfg := &loadConfig{delimiter: ',', label: DefaultLabelColumn}
	for _, opt := range opts {
		opt(cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataLoadError(path, "open failed", err)
	}
	defer func() { _ = f.Close() }()

	return load(f, path, cfg)
}

func load(r io.Reader, path string, cfg *loadConfig) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = cfg.delimiter
	// FieldsPerRecord stays at 0 so the reader enforces a stable schema.

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewDataLoadError(path, "missing header row", err)
	}

	labelIdx := -1
	for i, name := range header {
		if name == cfg.label {
			labelIdx = i
		}
	}
	if labelIdx < 0 {
		return nil, errors.NewDataLoadError(path, "label column "+strconv.Quote(cfg.label)+" missing", nil)
	}

	raw := make([][]string, len(header))
	nRows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewDataLoadError(path, "malformed row", err)
		}
		for j, v := range record {
			raw[j] = append(raw[j], v)
		}
		nRows++
	}
	if nRows == 0 {
		return nil, errors.NewDataLoadError(path, "no data rows", errors.ErrEmptyData)
	}

	t := &Table{
		cols:    make([]Column, len(header)),
		numeric: make([][]float64, len(header)),
		strs:    make([][]string, len(header)),
		label:   labelIdx,
		nRows:   nRows,
	}

	for j, name := range header {
		values, numeric := parseColumn(raw[j])
		if j == labelIdx {
			if !numeric {
				return nil, errors.NewDataLoadError(path, "label column is not numeric", errors.ErrNotBinary)
			}
			for _, v := range values {
				if v != 0 && v != 1 {
					return nil, errors.NewDataLoadError(path, "label column is not binary", errors.ErrNotBinary)
				}
			}
			t.cols[j] = Column{Name: name, Kind: Numeric}
			t.numeric[j] = values
			continue
		}
		if numeric {
			t.cols[j] = Column{Name: name, Kind: Numeric}
			t.numeric[j] = values
		} else {
			t.cols[j] = Column{Name: name, Kind: Categorical}
			t.strs[j] = raw[j]
		}
	}

	return t, nil
}

// parseColumn attempts to parse every value as float64. It returns the
// parsed values and whether the whole column is numeric.
func parseColumn(values []string) ([]float64, bool) {
	parsed := make([]float64, len(values))
	for i, s := range values {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		parsed[i] = v
	}
	return parsed, true
}
