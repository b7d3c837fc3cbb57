// Package dataset reads named numeric columns from the supported data
// sources and prepares them for binning.
//
// A source is one of:
//   - a delimited text file (header names in a leading "#" comment line,
//     otherwise dataset0..N-1)
//   - "-" for the same text format on stdin
//   - a mongodb:// URI naming a database and collection whose numeric
//     document fields are the datasets
//
// All sources implement the Store interface. Columns are addressed by
// index, sliced by row, and can be filtered or checked as weights before
// they reach the binning core.
package dataset

import (
	"context"
	"math"
	"os"
	"strings"

	"github.com/binoviz/bino/pkg/errors"
)

// Column is one named dataset.
type Column struct {
	Name string
	Data []float64
}

// Slice selects data rows. Start is the first row, Stop the first row
// excluded (0 meaning the end), Step the stride. The zero value selects
// everything.
type Slice struct {
	Start int
	Stop  int
	Step  int
}

// Cut applies the slice to one column of values, returning a fresh
// slice.
func (s Slice) Cut(vals []float64) []float64 {
	start, stop, step := s.Start, s.Stop, s.Step
	if step < 1 {
		step = 1
	}
	if start < 0 {
		start = 0
	}
	if start > len(vals) {
		start = len(vals)
	}
	if stop <= 0 || stop > len(vals) {
		stop = len(vals)
	}
	out := make([]float64, 0, (stop-start+step-1)/step)
	for i := start; i < stop; i += step {
		out = append(out, vals[i])
	}
	return out
}

// Store is a source of named numeric columns.
type Store interface {
	// Names returns all dataset names in index order.
	Names(ctx context.Context) ([]string, error)

	// Columns reads the datasets at the given indices with the row
	// slice applied. Indices outside the store are an error.
	Columns(ctx context.Context, indices []int, s Slice) ([]Column, error)

	// Close releases the underlying handle.
	Close() error
}

// Open dispatches a source string to its store implementation:
// mongodb:// URIs open a MongoDB collection, "-" reads the text format
// from stdin, anything else is a text file path.
func Open(ctx context.Context, source, delimiter string) (Store, error) {
	switch {
	case strings.HasPrefix(source, "mongodb://") || strings.HasPrefix(source, "mongodb+srv://"):
		return OpenMongo(ctx, source)
	case source == "-":
		return ReadText(os.Stdin, "stdin", delimiter)
	default:
		return OpenText(source, delimiter)
	}
}

// checkIndices validates dataset indices against the names of a store.
func checkIndices(source string, indices []int, names []string) error {
	for _, idx := range indices {
		if idx < 0 || idx >= len(names) {
			return errors.New(errors.ErrCodeDatasetNotFound,
				"Cannot use dataset index %d. Valid dataset indices for the file %s are 0 to %d.",
				idx, source, len(names)-1)
		}
	}
	return nil
}

// CheckLengths verifies that all columns have the same length.
func CheckLengths(cols []Column) error {
	if len(cols) == 0 {
		return nil
	}
	want := len(cols[0].Data)
	for _, c := range cols[1:] {
		if len(c.Data) != want {
			return errors.New(errors.ErrCodeLengthMismatch,
				"Detected datasets of different length. The dataset %s has length %d while the dataset %s has length %d.",
				cols[0].Name, want, c.Name, len(c.Data))
		}
	}
	return nil
}

// ApplyFilters keeps the rows where every filter column is truthy
// (non-zero; NaN counts as truthy) and returns the filtered copies of
// cols. An empty selection is an error.
func ApplyFilters(cols, filters []Column) ([]Column, error) {
	if len(filters) == 0 {
		return cols, nil
	}

	joint := len(filters[0].Data)
	for _, f := range filters[1:] {
		if len(f.Data) < joint {
			joint = len(f.Data)
		}
	}
	keep := make([]bool, joint)
	for i := range keep {
		keep[i] = true
		for _, f := range filters {
			if f.Data[i] == 0 {
				keep[i] = false
				break
			}
		}
	}

	out := make([]Column, len(cols))
	for ci, c := range cols {
		if len(c.Data) != joint {
			return nil, errors.New(errors.ErrCodeLengthMismatch,
				"Attempted to apply a combined filter dataset of length %d to a dataset of length %d.",
				joint, len(c.Data))
		}
		data := make([]float64, 0, joint)
		for i, ok := range keep {
			if ok {
				data = append(data, c.Data[i])
			}
		}
		out[ci] = Column{Name: c.Name, Data: data}
	}

	if len(out) > 0 && len(out[0].Data) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySelection, "No data points left after applying filters.")
	}
	return out, nil
}

// CheckWeights rejects weight columns with negative entries or without
// a single positive entry. name, when given, is added to the message.
func CheckWeights(weights []float64, name string) error {
	suffix := ""
	if name != "" {
		suffix = " The current dataset for weights is " + name + "."
	}

	anyNegative := false
	allNonPositive := true
	for _, w := range weights {
		if w < 0 {
			anyNegative = true
		}
		if w > 0 || math.IsNaN(w) {
			allNonPositive = false
		}
	}
	if anyNegative {
		return errors.New(errors.ErrCodeBadWeights,
			"Negative weights are not allowed. Check the weights data set.%s", suffix)
	}
	if allNonPositive {
		return errors.New(errors.ErrCodeBadWeights,
			"Found no weights greater than zero. Check the weights data set.%s", suffix)
	}
	return nil
}

// UnitWeights returns a weight column of ones.
func UnitWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// nan is a shared quiet NaN for missing cells.
var nan = math.NaN()
