package dataset

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/binoviz/bino/pkg/errors"
)

// TextStore holds the parsed columns of a delimited text source. The
// whole table is read up front, so stdin works like a file.
type TextStore struct {
	path  string
	names []string
	cols  [][]float64
}

var _ Store = (*TextStore)(nil)

// OpenText reads a delimited text file into a store.
func OpenText(path, delimiter string) (*TextStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open %s", path)
	}
	defer f.Close()
	return ReadText(f, path, delimiter)
}

// ReadText parses delimited numeric columns from r. The first
// non-empty line decides the column names: a "#" comment line carries
// the names, a data line fixes the column count and names the columns
// dataset0..N-1. Later "#" lines are comments. Cells that do not parse
// as numbers become NaN; rows with the wrong column count are an error.
func ReadText(r io.Reader, path, delimiter string) (*TextStore, error) {
	s := &TextStore{path: path}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			body := strings.TrimSpace(strings.TrimLeft(line, "#"))
			if s.names == nil && body != "" {
				s.names = splitCells(body, delimiter)
			}
			continue
		}

		cells := splitCells(line, delimiter)
		if s.names == nil {
			s.names = make([]string, len(cells))
			for i := range s.names {
				s.names[i] = "dataset" + strconv.Itoa(i)
			}
		}
		if len(cells) != len(s.names) {
			return nil, &errors.RowError{Path: path, Line: lineNo,
				Message: fmt.Sprintf("expected %d columns, got %d", len(s.names), len(cells))}
		}
		if s.cols == nil {
			s.cols = make([][]float64, len(s.names))
		}
		for i, cell := range cells {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				v = nan
			}
			s.cols[i] = append(s.cols[i], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBadColumn, err, "cannot read %s", path)
	}

	if s.names == nil {
		return nil, errors.New(errors.ErrCodeDatasetNotFound, "No datasets found in %s.", path)
	}
	if s.cols == nil {
		s.cols = make([][]float64, len(s.names))
	}
	return s, nil
}

// splitCells splits one line into cells. A blank delimiter means any
// run of whitespace.
func splitCells(line, delimiter string) []string {
	if strings.TrimSpace(delimiter) == "" {
		return strings.Fields(line)
	}
	parts := strings.Split(line, delimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Path returns the source path the store was read from.
func (s *TextStore) Path() string {
	return s.path
}

// Names returns all dataset names in index order.
func (s *TextStore) Names(ctx context.Context) ([]string, error) {
	return append([]string(nil), s.names...), nil
}

// Columns returns the datasets at the given indices with the row slice
// applied.
func (s *TextStore) Columns(ctx context.Context, indices []int, sl Slice) ([]Column, error) {
	if err := checkIndices(s.path, indices, s.names); err != nil {
		return nil, err
	}
	out := make([]Column, len(indices))
	for i, idx := range indices {
		out[i] = Column{Name: s.names[idx], Data: sl.Cut(s.cols[idx])}
	}
	return out, nil
}

// Close implements Store. Text stores hold no handle after reading.
func (s *TextStore) Close() error {
	return nil
}
