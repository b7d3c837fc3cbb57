// Package flagutil parses the compound flag values shared by the CLI
// and the HTTP query surface: bin counts, ranges, slices and number
// lists. The parsers validate as they go so both entry points reject
// bad input identically.
package flagutil

import (
	"strconv"
	"strings"

	"github.com/binoviz/bino/pkg/dataset"
	"github.com/binoviz/bino/pkg/errors"
)

// ParseBins parses "nx" or "nx,ny". A missing ny falls back to nx.
func ParseBins(s string) (int, int, error) {
	parts := splitList(s)
	if len(parts) < 1 || len(parts) > 2 {
		return 0, 0, errors.New(errors.ErrCodeInvalidBins, "bins must be N or NX,NY, got %q", s)
	}
	nx, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidBins, "invalid bin count %q", parts[0])
	}
	ny := nx
	if len(parts) == 2 {
		ny, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, errors.New(errors.ErrCodeInvalidBins, "invalid bin count %q", parts[1])
		}
	}
	if err := errors.ValidateBins(nx); err != nil {
		return 0, 0, err
	}
	if err := errors.ValidateBins(ny); err != nil {
		return 0, 0, err
	}
	return nx, ny, nil
}

// ParseRange parses "min,max" into a range, validating min < max.
func ParseRange(name, s string) (*[2]float64, error) {
	parts := splitList(s)
	if len(parts) != 2 {
		return nil, errors.New(errors.ErrCodeInvalidRange, "%s must be MIN,MAX, got %q", name, s)
	}
	lo, err1 := strconv.ParseFloat(parts[0], 64)
	hi, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil {
		return nil, errors.New(errors.ErrCodeInvalidRange, "%s must be two numbers, got %q", name, s)
	}
	if err := errors.ValidateRange(name, lo, hi); err != nil {
		return nil, err
	}
	return &[2]float64{lo, hi}, nil
}

// ParseSlice parses "start,stop[,step]" into a row slice.
func ParseSlice(s string) (dataset.Slice, error) {
	parts := splitList(s)
	if len(parts) < 2 || len(parts) > 3 {
		return dataset.Slice{}, errors.New(errors.ErrCodeInvalidSlice,
			"slice must be START,STOP or START,STOP,STEP, got %q", s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return dataset.Slice{}, errors.New(errors.ErrCodeInvalidSlice, "invalid slice number %q", p)
		}
		nums[i] = n
	}
	sl := dataset.Slice{Start: nums[0], Stop: nums[1]}
	if len(nums) == 3 {
		if nums[2] < 1 {
			return dataset.Slice{}, errors.New(errors.ErrCodeInvalidSlice,
				"slice step must be at least 1, got %d", nums[2])
		}
		sl.Step = nums[2]
	}
	if err := errors.ValidateSlice(sl.Start, sl.Stop, sl.Step); err != nil {
		return dataset.Slice{}, err
	}
	return sl, nil
}

// ParseFloats parses a comma separated float list.
func ParseFloats(name, s string) ([]float64, error) {
	var out []float64
	for _, p := range splitList(s) {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidFlag, "%s: invalid number %q", name, p)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseInts parses a comma separated integer list.
func ParseInts(name, s string) ([]int, error) {
	var out []int
	for _, p := range splitList(s) {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidFlag, "%s: invalid integer %q", name, p)
		}
		out = append(out, v)
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
