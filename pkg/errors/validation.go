package errors

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Flag bounds shared by the CLI and the HTTP server. Values outside these
// bounds either break the renderer (tiny grids leave no room for axis
// labels) or exhaust the 8-bit palette.
const (
	MinBinsPerAxis = 6
	MinColors      = 1
	MaxColors      = 10
	MinDecimals    = 1
	MaxDecimals    = 8
)

// ValidateBins validates a bin count for one axis.
func ValidateBins(n int) error {
	if n < MinBinsPerAxis {
		return New(ErrCodeInvalidBins, "bin count must be at least %d, got %d", MinBinsPerAxis, n)
	}
	return nil
}

// ValidateRange validates an axis range. Both endpoints must be finite
// and the minimum strictly below the maximum.
func ValidateRange(name string, min, max float64) error {
	if math.IsNaN(min) || math.IsInf(min, 0) || math.IsNaN(max) || math.IsInf(max, 0) {
		return New(ErrCodeInvalidRange, "%s range endpoints must be finite", name)
	}
	if min >= max {
		return New(ErrCodeInvalidRange, "%s range minimum must be below maximum, got [%g, %g]", name, min, max)
	}
	return nil
}

// ValidateColors validates the number of color tiers.
func ValidateColors(n int) error {
	if n < MinColors || n > MaxColors {
		return New(ErrCodeInvalidColors, "color count must be between %d and %d, got %d", MinColors, MaxColors, n)
	}
	return nil
}

// ValidateDecimals validates the number of significant decimals in labels.
func ValidateDecimals(n int) error {
	if n < MinDecimals || n > MaxDecimals {
		return New(ErrCodeInvalidDecimals, "decimals must be between %d and %d, got %d", MinDecimals, MaxDecimals, n)
	}
	return nil
}

// ValidateThresholds validates a list of credible-region or confidence-level
// percentages. The list must be non-empty, strictly ascending, and every
// entry must lie in (0, 100].
func ValidateThresholds(name string, levels []float64) error {
	if len(levels) == 0 {
		return New(ErrCodeInvalidThresholds, "%s list cannot be empty", name)
	}
	for i, v := range levels {
		if math.IsNaN(v) || v <= 0 || v > 100 {
			return New(ErrCodeInvalidThresholds, "%s values must be in (0, 100], got %g", name, v)
		}
		if i > 0 && v <= levels[i-1] {
			return New(ErrCodeInvalidThresholds, "%s values must be strictly ascending, got %g after %g", name, v, levels[i-1])
		}
	}
	return nil
}

// SortedThresholds returns a strictly ascending copy of levels, or an
// error if validation fails after sorting (duplicates).
func SortedThresholds(name string, levels []float64) ([]float64, error) {
	out := make([]float64, len(levels))
	copy(out, levels)
	sort.Float64s(out)
	if err := ValidateThresholds(name, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateSlice validates a row slice. Start and stop are 0-based row
// indices with stop exclusive; stop == 0 means "to the end" and step
// == 0 means every row.
func ValidateSlice(start, stop, step int) error {
	if start < 0 {
		return New(ErrCodeInvalidSlice, "slice start must be non-negative, got %d", start)
	}
	if stop != 0 && stop <= start {
		return New(ErrCodeInvalidSlice, "slice stop must be greater than start, got [%d, %d)", start, stop)
	}
	if step < 0 {
		return New(ErrCodeInvalidSlice, "slice step must be at least 1, got %d", step)
	}
	return nil
}

// ValidatePalette validates a user palette: non-empty, every entry a
// 256-color code.
func ValidatePalette(name string, codes []int) error {
	if len(codes) == 0 {
		return New(ErrCodeInvalidColors, "palette %q has no color codes", name)
	}
	for _, code := range codes {
		if code < 0 || code > 255 {
			return New(ErrCodeInvalidColors, "palette %q: color code must be in [0, 255], got %d", name, code)
		}
	}
	return nil
}

// ValidateDataPath validates a user-supplied relative file path for the
// HTTP server. It rejects anything that could escape the data root.
func ValidateDataPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
