package errors

import (
	"math"
	"testing"
)

func TestValidateBins(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"default forty", 40, false},
		{"minimum six", 6, false},
		{"large", 200, false},

		{"five", 5, true},
		{"zero", 0, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBins(tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBins(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		wantErr  bool
	}{
		{"ascending", -1, 1, false},
		{"negative band", -5, -2, false},
		{"tight", 0, 1e-9, false},

		{"equal", 1, 1, true},
		{"descending", 2, 1, true},
		{"nan min", math.NaN(), 1, true},
		{"inf max", 0, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("x", tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(x, %g, %g) error = %v, wantErr %v", tt.min, tt.max, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColors(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"one", 1, false},
		{"ten", 10, false},
		{"middle", 6, false},

		{"zero", 0, true},
		{"eleven", 11, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColors(tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColors(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDecimals(t *testing.T) {
	for _, n := range []int{1, 2, 8} {
		if err := ValidateDecimals(n); err != nil {
			t.Errorf("ValidateDecimals(%d) = %v, want nil", n, err)
		}
	}
	for _, n := range []int{0, 9, -2} {
		if err := ValidateDecimals(n); err == nil {
			t.Errorf("ValidateDecimals(%d) = nil, want error", n)
		}
	}
}

func TestValidateThresholds(t *testing.T) {
	tests := []struct {
		name    string
		levels  []float64
		wantErr bool
	}{
		{"default regions", []float64{68.3, 95.45}, false},
		{"single hundred", []float64{100}, false},
		{"three sigma", []float64{68.27, 95.45, 99.73}, false},

		{"empty", nil, true},
		{"zero entry", []float64{0, 68.3}, true},
		{"over hundred", []float64{68.3, 100.5}, true},
		{"descending", []float64{95.45, 68.3}, true},
		{"duplicate", []float64{68.3, 68.3}, true},
		{"nan", []float64{math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThresholds("cr", tt.levels)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateThresholds(cr, %v) error = %v, wantErr %v", tt.levels, err, tt.wantErr)
			}
		})
	}
}

func TestSortedThresholds(t *testing.T) {
	got, err := SortedThresholds("cl", []float64{95.45, 68.3})
	if err != nil {
		t.Fatalf("SortedThresholds() error = %v", err)
	}
	if got[0] != 68.3 || got[1] != 95.45 {
		t.Errorf("SortedThresholds() = %v, want ascending order", got)
	}

	if _, err := SortedThresholds("cl", []float64{68.3, 68.3}); err == nil {
		t.Error("SortedThresholds() with duplicates = nil, want error")
	}
}

func TestValidateSlice(t *testing.T) {
	tests := []struct {
		name              string
		start, stop, step int
		wantErr           bool
	}{
		{"defaults", 0, 0, 1, false},
		{"window", 100, 5000, 1, false},
		{"thinned", 0, 0, 10, false},

		{"negative start", -1, 0, 1, true},
		{"stop before start", 10, 5, 1, true},
		{"zero step", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlice(tt.start, tt.stop, tt.step)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlice(%d, %d, %d) error = %v, wantErr %v",
					tt.start, tt.stop, tt.step, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDataPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "chain.csv", false},
		{"nested", "runs/2026/chain.csv", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secrets.csv", true},
		{"inner traversal", "runs/../../x", true},
		{"null byte", "a\x00b", true},
		{"backslash", "runs\\chain.csv", true},
		{"control char", "a\x01b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDataPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDataPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
