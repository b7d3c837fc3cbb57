package flagutil

import (
	"testing"

	"github.com/binoviz/bino/pkg/errors"
)

func TestParseBins(t *testing.T) {
	tests := []struct {
		in      string
		nx, ny  int
		wantErr bool
	}{
		{"40", 40, 40, false},
		{"20,60", 20, 60, false},
		{" 8 , 12 ", 8, 12, false},
		{"5", 0, 0, true}, // below minimum
		{"10,20,30", 0, 0, true},
		{"abc", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		nx, ny, err := ParseBins(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBins(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && (nx != tt.nx || ny != tt.ny) {
			t.Errorf("ParseBins(%q) = %d,%d, want %d,%d", tt.in, nx, ny, tt.nx, tt.ny)
		}
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("x-range", "-1.5,2.5")
	if err != nil {
		t.Fatalf("ParseRange() error = %v", err)
	}
	if r[0] != -1.5 || r[1] != 2.5 {
		t.Errorf("ParseRange() = %v", r)
	}

	if _, err := ParseRange("x-range", "2,1"); !errors.Is(err, errors.ErrCodeInvalidRange) {
		t.Errorf("inverted range error = %v, want INVALID_RANGE", err)
	}
	if _, err := ParseRange("x-range", "1"); err == nil {
		t.Error("single value should fail")
	}
}

func TestParseSlice(t *testing.T) {
	sl, err := ParseSlice("10,100,2")
	if err != nil {
		t.Fatalf("ParseSlice() error = %v", err)
	}
	if sl.Start != 10 || sl.Stop != 100 || sl.Step != 2 {
		t.Errorf("ParseSlice() = %+v", sl)
	}

	if _, err := ParseSlice("10"); err == nil {
		t.Error("single value should fail")
	}
	if _, err := ParseSlice("0,10,0"); err == nil {
		t.Error("zero step should fail")
	}
}

func TestParseLists(t *testing.T) {
	fs, err := ParseFloats("cr", "68.3,95.45")
	if err != nil || len(fs) != 2 || fs[1] != 95.45 {
		t.Errorf("ParseFloats() = %v, %v", fs, err)
	}
	is, err := ParseInts("filter", "3,4")
	if err != nil || len(is) != 2 || is[0] != 3 {
		t.Errorf("ParseInts() = %v, %v", is, err)
	}
	if _, err := ParseFloats("cr", "a"); err == nil {
		t.Error("bad float should fail")
	}
}
