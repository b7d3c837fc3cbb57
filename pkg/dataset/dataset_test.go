package dataset

import (
	"math"
	"strings"
	"testing"

	"github.com/binoviz/bino/pkg/errors"
)

func TestSliceCut(t *testing.T) {
	vals := []float64{0, 1, 2, 3, 4, 5}
	cases := []struct {
		name string
		s    Slice
		want []float64
	}{
		{"zero value keeps everything", Slice{}, []float64{0, 1, 2, 3, 4, 5}},
		{"start", Slice{Start: 4}, []float64{4, 5}},
		{"start stop", Slice{Start: 1, Stop: 3}, []float64{1, 2}},
		{"step", Slice{Step: 2}, []float64{0, 2, 4}},
		{"start stop step", Slice{Start: 1, Stop: 5, Step: 2}, []float64{1, 3}},
		{"stop past end", Slice{Stop: 99}, []float64{0, 1, 2, 3, 4, 5}},
		{"start past end", Slice{Start: 99}, []float64{}},
	}
	for _, c := range cases {
		got := c.s.Cut(vals)
		if len(got) != len(c.want) {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
			continue
		}
		for i := range c.want {
			if got[i] != c.want[i] {
				t.Errorf("%s: got %v, want %v", c.name, got, c.want)
				break
			}
		}
	}
}

func TestSliceCutReturnsFreshSlice(t *testing.T) {
	vals := []float64{1, 2}
	got := Slice{}.Cut(vals)
	got[0] = 99
	if vals[0] != 1 {
		t.Error("Cut must not alias its input")
	}
}

func TestApplyFilters(t *testing.T) {
	cols := []Column{
		{Name: "x", Data: []float64{1, 2, 3, 4}},
		{Name: "y", Data: []float64{10, 20, 30, 40}},
	}
	filters := []Column{
		{Name: "ok", Data: []float64{1, 0, 1, 1}},
		{Name: "valid", Data: []float64{1, 1, 1, 0}},
	}

	got, err := ApplyFilters(cols, filters)
	if err != nil {
		t.Fatal(err)
	}
	if len(got[0].Data) != 2 || got[0].Data[0] != 1 || got[0].Data[1] != 3 {
		t.Errorf("x after filters: got %v", got[0].Data)
	}
	if got[1].Data[0] != 10 || got[1].Data[1] != 30 {
		t.Errorf("y after filters: got %v", got[1].Data)
	}
	// The inputs stay untouched.
	if len(cols[0].Data) != 4 {
		t.Error("ApplyFilters must not mutate its input")
	}
}

func TestApplyFiltersNaNIsTruthy(t *testing.T) {
	cols := []Column{{Name: "x", Data: []float64{1, 2}}}
	filters := []Column{{Name: "f", Data: []float64{math.NaN(), 0}}}

	got, err := ApplyFilters(cols, filters)
	if err != nil {
		t.Fatal(err)
	}
	if len(got[0].Data) != 1 || got[0].Data[0] != 1 {
		t.Errorf("got %v", got[0].Data)
	}
}

func TestApplyFiltersLengthMismatch(t *testing.T) {
	cols := []Column{{Name: "x", Data: []float64{1, 2, 3}}}
	filters := []Column{{Name: "f", Data: []float64{1, 1}}}

	_, err := ApplyFilters(cols, filters)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeLengthMismatch) {
		t.Errorf("wrong code: %v", errors.GetCode(err))
	}
	want := "Attempted to apply a combined filter dataset of length 2 to a dataset of length 3."
	if !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not contain %q", err, want)
	}
}

func TestApplyFiltersEmptySelection(t *testing.T) {
	cols := []Column{{Name: "x", Data: []float64{1, 2}}}
	filters := []Column{{Name: "f", Data: []float64{0, 0}}}

	_, err := ApplyFilters(cols, filters)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeEmptySelection) {
		t.Errorf("wrong code: %v", errors.GetCode(err))
	}
	if want := "No data points left after applying filters."; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not contain %q", err, want)
	}
}

func TestApplyFiltersNoFilters(t *testing.T) {
	cols := []Column{{Name: "x", Data: []float64{1}}}
	got, err := ApplyFilters(cols, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got[0].Data) != 1 {
		t.Errorf("got %v", got[0].Data)
	}
}

func TestCheckWeights(t *testing.T) {
	if err := CheckWeights([]float64{0, 1, 2}, ""); err != nil {
		t.Errorf("valid weights: %v", err)
	}

	err := CheckWeights([]float64{1, -1}, "")
	if err == nil || !errors.Is(err, errors.ErrCodeBadWeights) {
		t.Fatalf("negative weights: got %v", err)
	}
	if !strings.Contains(err.Error(), "Negative weights are not allowed.") {
		t.Errorf("negative weights message: %v", err)
	}

	err = CheckWeights([]float64{0, 0}, "w")
	if err == nil || !errors.Is(err, errors.ErrCodeBadWeights) {
		t.Fatalf("zero weights: got %v", err)
	}
	if !strings.Contains(err.Error(), "Found no weights greater than zero.") {
		t.Errorf("zero weights message: %v", err)
	}
	if !strings.Contains(err.Error(), "The current dataset for weights is w.") {
		t.Errorf("missing dataset name: %v", err)
	}
}

func TestCheckLengths(t *testing.T) {
	ok := []Column{{Name: "a", Data: []float64{1, 2}}, {Name: "b", Data: []float64{3, 4}}}
	if err := CheckLengths(ok); err != nil {
		t.Errorf("equal lengths: %v", err)
	}

	bad := []Column{{Name: "a", Data: []float64{1, 2}}, {Name: "b", Data: []float64{3}}}
	err := CheckLengths(bad)
	if err == nil || !errors.Is(err, errors.ErrCodeLengthMismatch) {
		t.Fatalf("got %v", err)
	}
	want := "The dataset a has length 2 while the dataset b has length 1."
	if !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not contain %q", err, want)
	}
}

func TestUnitWeights(t *testing.T) {
	w := UnitWeights(3)
	if len(w) != 3 || w[0] != 1 || w[2] != 1 {
		t.Errorf("got %v", w)
	}
}

func TestParseMongoSource(t *testing.T) {
	uri, db, coll, err := parseMongoSource("mongodb://localhost:27017/scan/points?replicaSet=rs0")
	if err != nil {
		t.Fatal(err)
	}
	if db != "scan" || coll != "points" {
		t.Errorf("got db %q coll %q", db, coll)
	}
	if uri != "mongodb://localhost:27017/?replicaSet=rs0" {
		t.Errorf("client URI: got %q", uri)
	}

	_, _, _, err = parseMongoSource("mongodb://localhost:27017/onlydb")
	if err == nil {
		t.Fatal("expected error for missing collection")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("wrong code: %v", errors.GetCode(err))
	}
}

func TestNumValue(t *testing.T) {
	if got := numValue(float64(1.5)); got != 1.5 {
		t.Errorf("float64: got %v", got)
	}
	if got := numValue(int32(7)); got != 7 {
		t.Errorf("int32: got %v", got)
	}
	if got := numValue(int64(9)); got != 9 {
		t.Errorf("int64: got %v", got)
	}
	if got := numValue(nil); !math.IsNaN(got) {
		t.Errorf("nil: got %v", got)
	}
	if got := numValue("text"); !math.IsNaN(got) {
		t.Errorf("string: got %v", got)
	}
}
