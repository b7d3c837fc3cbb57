package grid

import (
	"math"
	"testing"
)

func TestNewAxis(t *testing.T) {
	a := NewAxis(0, 10, 5)

	if len(a.Edges) != 6 {
		t.Fatalf("expected 6 edges, got %d", len(a.Edges))
	}
	wantEdges := []float64{0, 2, 4, 6, 8, 10}
	for i, e := range wantEdges {
		if a.Edges[i] != e {
			t.Errorf("edge %d: got %v, want %v", i, a.Edges[i], e)
		}
	}

	wantCenters := []float64{1, 3, 5, 7, 9}
	for i, c := range wantCenters {
		if a.Centers[i] != c {
			t.Errorf("center %d: got %v, want %v", i, a.Centers[i], c)
		}
	}

	if w := a.BinWidth(); w != 2 {
		t.Errorf("BinWidth: got %v, want 2", w)
	}
}

func TestAxisIndex(t *testing.T) {
	a := NewAxis(0, 10, 5)

	tests := []struct {
		value float64
		want  int
	}{
		{0, 0},       // lower bound lands in the first bin
		{1.9, 0},     // strictly inside the first bin
		{2, 1},       // inner edges belong to the bin starting there
		{6, 3},
		{9.999, 4},
		{10, 4},      // upper bound is included in the last bin
		{-0.001, -1}, // below range
		{10.001, -1}, // above range
	}
	for _, tt := range tests {
		if got := a.Index(tt.value); got != tt.want {
			t.Errorf("Index(%v): got %d, want %d", tt.value, got, tt.want)
		}
	}

	if got := a.Index(math.NaN()); got != -1 {
		t.Errorf("Index(NaN): got %d, want -1", got)
	}
}

func TestAxisIndexDegenerate(t *testing.T) {
	// A collapsed range still maps its single value to the last bin.
	a := NewAxis(5, 5, 3)
	if got := a.Index(5); got != 2 {
		t.Errorf("Index(5) on collapsed axis: got %d, want 2", got)
	}
}

func TestGridCellArea(t *testing.T) {
	g := NewGrid(NewAxis(0, 10, 5), NewAxis(0, 3, 3))
	if area := g.CellArea(); area != 2 {
		t.Errorf("CellArea: got %v, want 2", area)
	}
}

func TestBinResultOrder(t *testing.T) {
	r := NewBinResult()
	r.Put(Cell{Key: Key{X: 1, Y: 0}, Value: 1})
	r.Put(Cell{Key: Key{X: 0, Y: 2}, Value: 2})
	r.Put(Cell{Key: Key{X: 1, Y: 0}, Value: 3}) // overwrite keeps position

	if r.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", r.Len())
	}

	cells := r.Cells()
	if cells[0].Key != (Key{X: 1, Y: 0}) || cells[0].Value != 3 {
		t.Errorf("first cell: got %+v", cells[0])
	}
	if cells[1].Key != (Key{X: 0, Y: 2}) || cells[1].Value != 2 {
		t.Errorf("second cell: got %+v", cells[1])
	}

	c, ok := r.Get(Key{X: 1, Y: 0})
	if !ok || c.Value != 3 {
		t.Errorf("Get: got %+v, ok=%v", c, ok)
	}
	if _, ok := r.Get(Key{X: 9, Y: 9}); ok {
		t.Error("Get should miss for unknown key")
	}
}

func TestBinResultCapValues(t *testing.T) {
	r := NewBinResult()
	r.Put(Cell{Key: Key{X: 0, Y: 0}, Value: -2})
	r.Put(Cell{Key: Key{X: 1, Y: 0}, Value: 0.5})
	r.Put(Cell{Key: Key{X: 2, Y: 0}, Value: 7})

	below, above := r.CapValues(0, 1)
	if !below || !above {
		t.Errorf("expected both cap flags, got below=%v above=%v", below, above)
	}

	want := []float64{0, 0.5, 1}
	for i, v := range r.Values() {
		if v != want[i] {
			t.Errorf("value %d: got %v, want %v", i, v, want[i])
		}
	}
}
