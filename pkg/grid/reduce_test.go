package grid

import (
	"math"
	"testing"
)

func TestReduceMaxTieKeepsLast(t *testing.T) {
	g := NewGrid(NewAxis(0, 1, 1), NewAxis(0, 1, 1))
	xs := []float64{0.5, 0.5, 0.5}
	ys := []float64{0.5, 0.5, 0.5}
	zs := []float64{10, 20, 30}
	ss := []float64{3, 1, 3}

	res := ReduceMax(g, xs, ys, zs, ss)
	if res.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", res.Len())
	}
	c := res.Cells()[0]
	if c.Value != 30 || c.Source != 2 {
		t.Errorf("max winner: got value=%v source=%d, want value=30 source=2", c.Value, c.Source)
	}
}

func TestReduceMinTieKeepsFirst(t *testing.T) {
	g := NewGrid(NewAxis(0, 1, 1), NewAxis(0, 1, 1))
	xs := []float64{0.5, 0.5, 0.5}
	ys := []float64{0.5, 0.5, 0.5}
	zs := []float64{10, 20, 30}
	ss := []float64{1, 3, 1}

	res := ReduceMin(g, xs, ys, zs, ss)
	c := res.Cells()[0]
	if c.Value != 10 || c.Source != 0 {
		t.Errorf("min winner: got value=%v source=%d, want value=10 source=0", c.Value, c.Source)
	}
}

func TestReduceExtremumDropsOutOfRange(t *testing.T) {
	g := NewGrid(NewAxis(0, 1, 2), NewAxis(0, 1, 2))
	xs := []float64{0.25, 5, 0.75}
	ys := []float64{0.25, 0.25, -3}
	zs := []float64{1, 2, 3}
	ss := []float64{1, 2, 3}

	res := ReduceMax(g, xs, ys, zs, ss)
	if res.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", res.Len())
	}
	if c := res.Cells()[0]; c.Key != (Key{X: 0, Y: 0}) {
		t.Errorf("surviving cell: got %+v", c.Key)
	}
}

func TestReduceMeanScanOrder(t *testing.T) {
	g := NewGrid(NewAxis(0, 2, 2), NewAxis(0, 2, 2))
	xs := []float64{1.5, 0.5, 0.5}
	ys := []float64{0.5, 1.5, 1.5}
	zs := []float64{10, 2, 4}

	res := ReduceMean(g, xs, ys, zs)
	if res.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", res.Len())
	}

	// Cells come out in x-major order regardless of input order.
	cells := res.Cells()
	if cells[0].Key != (Key{X: 0, Y: 1}) || cells[0].Value != 3 {
		t.Errorf("first cell: got %+v", cells[0])
	}
	if cells[1].Key != (Key{X: 1, Y: 0}) || cells[1].Value != 10 {
		t.Errorf("second cell: got %+v", cells[1])
	}
	if cells[0].XCenter != 0.5 || cells[0].YCenter != 1.5 {
		t.Errorf("first cell centers: got (%v, %v)", cells[0].XCenter, cells[0].YCenter)
	}
	if cells[0].Source != -1 {
		t.Errorf("mean cells carry no source, got %d", cells[0].Source)
	}
}

func TestReduceMeanPropagatesNaN(t *testing.T) {
	g := NewGrid(NewAxis(0, 1, 1), NewAxis(0, 1, 1))
	xs := []float64{0.5, 0.5}
	ys := []float64{0.5, 0.5}
	zs := []float64{1, math.NaN()}

	res := ReduceMean(g, xs, ys, zs)
	if res.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", res.Len())
	}
	if v := res.Cells()[0].Value; !math.IsNaN(v) {
		t.Errorf("mean with NaN input: got %v, want NaN", v)
	}
}
