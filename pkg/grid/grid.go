// Package grid implements the binning core shared by every figure mode:
// evenly spaced axes, value-to-bin lookup, per-bin aggregation policies,
// weighted histograms and credible region selection.
package grid

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Axis divides the closed interval [Min, Max] into Bins bins. Every bin
// is half-open on the right except the last one, which also contains Max.
// Edges holds the Bins+1 evenly spaced boundaries and Centers the midpoint
// of each bin.
type Axis struct {
	Min     float64
	Max     float64
	Bins    int
	Edges   []float64
	Centers []float64
}

// NewAxis builds an axis over [min, max] with the given number of bins.
func NewAxis(min, max float64, bins int) Axis {
	if bins < 1 {
		panic(fmt.Sprintf("grid: axis needs at least one bin, got %d", bins))
	}
	edges := make([]float64, bins+1)
	floats.Span(edges, min, max)
	centers := make([]float64, bins)
	for i := range centers {
		centers[i] = 0.5 * (edges[i] + edges[i+1])
	}
	return Axis{Min: min, Max: max, Bins: bins, Edges: edges, Centers: centers}
}

// BinWidth returns the width of a single bin.
func (a Axis) BinWidth() float64 {
	return (a.Max - a.Min) / float64(a.Bins)
}

// Index maps a value to its bin. Values on an inner edge belong to the
// bin starting there. NaN and values outside [Min, Max] map to -1.
func (a Axis) Index(v float64) int {
	if math.IsNaN(v) || v < a.Min || v > a.Max {
		return -1
	}
	if v == a.Max {
		return a.Bins - 1
	}
	i := sort.SearchFloat64s(a.Edges, v)
	if a.Edges[i] == v {
		return i
	}
	return i - 1
}

// Grid pairs two axes into a rectangular bin layout.
type Grid struct {
	X Axis
	Y Axis
}

// NewGrid combines two axes.
func NewGrid(x, y Axis) Grid {
	return Grid{X: x, Y: y}
}

// CellArea returns the area covered by a single grid cell.
func (g Grid) CellArea() float64 {
	return g.X.BinWidth() * g.Y.BinWidth()
}

// Key addresses one cell of a grid.
type Key struct {
	X int
	Y int
}

// Cell is one occupied bin together with its aggregated value. Source
// holds the index of the record that produced the value for pick-one
// policies and -1 for derived values.
type Cell struct {
	Key     Key
	XCenter float64
	YCenter float64
	Value   float64
	Source  int
}

// BinResult collects occupied cells keyed by bin. It remembers the order
// in which bins were first written so downstream consumers iterate
// deterministically.
type BinResult struct {
	keys  []Key
	cells map[Key]Cell
}

// NewBinResult returns an empty result set.
func NewBinResult() *BinResult {
	return &BinResult{cells: make(map[Key]Cell)}
}

// Put inserts or replaces the cell stored under its key. Replacing keeps
// the key's original position in the visit order.
func (r *BinResult) Put(c Cell) {
	if _, ok := r.cells[c.Key]; !ok {
		r.keys = append(r.keys, c.Key)
	}
	r.cells[c.Key] = c
}

// Get returns the cell stored for the key, if any.
func (r *BinResult) Get(k Key) (Cell, bool) {
	c, ok := r.cells[k]
	return c, ok
}

// Len returns the number of occupied bins.
func (r *BinResult) Len() int {
	return len(r.keys)
}

// Visit calls fn for every cell in first-write order.
func (r *BinResult) Visit(fn func(Cell)) {
	for _, k := range r.keys {
		fn(r.cells[k])
	}
}

// Cells returns all cells in first-write order.
func (r *BinResult) Cells() []Cell {
	out := make([]Cell, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.cells[k])
	}
	return out
}

// Values returns the cell values in first-write order.
func (r *BinResult) Values() []float64 {
	out := make([]float64, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.cells[k].Value)
	}
	return out
}

// CapValues clamps every cell value into [lo, hi] and reports whether any
// value was raised to lo or lowered to hi.
func (r *BinResult) CapValues(lo, hi float64) (below, above bool) {
	for _, k := range r.keys {
		c := r.cells[k]
		if c.Value < lo {
			c.Value = lo
			below = true
		} else if c.Value > hi {
			c.Value = hi
			above = true
		}
		r.cells[k] = c
	}
	return below, above
}
