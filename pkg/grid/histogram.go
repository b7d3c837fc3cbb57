package grid

import "gonum.org/v1/gonum/floats"

// Histogram2D is a dense weighted two dimensional histogram. Counts
// tracks raw occupancy regardless of weights, Values the per-bin weight
// sums, or densities after Normalize. Both are indexed [x][y].
type Histogram2D struct {
	Grid   Grid
	Counts [][]int
	Values [][]float64
}

// NewHistogram2D bins the records into a dense histogram. Records outside
// the grid are dropped. ws may be nil for unit weights.
func NewHistogram2D(g Grid, xs, ys, ws []float64) *Histogram2D {
	h := &Histogram2D{
		Grid:   g,
		Counts: make([][]int, g.X.Bins),
		Values: make([][]float64, g.X.Bins),
	}
	for x := range h.Counts {
		h.Counts[x] = make([]int, g.Y.Bins)
		h.Values[x] = make([]float64, g.Y.Bins)
	}
	for i := range xs {
		kx := g.X.Index(xs[i])
		if kx < 0 {
			continue
		}
		ky := g.Y.Index(ys[i])
		if ky < 0 {
			continue
		}
		w := 1.0
		if ws != nil {
			w = ws[i]
		}
		h.Counts[kx][ky]++
		h.Values[kx][ky] += w
	}
	return h
}

// Normalize turns Values into a probability density. Every entry is
// divided by the cell area and by the total weight that landed in the
// grid, so the densities integrate to one.
func (h *Histogram2D) Normalize() {
	total := 0.0
	for _, col := range h.Values {
		total += floats.Sum(col)
	}
	scale := 1 / (h.Grid.CellArea() * total)
	for _, col := range h.Values {
		floats.Scale(scale, col)
	}
}

// Cells returns the occupied bins in x-major scan order, carrying the
// current Values entry.
func (h *Histogram2D) Cells() *BinResult {
	res := NewBinResult()
	for x := 0; x < h.Grid.X.Bins; x++ {
		for y := 0; y < h.Grid.Y.Bins; y++ {
			if h.Counts[x][y] == 0 {
				continue
			}
			res.Put(Cell{
				Key:     Key{X: x, Y: y},
				XCenter: h.Grid.X.Centers[x],
				YCenter: h.Grid.Y.Centers[y],
				Value:   h.Values[x][y],
				Source:  -1,
			})
		}
	}
	return res
}

// Histogram1D is the one dimensional counterpart of Histogram2D.
type Histogram1D struct {
	Axis   Axis
	Counts []int
	Values []float64
}

// NewHistogram1D bins the records along a single axis. ws may be nil for
// unit weights.
func NewHistogram1D(a Axis, xs, ws []float64) *Histogram1D {
	h := &Histogram1D{
		Axis:   a,
		Counts: make([]int, a.Bins),
		Values: make([]float64, a.Bins),
	}
	for i := range xs {
		k := a.Index(xs[i])
		if k < 0 {
			continue
		}
		w := 1.0
		if ws != nil {
			w = ws[i]
		}
		h.Counts[k]++
		h.Values[k] += w
	}
	return h
}

// Normalize turns Values into a probability density over the axis.
func (h *Histogram1D) Normalize() {
	total := floats.Sum(h.Values)
	floats.Scale(1/(h.Axis.BinWidth()*total), h.Values)
}

// Cap clamps vals into [lo, hi] in place and reports whether any value was
// raised to lo or lowered to hi. NaN entries are left alone.
func Cap(vals []float64, lo, hi float64) (below, above bool) {
	for i, v := range vals {
		if v < lo {
			vals[i] = lo
			below = true
		} else if v > hi {
			vals[i] = hi
			above = true
		}
	}
	return below, above
}
