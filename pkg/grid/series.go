package grid

import "math"

// SeriesCells digitizes one y value per x bin into grid cells. NaN entries
// and values outside the y axis are skipped. With split set, values above
// their bin centre get cell value 2 and the rest 1, so callers can pick
// half-height markers. With fillBelow set, every cell underneath an
// occupied one is emitted with value -1.
func SeriesCells(g Grid, series []float64, split, fillBelow bool) *BinResult {
	res := NewBinResult()
	for x := 0; x < g.X.Bins && x < len(series); x++ {
		v := series[x]
		if math.IsNaN(v) {
			continue
		}
		ky := g.Y.Index(v)
		if ky < 0 {
			continue
		}
		val := 1.0
		if split && v > g.Y.Centers[ky] {
			val = 2.0
		}
		res.Put(Cell{
			Key:     Key{X: x, Y: ky},
			XCenter: g.X.Centers[x],
			YCenter: g.Y.Centers[ky],
			Value:   val,
			Source:  -1,
		})
		if !fillBelow {
			continue
		}
		for y := ky - 1; y >= 0; y-- {
			res.Put(Cell{
				Key:     Key{X: x, Y: y},
				XCenter: g.X.Centers[x],
				YCenter: g.Y.Centers[y],
				Value:   -1,
				Source:  -1,
			})
		}
	}
	return res
}

// ProjectExtremum reduces scattered records to one y value per x bin,
// keeping the record whose sort key wins inside each bin. Empty bins come
// out as NaN. For max the last record with an equal key wins, for min the
// first one.
func ProjectExtremum(a Axis, xs, ys, ss []float64, max bool) []float64 {
	series := make([]float64, a.Bins)
	bests := make([]float64, a.Bins)
	seen := make([]bool, a.Bins)
	for i := range series {
		series[i] = math.NaN()
	}
	for i := range xs {
		k := a.Index(xs[i])
		if k < 0 {
			continue
		}
		if seen[k] {
			replace := ss[i] >= bests[k]
			if !max {
				replace = ss[i] < bests[k]
			}
			if !replace {
				continue
			}
		}
		seen[k] = true
		bests[k] = ss[i]
		series[k] = ys[i]
	}
	return series
}

// ProjectMean reduces scattered records to the mean y value per x bin.
// Empty bins come out as NaN.
func ProjectMean(a Axis, xs, ys []float64) []float64 {
	sums := make([]float64, a.Bins)
	counts := make([]int, a.Bins)
	for i := range xs {
		k := a.Index(xs[i])
		if k < 0 {
			continue
		}
		sums[k] += ys[i]
		counts[k]++
	}
	series := make([]float64, a.Bins)
	for i := range series {
		if counts[i] == 0 {
			series[i] = math.NaN()
			continue
		}
		series[i] = sums[i] / float64(counts[i])
	}
	return series
}
