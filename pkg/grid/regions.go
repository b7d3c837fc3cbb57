package grid

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Range is a half-open run [Begin, End) of bin indices.
type Range struct {
	Begin int
	End   int
}

// RegionRank labels every occupied bin of a normalized histogram with the
// credible region it falls into. Bins are visited from densest to least
// dense, ties in x-major scan order. Each bin is labelled with the number
// of thresholds the running probability mass had already crossed when the
// bin was reached; the bin's own mass is added afterwards. thresholds are
// cumulative percentages in ascending order and should end at 100, the
// running mass is clamped there.
func RegionRank(h *Histogram2D, thresholds []float64) [][]int {
	nx, ny := h.Grid.X.Bins, h.Grid.Y.Bins
	ranks := make([][]int, nx)
	for x := range ranks {
		ranks[x] = make([]int, ny)
	}

	type entry struct {
		x, y  int
		value float64
	}
	var occupied []entry
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			if h.Counts[x][y] > 0 {
				occupied = append(occupied, entry{x: x, y: y, value: h.Values[x][y]})
			}
		}
	}
	sort.SliceStable(occupied, func(i, j int) bool {
		return occupied[i].value > occupied[j].value
	})

	area := h.Grid.CellArea()
	cum := 0.0
	for _, e := range occupied {
		level := 0
		for level < len(thresholds) && cum > thresholds[level] {
			level++
		}
		ranks[e.x][e.y] = level
		cum += e.value * area * 100
		if cum > 100 {
			cum = 100
		}
	}
	return ranks
}

// CredibleBins1D returns the indices of the bins forming the smallest set
// that covers the requested probability mass, densest bins first. The bin
// crossing the target is included, unless stopping one bin earlier lands
// closer to the target. cr is a percentage; 100 or more selects all bins.
func CredibleBins1D(content []float64, binWidth, cr float64) []int {
	if cr >= 100 {
		all := make([]int, len(content))
		for i := range all {
			all[i] = i
		}
		return all
	}
	order := make([]int, len(content))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return content[order[i]] > content[order[j]]
	})

	var included []int
	cum := 0.0
	for k, idx := range order {
		cum += content[idx] * binWidth * 100
		included = append(included, idx)
		if cum > cr {
			break
		}
		if k+1 < len(order) {
			next := cum + content[order[k+1]]*binWidth*100
			if math.Abs(cum-cr) < math.Abs(next-cr) {
				break
			}
		}
	}
	return included
}

// ConfidenceBins1D returns the indices of the bins whose likelihood ratio
// clears the cut implied by the confidence level, taken from the chi
// squared distribution with one degree of freedom. NaN entries never
// qualify. cl is a percentage in (0, 100).
func ConfidenceBins1D(ratios []float64, cl float64) []int {
	cut := RatioCut(cl, 1)
	var included []int
	for i, v := range ratios {
		if math.IsNaN(v) {
			continue
		}
		if v >= cut {
			included = append(included, i)
		}
	}
	return included
}

// RatioCut returns the likelihood ratio corresponding to a confidence
// level, for the chi squared distribution with the given degrees of
// freedom.
func RatioCut(cl float64, df int) float64 {
	return math.Exp(-0.5 * distuv.ChiSquared{K: float64(df)}.Quantile(cl/100))
}

// RangesFromIncluded merges bin indices into contiguous half-open ranges.
// The input is copied and sorted, the ranges come out in ascending order.
func RangesFromIncluded(included []int) []Range {
	if len(included) == 0 {
		return nil
	}
	idx := make([]int, len(included))
	copy(idx, included)
	sort.Ints(idx)

	var ranges []Range
	begin, prev := idx[0], idx[0]
	for _, i := range idx[1:] {
		if i == prev+1 {
			prev = i
			continue
		}
		ranges = append(ranges, Range{Begin: begin, End: prev + 1})
		begin, prev = i, i
	}
	return append(ranges, Range{Begin: begin, End: prev + 1})
}
