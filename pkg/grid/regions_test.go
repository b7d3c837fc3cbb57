package grid

import (
	"math"
	"testing"
)

func TestRegionRank(t *testing.T) {
	g := NewGrid(NewAxis(0, 2, 2), NewAxis(0, 2, 2))
	h := &Histogram2D{
		Grid:   g,
		Counts: [][]int{{1, 1}, {1, 1}},
		Values: [][]float64{{0.5, 0.3}, {0.15, 0.05}},
	}

	ranks := RegionRank(h, []float64{68.3, 95.45, 100})

	// Mass accumulates 50, 80, 95, 100 over the visit order, so the two
	// densest bins stay in region 0 and the remaining two cross into 1.
	want := [][]int{{0, 0}, {1, 1}}
	for x := range want {
		for y := range want[x] {
			if ranks[x][y] != want[x][y] {
				t.Errorf("rank[%d][%d]: got %d, want %d", x, y, ranks[x][y], want[x][y])
			}
		}
	}
}

func TestRegionRankSkipsEmptyBins(t *testing.T) {
	g := NewGrid(NewAxis(0, 2, 2), NewAxis(0, 2, 2))
	h := &Histogram2D{
		Grid:   g,
		Counts: [][]int{{1, 0}, {0, 1}},
		Values: [][]float64{{0.9, 0}, {0, 0.1}},
	}

	ranks := RegionRank(h, []float64{68.3, 95.45, 100})
	if ranks[0][0] != 0 {
		t.Errorf("densest bin: got %d, want 0", ranks[0][0])
	}
	if ranks[1][1] != 1 {
		t.Errorf("tail bin: got %d, want 1", ranks[1][1])
	}
	// Empty bins keep the zero label but are never visited.
	if ranks[0][1] != 0 || ranks[1][0] != 0 {
		t.Errorf("empty bins: got %v", ranks)
	}
}

func TestCredibleBins1DStopsPastTarget(t *testing.T) {
	content := []float64{0.1, 0.4, 0.3, 0.2}

	got := CredibleBins1D(content, 1, 65)
	want := []int{1, 2}
	if len(got) != len(want) {
		t.Fatalf("included: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("included: got %v, want %v", got, want)
		}
	}
}

func TestCredibleBins1DClosestFit(t *testing.T) {
	// At 72% the running mass of 70 is closer to the target than 90, so
	// the walk stops before the next bin.
	content := []float64{0.1, 0.4, 0.3, 0.2}

	got := CredibleBins1D(content, 1, 72)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("included: got %v, want [1 2]", got)
	}
}

func TestCredibleBins1DFullCoverage(t *testing.T) {
	got := CredibleBins1D([]float64{0.5, 0.5}, 1, 100)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("included: got %v, want [0 1]", got)
	}
}

func TestConfidenceBins1D(t *testing.T) {
	// The 95.45% cut sits at exp(-2), roughly 0.135.
	ratios := []float64{1.0, 0.5, 0.2, 0.1, math.NaN()}

	got := ConfidenceBins1D(ratios, 95.45)
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("included: got %v, want [0 1 2]", got)
	}
}

func TestRatioCut(t *testing.T) {
	// One degree of freedom at 95.45% corresponds to two sigma.
	cut := RatioCut(95.45, 1)
	if math.Abs(cut-math.Exp(-2)) > 1e-4 {
		t.Errorf("cut: got %v, want about %v", cut, math.Exp(-2))
	}

	// More degrees of freedom push the cut down.
	if RatioCut(95.45, 2) >= cut {
		t.Error("two degrees of freedom should give a lower cut")
	}
}

func TestRangesFromIncluded(t *testing.T) {
	got := RangesFromIncluded([]int{5, 1, 2, 3, 7})

	want := []Range{{Begin: 1, End: 4}, {Begin: 5, End: 6}, {Begin: 7, End: 8}}
	if len(got) != len(want) {
		t.Fatalf("ranges: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("range %d: got %v, want %v", i, got[i], want[i])
		}
	}

	if RangesFromIncluded(nil) != nil {
		t.Error("empty input should give no ranges")
	}
}
