package style

import "testing"

func TestResampleIdentity(t *testing.T) {
	p := []int{1, 2, 3, 4}
	got := Resample(p, 4, false)
	for i := range p {
		if got[i] != p[i] {
			t.Fatalf("identity resample: got %v", got)
		}
	}

	got = Resample(p, 0, false)
	if len(got) != 4 {
		t.Errorf("n<=0 keeps the palette length: got %v", got)
	}
}

func TestResampleRoundsHalfToEven(t *testing.T) {
	p := []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}

	// Ten entries down to seven puts picks at 0, 1.5, 3, 4.5, 6, 7.5, 9;
	// the halves round to the even neighbour.
	got := Resample(p, 7, false)
	want := []int{10, 12, 13, 14, 16, 18, 19}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("resample to 7: got %v, want %v", got, want)
		}
	}

	if got := Resample(p, 1, false); len(got) != 1 || got[0] != 10 {
		t.Errorf("resample to 1: got %v", got)
	}
}

func TestResampleReversesBeforePicking(t *testing.T) {
	got := Resample([]int{1, 2, 3, 4}, 3, true)
	// Reversing first picks from [4 3 2 1]: indices 0, 2, 3.
	want := []int{4, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reversed resample: got %v, want %v", got, want)
		}
	}
}

func TestResampleCycles(t *testing.T) {
	got := Resample([]int{1, 2, 3}, 5, false)
	want := []int{1, 2, 3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cycling resample: got %v, want %v", got, want)
		}
	}
}

func TestThresholds(t *testing.T) {
	lims := Thresholds(0, 10, 5)
	want := []float64{0, 2, 4, 6, 8, 10}
	if len(lims) != len(want) {
		t.Fatalf("thresholds: got %v", lims)
	}
	for i := range want {
		if lims[i] != want[i] {
			t.Errorf("threshold %d: got %v, want %v", i, lims[i], want[i])
		}
	}
}

func TestPaletteShapes(t *testing.T) {
	if len(Colormaps) != 5 {
		t.Fatalf("expected 5 colormaps, got %d", len(Colormaps))
	}
	if len(GrayscaleDark) != 10 || len(GrayscaleLight) != 10 {
		t.Error("grayscale ramps should have ten steps")
	}
	if len(GrayFourDark) != 4 || len(GrayFourLight) != 4 {
		t.Error("compact ramps should have four steps")
	}
}
