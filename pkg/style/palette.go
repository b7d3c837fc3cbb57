package style

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Colormaps holds the selectable plot palettes as 256-color codes, from
// a cold-to-hot default ramp to a compact four step contour set.
var Colormaps = [][]int{
	{53, 56, 62, 26, 31, 36, 42, 47, 154, 226},
	{18, 20, 27, 45, 122, 155, 226, 214, 202, 196},
	{16, 53, 90, 124, 160, 196, 202, 208, 214, 226},
	{19, 26, 68, 111, 153, 224, 217, 174, 160, 88},
	{236, 19, 45, 226},
}

// GrayscaleDark and GrayscaleLight are the grayscale ramps for dark and
// light terminals.
var (
	GrayscaleDark  = []int{233, 236, 239, 242, 244, 247, 250, 253, 255, 231}
	GrayscaleLight = []int{255, 253, 251, 248, 246, 243, 240, 238, 235, 232}
)

// GrayFourDark and GrayFourLight are the compact grayscale ramps used by
// the contour-style figures.
var (
	GrayFourDark  = []int{233, 237, 242, 231}
	GrayFourLight = []int{254, 250, 243, 232}
)

// Resample shrinks or stretches a palette to n entries, reversing the
// source first when asked so reversal always applies to the full ramp.
// Up to the palette length, entries are picked by evenly spaced indices
// rounded half to even; beyond it the palette repeats cyclically. n of
// zero or less keeps the palette length.
func Resample(palette []int, n int, reverse bool) []int {
	src := palette
	if reverse {
		src = make([]int, len(palette))
		for i, c := range palette {
			src[len(palette)-1-i] = c
		}
	}
	if n <= 0 {
		n = len(src)
	}
	out := make([]int, n)
	if n > len(src) {
		for i := range out {
			out[i] = src[i%len(src)]
		}
		return out
	}
	if n == 1 {
		out[0] = src[0]
		return out
	}
	step := float64(len(src)-1) / float64(n-1)
	for i := range out {
		out[i] = src[int(math.RoundToEven(float64(i)*step))]
	}
	return out
}

// Thresholds returns n+1 evenly spaced cut points spanning [min, max],
// one threshold per palette entry plus the closing upper bound.
func Thresholds(min, max float64, n int) []float64 {
	lims := make([]float64, n+1)
	floats.Span(lims, min, max)
	return lims
}
