package style

// Norm returns the position of v inside [min, max] as a fraction. A
// collapsed or inverted range maps everything to 0.
func Norm(v, min, max float64) float64 {
	if max <= min {
		return 0
	}
	return (v - min) / (max - min)
}

// Bucket returns the index of the last threshold the value reaches, so a
// value between two cuts falls into the lower bucket. The index is
// clamped to the palette, NaN lands in the first bucket.
func (s State) Bucket(lims []float64, v float64) int {
	i := 0
	for j, lim := range lims {
		if v >= lim {
			i = j
		} else {
			break
		}
	}
	if i >= len(s.Codes) {
		i = len(s.Codes) - 1
	}
	return i
}

// Code returns the palette entry for the bucket the value falls in.
func (s State) Code(lims []float64, v float64) int {
	return s.Codes[s.Bucket(lims, v)]
}

// RangeCode returns the palette entry for a value, pinning the ends of
// [min, max] to the first and last color. Everything in between is
// bucketed against the thresholds.
func (s State) RangeCode(lims []float64, v, min, max float64) int {
	switch Norm(v, min, max) {
	case 1:
		return s.Last()
	case 0:
		return s.First()
	}
	return s.Code(lims, v)
}
