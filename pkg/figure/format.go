package figure

import "fmt"

// Format renders the numbers appearing on axes, colorbars and captions.
type Format struct {
	Decimals int
}

// Tick renders the fixed width scientific form used for axis and
// colorbar labels. Positive values carry a leading space in place of a
// sign so columns line up.
func (f Format) Tick(v float64) string {
	return fmt.Sprintf("% .*e", f.Decimals, v)
}

// TickWidth returns the width of one tick label.
func (f Format) TickWidth() int {
	return len(f.Tick(0))
}

// Point renders the compact scientific form used for caption points.
func (f Format) Point(v float64) string {
	return fmt.Sprintf("%.*e", f.Decimals, v)
}

// Percent renders threshold percentages without trailing zeros.
func Percent(v float64) string {
	return fmt.Sprintf("%.12g", v)
}
