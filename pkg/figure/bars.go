package figure

import (
	"strings"

	"github.com/binoviz/bino/pkg/canvas"
	"github.com/binoviz/bino/pkg/grid"
)

// BarSpec is one interval bar: the covered bin ranges, the trailing
// label and the color the whole row is drawn in.
type BarSpec struct {
	Ranges []grid.Range
	Label  string
	Color  int
}

// Bars appends one row per bar, aligning the interval glyphs with the
// plot columns above.
func (f *Figure) Bars(bars []BarSpec) {
	for _, b := range bars {
		f.c.Append(canvas.Segment{
			Text: barLine(b.Ranges, f.Grid.X.Bins) + b.Label,
			FG:   b.Color,
			BG:   f.Style.BG,
			Bold: true,
		})
	}
}

// barLine draws the interval glyphs for one bar, two columns per bin.
// Ranges touching the axis ends open with "╶" or close with "╴" instead
// of the usual end stops.
func barLine(ranges []grid.Range, bins int) string {
	var b strings.Builder
	if len(ranges) > 0 && ranges[0].Begin == 0 {
		b.WriteString(" ")
	} else {
		b.WriteString("   ")
	}
	prevEnd := 0
	for _, r := range ranges {
		if gap := r.Begin - prevEnd - 1; gap > 0 {
			b.WriteString(strings.Repeat("  ", gap))
		}
		if r.Begin == 0 {
			b.WriteString("╶─")
		} else {
			b.WriteString("├─")
		}
		if body := (r.End-r.Begin)*2 - 2; body > 0 {
			b.WriteString(strings.Repeat("─", body))
		}
		if r.End == bins {
			b.WriteString("╴ ")
		} else {
			b.WriteString("┤ ")
		}
		prevEnd = r.End
	}
	return b.String()
}
