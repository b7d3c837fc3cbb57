package figure

import "github.com/binoviz/bino/pkg/canvas"

// LegendEntry is one legend item: an optional marker with its own color
// and a label with its color.
type LegendEntry struct {
	Marker      string
	MarkerColor int
	Text        string
	TextColor   int
}

// Legend appends one legend row. Every entry paints its marker, the
// internal separator joined to the label, and the trailing separator in
// the label color. Entries without a marker skip the marker part.
func (f *Figure) Legend(entries []LegendEntry, sep, internalSep string) {
	f.c.Append(f.legendRow(entries, sep, internalSep)...)
}

// legendRow lays out the segments of one legend line, starting with a
// single padding space.
func (f *Figure) legendRow(entries []LegendEntry, sep, internalSep string) []canvas.Segment {
	bg := f.Style.BG
	segs := []canvas.Segment{{Text: " ", FG: 0, BG: bg, Bold: true}}
	for _, e := range entries {
		if e.Marker != "" {
			segs = append(segs, canvas.Segment{Text: e.Marker, FG: e.MarkerColor, BG: bg, Bold: true})
			if t := internalSep + e.Text; t != "" {
				segs = append(segs, canvas.Segment{Text: t, FG: e.TextColor, BG: bg, Bold: true})
			}
		} else if e.Text != "" {
			segs = append(segs, canvas.Segment{Text: e.Text, FG: e.TextColor, BG: bg, Bold: true})
		}
		if sep != "" {
			segs = append(segs, canvas.Segment{Text: sep, FG: e.TextColor, BG: bg, Bold: true})
		}
	}
	return segs
}
