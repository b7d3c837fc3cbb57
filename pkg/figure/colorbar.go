package figure

import "strings"

// Colorbar appends a blank row, the color swatch row and the threshold
// value row. extendDown and extendUp swap the first and last separator
// for arrows, flagging values that were capped into the range.
func (f *Figure) Colorbar(lims []float64, extendDown, extendUp bool) {
	st := f.Style

	swatch := []LegendEntry{{TextColor: st.FG}}
	for i := range lims {
		barColor := st.FG
		if i%2 == 1 {
			barColor = st.EmptyBin
		}
		sepGlyph := "|"
		switch {
		case i == 0 && extendDown:
			sepGlyph = "<"
		case i == len(lims)-1 && extendUp:
			sepGlyph = ">"
		}
		if i < len(lims)-1 {
			swatch = append(swatch, LegendEntry{
				Marker:      sepGlyph,
				MarkerColor: barColor,
				Text:        strings.Repeat("■", 6),
				TextColor:   st.Codes[i],
			})
		} else {
			swatch = append(swatch, LegendEntry{
				Marker:      sepGlyph,
				MarkerColor: barColor,
				TextColor:   st.FG,
			})
		}
	}

	// Labels sit under every second separator; the gap in between
	// shrinks when the label form overflows one swatch width.
	gap := 8
	if w := f.Format.TickWidth(); w > 8 {
		gap = 16 - w
	}
	if gap < 0 {
		gap = 0
	}
	values := []LegendEntry{{TextColor: st.FG}}
	for i, lim := range lims {
		if i%2 == 0 {
			values = append(values, LegendEntry{Text: f.Format.Tick(lim), TextColor: st.FG})
		} else {
			values = append(values, LegendEntry{Text: strings.Repeat(" ", gap), TextColor: st.FG})
		}
	}

	f.Blank()
	f.c.Append(f.legendRow(swatch, " ", "")...)
	f.c.Append(f.legendRow(values, "", "")...)
}
