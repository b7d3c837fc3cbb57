// Package figure composes terminal figures: the bin grid with its axes,
// legends, colorbars, interval bars and caption text, rendered through
// the width-reconciling canvas.
package figure

import (
	"strings"

	"github.com/binoviz/bino/pkg/canvas"
	"github.com/binoviz/bino/pkg/grid"
	"github.com/binoviz/bino/pkg/style"
)

// CellFunc returns the two column marker and foreground color for one
// grid cell. occupied reports whether the cell holds data; unoccupied
// cells may be redrawn as grid line stubs on tick rows.
type CellFunc func(x, y int) (text string, fg int, occupied bool)

// Figure accumulates the rows of one terminal figure.
type Figure struct {
	Grid      grid.Grid
	Style     style.State
	Markers   Markers
	Format    Format
	GridLines bool

	c *canvas.Canvas
}

// New returns an empty figure over the grid.
func New(g grid.Grid, st style.State, m Markers, format Format, gridLines bool) *Figure {
	return &Figure{
		Grid:      g,
		Style:     st,
		Markers:   m,
		Format:    format,
		GridLines: gridLines,
		c:         canvas.New(st.FG, st.BG),
	}
}

// midTick returns the middle tick edge index for n bins.
func midTick(n int) int {
	if n%2 == 0 {
		return n/2 - 1
	}
	return n / 2
}

// tickEdges returns the distinct tick edge indices for n bins: the low
// edge, the middle edge and the high edge.
func tickEdges(n int) []int {
	mid := midTick(n)
	ticks := []int{0}
	if mid > 0 && mid < n {
		ticks = append(ticks, mid)
	}
	return append(ticks, n)
}

// Plot renders the bin grid with its axes: a leading blank row, the top
// border carrying the high y label, one row per y bin from the top down,
// the bottom rule and the x tick labels. Cell content comes from the
// callback, empty cells on tick rows turn into grid line stubs when grid
// lines are enabled.
func (f *Figure) Plot(cell CellFunc) {
	nx, ny := f.Grid.X.Bins, f.Grid.Y.Bins
	st := f.Style
	tickY := midTick(ny)
	tickW := f.Format.TickWidth()

	f.c.Append()

	topLabel := canvas.Segment{
		Text: f.Format.Tick(f.Grid.Y.Edges[ny]) + "   ",
		FG:   st.FG, BG: st.BG, Bold: true,
	}
	if f.GridLines {
		f.c.Append(
			canvas.Segment{Text: " " + strings.Repeat(" _", nx), FG: st.EmptyBin, BG: st.BG, Bold: true},
			canvas.Segment{Text: "_", FG: st.FG, BG: st.BG, Bold: true},
			topLabel,
		)
	} else {
		f.c.Append(
			canvas.Segment{Text: " " + strings.Repeat("  ", nx) + "_", FG: st.FG, BG: st.BG, Bold: true},
			topLabel,
		)
	}

	for y := ny - 1; y >= 0; y-- {
		ticked := y == 0 || y == tickY
		segs := make([]canvas.Segment, 0, nx+3)
		segs = append(segs, canvas.Segment{Text: " ", FG: st.FG, BG: st.BG, Bold: true})
		for x := 0; x < nx; x++ {
			text, fg, occupied := cell(x, y)
			if f.GridLines && ticked && !occupied && text == "  " {
				text = " _"
			}
			segs = append(segs, canvas.Segment{Text: text, FG: fg, BG: st.BG, Bold: true})
		}
		if ticked {
			segs = append(segs,
				canvas.Segment{Text: "│̲", FG: st.FG, BG: st.BG, Bold: true},
				canvas.Segment{Text: f.Format.Tick(f.Grid.Y.Edges[y]) + "   ", FG: st.FG, BG: st.BG, Bold: true},
			)
		} else {
			segs = append(segs,
				canvas.Segment{Text: "│", FG: st.FG, BG: st.BG, Bold: true},
				canvas.Segment{Text: strings.Repeat(" ", tickW+3), FG: st.FG, BG: st.BG, Bold: true},
			)
		}
		f.c.Append(segs...)
	}

	f.c.Append(canvas.Segment{Text: f.xRule(), FG: st.FG, BG: st.BG, Bold: true})
	f.c.Append(canvas.Segment{Text: f.xLabels(), FG: st.FG, BG: st.BG, Bold: true})
}

// xRule draws the bottom rule with a junction under every x tick edge.
func (f *Figure) xRule() string {
	ticks := tickEdges(f.Grid.X.Bins)
	var b strings.Builder
	b.WriteString(" ")
	for i, t := range ticks {
		if i > 0 {
			b.WriteString(strings.Repeat("─", 2*(t-ticks[i-1])-1))
		}
		b.WriteString("┼")
	}
	return b.String()
}

// xLabels lays the x tick labels under their junctions. The gap in
// front of each label shrinks by the label width so the row keeps the
// figure width.
func (f *Figure) xLabels() string {
	ticks := tickEdges(f.Grid.X.Bins)
	var b strings.Builder
	prev := 0
	for i, t := range ticks {
		label := f.Format.Tick(f.Grid.X.Edges[t])
		if i > 0 {
			if gap := 2*(t-prev) - len(label); gap > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
		}
		b.WriteString(label)
		prev = t
	}
	b.WriteString("     ")
	return b.String()
}

// Blank appends an empty row padded to the figure width.
func (f *Figure) Blank() {
	f.c.Append()
}

// Caption appends description rows in regular weight, below everything
// else.
func (f *Figure) Caption(lines []string) {
	for _, line := range lines {
		f.c.Append(canvas.Segment{Text: line + "  ", FG: f.Style.FG, BG: f.Style.BG})
	}
}

// LeftPad shifts the whole figure right by the given padding.
func (f *Figure) LeftPad(pad string) {
	f.c.LeftPad(pad)
}

// Lines returns the rendered terminal lines.
func (f *Figure) Lines() []string {
	return f.c.Render()
}

// Plain returns the composed lines without styling.
func (f *Figure) Plain() []string {
	return f.c.Plain()
}

// Width returns the current figure width.
func (f *Figure) Width() int {
	return f.c.Width()
}

// Height returns the number of composed rows.
func (f *Figure) Height() int {
	return f.c.Height()
}
