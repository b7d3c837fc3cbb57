// Package canvas composes styled terminal lines while keeping every
// line at one visible width. Rows are built from styled segments and
// only painted into SGR escapes at the end, so width bookkeeping never
// has to look past escape sequences.
package canvas

import (
	"fmt"
	"strings"

	"github.com/binoviz/bino/pkg/style"
)

// Segment is a run of text sharing one style.
type Segment struct {
	Text string
	FG   int
	BG   int
	Bold bool
}

// Width returns the number of terminal columns a string occupies. Runes
// in the combining diacritics block overlay the previous rune and count
// as zero.
func Width(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x0300 && r <= 0x036F {
			continue
		}
		n++
	}
	return n
}

type row struct {
	segs  []Segment
	width int
}

// Canvas accumulates styled rows. Inserting a row narrower than the
// canvas pads it on the right with background spaces; inserting a wider
// row grows every existing row first, so all rows always share one
// width.
type Canvas struct {
	fg    int
	bg    int
	rows  []row
	width int
}

// New returns an empty canvas that pads with the given colors.
func New(fg, bg int) *Canvas {
	return &Canvas{fg: fg, bg: bg}
}

// Width returns the common row width.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the number of rows.
func (c *Canvas) Height() int {
	return len(c.rows)
}

// Append adds a row at the bottom.
func (c *Canvas) Append(segs ...Segment) {
	c.Insert(len(c.rows), segs...)
}

// Insert adds a row at the given position, 0 being the top.
func (c *Canvas) Insert(pos int, segs ...Segment) {
	if pos < 0 || pos > len(c.rows) {
		panic(fmt.Sprintf("canvas: insert position %d out of range [0,%d]", pos, len(c.rows)))
	}
	r := row{segs: append([]Segment(nil), segs...)}
	for _, s := range segs {
		r.width += Width(s.Text)
	}
	if r.width > c.width {
		for i := range c.rows {
			c.pad(&c.rows[i], r.width)
		}
		c.width = r.width
	} else if r.width < c.width {
		c.pad(&r, c.width)
	}
	c.rows = append(c.rows, row{})
	copy(c.rows[pos+1:], c.rows[pos:])
	c.rows[pos] = r
}

// pad widens a row to the target width with background spaces.
func (c *Canvas) pad(r *row, width int) {
	diff := width - r.width
	if diff <= 0 {
		return
	}
	r.segs = append(r.segs, Segment{
		Text: strings.Repeat(" ", diff),
		FG:   c.fg,
		BG:   c.bg,
		Bold: true,
	})
	r.width = width
}

// LeftPad prepends a styled pad to every row and widens the canvas by
// the pad width.
func (c *Canvas) LeftPad(pad string) {
	if len(c.rows) == 0 {
		return
	}
	w := Width(pad)
	for i := range c.rows {
		seg := Segment{Text: pad, FG: c.fg, BG: c.bg, Bold: true}
		c.rows[i].segs = append([]Segment{seg}, c.rows[i].segs...)
		c.rows[i].width += w
	}
	c.width += w
}

// Merge appends every row of other, first reconciling the two widths by
// padding the narrower side.
func (c *Canvas) Merge(other *Canvas) {
	if other.width > c.width {
		for i := range c.rows {
			c.pad(&c.rows[i], other.width)
		}
		c.width = other.width
	}
	for _, r := range other.rows {
		rr := row{segs: append([]Segment(nil), r.segs...), width: r.width}
		c.pad(&rr, c.width)
		c.rows = append(c.rows, rr)
	}
}

// Render paints every row into a terminal-ready string.
func (c *Canvas) Render() []string {
	lines := make([]string, len(c.rows))
	var b strings.Builder
	for i, r := range c.rows {
		b.Reset()
		for _, s := range r.segs {
			b.WriteString(style.Paint(s.Text, s.FG, s.BG, s.Bold))
		}
		lines[i] = b.String()
	}
	return lines
}

// Plain returns every row without styling.
func (c *Canvas) Plain() []string {
	lines := make([]string, len(c.rows))
	var b strings.Builder
	for i, r := range c.rows {
		b.Reset()
		for _, s := range r.segs {
			b.WriteString(s.Text)
		}
		lines[i] = b.String()
	}
	return lines
}

// String joins the rendered rows with newlines.
func (c *Canvas) String() string {
	return strings.Join(c.Render(), "\n")
}
