package pipeline

import (
	"fmt"

	"github.com/binoviz/bino/pkg/figure"
)

// captionPad is the indentation of every caption line.
const captionPad = "   "

// caption collects the description block printed under a figure. Only
// the fields a mode sets show up; the zero value renders as the two
// framing pad lines.
type caption struct {
	format figure.Format

	xLabel     string
	xTransform string
	xBinWidth  *float64
	xRange     *[2]float64

	yLabel      string
	yTransform  string
	yNormalized bool
	yBinWidth   *float64
	yRange      *[2]float64

	zLabel      string
	zTransform  string
	zNormalized bool
	zRange      *[2]float64

	sortLabel     string
	sortType      string
	sortTransform string

	weightsLabel     string
	weightsTransform string

	capLabel string
	capValue float64
	capped   bool

	filters  []string
	modeName string
}

// lines renders the caption block: the x, y and z axis details, the
// sort, weights, capping and filter notes and the plot type, framed by
// padding lines.
func (c caption) lines() []string {
	out := []string{captionPad}
	add := func(format string, args ...any) {
		out = append(out, captionPad+fmt.Sprintf(format, args...))
	}
	point := c.format.Point

	add("x-axis: %s", c.xLabel)
	if c.xTransform != "" {
		add("  - transf.: %s", c.xTransform)
	}
	if c.xBinWidth != nil {
		add("  - bin width: %s", point(*c.xBinWidth))
	}
	if c.xRange != nil {
		add("  - range: [%s, %s]", point(c.xRange[0]), point(c.xRange[1]))
	}

	if c.yLabel != "" {
		add("y-axis: %s", c.yLabel)
		if c.yTransform != "" {
			add("  - transf.: %s", c.yTransform)
		}
		if c.yNormalized {
			add("  - normalized")
		}
		if c.yBinWidth != nil {
			add("  - bin width: %s", point(*c.yBinWidth))
		}
		if c.yRange != nil {
			add("  - range: [%s, %s]", point(c.yRange[0]), point(c.yRange[1]))
		}
	}

	if c.zLabel != "" {
		add("z-axis: %s", c.zLabel)
		if c.zTransform != "" {
			add("  - transf.: %s", c.zTransform)
		}
		if c.zNormalized {
			add("  - normalized")
		}
		if c.zRange != nil {
			add("  - range: [%s, %s]", point(c.zRange[0]), point(c.zRange[1]))
		}
	}

	if c.sortLabel != "" && c.sortType != "" {
		add("sort: %s [%s]", c.sortLabel, c.sortType)
		if c.sortTransform != "" {
			add("  - transf.: %s", c.sortTransform)
		}
	}

	if c.weightsLabel != "" {
		add("weights: %s", c.weightsLabel)
		if c.weightsTransform != "" {
			add("  - transf.: %s", c.weightsTransform)
		}
	}

	if c.capped {
		add("capped: %s dataset capped at %s", c.capLabel, point(c.capValue))
	}

	for _, name := range c.filters {
		add("filter: %s", name)
	}

	if c.modeName != "" {
		out = append(out, captionPad)
		add("plot type: %s", c.modeName)
	}

	out = append(out, captionPad)
	return out
}
