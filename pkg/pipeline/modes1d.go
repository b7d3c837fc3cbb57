package pipeline

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/binoviz/bino/pkg/figure"
	"github.com/binoviz/bino/pkg/grid"
	"github.com/binoviz/bino/pkg/style"
	"github.com/binoviz/bino/pkg/transform"
)

// leftPad is the indentation added to every figure row.
const leftPad = "  "

// traceColors holds the 1D series color per mode, for dark and light
// terminals. Grayscale renders always trace in plain white or black.
var traceColors = map[Mode][2]int{
	ModeHist1D:  {3, 11},
	ModePost1D:  {3, 11},
	ModeMax1D:   {6, 14},
	ModeMin1D:   {6, 14},
	ModeAvg1D:   {5, 6},
	ModeGraph1D: {4, 12},
	ModePLR1D:   {1, 9},
}

// style1D resolves the color state of a 1D mode.
func style1D(opts Options) style.State {
	st := style.Resolve(style.Options{
		WhiteBG:   opts.WhiteBG,
		Grayscale: opts.Grayscale,
		Reverse:   opts.Reverse,
		Colors:    opts.Colors,
		Colormap:  opts.Colormap,
		Custom:    opts.Palette,
	})
	switch {
	case opts.Grayscale && opts.WhiteBG:
		st.Graph = 232
	case opts.Grayscale:
		st.Graph = 231
	case opts.WhiteBG:
		st.Graph = traceColors[opts.Mode][1]
	default:
		st.Graph = traceColors[opts.Mode][0]
	}
	if opts.Mode == ModePLR1D && !opts.Grayscale {
		st.Bars = [2]int{3, 11}
	}
	return st
}

// seriesFigure plots one y value per x bin with split half markers,
// optionally filling the area below.
func seriesFigure(opts Options, g grid.Grid, series []float64, fillBelow bool, st style.State) *figure.Figure {
	res := grid.SeriesCells(g, series, true, fillBelow)
	m := figure.DefaultMarkers()
	f := figure.New(g, st, m, figure.Format{Decimals: opts.Decimals}, true)
	f.Plot(func(x, y int) (string, int, bool) {
		c, ok := res.Get(grid.Key{X: x, Y: y})
		if !ok {
			return m.Empty1D, st.EmptyBin, false
		}
		switch c.Value {
		case 2:
			return m.Upper, st.Graph, true
		case 1:
			return m.Lower, st.Graph, true
		default:
			return m.Full, st.Graph, true
		}
	})
	return f
}

// textLegend appends a legend row holding a single unmarked text.
func textLegend(f *figure.Figure, st style.State, text string) {
	f.Legend([]figure.LegendEntry{{Text: text, TextColor: st.FG}}, "  ", " ")
}

// intervalBars appends one interval bar row per threshold level.
func intervalBars(f *figure.Figure, st style.State, levels []float64, unit string, included func(level float64) []int) {
	f.Blank()
	specs := make([]figure.BarSpec, 0, len(levels))
	for i, level := range levels {
		specs = append(specs, figure.BarSpec{
			Ranges: grid.RangesFromIncluded(included(level)),
			Label:  figure.Percent(level) + "% " + unit,
			Color:  st.Bars[i%2],
		})
	}
	f.Bars(specs)
}

// argBest returns the index of the first maximum (or minimum) value.
func argBest(vals []float64, max bool) int {
	best := 0
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(vals[best]) {
			best = i
			continue
		}
		if (max && v > vals[best]) || (!max && v < vals[best]) {
			best = i
		}
	}
	return best
}

// clampTop caps the series at hi so overflowing bars still draw on the
// top row instead of vanishing.
func clampTop(series []float64, hi float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = math.Min(v, hi)
	}
	return out
}

// renderHistogram1D draws the hist1d and post1d figures: a weighted 1D
// histogram with split bar tops and filled bars, credible region bars
// and, in posterior mode, the max bin and mean point legends.
func renderHistogram1D(ctx context.Context, opts Options) (*figure.Figure, *table, error) {
	posterior := opts.Mode == ModePost1D

	t, err := loadTable(ctx, opts, columnSet{weights: true})
	if err != nil {
		return nil, nil, err
	}

	xr := pickRange(opts.XRange, t.x)
	xAxis := grid.NewAxis(xr[0], xr[1], opts.XBins)
	dx := xAxis.BinWidth()

	h := grid.NewHistogram1D(xAxis, t.x, t.w)
	normalized := opts.Normalize || posterior
	if normalized {
		h.Normalize()
	}
	raw := append([]float64(nil), h.Values...)

	if opts.YTransform != "" {
		chain, err := transform.Parse(opts.YTransform)
		if err != nil {
			return nil, nil, err
		}
		h.Values = chain.Apply(h.Values)
	}

	yr := pickRange(opts.YRange, h.Values)
	yAxis := grid.NewAxis(yr[0], yr[1], opts.YBins)
	g := grid.NewGrid(xAxis, yAxis)

	st := style1D(opts)
	f := seriesFigure(opts, g, clampTop(h.Values, yr[1]), true, st)
	format := f.Format

	if posterior || len(opts.Regions) > 0 {
		intervalBars(f, st, opts.Regions, "CR", func(level float64) []int {
			return grid.CredibleBins1D(raw, dx, level)
		})
	}

	if posterior {
		maxBin := argBest(h.Values, true)
		f.Blank()
		textLegend(f, st, fmt.Sprintf("posterior max bin:  x: (%s, %s)  bin height: %s",
			format.Point(xAxis.Edges[maxBin]), format.Point(xAxis.Edges[maxBin+1]),
			format.Point(h.Values[maxBin])))
		f.Blank()
		textLegend(f, st, fmt.Sprintf("posterior mean point:  x = %s",
			format.Point(stat.Mean(t.x, t.w))))
	}

	f.LeftPad(leftPad)

	modeName := "histogram"
	if posterior {
		modeName = "posterior"
	}
	f.Caption(caption{
		format:           format,
		xLabel:           t.xName,
		xTransform:       opts.XTransform,
		xBinWidth:        &dx,
		xRange:           &xr,
		yLabel:           "bin height",
		yTransform:       opts.YTransform,
		yNormalized:      normalized,
		yRange:           &yr,
		weightsLabel:     t.wName,
		weightsTransform: opts.WeightsTransform,
		filters:          t.filterNames,
		modeName:         modeName,
	}.lines())
	return f, t, nil
}

// renderExtremum1D draws the max1d and min1d figures: the per-bin y
// value of the record winning the sort inside the bin.
func renderExtremum1D(ctx context.Context, opts Options) (*figure.Figure, *table, error) {
	isMax := opts.Mode == ModeMax1D

	t, err := loadTable(ctx, opts, columnSet{y: true, sort: true})
	if err != nil {
		return nil, nil, err
	}

	xr := pickRange(opts.XRange, t.x)
	yr := pickRange(opts.YRange, t.y)
	g := grid.NewGrid(grid.NewAxis(xr[0], xr[1], opts.XBins), grid.NewAxis(yr[0], yr[1], opts.YBins))
	dx := g.X.BinWidth()

	series := grid.ProjectExtremum(g.X, t.x, t.y, t.s, isMax)
	st := style1D(opts)
	f := seriesFigure(opts, g, series, false, st)
	format := f.Format

	sortType := "min"
	if isMax {
		sortType = "max"
	}
	best := argBest(t.s, isMax)
	var point string
	if t.sortIsValue {
		point = fmt.Sprintf("y_%s point: (x, y) = (%s, %s)",
			sortType, format.Point(t.x[best]), format.Point(t.y[best]))
	} else {
		point = fmt.Sprintf("sort_%s point: (x, y, sort) = (%s, %s, %s)",
			sortType, format.Point(t.x[best]), format.Point(t.y[best]), format.Point(t.s[best]))
	}
	f.Blank()
	textLegend(f, st, point)

	f.LeftPad(leftPad)
	f.Caption(caption{
		format:        format,
		xLabel:        t.xName,
		xTransform:    opts.XTransform,
		xBinWidth:     &dx,
		xRange:        &xr,
		yLabel:        t.yName,
		yTransform:    opts.YTransform,
		yRange:        &yr,
		sortLabel:     t.sName,
		sortType:      sortType,
		sortTransform: opts.SortTransform,
		filters:       t.filterNames,
		modeName:      sortType,
	}.lines())
	return f, t, nil
}

// renderMean1D draws the avg1d figure: the arithmetic mean y per x bin.
func renderMean1D(ctx context.Context, opts Options) (*figure.Figure, *table, error) {
	t, err := loadTable(ctx, opts, columnSet{y: true})
	if err != nil {
		return nil, nil, err
	}

	xr := pickRange(opts.XRange, t.x)
	yr := pickRange(opts.YRange, t.y)
	g := grid.NewGrid(grid.NewAxis(xr[0], xr[1], opts.XBins), grid.NewAxis(yr[0], yr[1], opts.YBins))
	dx := g.X.BinWidth()

	series := grid.ProjectMean(g.X, t.x, t.y)
	f := seriesFigure(opts, g, series, false, style1D(opts))

	f.LeftPad(leftPad)
	f.Caption(caption{
		format:     f.Format,
		xLabel:     t.xName,
		xTransform: opts.XTransform,
		xBinWidth:  &dx,
		xRange:     &xr,
		yLabel:     t.yName,
		yTransform: opts.YTransform,
		yRange:     &yr,
		filters:    t.filterNames,
		modeName:   "average",
	}.lines())
	return f, t, nil
}

// renderPLR1D draws the plr1d figure: the profile likelihood ratio
// exp(lnL - lnL_max) maximized per x bin, with confidence interval bars
// from the chi-squared distribution with one degree of freedom.
func renderPLR1D(ctx context.Context, opts Options) (*figure.Figure, *table, error) {
	t, err := loadTable(ctx, opts, columnSet{y: true})
	if err != nil {
		return nil, nil, err
	}

	capped := opts.Cap != nil
	if capped {
		for i, v := range t.y {
			t.y[i] = math.Min(v, *opts.Cap)
		}
	}
	ratio := likelihoodRatio(t.y)

	xr := pickRange(opts.XRange, t.x)
	yr := [2]float64{0, 1}
	if opts.YRange != nil {
		yr = *opts.YRange
	}
	g := grid.NewGrid(grid.NewAxis(xr[0], xr[1], opts.XBins), grid.NewAxis(yr[0], yr[1], opts.YBins))
	dx := g.X.BinWidth()

	series := grid.ProjectExtremum(g.X, t.x, ratio, ratio, true)
	st := style1D(opts)
	f := seriesFigure(opts, g, series, false, st)

	intervalBars(f, st, opts.Regions, "CI", func(level float64) []int {
		return grid.ConfidenceBins1D(series, level)
	})

	f.LeftPad(leftPad)

	ratioLabel := "likelihood ratio, L(x)/L_max"
	c := caption{
		format:     f.Format,
		xLabel:     t.xName,
		xTransform: opts.XTransform,
		xBinWidth:  &dx,
		xRange:     &xr,
		yLabel:     ratioLabel,
		yRange:     &yr,
		sortLabel:  ratioLabel,
		sortType:   "max",
		filters:    t.filterNames,
		modeName:   "profile likelihood ratio, L/L_max",
	}
	if capped {
		c.capped = true
		c.capLabel = "ln(L)"
		c.capValue = *opts.Cap
	}
	f.Caption(c.lines())
	return f, t, nil
}

// renderGraph1D draws the graph1d figure: a transform chain evaluated
// at the x bin centers.
func renderGraph1D(_ context.Context, opts Options) (*figure.Figure, *table, error) {
	chain, err := transform.Parse(opts.Function)
	if err != nil {
		return nil, nil, err
	}

	xr := [2]float64{0, 1}
	if opts.XRange != nil {
		xr = *opts.XRange
	}
	xAxis := grid.NewAxis(xr[0], xr[1], opts.XBins)

	series := chain.Apply(xAxis.Centers)
	yr := pickRange(opts.YRange, series)
	g := grid.NewGrid(xAxis, grid.NewAxis(yr[0], yr[1], opts.YBins))

	f := seriesFigure(opts, g, series, false, style1D(opts))
	f.LeftPad(leftPad)
	f.Caption(caption{
		format:   f.Format,
		xLabel:   "x",
		xRange:   &xr,
		yLabel:   "f(x) = " + chainLabel(opts.Function, "x"),
		yRange:   &yr,
		modeName: "graph",
	}.lines())
	return f, nil, nil
}

// likelihoodRatio converts log-likelihoods to ratios against the
// maximum.
func likelihoodRatio(loglike []float64) []float64 {
	max := dataRange(loglike)[1]
	out := make([]float64, len(loglike))
	for i, v := range loglike {
		out[i] = math.Exp(v - max)
	}
	return out
}

// chainLabel describes a transform chain applied to a variable.
func chainLabel(expr, variable string) string {
	if expr == "" {
		return variable
	}
	return expr + "(" + variable + ")"
}
