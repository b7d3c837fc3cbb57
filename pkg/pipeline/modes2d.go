package pipeline

import (
	"context"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/binoviz/bino/pkg/figure"
	"github.com/binoviz/bino/pkg/grid"
	"github.com/binoviz/bino/pkg/style"
	"github.com/binoviz/bino/pkg/transform"
)

// style2D resolves the color state of a 2D mode. compactGray swaps the
// full grayscale ramp for the four-step one used by the contour-like
// modes, unless the user brought their own palette.
func style2D(opts Options, colors int, reverse, compactGray bool) style.State {
	sopts := style.Options{
		WhiteBG:   opts.WhiteBG,
		Grayscale: opts.Grayscale,
		Reverse:   reverse,
		Colors:    colors,
		Colormap:  opts.Colormap,
		Custom:    opts.Palette,
	}
	if opts.Grayscale && compactGray && len(opts.Palette) == 0 {
		if opts.WhiteBG {
			sopts.Custom = style.GrayFourLight
		} else {
			sopts.Custom = style.GrayFourDark
		}
	}
	return style.Resolve(sopts)
}

// gridFigure plots a 2D cell grid without grid lines.
func gridFigure(opts Options, g grid.Grid, st style.State, cell figure.CellFunc) *figure.Figure {
	f := figure.New(g, st, figure.DefaultMarkers(), figure.Format{Decimals: opts.Decimals}, false)
	f.Plot(cell)
	return f
}

// maxValueCell returns the occupied cell holding the largest value.
func maxValueCell(res *grid.BinResult) grid.Cell {
	var best grid.Cell
	first := true
	res.Visit(func(c grid.Cell) {
		if first || c.Value > best.Value {
			best = c
			first = false
		}
	})
	return best
}

// renderHist2D draws the hist2d figure: a weighted 2D histogram colored
// by bin height, with a colorbar and the max bin legend.
func renderHist2D(ctx context.Context, opts Options) (*figure.Figure, *table, error) {
	t, err := loadTable(ctx, opts, columnSet{y: true, weights: true})
	if err != nil {
		return nil, nil, err
	}

	xr := pickRange(opts.XRange, t.x)
	yr := pickRange(opts.YRange, t.y)
	g := grid.NewGrid(grid.NewAxis(xr[0], xr[1], opts.XBins), grid.NewAxis(yr[0], yr[1], opts.YBins))
	dx, dy := g.X.BinWidth(), g.Y.BinWidth()

	h := grid.NewHistogram2D(g, t.x, t.y, t.w)
	if opts.Normalize {
		h.Normalize()
	}
	if opts.ZTransform != "" {
		chain, err := transform.Parse(opts.ZTransform)
		if err != nil {
			return nil, nil, err
		}
		for x := range h.Values {
			for y := range h.Values[x] {
				if h.Counts[x][y] > 0 {
					h.Values[x][y] = chain.At(h.Values[x][y])
				}
			}
		}
	}

	var flat []float64
	for x := range h.Values {
		flat = append(flat, h.Values[x]...)
	}
	zr := pickRange(opts.ZRange, flat)

	res := h.Cells()
	st := style2D(opts, opts.Colors, opts.Reverse, false)
	lims := style.Thresholds(zr[0], zr[1], len(st.Codes))
	m := figure.DefaultMarkers()

	f := gridFigure(opts, g, st, func(x, y int) (string, int, bool) {
		c, ok := res.Get(grid.Key{X: x, Y: y})
		if !ok {
			return m.Empty2D, st.EmptyBin, false
		}
		return m.Bin, st.RangeCode(lims, c.Value, zr[0], zr[1]), true
	})
	format := f.Format

	f.Colorbar(lims, false, false)
	if res.Len() > 0 {
		best := maxValueCell(res)
		f.Blank()
		textLegend(f, st, fmt.Sprintf("max bin:  x: (%s, %s)  y: (%s, %s)  bin height: %s",
			format.Point(g.X.Edges[best.Key.X]), format.Point(g.X.Edges[best.Key.X+1]),
			format.Point(g.Y.Edges[best.Key.Y]), format.Point(g.Y.Edges[best.Key.Y+1]),
			format.Point(best.Value)))
	}

	f.LeftPad(leftPad)
	f.Caption(caption{
		format:           format,
		xLabel:           t.xName,
		xTransform:       opts.XTransform,
		xBinWidth:        &dx,
		xRange:           &xr,
		yLabel:           t.yName,
		yTransform:       opts.YTransform,
		yBinWidth:        &dy,
		yRange:           &yr,
		zLabel:           "bin height",
		zTransform:       opts.ZTransform,
		zNormalized:      opts.Normalize,
		zRange:           &zr,
		weightsLabel:     t.wName,
		weightsTransform: opts.WeightsTransform,
		filters:          t.filterNames,
		modeName:         "histogram",
	}.lines())
	return f, t, nil
}

// renderExtremum2D draws the max2d and min2d figures: the z value of
// the record winning the sort inside each bin, with the global winner
// starred.
func renderExtremum2D(ctx context.Context, opts Options) (*figure.Figure, *table, error) {
	isMax := opts.Mode == ModeMax2D

	t, err := loadTable(ctx, opts, columnSet{y: true, z: true, sort: true})
	if err != nil {
		return nil, nil, err
	}

	xr := pickRange(opts.XRange, t.x)
	yr := pickRange(opts.YRange, t.y)
	zr := pickRange(opts.ZRange, t.z)
	g := grid.NewGrid(grid.NewAxis(xr[0], xr[1], opts.XBins), grid.NewAxis(yr[0], yr[1], opts.YBins))
	dx, dy := g.X.BinWidth(), g.Y.BinWidth()

	// The best point is reported uncapped.
	best := argBest(t.s, isMax)
	bx, by, bz, bs := t.x[best], t.y[best], t.z[best], t.s[best]

	extendDown, extendUp := grid.Cap(t.z, zr[0], zr[1])
	var res *grid.BinResult
	if isMax {
		res = grid.ReduceMax(g, t.x, t.y, t.z, t.s)
	} else {
		res = grid.ReduceMin(g, t.x, t.y, t.z, t.s)
	}

	st := style2D(opts, opts.Colors, opts.Reverse, false)
	lims := style.Thresholds(zr[0], zr[1], len(st.Codes))
	m := figure.DefaultMarkers()
	starCells := !opts.NoStar

	f := gridFigure(opts, g, st, func(x, y int) (string, int, bool) {
		c, ok := res.Get(grid.Key{X: x, Y: y})
		if !ok {
			return m.Empty2D, st.EmptyBin, false
		}
		switch norm := style.Norm(c.Value, zr[0], zr[1]); {
		case isMax && norm == 1:
			if starCells {
				return m.Star, st.MaxBin, true
			}
			return m.Bin, st.Last(), true
		case isMax && norm == 0:
			return m.Bin, st.First(), true
		case !isMax && norm == 0:
			if starCells {
				return m.Star, st.MaxBin, true
			}
			return m.Bin, st.First(), true
		case !isMax && norm == 1:
			return m.Bin, st.Last(), true
		default:
			return m.Bin, st.Code(lims, c.Value), true
		}
	})
	format := f.Format

	f.Colorbar(lims, extendDown, extendUp)

	sortType := "min"
	if isMax {
		sortType = "max"
	}
	entry := figure.LegendEntry{TextColor: st.FG}
	if t.sortIsValue {
		entry.Text = fmt.Sprintf("z_%s point: (x, y, z) = (%s, %s, %s)",
			sortType, format.Point(bx), format.Point(by), format.Point(bz))
		if starCells {
			entry.Marker = strings.TrimSpace(m.Star)
			entry.MarkerColor = st.MaxBin
		}
	} else {
		entry.Text = fmt.Sprintf("sort_%s point: (x, y, z, sort) = (%s, %s, %s, %s)",
			sortType, format.Point(bx), format.Point(by), format.Point(bz), format.Point(bs))
	}
	f.Blank()
	f.Legend([]figure.LegendEntry{entry}, "  ", " ")

	f.LeftPad(leftPad)
	f.Caption(caption{
		format:        format,
		xLabel:        t.xName,
		xTransform:    opts.XTransform,
		xBinWidth:     &dx,
		xRange:        &xr,
		yLabel:        t.yName,
		yTransform:    opts.YTransform,
		yBinWidth:     &dy,
		yRange:        &yr,
		zLabel:        t.zName,
		zTransform:    opts.ZTransform,
		zRange:        &zr,
		sortLabel:     t.sName,
		sortType:      sortType,
		sortTransform: opts.SortTransform,
		filters:       t.filterNames,
		modeName:      sortType,
	}.lines())
	return f, t, nil
}

// renderMean2D draws the avg2d figure: the arithmetic mean z per bin.
func renderMean2D(ctx context.Context, opts Options) (*figure.Figure, *table, error) {
	t, err := loadTable(ctx, opts, columnSet{y: true, z: true})
	if err != nil {
		return nil, nil, err
	}

	xr := pickRange(opts.XRange, t.x)
	yr := pickRange(opts.YRange, t.y)
	zr := pickRange(opts.ZRange, t.z)
	g := grid.NewGrid(grid.NewAxis(xr[0], xr[1], opts.XBins), grid.NewAxis(yr[0], yr[1], opts.YBins))
	dx, dy := g.X.BinWidth(), g.Y.BinWidth()

	extendDown, extendUp := grid.Cap(t.z, zr[0], zr[1])
	res := grid.ReduceMean(g, t.x, t.y, t.z)

	st := style2D(opts, opts.Colors, opts.Reverse, false)
	lims := style.Thresholds(zr[0], zr[1], len(st.Codes))
	m := figure.DefaultMarkers()

	f := gridFigure(opts, g, st, func(x, y int) (string, int, bool) {
		c, ok := res.Get(grid.Key{X: x, Y: y})
		if !ok {
			return m.Empty2D, st.EmptyBin, false
		}
		return m.Bin, st.RangeCode(lims, c.Value, zr[0], zr[1]), true
	})

	f.Colorbar(lims, extendDown, extendUp)

	f.LeftPad(leftPad)
	f.Caption(caption{
		format:     f.Format,
		xLabel:     t.xName,
		xTransform: opts.XTransform,
		xBinWidth:  &dx,
		xRange:     &xr,
		yLabel:     t.yName,
		yTransform: opts.YTransform,
		yBinWidth:  &dy,
		yRange:     &yr,
		zLabel:     t.zName + " [binned average]",
		zTransform: opts.ZTransform,
		zRange:     &zr,
		filters:    t.filterNames,
		modeName:   "average",
	}.lines())
	return f, t, nil
}

// renderPost2D draws the post2d figure: a normalized weighted 2D
// histogram colored by credible region, with the region legend, max
// bin and mean point.
func renderPost2D(ctx context.Context, opts Options) (*figure.Figure, *table, error) {
	t, err := loadTable(ctx, opts, columnSet{y: true, weights: true})
	if err != nil {
		return nil, nil, err
	}

	xr := pickRange(opts.XRange, t.x)
	yr := pickRange(opts.YRange, t.y)
	g := grid.NewGrid(grid.NewAxis(xr[0], xr[1], opts.XBins), grid.NewAxis(yr[0], yr[1], opts.YBins))
	dx, dy := g.X.BinWidth(), g.Y.BinWidth()

	meanX := stat.Mean(t.x, t.w)
	meanY := stat.Mean(t.y, t.w)

	h := grid.NewHistogram2D(g, t.x, t.y, t.w)
	h.Normalize()

	// The outermost region always closes at 100% so every occupied bin
	// gets a rank.
	regions := append(append([]float64(nil), opts.Regions...), 100)
	ranks := grid.RegionRank(h, regions)

	// Sequential colormaps read outside-in here, so the default
	// direction is flipped.
	st := style2D(opts, len(regions), !opts.Reverse, false)
	m := figure.DefaultMarkers()

	f := gridFigure(opts, g, st, func(x, y int) (string, int, bool) {
		if h.Counts[x][y] == 0 {
			return m.Empty2D, st.EmptyBin, false
		}
		return m.Bin, st.Codes[ranks[x][y]], true
	})
	format := f.Format

	entries := make([]figure.LegendEntry, 0, len(opts.Regions))
	for i, cr := range regions[:len(regions)-1] {
		entries = append(entries, figure.LegendEntry{
			Marker:      strings.TrimSpace(m.Bin),
			MarkerColor: st.Codes[i],
			Text:        figure.Percent(cr) + "% CR",
			TextColor:   st.FG,
		})
	}
	f.Blank()
	f.Legend(entries, "  ", " ")

	best := maxValueCell(h.Cells())
	f.Blank()
	textLegend(f, st, fmt.Sprintf("posterior max bin:  x: (%s, %s)  y: (%s, %s)  bin height: %s",
		format.Point(g.X.Edges[best.Key.X]), format.Point(g.X.Edges[best.Key.X+1]),
		format.Point(g.Y.Edges[best.Key.Y]), format.Point(g.Y.Edges[best.Key.Y+1]),
		format.Point(best.Value)))
	f.Blank()
	textLegend(f, st, fmt.Sprintf("posterior mean point:  (x,y) = (%s, %s)",
		format.Point(meanX), format.Point(meanY)))

	f.LeftPad(leftPad)
	f.Caption(caption{
		format:           format,
		xLabel:           t.xName,
		xTransform:       opts.XTransform,
		xBinWidth:        &dx,
		xRange:           &xr,
		yLabel:           t.yName,
		yTransform:       opts.YTransform,
		yBinWidth:        &dy,
		yRange:           &yr,
		weightsLabel:     t.wName,
		weightsTransform: opts.WeightsTransform,
		filters:          t.filterNames,
		modeName:         "posterior",
	}.lines())
	return f, t, nil
}

// renderPLR2D draws the plr2d figure: the profile likelihood ratio
// maximized per bin, bucketed at the confidence level cuts of the
// chi-squared distribution with two degrees of freedom.
func renderPLR2D(ctx context.Context, opts Options) (*figure.Figure, *table, error) {
	t, err := loadTable(ctx, opts, columnSet{y: true, z: true})
	if err != nil {
		return nil, nil, err
	}

	capped := opts.Cap != nil
	if capped {
		for i, v := range t.z {
			t.z[i] = math.Min(v, *opts.Cap)
		}
	}
	ratio := likelihoodRatio(t.z)

	xr := pickRange(opts.XRange, t.x)
	yr := pickRange(opts.YRange, t.y)
	g := grid.NewGrid(grid.NewAxis(xr[0], xr[1], opts.XBins), grid.NewAxis(yr[0], yr[1], opts.YBins))
	dx, dy := g.X.BinWidth(), g.Y.BinWidth()

	res := grid.ReduceMax(g, t.x, t.y, ratio, ratio)

	// One bucket below the weakest cut, one per confidence level.
	lims := []float64{0}
	for i := len(opts.Regions) - 1; i >= 0; i-- {
		lims = append(lims, grid.RatioCut(opts.Regions[i], 2))
	}

	st := style2D(opts, len(lims), opts.Reverse, true)
	m := figure.DefaultMarkers()
	highlight := !capped && !opts.NoStar

	f := gridFigure(opts, g, st, func(x, y int) (string, int, bool) {
		c, ok := res.Get(grid.Key{X: x, Y: y})
		if !ok {
			return m.Empty2D, st.EmptyBin, false
		}
		if c.Value == 1 {
			if highlight {
				return m.Star, st.MaxBin, true
			}
			return m.Bin, st.Last(), true
		}
		return m.Bin, st.Code(lims, c.Value), true
	})

	var entries []figure.LegendEntry
	if highlight {
		entries = append(entries, figure.LegendEntry{
			Marker:      strings.TrimSpace(m.Star),
			MarkerColor: st.MaxBin,
			Text:        "best-fit",
			TextColor:   st.FG,
		})
	}
	for i, cl := range opts.Regions {
		entries = append(entries, figure.LegendEntry{
			Marker:      strings.TrimSpace(m.Bin),
			MarkerColor: st.Codes[len(st.Codes)-1-i],
			Text:        figure.Percent(cl) + "% CL",
			TextColor:   st.FG,
		})
	}
	f.Blank()
	f.Legend(entries, "  ", " ")

	f.LeftPad(leftPad)

	c := caption{
		format:     f.Format,
		xLabel:     t.xName,
		xTransform: opts.XTransform,
		xBinWidth:  &dx,
		xRange:     &xr,
		yLabel:     t.yName,
		yTransform: opts.YTransform,
		yBinWidth:  &dy,
		yRange:     &yr,
		sortLabel:  "likelihood ratio, L(x,y)/L_max",
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

// renderChiSq2D draws the chisq2d figure: delta chi-square minimized
// per bin, with the best-fit bin starred and a colorbar.
func renderChiSq2D(ctx context.Context, opts Options) (*figure.Figure, *table, error) {
	t, err := loadTable(ctx, opts, columnSet{y: true, z: true})
	if err != nil {
		return nil, nil, err
	}

	best := dataRange(t.z)[0]
	delta := make([]float64, len(t.z))
	for i, v := range t.z {
		delta[i] = v - best
	}

	xr := pickRange(opts.XRange, t.x)
	yr := pickRange(opts.YRange, t.y)
	zr := pickRange(opts.ZRange, delta)
	g := grid.NewGrid(grid.NewAxis(xr[0], xr[1], opts.XBins), grid.NewAxis(yr[0], yr[1], opts.YBins))
	dx, dy := g.X.BinWidth(), g.Y.BinWidth()

	extendDown, extendUp := grid.Cap(delta, zr[0], zr[1])
	res := grid.ReduceMin(g, t.x, t.y, delta, delta)

	st := style2D(opts, opts.Colors, opts.Reverse, true)
	lims := style.Thresholds(zr[0], zr[1], len(st.Codes))
	m := figure.DefaultMarkers()
	highlight := !opts.NoStar

	f := gridFigure(opts, g, st, func(x, y int) (string, int, bool) {
		c, ok := res.Get(grid.Key{X: x, Y: y})
		if !ok {
			return m.Empty2D, st.EmptyBin, false
		}
		if highlight && style.Norm(c.Value, zr[0], zr[1]) == 0 {
			return m.Star, st.MaxBin, true
		}
		return m.Bin, st.Code(lims, c.Value), true
	})

	f.Blank()
	var entries []figure.LegendEntry
	if highlight {
		entries = append(entries, figure.LegendEntry{
			Marker:      strings.TrimSpace(m.Star),
			MarkerColor: st.MaxBin,
			Text:        "best-fit (min chi^2)",
			TextColor:   st.FG,
		})
	}
	f.Legend(entries, "  ", " ")
	f.Colorbar(lims, extendDown, extendUp)

	f.LeftPad(leftPad)

	sortLabel := "delta chi-square, chi^2 - chi^2_min"
	f.Caption(caption{
		format:     f.Format,
		xLabel:     t.xName,
		xTransform: opts.XTransform,
		xBinWidth:  &dx,
		xRange:     &xr,
		yLabel:     t.yName,
		yTransform: opts.YTransform,
		yBinWidth:  &dy,
		yRange:     &yr,
		sortLabel:  sortLabel,
		sortType:   "min",
		filters:    t.filterNames,
		modeName:   sortLabel,
	}.lines())
	return f, t, nil
}

// combiners joins the x and y chain values of graph2d into one z.
var combiners = map[string]func(a, b float64) float64{
	"add": func(a, b float64) float64 { return a + b },
	"mul": func(a, b float64) float64 { return a * b },
	"min": math.Min,
	"max": math.Max,
}

// renderGraph2D draws the graph2d figure: two transform chains
// evaluated at the bin centers and combined into a surface.
func renderGraph2D(_ context.Context, opts Options) (*figure.Figure, *table, error) {
	fx, err := transform.Parse(opts.Function)
	if err != nil {
		return nil, nil, err
	}
	fy, err := transform.Parse(opts.FunctionY)
	if err != nil {
		return nil, nil, err
	}
	combine := combiners[opts.Combine]

	xr, yr := [2]float64{0, 1}, [2]float64{0, 1}
	if opts.XRange != nil {
		xr = *opts.XRange
	}
	if opts.YRange != nil {
		yr = *opts.YRange
	}
	g := grid.NewGrid(grid.NewAxis(xr[0], xr[1], opts.XBins), grid.NewAxis(yr[0], yr[1], opts.YBins))

	var xs, ys, zs []float64
	for _, cx := range g.X.Centers {
		vx := fx.At(cx)
		for _, cy := range g.Y.Centers {
			xs = append(xs, cx)
			ys = append(ys, cy)
			zs = append(zs, combine(vx, fy.At(cy)))
		}
	}

	zr := pickRange(opts.ZRange, zs)
	extendDown, extendUp := grid.Cap(zs, zr[0], zr[1])
	res := grid.ReduceMean(g, xs, ys, zs)

	st := style2D(opts, opts.Colors, opts.Reverse, false)
	lims := style.Thresholds(zr[0], zr[1], len(st.Codes))
	m := figure.DefaultMarkers()

	f := gridFigure(opts, g, st, func(x, y int) (string, int, bool) {
		c, ok := res.Get(grid.Key{X: x, Y: y})
		if !ok {
			return m.Empty2D, st.EmptyBin, false
		}
		return m.Bin, st.RangeCode(lims, c.Value, zr[0], zr[1]), true
	})

	f.Colorbar(lims, extendDown, extendUp)

	f.LeftPad(leftPad)
	f.Caption(caption{
		format: f.Format,
		xLabel: "x",
		xRange: &xr,
		yLabel: "y",
		yRange: &yr,
		zLabel: fmt.Sprintf("f(x,y) = %s(%s, %s)",
			opts.Combine, chainLabel(opts.Function, "x"), chainLabel(opts.FunctionY, "y")),
		zRange:   &zr,
		modeName: "graph",
	}.lines())
	return f, nil, nil
}
