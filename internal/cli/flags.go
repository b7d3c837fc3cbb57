package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/binoviz/bino/internal/flagutil"
	"github.com/binoviz/bino/pkg/errors"
	"github.com/binoviz/bino/pkg/pipeline"
	"github.com/binoviz/bino/pkg/style"
)

// figureFlags holds the raw flag values of a plot subcommand before
// they are parsed into pipeline options.
type figureFlags struct {
	bins   string
	xRange string
	yRange string
	zRange string

	xTransform       string
	yTransform       string
	zTransform       string
	sortTransform    string
	weightsTransform string

	slice     string
	delimiter string
	filters   []int
	sort      int
	weights   int

	normalize bool
	regions   []float64
	capValue  float64
	noStar    bool

	colors   int
	colormap string
	reverse  bool
	gray     bool
	whiteBG  bool
	decimals int

	combine string

	watch   float64
	fit     bool
	noCache bool
}

// register wires the shared plot flags onto cmd, seeding defaults from
// the user config. Explicit flags always win over config values.
func (ff *figureFlags) register(cmd *cobra.Command, spec modeSpec, cfg Config) {
	f := cmd.Flags()

	f.StringVar(&ff.bins, "bins", cfg.Bins, "grid size as N or NX,NY (each at least 6)")
	f.StringVar(&ff.xRange, "x-range", "", "x-axis range as MIN,MAX")
	f.StringVar(&ff.yRange, "y-range", "", "y-axis range as MIN,MAX")
	f.StringVar(&ff.slice, "slice", "", "read only rows START,STOP[,STEP]")
	f.StringVar(&ff.delimiter, "delimiter", cfg.Delimiter, "column delimiter for text files")
	f.IntSliceVarP(&ff.filters, "filter", "f", nil, "indices of boolean datasets used for filtering")
	f.IntVarP(&ff.decimals, "decimals", "d", cfg.Decimals, "decimals on axis and legend labels (1-8)")
	f.BoolVarP(&ff.gray, "gray", "g", cfg.Grayscale, "grayscale plot")
	f.BoolVar(&ff.whiteBG, "white-bg", cfg.WhiteBG, "white background")
	f.StringVar(&ff.xTransform, "x-transform", "", "transform chain for the x dataset, e.g. log10|abs")
	f.Float64Var(&ff.watch, "watch", 0, "re-render every N seconds until interrupted")
	f.BoolVar(&ff.fit, "fit", false, "size the grid from the terminal dimensions")
	f.BoolVar(&ff.noCache, "no-cache", false, "bypass the local figure cache")

	if spec.hasY() {
		f.StringVar(&ff.yTransform, "y-transform", "", "transform chain for the y dataset")
	} else if spec.mode == pipeline.ModeHist1D || spec.mode == pipeline.ModePost1D {
		f.StringVar(&ff.yTransform, "y-transform", "", "transform chain for the bin contents")
	}
	switch {
	case spec.hasZ():
		f.StringVar(&ff.zRange, "z-range", "", "z-axis range as MIN,MAX")
		f.StringVar(&ff.zTransform, "z-transform", "", "transform chain for the z dataset")
	case spec.mode == pipeline.ModeHist2D:
		f.StringVar(&ff.zRange, "z-range", "", "bin height range as MIN,MAX")
		f.StringVar(&ff.zTransform, "z-transform", "", "transform chain for the bin contents")
	case spec.mode == pipeline.ModeGraph2D:
		f.StringVar(&ff.zRange, "z-range", "", "surface range as MIN,MAX")
	}
	if spec.sort {
		f.IntVarP(&ff.sort, "sort", "s", 0, "index of the sort dataset (defaults to the value dataset)")
		f.StringVar(&ff.sortTransform, "sort-transform", "", "transform chain for the sort dataset")
	}
	if spec.weights {
		f.IntVarP(&ff.weights, "weights", "w", 0, "index of the weights dataset")
		f.StringVar(&ff.weightsTransform, "weights-transform", "", "transform chain for the weights dataset")
	}
	if spec.normalize {
		f.BoolVarP(&ff.normalize, "normalize", "n", false, "normalize the histogram to integrate to unity")
	}
	switch spec.regions {
	case "cr":
		f.Float64SliceVar(&ff.regions, "cr", nil, "credible region percentages, each in (0,100]")
	case "cl":
		f.Float64SliceVar(&ff.regions, "cl", nil, "confidence level percentages, each in (0,100]")
	}
	if spec.capFlag {
		f.Float64Var(&ff.capValue, "cap", 0, "cap the log-likelihood at this value")
	}
	if spec.noStar {
		f.BoolVar(&ff.noStar, "no-star", false, "do not highlight the best-fit bin")
	}
	if spec.colored() {
		f.IntVar(&ff.colors, "colors", cfg.Colors, "number of color tiers (1-10)")
		f.StringVarP(&ff.colormap, "colormap", "m", cfg.Colormap, "colormap index or config palette name")
		f.BoolVar(&ff.reverse, "reverse", false, "reverse the colormap")
	}
	if spec.mode == pipeline.ModeGraph2D {
		f.StringVar(&ff.combine, "combine", "", "combiner for the two chains: add, mul, min or max")
	}
}

// toOptions parses the flags and positional arguments into validated
// pipeline options.
func (ff *figureFlags) toOptions(c *CLI, cmd *cobra.Command, spec modeSpec, args []string) (pipeline.Options, error) {
	var opts pipeline.Options
	opts.Mode = spec.mode
	opts.Delimiter = ff.delimiter

	pos := args
	if spec.file {
		opts.Source = args[0]
		pos = args[1:]
	}

	if spec.graph() {
		opts.Function = pos[0]
		if len(pos) > 1 {
			opts.FunctionY = pos[1]
		}
		opts.Combine = ff.combine
	} else {
		indices := make([]int, len(pos))
		for i, a := range pos {
			n, err := strconv.Atoi(a)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidFlag,
					"%s must be a dataset index, got %q", spec.positional[i], a)
			}
			indices[i] = n
		}
		opts.X = indices[0]
		if len(indices) > 1 {
			opts.Y = indices[1]
		}
		if len(indices) > 2 {
			opts.Z = indices[2]
		}
	}

	var err error
	if ff.bins != "" {
		if opts.XBins, opts.YBins, err = flagutil.ParseBins(ff.bins); err != nil {
			return opts, err
		}
	}
	for _, r := range []struct {
		name string
		raw  string
		dst  **[2]float64
	}{
		{"x-range", ff.xRange, &opts.XRange},
		{"y-range", ff.yRange, &opts.YRange},
		{"z-range", ff.zRange, &opts.ZRange},
	} {
		if r.raw == "" {
			continue
		}
		if *r.dst, err = flagutil.ParseRange(r.name, r.raw); err != nil {
			return opts, err
		}
	}
	if ff.slice != "" {
		if opts.Slice, err = flagutil.ParseSlice(ff.slice); err != nil {
			return opts, err
		}
	}

	opts.Filters = ff.filters
	opts.XTransform = ff.xTransform
	opts.YTransform = ff.yTransform
	opts.ZTransform = ff.zTransform
	opts.SortTransform = ff.sortTransform
	opts.WeightsTransform = ff.weightsTransform
	opts.Normalize = ff.normalize
	opts.Regions = ff.regions
	opts.NoStar = ff.noStar
	opts.Colors = ff.colors
	opts.Grayscale = ff.gray
	opts.WhiteBG = ff.whiteBG
	opts.Reverse = ff.reverse
	opts.Decimals = ff.decimals

	if cmd.Flags().Changed("sort") {
		s := ff.sort
		opts.Sort = &s
	}
	if cmd.Flags().Changed("weights") {
		w := ff.weights
		opts.Weights = &w
	}
	if spec.capFlag && cmd.Flags().Changed("cap") {
		v := ff.capValue
		opts.Cap = &v
	}

	if ff.colormap != "" {
		idx, palette, err := c.resolveColormap(ff.colormap)
		if err != nil {
			return opts, err
		}
		opts.Colormap = idx
		opts.Palette = palette
	}

	if ff.fit {
		applyFit(&opts)
	}

	return opts, opts.ValidateAndSetDefaults()
}

// resolveColormap maps a --colormap value to a built-in index or a
// config palette.
func (c *CLI) resolveColormap(name string) (int, []int, error) {
	if idx, err := strconv.Atoi(name); err == nil {
		if idx < 0 || idx >= len(style.Colormaps) {
			return 0, nil, errors.New(errors.ErrCodeInvalidColors,
				"colormap index must be in [0, %d], got %d", len(style.Colormaps)-1, idx)
		}
		return idx, nil, nil
	}
	if p, ok := c.Config.Palettes[name]; ok {
		return 0, p.Codes, nil
	}
	return 0, nil, errors.New(errors.ErrCodeInvalidColors, "unknown colormap %q", name)
}
