package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/binoviz/bino/pkg/figure"
	"github.com/binoviz/bino/pkg/pipeline"
)

// modeSpec describes one plot subcommand: its positional arguments and
// which optional flags apply.
type modeSpec struct {
	mode       pipeline.Mode
	short      string
	positional []string // argument names after FILE (or chain names for graph modes)
	file       bool
	sort       bool
	weights    bool
	normalize  bool
	regions    string // "", "cr" or "cl"
	capFlag    bool
	noStar     bool
}

func (s modeSpec) hasY() bool { return contains(s.positional, "Y") }
func (s modeSpec) hasZ() bool {
	return contains(s.positional, "Z") || contains(s.positional, "L2") || contains(s.positional, "CHI2")
}
func (s modeSpec) graph() bool { return !s.file }
func (s modeSpec) oneDim() bool {
	return s.mode.OneDim()
}

// colored reports whether the figure is a colormapped 2D grid.
func (s modeSpec) colored() bool { return !s.oneDim() }

func (s modeSpec) use() string {
	out := string(s.mode)
	if s.file {
		out += " FILE"
	}
	for _, p := range s.positional {
		out += " " + p
	}
	return out
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}

var modeSpecs = []modeSpec{
	{mode: pipeline.ModeHist1D, short: "1D histogram of a dataset",
		positional: []string{"X"}, file: true, weights: true, normalize: true, regions: "cr"},
	{mode: pipeline.ModeHist2D, short: "2D histogram of two datasets",
		positional: []string{"X", "Y"}, file: true, weights: true, normalize: true},
	{mode: pipeline.ModeMax1D, short: "Per-bin y value of the sort maximum",
		positional: []string{"X", "Y"}, file: true, sort: true},
	{mode: pipeline.ModeMin1D, short: "Per-bin y value of the sort minimum",
		positional: []string{"X", "Y"}, file: true, sort: true},
	{mode: pipeline.ModeMax2D, short: "Per-bin z value of the sort maximum",
		positional: []string{"X", "Y", "Z"}, file: true, sort: true, noStar: true},
	{mode: pipeline.ModeMin2D, short: "Per-bin z value of the sort minimum",
		positional: []string{"X", "Y", "Z"}, file: true, sort: true, noStar: true},
	{mode: pipeline.ModeAvg1D, short: "Per-bin mean of a y dataset",
		positional: []string{"X", "Y"}, file: true},
	{mode: pipeline.ModeAvg2D, short: "Per-bin mean of a z dataset",
		positional: []string{"X", "Y", "Z"}, file: true},
	{mode: pipeline.ModePost1D, short: "1D posterior from weighted samples",
		positional: []string{"X"}, file: true, weights: true, regions: "cr"},
	{mode: pipeline.ModePost2D, short: "2D posterior credible regions from weighted samples",
		positional: []string{"X", "Y"}, file: true, weights: true, regions: "cr"},
	{mode: pipeline.ModePLR1D, short: "1D profile likelihood ratio from log-likelihoods",
		positional: []string{"X", "L"}, file: true, regions: "cl", capFlag: true},
	{mode: pipeline.ModePLR2D, short: "2D profile likelihood ratio confidence regions",
		positional: []string{"X", "Y", "L2"}, file: true, regions: "cl", capFlag: true, noStar: true},
	{mode: pipeline.ModeChiSq2D, short: "2D delta chi-square map",
		positional: []string{"X", "Y", "CHI2"}, file: true, noStar: true},
	{mode: pipeline.ModeGraph1D, short: "Graph of a transform chain",
		positional: []string{"FN"}},
	{mode: pipeline.ModeGraph2D, short: "Surface of two combined transform chains",
		positional: []string{"FNX", "FNY"}},
}

// modeCommand builds the cobra command of one plot mode.
func (c *CLI) modeCommand(spec modeSpec) *cobra.Command {
	ff := &figureFlags{}
	nargs := len(spec.positional)
	if spec.file {
		nargs++
	}

	cmd := &cobra.Command{
		Use:   spec.use(),
		Short: spec.short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := ff.toOptions(c, cmd, spec, args)
			if err != nil {
				return err
			}
			if ff.watch > 0 {
				return c.runWatch(cmd.Context(), opts, ff)
			}
			return c.renderOnce(cmd, opts, ff)
		},
	}
	ff.register(cmd, spec, c.Config)
	return cmd
}

// renderOnce renders a figure and prints its rows to stdout. A spinner
// runs on stderr during interactive reads.
func (c *CLI) renderOnce(cmd *cobra.Command, opts pipeline.Options, ff *figureFlags) error {
	ctx := cmd.Context()
	runner := c.newRunner(ff.noCache)

	var spinner *Spinner
	if opts.Source != "" && opts.Source != "-" && term.IsTerminal(os.Stderr.Fd()) {
		spinner = newSpinner(ctx, "rendering "+string(opts.Mode))
		spinner.Start()
	}
	res, err := runner.Render(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, line := range res.Lines {
		fmt.Fprintln(out, line)
	}
	return nil
}

// applyFit sizes the grid from the terminal dimensions. The figure
// needs room for the tick labels left of the plot and the colorbar,
// legends and caption below it.
func applyFit(opts *pipeline.Options) {
	w, h, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		return
	}
	decimals := opts.Decimals
	if decimals == 0 {
		decimals = pipeline.DefaultDecimals
	}
	tickW := figure.Format{Decimals: decimals}.TickWidth()

	xBins := (w - tickW - 8) / 2
	yBins := h - 14
	opts.XBins = clampBins(xBins)
	opts.YBins = clampBins(yBins)
}

func clampBins(n int) int {
	if n < 6 {
		return 6
	}
	return n
}

// watchInterval converts the --watch value to a duration, with a
// floor so a tiny value cannot spin the loop.
func watchInterval(seconds float64) time.Duration {
	d := time.Duration(seconds * float64(time.Second))
	if d < 100*time.Millisecond {
		d = 100 * time.Millisecond
	}
	return d
}
