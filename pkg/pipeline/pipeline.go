// Package pipeline turns plot options into rendered terminal figures.
//
// The pipeline is the single entry point shared by the CLI, the watch
// loop and the HTTP server: options go in, styled figure rows come out.
// A render runs in three stages:
//
//  1. Read: load the selected dataset columns, apply row slices,
//     filters and transform chains.
//  2. Bin: place the records on the grid and aggregate each bin under
//     the mode's policy (counts, extremum, mean, region rank, ...).
//  3. Compose: paint the grid, axes, legends, colorbars, interval bars
//     and the caption block into terminal rows.
//
// Create a Runner and render:
//
//	runner := pipeline.NewRunner(cache, time.Hour, logger)
//	opts := pipeline.Options{
//	    Mode:   pipeline.ModeHist2D,
//	    Source: "chain.csv",
//	    X:      0,
//	    Y:      1,
//	}
//	result, err := runner.Render(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, line := range result.Lines {
//	    fmt.Println(line)
//	}
package pipeline

import (
	"time"

	"github.com/binoviz/bino/pkg/dataset"
	"github.com/binoviz/bino/pkg/errors"
	"github.com/binoviz/bino/pkg/transform"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultBins is the number of bins per axis.
	DefaultBins = 40

	// DefaultColors is the number of resampled palette colors.
	DefaultColors = 10

	// DefaultDecimals is the number of decimals in tick and legend labels.
	DefaultDecimals = 2
)

// Default thresholds for the region modes, as percentages.
var (
	// DefaultCredibleRegions are the posterior credible regions.
	DefaultCredibleRegions = []float64{68.3, 95.45}

	// DefaultConfidenceLevels1D are the plr1d confidence levels.
	DefaultConfidenceLevels1D = []float64{68.3, 95.45}

	// DefaultConfidenceLevels2D are the plr2d confidence levels.
	DefaultConfidenceLevels2D = []float64{68.3, 95.45, 99.73}

	// DefaultChiSqRange is the chisq2d delta chi-square display range.
	DefaultChiSqRange = [2]float64{0, 11.83}
)

// Mode selects the aggregation policy and figure layout of a render.
type Mode string

// The plot modes.
const (
	ModeHist1D  Mode = "hist1d"
	ModeHist2D  Mode = "hist2d"
	ModeMax1D   Mode = "max1d"
	ModeMin1D   Mode = "min1d"
	ModeMax2D   Mode = "max2d"
	ModeMin2D   Mode = "min2d"
	ModeAvg1D   Mode = "avg1d"
	ModeAvg2D   Mode = "avg2d"
	ModePost1D  Mode = "post1d"
	ModePost2D  Mode = "post2d"
	ModePLR1D   Mode = "plr1d"
	ModePLR2D   Mode = "plr2d"
	ModeChiSq2D Mode = "chisq2d"
	ModeGraph1D Mode = "graph1d"
	ModeGraph2D Mode = "graph2d"
)

// ValidModes is the set of supported plot modes.
var ValidModes = map[Mode]bool{
	ModeHist1D:  true,
	ModeHist2D:  true,
	ModeMax1D:   true,
	ModeMin1D:   true,
	ModeMax2D:   true,
	ModeMin2D:   true,
	ModeAvg1D:   true,
	ModeAvg2D:   true,
	ModePost1D:  true,
	ModePost2D:  true,
	ModePLR1D:   true,
	ModePLR2D:   true,
	ModeChiSq2D: true,
	ModeGraph1D: true,
	ModeGraph2D: true,
}

// ValidCombiners is the set of graph2d chain combiners.
var ValidCombiners = map[string]bool{
	"add": true,
	"mul": true,
	"min": true,
	"max": true,
}

// =============================================================================
// Options - Render Configuration
// =============================================================================

// Options contains all configuration for one figure render. The struct
// serializes to JSON with a canonical field order, which the server uses
// for cache keys.
type Options struct {
	Mode Mode `json:"mode"`

	// Input selection. Column indices refer to the dataset order of the
	// store. Sort and Weights are optional columns, Filters are boolean
	// columns ANDed together.
	Source    string        `json:"source,omitempty"`
	Delimiter string        `json:"delimiter,omitempty"`
	X         int           `json:"x"`
	Y         int           `json:"y,omitempty"`
	Z         int           `json:"z,omitempty"`
	Sort      *int          `json:"sort,omitempty"`
	Weights   *int          `json:"weights,omitempty"`
	Filters   []int         `json:"filters,omitempty"`
	Slice     dataset.Slice `json:"slice,omitempty"`

	// Grid geometry. Unset ranges are taken from the data.
	XBins  int          `json:"x_bins,omitempty"`
	YBins  int          `json:"y_bins,omitempty"`
	XRange *[2]float64  `json:"x_range,omitempty"`
	YRange *[2]float64  `json:"y_range,omitempty"`
	ZRange *[2]float64  `json:"z_range,omitempty"`

	// Transform chains, applied per column before binning.
	XTransform       string `json:"x_transform,omitempty"`
	YTransform       string `json:"y_transform,omitempty"`
	ZTransform       string `json:"z_transform,omitempty"`
	SortTransform    string `json:"sort_transform,omitempty"`
	WeightsTransform string `json:"weights_transform,omitempty"`

	// Mode extras. Regions holds the credible region or confidence
	// level percentages, Cap caps the log-likelihood column in the plr
	// modes. Function and FunctionY are the graph mode chains, Combine
	// joins them in graph2d.
	Normalize bool      `json:"normalize,omitempty"`
	Regions   []float64 `json:"regions,omitempty"`
	Cap       *float64  `json:"cap,omitempty"`
	Function  string    `json:"function,omitempty"`
	FunctionY string    `json:"function_y,omitempty"`
	Combine   string    `json:"combine,omitempty"`

	// Styling.
	Colors    int   `json:"colors,omitempty"`
	Colormap  int   `json:"colormap,omitempty"`
	Palette   []int `json:"palette,omitempty"`
	Grayscale bool  `json:"grayscale,omitempty"`
	WhiteBG   bool  `json:"white_bg,omitempty"`
	Reverse   bool  `json:"reverse,omitempty"`
	NoStar    bool  `json:"no_star,omitempty"`
	Decimals  int   `json:"decimals,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the output of one render.
type Result struct {
	// Lines holds the styled terminal rows, all of equal visible width.
	Lines []string

	// Width is the visible width shared by every line.
	Width int

	// Height is the number of lines.
	Height int

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the figure came from the cache.
	CacheHit bool
}

// Stats contains render statistics.
type Stats struct {
	// Records is the number of data records left after filtering.
	Records int

	ReadTime   time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults. The
// method is idempotent; calling it twice has the same effect as once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if !ValidModes[o.Mode] {
		return errors.New(errors.ErrCodeUnsupported, "unknown plot mode %q", o.Mode)
	}

	if o.XBins == 0 {
		o.XBins = DefaultBins
	}
	if o.YBins == 0 {
		o.YBins = DefaultBins
	}
	if err := errors.ValidateBins(o.XBins); err != nil {
		return err
	}
	if err := errors.ValidateBins(o.YBins); err != nil {
		return err
	}

	if o.Colors == 0 {
		o.Colors = DefaultColors
	}
	if err := errors.ValidateColors(o.Colors); err != nil {
		return err
	}
	if o.Decimals == 0 {
		o.Decimals = DefaultDecimals
	}
	if err := errors.ValidateDecimals(o.Decimals); err != nil {
		return err
	}

	for name, r := range map[string]*[2]float64{
		"x-range": o.XRange,
		"y-range": o.YRange,
		"z-range": o.ZRange,
	} {
		if r == nil {
			continue
		}
		if err := errors.ValidateRange(name, r[0], r[1]); err != nil {
			return err
		}
	}

	if err := errors.ValidateSlice(o.Slice.Start, o.Slice.Stop, o.Slice.Step); err != nil {
		return err
	}

	for _, expr := range []string{
		o.XTransform, o.YTransform, o.ZTransform,
		o.SortTransform, o.WeightsTransform,
		o.Function, o.FunctionY,
	} {
		if _, err := transform.Parse(expr); err != nil {
			return err
		}
	}

	switch o.Mode {
	case ModePost1D, ModePost2D:
		if len(o.Regions) == 0 {
			o.Regions = append([]float64(nil), DefaultCredibleRegions...)
		}
	case ModePLR1D:
		if len(o.Regions) == 0 {
			o.Regions = append([]float64(nil), DefaultConfidenceLevels1D...)
		}
	case ModePLR2D:
		if len(o.Regions) == 0 {
			o.Regions = append([]float64(nil), DefaultConfidenceLevels2D...)
		}
	case ModeChiSq2D:
		if o.ZRange == nil {
			r := DefaultChiSqRange
			o.ZRange = &r
		}
	case ModeGraph2D:
		if o.Combine == "" {
			o.Combine = "add"
		}
		if !ValidCombiners[o.Combine] {
			return errors.New(errors.ErrCodeInvalidFlag,
				"unknown combiner %q (must be one of: add, mul, min, max)", o.Combine)
		}
	}
	if len(o.Regions) > 0 {
		sorted, err := errors.SortedThresholds("regions", o.Regions)
		if err != nil {
			return err
		}
		o.Regions = sorted
	}

	o.validated = true
	return nil
}

// OneDim reports whether the mode plots a single data axis.
func (m Mode) OneDim() bool {
	switch m {
	case ModeHist1D, ModeMax1D, ModeMin1D, ModeAvg1D, ModePost1D, ModePLR1D, ModeGraph1D:
		return true
	}
	return false
}
