// Package style resolves 256-color terminal styling for figures: the
// base colors of the four terminal variants, the plot palette with its
// resampling rules and the SGR escape painting used by the canvas.
package style

import "fmt"

// Paint wraps text in 256-color SGR escapes setting background and
// foreground, optionally bold. The sequence always resets at the end so
// painted fragments can be concatenated freely.
func Paint(s string, fg, bg int, bold bool) string {
	if bold {
		return fmt.Sprintf("\x1b[48;5;%d;1;38;5;%dm%s\x1b[0m", bg, fg, s)
	}
	return fmt.Sprintf("\x1b[48;5;%d;38;5;%dm%s\x1b[0m", bg, fg, s)
}

// Options selects a resolved color state.
type Options struct {
	WhiteBG   bool
	Grayscale bool
	Reverse   bool
	Colors    int   // resampled palette size
	Colormap  int   // index into Colormaps
	Custom    []int // custom palette, takes precedence over Colormap
}

// State carries every resolved color code a figure needs. Fields are
// plain ints so modes can override single roles before rendering.
type State struct {
	BG       int
	FG       int
	EmptyBin int
	Fill     int
	MaxBin   int
	Graph    int
	Bars     [2]int
	Codes    []int
}

// Resolve derives the full color state for the requested variant. The
// active palette is reversed first when asked and then resampled to the
// requested number of colors.
func Resolve(opts Options) State {
	st := baseFor(opts.WhiteBG, opts.Grayscale)
	st.Codes = Resample(paletteFor(opts), opts.Colors, opts.Reverse)
	return st
}

// baseFor returns the base codes for one of the four terminal variants.
func baseFor(whiteBG, grayscale bool) State {
	switch {
	case !whiteBG && !grayscale:
		return State{BG: 16, FG: 231, EmptyBin: 237, Fill: 237, MaxBin: 231, Graph: 237, Bars: [2]int{4, 12}}
	case !whiteBG && grayscale:
		return State{BG: 16, FG: 231, EmptyBin: 237, Fill: 237, MaxBin: 231, Graph: 237, Bars: [2]int{243, 240}}
	case whiteBG && !grayscale:
		return State{BG: 231, FG: 16, EmptyBin: 252, Fill: 252, MaxBin: 232, Graph: 252, Bars: [2]int{4, 12}}
	default:
		return State{BG: 231, FG: 16, EmptyBin: 252, Fill: 252, MaxBin: 232, Graph: 252, Bars: [2]int{243, 240}}
	}
}

// paletteFor picks the source palette for the options.
func paletteFor(opts Options) []int {
	if len(opts.Custom) > 0 {
		return opts.Custom
	}
	if opts.Grayscale {
		if opts.WhiteBG {
			return GrayscaleLight
		}
		return GrayscaleDark
	}
	idx := opts.Colormap
	if idx < 0 || idx >= len(Colormaps) {
		idx = 0
	}
	return Colormaps[idx]
}

// First returns the lowest palette entry.
func (s State) First() int {
	return s.Codes[0]
}

// Last returns the highest palette entry.
func (s State) Last() int {
	return s.Codes[len(s.Codes)-1]
}
