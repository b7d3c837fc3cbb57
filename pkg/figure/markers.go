package figure

// Markers holds the two column cell glyphs used in plots.
type Markers struct {
	Bin     string // filled 2d bin
	Upper   string // series value in the upper half of its bin
	Lower   string // series value in the lower half
	Full    string // full height series cell
	Star    string // highlighted best-fit bin
	Empty1D string
	Empty2D string
}

// DefaultMarkers returns the standard glyph set.
func DefaultMarkers() Markers {
	return Markers{
		Bin:     " ■",
		Upper:   " ▀",
		Lower:   " ▄",
		Full:    " █",
		Star:    " 🟊",
		Empty1D: "  ",
		Empty2D: " □",
	}
}
