package figure

import (
	"strings"
	"testing"

	"github.com/binoviz/bino/pkg/canvas"
	"github.com/binoviz/bino/pkg/grid"
	"github.com/binoviz/bino/pkg/style"
)

func testState() style.State {
	return style.State{
		BG:       16,
		FG:       231,
		EmptyBin: 237,
		Fill:     237,
		MaxBin:   231,
		Graph:    237,
		Bars:     [2]int{4, 12},
		Codes:    []int{53, 56, 62, 26},
	}
}

func testFigure(nx, ny int, gridLines bool) *Figure {
	g := grid.NewGrid(grid.NewAxis(0, float64(nx), nx), grid.NewAxis(0, float64(ny), ny))
	return New(g, testState(), DefaultMarkers(), Format{Decimals: 2}, gridLines)
}

func emptyCell(x, y int) (string, int, bool) {
	return "  ", 237, false
}

func TestPlotLayout(t *testing.T) {
	f := testFigure(4, 2, false)
	f.Plot(func(x, y int) (string, int, bool) {
		if x == 1 && y == 0 {
			return " ■", 53, true
		}
		return emptyCell(x, y)
	})

	// The x label row is the widest here, so every earlier row picks up
	// trailing padding.
	want := []string{
		strings.Repeat(" ", 32),
		"         _ 2.00e+00   " + strings.Repeat(" ", 10),
		"         │            " + strings.Repeat(" ", 10),
		"    ■    │\u0332 0.00e+00   " + strings.Repeat(" ", 10),
		" ┼─┼─────┼" + strings.Repeat(" ", 22),
		" 0.00e+00 1.00e+00 4.00e+00     ",
	}
	got := f.Plain()
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d:\n got %q\nwant %q", i, got[i], want[i])
		}
	}
	if f.Width() != 32 {
		t.Errorf("expected width 32, got %d", f.Width())
	}
}

func TestPlotGridLines(t *testing.T) {
	f := testFigure(4, 2, true)
	f.Plot(emptyCell)

	got := f.Plain()
	// Top border draws per cell stubs, the trailing underscore closes it.
	if !strings.HasPrefix(got[1], "  _ _ _ __ 2.00e+00   ") {
		t.Errorf("top border: got %q", got[1])
	}
	// Unticked rows keep their empty cells.
	if !strings.HasPrefix(got[2], "         │ ") {
		t.Errorf("unticked row: got %q", got[2])
	}
	// Ticked rows turn empty cells into grid line stubs.
	if !strings.HasPrefix(got[3], "  _ _ _ _│\u0332 0.00e+00   ") {
		t.Errorf("ticked row: got %q", got[3])
	}
}

func TestPlotRowsShareOneWidth(t *testing.T) {
	f := testFigure(12, 5, false)
	f.Plot(emptyCell)

	if f.Height() != 9 {
		t.Fatalf("expected 9 rows, got %d", f.Height())
	}
	// 12 bins at 2 decimals fits the labels exactly under the plot.
	if f.Width() != 38 {
		t.Fatalf("expected width 38, got %d", f.Width())
	}
	for i, line := range f.Plain() {
		if w := canvas.Width(line); w != f.Width() {
			t.Errorf("row %d: width %d, want %d", i, w, f.Width())
		}
	}
}

func TestTickEdges(t *testing.T) {
	cases := []struct {
		bins int
		want []int
	}{
		{1, []int{0, 1}},
		{2, []int{0, 2}},
		{3, []int{0, 1, 3}},
		{4, []int{0, 1, 4}},
		{40, []int{0, 19, 40}},
		{41, []int{0, 20, 41}},
	}
	for _, c := range cases {
		got := tickEdges(c.bins)
		if len(got) != len(c.want) {
			t.Errorf("tickEdges(%d): got %v, want %v", c.bins, got, c.want)
			continue
		}
		for i := range c.want {
			if got[i] != c.want[i] {
				t.Errorf("tickEdges(%d): got %v, want %v", c.bins, got, c.want)
				break
			}
		}
	}
}

func TestLegend(t *testing.T) {
	f := testFigure(4, 2, false)
	f.Legend([]LegendEntry{
		{Marker: "🟊", MarkerColor: 231, Text: "best-fit", TextColor: 231},
		{Marker: "■", MarkerColor: 53, Text: "68.3% CL", TextColor: 231},
	}, "  ", " ")
	f.Legend([]LegendEntry{{Text: "note", TextColor: 231}}, "", " ")
	f.Legend([]LegendEntry{{Marker: "|", MarkerColor: 231}}, " ", "")

	got := f.Plain()
	if want := " 🟊 best-fit  ■ 68.3% CL  "; got[0] != want {
		t.Errorf("marker entries: got %q, want %q", got[0], want)
	}
	// Entries without a marker emit only their label.
	if want := " note" + strings.Repeat(" ", 20); got[1] != want {
		t.Errorf("text entry: got %q, want %q", got[1], want)
	}
	// Entries without a label stop after the marker and separator.
	if want := " | " + strings.Repeat(" ", 22); got[2] != want {
		t.Errorf("marker only entry: got %q, want %q", got[2], want)
	}
}

func TestLegendColors(t *testing.T) {
	f := testFigure(4, 2, false)
	f.Legend([]LegendEntry{
		{Marker: "■", MarkerColor: 53, Text: "68.3% CR", TextColor: 231},
	}, "", " ")

	line := f.Lines()[0]
	if !strings.Contains(line, style.Paint("■", 53, 16, true)) {
		t.Errorf("marker not painted in its own color: %q", line)
	}
	if !strings.Contains(line, style.Paint(" 68.3% CR", 231, 16, true)) {
		t.Errorf("label not painted in the text color: %q", line)
	}
}

func TestColorbar(t *testing.T) {
	f := testFigure(4, 2, false)
	f.Colorbar([]float64{0, 0.25, 0.5, 0.75, 1}, false, false)

	got := f.Plain()
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	swatch := "  |■■■■■■ |■■■■■■ |■■■■■■ |■■■■■■ | " + strings.Repeat(" ", 6)
	if got[1] != swatch {
		t.Errorf("swatch row:\n got %q\nwant %q", got[1], swatch)
	}
	// Labels sit under every second separator, digits under the bar.
	values := "  0.00e+00        5.00e-01        1.00e+00"
	if got[2] != values {
		t.Errorf("value row:\n got %q\nwant %q", got[2], values)
	}

	lines := f.Lines()
	if !strings.Contains(lines[1], style.Paint("■■■■■■", 53, 16, true)) {
		t.Errorf("first block not painted with the first code: %q", lines[1])
	}
	if !strings.Contains(lines[1], style.Paint("■■■■■■", 26, 16, true)) {
		t.Errorf("last block not painted with the last code: %q", lines[1])
	}
}

func TestColorbarExtendArrows(t *testing.T) {
	f := testFigure(4, 2, false)
	f.Colorbar([]float64{0, 0.25, 0.5, 0.75, 1}, true, true)

	swatch := f.Plain()[1]
	want := "  <■■■■■■ |■■■■■■ |■■■■■■ |■■■■■■ > " + strings.Repeat(" ", 6)
	if swatch != want {
		t.Errorf("swatch row:\n got %q\nwant %q", swatch, want)
	}
}

func TestBarLine(t *testing.T) {
	cases := []struct {
		name   string
		ranges []grid.Range
		bins   int
		want   string
	}{
		{"inner range", []grid.Range{{Begin: 2, End: 5}}, 8, "     ├─────┤ "},
		{"from low edge", []grid.Range{{Begin: 0, End: 4}}, 8, " ╶───────┤ "},
		{"to high edge", []grid.Range{{Begin: 1, End: 3}, {Begin: 5, End: 8}}, 8, "   ├───┤   ├─────╴ "},
		{"full span", []grid.Range{{Begin: 0, End: 8}}, 8, " ╶───────────────╴ "},
	}
	for _, c := range cases {
		if got := barLine(c.ranges, c.bins); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestBars(t *testing.T) {
	f := testFigure(8, 2, false)
	f.Bars([]BarSpec{{
		Ranges: []grid.Range{{Begin: 2, End: 5}},
		Label:  "68.3% CR",
		Color:  4,
	}})

	if got, want := f.Plain()[0], "     ├─────┤ 68.3% CR"; got != want {
		t.Errorf("bar row: got %q, want %q", got, want)
	}
	if got, want := f.Lines()[0], style.Paint("     ├─────┤ 68.3% CR", 4, 16, true); got != want {
		t.Errorf("bar row not painted in the bar color: %q", got)
	}
}

func TestCaptionRegularWeight(t *testing.T) {
	f := testFigure(4, 2, false)
	f.Caption([]string{"   first", "   second line"})

	got := f.Plain()
	if want := "   first  " + strings.Repeat(" ", 6); got[0] != want {
		t.Errorf("caption row: got %q, want %q", got[0], want)
	}
	// Caption rows render without the bold attribute.
	if got, want := f.Lines()[1], style.Paint("   second line  ", 231, 16, false); got != want {
		t.Errorf("caption weight: got %q, want %q", got, want)
	}
}

func TestLeftPad(t *testing.T) {
	f := testFigure(4, 2, false)
	f.Blank()
	f.Legend([]LegendEntry{{Text: "note", TextColor: 231}}, "", "")
	f.LeftPad("  ")

	if f.Width() != 7 {
		t.Fatalf("expected width 7, got %d", f.Width())
	}
	for i, line := range f.Plain() {
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("row %d not padded: %q", i, line)
		}
	}
}

func TestFormat(t *testing.T) {
	f := Format{Decimals: 2}
	if got := f.Tick(0); got != " 0.00e+00" {
		t.Errorf("Tick(0): got %q", got)
	}
	if got := f.Tick(-1.5); got != "-1.50e+00" {
		t.Errorf("Tick(-1.5): got %q", got)
	}
	if got := f.TickWidth(); got != 9 {
		t.Errorf("TickWidth: got %d", got)
	}
	if got := (Format{Decimals: 1}).TickWidth(); got != 8 {
		t.Errorf("TickWidth at 1 decimal: got %d", got)
	}
	if got := f.Point(0.5); got != "5.00e-01" {
		t.Errorf("Point(0.5): got %q", got)
	}
	if got := Percent(95.45); got != "95.45" {
		t.Errorf("Percent(95.45): got %q", got)
	}
	if got := Percent(100); got != "100" {
		t.Errorf("Percent(100): got %q", got)
	}
}
