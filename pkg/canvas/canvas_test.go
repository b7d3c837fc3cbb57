package canvas

import (
	"strings"
	"testing"
)

func TestWidth(t *testing.T) {
	if got := Width("abc"); got != 3 {
		t.Errorf("Width(abc): got %d", got)
	}
	// Combining marks overlay the previous rune.
	if got := Width("│̲"); got != 1 {
		t.Errorf("Width of underlined border: got %d, want 1", got)
	}
	if got := Width(""); got != 0 {
		t.Errorf("Width of empty: got %d", got)
	}
}

func TestInsertPadsNarrowRow(t *testing.T) {
	c := New(231, 16)
	c.Append(Segment{Text: "abcd", FG: 231, BG: 16})
	c.Append(Segment{Text: "ab", FG: 231, BG: 16})

	if c.Width() != 4 {
		t.Fatalf("Width: got %d, want 4", c.Width())
	}
	plain := c.Plain()
	if plain[1] != "ab  " {
		t.Errorf("narrow row: got %q", plain[1])
	}
}

func TestInsertGrowsAllRows(t *testing.T) {
	c := New(231, 16)
	c.Append(Segment{Text: "ab", FG: 231, BG: 16})
	c.Append(Segment{Text: "abcdef", FG: 231, BG: 16})

	if c.Width() != 6 {
		t.Fatalf("Width: got %d, want 6", c.Width())
	}
	for i, line := range c.Plain() {
		if Width(line) != 6 {
			t.Errorf("row %d: width %d, want 6 (%q)", i, Width(line), line)
		}
	}
}

func TestInsertAtTop(t *testing.T) {
	c := New(231, 16)
	c.Append(Segment{Text: "bottom", FG: 231, BG: 16})
	c.Insert(0, Segment{Text: "top", FG: 231, BG: 16})

	plain := c.Plain()
	if !strings.HasPrefix(plain[0], "top") {
		t.Errorf("first row: got %q", plain[0])
	}
	if !strings.HasPrefix(plain[1], "bottom") {
		t.Errorf("second row: got %q", plain[1])
	}
}

func TestInsertOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out of range insert")
		}
	}()
	c := New(231, 16)
	c.Insert(1, Segment{Text: "x"})
}

func TestBlankRow(t *testing.T) {
	c := New(231, 16)
	c.Append(Segment{Text: "abcd", FG: 231, BG: 16})
	c.Append()

	plain := c.Plain()
	if plain[1] != "    " {
		t.Errorf("blank row should pad to width: got %q", plain[1])
	}
}

func TestLeftPad(t *testing.T) {
	c := New(231, 16)
	c.Append(Segment{Text: "ab", FG: 231, BG: 16})
	c.Append(Segment{Text: "cd", FG: 231, BG: 16})
	c.LeftPad("  ")

	if c.Width() != 4 {
		t.Fatalf("Width after pad: got %d, want 4", c.Width())
	}
	for i, line := range c.Plain() {
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("row %d: got %q", i, line)
		}
	}
}

func TestMerge(t *testing.T) {
	a := New(231, 16)
	a.Append(Segment{Text: "ab", FG: 231, BG: 16})

	b := New(231, 16)
	b.Append(Segment{Text: "abcdef", FG: 231, BG: 16})
	b.Append(Segment{Text: "x", FG: 231, BG: 16})

	a.Merge(b)
	if a.Width() != 6 {
		t.Fatalf("Width after merge: got %d, want 6", a.Width())
	}
	if a.Height() != 3 {
		t.Fatalf("Height after merge: got %d, want 3", a.Height())
	}
	for i, line := range a.Plain() {
		if Width(line) != 6 {
			t.Errorf("row %d: width %d (%q)", i, Width(line), line)
		}
	}
}

func TestRenderPaintsSegments(t *testing.T) {
	c := New(231, 16)
	c.Append(
		Segment{Text: " ■", FG: 42, BG: 16, Bold: true},
		Segment{Text: "x", FG: 231, BG: 16},
	)

	line := c.Render()[0]
	if !strings.Contains(line, "\x1b[48;5;16;1;38;5;42m ■\x1b[0m") {
		t.Errorf("styled cell missing: %q", line)
	}
	if !strings.Contains(line, "\x1b[48;5;16;38;5;231mx\x1b[0m") {
		t.Errorf("plain segment missing: %q", line)
	}
}

func TestRowsShareOneWidth(t *testing.T) {
	c := New(231, 16)
	c.Append(Segment{Text: "a"})
	c.Append(Segment{Text: "abc"})
	c.Insert(0, Segment{Text: "ab"})
	c.Append(Segment{Text: "abcdefgh"})
	c.LeftPad(" ")

	want := c.Width()
	for i, line := range c.Plain() {
		if Width(line) != want {
			t.Errorf("row %d: width %d, want %d", i, Width(line), want)
		}
	}
}
