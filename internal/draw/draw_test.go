package draw

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestFillRect(t *testing.T) {
	c := NewCanvas(10, 5) // 10x10 pixels, 1:1
	c.FillRect(2, 3, 3, 2, ColorRed)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := ColorNone
			if x >= 2 && x < 5 && y >= 3 && y < 5 {
				want = ColorRed
			}
			if got := c.Pixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestTinyShapesStayVisible(t *testing.T) {
	c := NewScaledCanvas(10, 5, 1000, 1000)
	c.FillRect(500, 500, 1, 1, ColorWhite)
	if c.Pixel(5, 5) != ColorWhite {
		t.Fatal("sub-pixel rect not drawn")
	}
	c.FillCircle(105, 105, 2, ColorLime)
	if c.Pixel(1, 1) != ColorLime {
		t.Fatal("sub-pixel circle not drawn")
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillCircle(10, 10, 3, ColorGreen)
	if c.Pixel(10, 10) != ColorGreen {
		t.Error("center not filled")
	}
	if c.Pixel(6, 6) != ColorNone {
		t.Error("corner outside the circle filled")
	}
	if c.Pixel(12, 10) != ColorGreen {
		t.Error("point inside the radius not filled")
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	tests := []struct {
		name        string
		top, bottom Color
		want        string
	}{
		{"upper", ColorRed, ColorNone, ColorRed.FG() + ColorNone.BG() + "▀"},
		{"lower", ColorNone, ColorRed, ColorRed.FG() + ColorNone.BG() + "▄"},
		{"full", ColorRed, ColorRed, ColorRed.FG() + ColorNone.BG() + "█"},
		{"two colours", ColorRed, ColorWhite, ColorRed.FG() + ColorWhite.BG() + "▀"},
		{"empty", ColorNone, ColorNone, ColorNone.FG() + ColorNone.BG() + " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(1, 1)
			c.setPixel(0, 0, tt.top)
			c.setPixel(0, 1, tt.bottom)
			var buf bytes.Buffer
			c.Render(&buf)
			want := "\033[1;1H" + tt.want + Reset
			if buf.String() != want {
				t.Fatalf("Render = %q, want %q", buf.String(), want)
			}
		})
	}
}

func TestRenderOnlyChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillRect(0, 0, 1, 1, ColorRed)

	var buf bytes.Buffer
	c.Render(&buf)
	if n := strings.Count(buf.String(), "H"); n != 8 {
		t.Fatalf("first render wrote %d cells, want 8", n)
	}

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", buf.String())
	}

	c.Clear()
	c.FillRect(3, 2, 1, 1, ColorWhite)
	buf.Reset()
	c.Render(&buf)
	if n := strings.Count(buf.String(), "H"); n != 2 {
		t.Fatalf("changed frame wrote %d cells, want 2", n)
	}
	if !strings.Contains(buf.String(), "\033[1;1H") || !strings.Contains(buf.String(), "\033[2;4H") {
		t.Fatalf("wrong cells written: %q", buf.String())
	}

	c.MarkTextDirty(2, 1, 2)
	buf.Reset()
	c.Render(&buf)
	if n := strings.Count(buf.String(), "H"); n != 2 {
		t.Fatalf("dirty text cells: wrote %d, want 2", n)
	}

	c.ForceRedraw()
	buf.Reset()
	c.Render(&buf)
	if n := strings.Count(buf.String(), "H"); n != 8 {
		t.Fatalf("forced redraw wrote %d cells, want 8", n)
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewCanvas(1, 1)
	c.SetOffset(3, 2)
	c.FillRect(0, 0, 1, 2, ColorRed)
	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.HasPrefix(buf.String(), "\033[3;4H") {
		t.Fatalf("Render = %q, want cursor at row 3 col 4", buf.String())
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewCanvas(3, 2)
	var buf bytes.Buffer
	c.RenderBorder(&buf)
	if buf.Len() != 0 {
		t.Fatalf("border without offset: %q", buf.String())
	}

	c.SetOffset(1, 1)
	c.RenderBorder(&buf)
	out := buf.String()
	if !strings.Contains(out, "┌───┐") || !strings.Contains(out, "└───┘") {
		t.Fatalf("missing corners: %q", out)
	}
	if strings.Count(out, "│") != 4 {
		t.Fatalf("side bars = %d, want 4", strings.Count(out, "│"))
	}
}

func TestLogicalToTerminal(t *testing.T) {
	c := NewScaledCanvas(128, 36, 1280, 720)
	col, row := c.LogicalToTerminal(640, 360)
	if col != 65 || row != 19 {
		t.Fatalf("LogicalToTerminal = (%d,%d), want (65,19)", col, row)
	}
}

func TestFitArea(t *testing.T) {
	tests := []struct {
		tw, th int
		want   Area
	}{
		{80, 24, Area{Width: 80, Height: 24}},
		{300, 100, Area{Width: 200, Height: 60, OffsetCol: 50, OffsetRow: 20}},
		{250, 30, Area{Width: 200, Height: 30, OffsetCol: 25}},
	}
	for _, tt := range tests {
		if got := FitArea(tt.tw, tt.th, 200, 60); got != tt.want {
			t.Errorf("FitArea(%d,%d) = %+v, want %+v", tt.tw, tt.th, got, tt.want)
		}
	}
}

func TestFrameText(t *testing.T) {
	var out bytes.Buffer
	f := NewFrame(&out, Area{Width: 80, Height: 24, OffsetCol: 2, OffsetRow: 1})
	f.Text(1, 1, "hi")
	if out.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := f.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\033[2;3Hhi" {
		t.Fatalf("output = %q", out.String())
	}
	if f.Pending() != 0 {
		t.Fatalf("pending = %d after Flush", f.Pending())
	}
}

func TestFrameSetAreaClearsOnChange(t *testing.T) {
	a := Area{Width: 80, Height: 24}
	f := NewFrame(io.Discard, a)
	if f.SetArea(a) || f.Pending() != 0 {
		t.Fatal("unchanged area queued output")
	}
	b := Area{Width: 100, Height: 30}
	if !f.SetArea(b) {
		t.Fatal("changed area not reported")
	}
	if f.Area() != b || f.Pending() != len(escClear) {
		t.Fatalf("area = %+v, pending = %d", f.Area(), f.Pending())
	}
}

// writeSizes records the length of every write.
type writeSizes []int

func (w *writeSizes) Write(p []byte) (int, error) {
	*w = append(*w, len(p))
	return len(p), nil
}

func TestFrameFlushChunks(t *testing.T) {
	var sizes writeSizes
	f := NewFrame(&sizes, Area{})
	f.Text(1, 1, strings.Repeat("x", 2*maxChunkSize))
	total := f.Pending()
	if err := f.Flush(); err != nil {
		t.Fatal(err)
	}
	sum := 0
	for _, n := range sizes {
		if n > maxChunkSize {
			t.Fatalf("write of %d bytes exceeds the chunk size", n)
		}
		sum += n
	}
	if len(sizes) != 3 || sum != total {
		t.Fatalf("writes = %v, want 3 chunks totalling %d", sizes, total)
	}
}

func TestEnterLeave(t *testing.T) {
	var out bytes.Buffer
	if err := Enter(&out); err != nil {
		t.Fatal(err)
	}
	if err := Leave(&out); err != nil {
		t.Fatal(err)
	}
	want := escHideCursor + escClear + escClear + escShowCursor
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestPaint(t *testing.T) {
	if got := Paint(ColorRed, "x"); got != "\033[38;5;196mx\033[0m" {
		t.Fatalf("Paint = %q", got)
	}
}

func TestBanner(t *testing.T) {
	lines := Banner("1!")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	// "1" is 3 cells, gap 1 column, "!" is 1 cell.
	want := []string{
		"  ██   ██",
		"████   ██",
		"  ██   ██",
		"  ██     ",
		"██████ ██",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if got := Banner("a?"); got[0] != Banner("A")[0] {
		t.Errorf("unknown runes not skipped: %q", got[0])
	}
}
