package draw

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

const (
	escClear      = "\033[H\033[2J"
	escHideCursor = "\033[?25l"
	escShowCursor = "\033[?25h"
)

// maxChunkSize is the largest single write sent to the terminal. It stays
// under a typical MTU so SSH sessions get smooth frames.
const maxChunkSize = 1400

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// StdoutSize reads the size of the terminal attached to os.Stdout.
func StdoutSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Area is the part of the terminal the game draws in: the terminal clamped
// to a maximum size and centred in it.
type Area struct {
	Width, Height        int
	OffsetCol, OffsetRow int
}

// FitArea clamps a terminal of termWidth x termHeight cells to at most
// maxWidth x maxHeight and centres the result.
func FitArea(termWidth, termHeight, maxWidth, maxHeight int) Area {
	a := Area{Width: min(termWidth, maxWidth), Height: min(termHeight, maxHeight)}
	a.OffsetCol = (termWidth - a.Width) / 2
	a.OffsetRow = (termHeight - a.Height) / 2
	return a
}

// Enter prepares the terminal for a session: cursor hidden, screen cleared.
func Enter(w io.Writer) error {
	_, err := io.WriteString(w, escHideCursor+escClear)
	return err
}

// Leave clears the screen and restores the cursor.
func Leave(w io.Writer) error {
	_, err := io.WriteString(w, escClear+escShowCursor)
	return err
}

// Frame collects everything one frame sends to the terminal: a pending clear,
// the canvas cells and the text overlay. Flush sends it in chunks of at most
// maxChunkSize bytes. Text coordinates are 1-based inside the Area.
type Frame struct {
	out  io.Writer
	buf  []byte
	area Area
}

// NewFrame creates a frame writer for w drawing inside a.
func NewFrame(w io.Writer, a Area) *Frame {
	return &Frame{out: w, buf: make([]byte, 0, 8192), area: a}
}

// Area returns the current drawing area.
func (f *Frame) Area() Area { return f.area }

// SetArea moves the drawing area. When it changed, a full clear is queued so
// nothing from the old layout stays on screen, and true is returned.
func (f *Frame) SetArea(a Area) bool {
	if a == f.area {
		return false
	}
	f.area = a
	f.Clear()
	return true
}

// Clear queues a full terminal clear.
func (f *Frame) Clear() {
	f.buf = append(f.buf, escClear...)
}

// Write appends raw output, so a Frame can be handed to Canvas.Render.
func (f *Frame) Write(p []byte) (int, error) {
	f.buf = append(f.buf, p...)
	return len(p), nil
}

// Text writes s with its first cell at (col, row) of the area.
func (f *Frame) Text(col, row int, s string) {
	f.buf = append(f.buf, "\033["...)
	f.buf = strconv.AppendInt(f.buf, int64(row+f.area.OffsetRow), 10)
	f.buf = append(f.buf, ';')
	f.buf = strconv.AppendInt(f.buf, int64(col+f.area.OffsetCol), 10)
	f.buf = append(f.buf, 'H')
	f.buf = append(f.buf, s...)
}

// Pending returns the number of bytes waiting for Flush.
func (f *Frame) Pending() int { return len(f.buf) }

// Flush sends the collected frame and empties the buffer.
func (f *Frame) Flush() error {
	err := writeChunked(f.out, f.buf)
	f.buf = f.buf[:0]
	return err
}

var _ io.Writer = (*Frame)(nil)

func writeChunked(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
