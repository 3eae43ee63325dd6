// Package draw renders to ANSI terminals using half-block characters.
package draw

import "strconv"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// Color is an index into the 256-colour ANSI palette. The zero value means
// "nothing drawn" and renders with the terminal's default colours, so pure
// black is spelled ColorBlack (16) rather than 0.
type Color uint8

// Palette used by the game.
const (
	ColorNone       Color = 0
	ColorBlack      Color = 16
	ColorGreen      Color = 34
	ColorBrightCyan Color = 51
	ColorLime       Color = 46
	ColorPurple     Color = 129
	ColorBrown      Color = 130
	ColorRed        Color = 196
	ColorPink       Color = 211
	ColorYellow     Color = 226
	ColorWhite      Color = 231
	ColorCoal       Color = 238
	ColorGrey       Color = 245
)

// Text attributes.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
)

// FG returns the escape sequence that sets c as the foreground colour.
func (c Color) FG() string {
	if c == ColorNone {
		return "\033[39m"
	}
	return "\033[38;5;" + strconv.Itoa(int(c)) + "m"
}

// BG returns the escape sequence that sets c as the background colour.
func (c Color) BG() string {
	if c == ColorNone {
		return "\033[49m"
	}
	return "\033[48;5;" + strconv.Itoa(int(c)) + "m"
}

// Paint wraps s in c and a reset.
func Paint(c Color, s string) string {
	return c.FG() + s + Reset
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
