package loop

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tomz197/katchnrun/internal/draw"
	"github.com/tomz197/katchnrun/internal/game"
)

// playerColors are the paddle and HUD colours of player 1 and 2.
var playerColors = [2]draw.Color{draw.ColorBrightCyan, draw.ColorYellow}

// drawFrame draws the current frame.
func (c *Client) drawFrame(now time.Time) error {
	// On phase, mode or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	v := view{phase: c.phase, mode: c.game.Mode(), inactive: c.isInactive}
	if v != c.prevView {
		c.out.Clear()
		c.canvas.ForceRedraw()
		c.prevView = v
	}

	c.canvas.Clear()
	if c.phase != PhaseGate {
		drawWorld(c.canvas, c.game)
	}
	c.canvas.Render(c.out)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.out)

	c.drawUI(now)

	return c.out.Flush()
}

// drawUI draws the text overlay for the current phase.
func (c *Client) drawUI(now time.Time) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.phase == PhaseShutdown {
		c.drawShutdownScreen(centerY)
		return
	}

	if c.isInactive {
		c.drawInactivityScreen(centerY, now)
		return
	}

	if c.phase == PhaseGate {
		c.drawGate(centerY)
		return
	}

	switch c.game.Mode() {
	case game.ModeMenu:
		c.drawMenu(centerY, now)
	case game.ModeCountdown:
		c.drawCountdown(centerY)
	case game.ModePlaying:
		c.drawHUD(termWidth, centerX)
	case game.ModeGameOver:
		c.drawHUD(termWidth, centerX)
		c.drawGameOver(centerY)
	}
}

// writeText writes s at the 1-based canvas position and marks the cells it
// covers so the canvas repaints them next frame. width is the visible width
// of s; 0 means its rune count.
func (c *Client) writeText(col, row int, s string, width int) {
	if width == 0 {
		width = utf8.RuneCountInString(s)
	}
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	col = max(col, 1)
	c.out.Text(col, row, s)
	c.canvas.MarkTextDirty(col, row, width)
}

// centered writes s centered on row.
func (c *Client) centered(row int, s string) {
	width := utf8.RuneCountInString(s)
	c.writeText(c.canvas.TerminalWidth()/2-width/2+1, row, s, width)
}

// centeredColor writes s centered on row in colour col.
func (c *Client) centeredColor(row int, col draw.Color, s string) {
	width := utf8.RuneCountInString(s)
	c.writeText(c.canvas.TerminalWidth()/2-width/2+1, row, draw.Paint(col, s), width)
}

// drawBanner writes the block-font banner with its top row at row.
func (c *Client) drawBanner(row int, col draw.Color, text string) int {
	lines := draw.Banner(text)
	for i, line := range lines {
		c.centeredColor(row+i, col, line)
	}
	return len(lines)
}

func blinkOn(now time.Time) bool {
	return now.UnixMilli()/blinkPeriod.Milliseconds()%2 == 0
}

// drawGate draws the confirmation prompt shown before the menu.
func (c *Client) drawGate(centerY int) {
	c.centered(centerY-2, "┌────────────────────────────┐")
	c.centered(centerY-1, "│                            │")
	c.centered(centerY, "│  Continue to level? (y/n)  │")
	c.centered(centerY+1, "│                            │")
	c.centered(centerY+2, "└────────────────────────────┘")
}

// drawMenu draws the title screen.
func (c *Client) drawMenu(centerY int, now time.Time) {
	row := centerY - 9
	row += c.drawBanner(row, draw.ColorRed, "KATCH N' RUN")
	row++
	c.centeredColor(row, draw.ColorLime, "~ a Christmas catch for two ~")

	row += 2
	c.centered(row, "Controls")
	controls := []string{
		"Player 1   ← →   move",
		"Player 2   A D   move",
		"ENTER  . . . .  start",
		"Q  . . . . . . . quit",
	}
	for i, line := range controls {
		c.centered(row+1+i, line)
	}
	row += len(controls) + 2

	legend := []struct {
		color draw.Color
		text  string
	}{
		{draw.ColorRed, "● red ball   +100, a life every 50"},
		{draw.ColorLime, "● green ball +100, a life every 35"},
		{draw.ColorWhite, "▮ candy cane +2000 and a life"},
		{draw.ColorGrey, "■ coal       -2 lives"},
		{draw.ColorGreen, "◆ grinch     -5000 and -3 lives"},
		{draw.ColorPurple, "▲ goblin     anything can happen"},
	}
	for i, l := range legend {
		c.centeredColor(row+i, l.color, l.text)
	}
	row += len(legend) + 1

	if blinkOn(now) {
		c.centered(row, ">>  Press ENTER to Start  <<")
	} else {
		c.centered(row, "                            ")
	}
}

// drawCountdown draws the big countdown number.
func (c *Client) drawCountdown(centerY int) {
	c.drawBanner(centerY-3, draw.ColorWhite, fmt.Sprint(c.game.Countdown()))
	c.centered(centerY+3, "Get ready!")
}

// drawHUD draws both players' stats and the match clock on the top row.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD(termWidth, centerX int) {
	players := c.game.Players()
	if len(players) < 2 {
		return
	}
	for i, p := range players[:2] {
		text := fmt.Sprintf("P%d  Score: %-7d Lives: %-3d", i+1, p.Score, p.Lives)
		col := 2
		if i == 1 {
			col = termWidth - len(text)
		}
		c.writeText(col, 1, draw.Paint(playerColors[i], text), len(text))
	}
	clock := fmt.Sprintf("Time: %-3d", c.game.TimeLeft())
	c.writeText(centerX-len(clock)/2+1, 1, clock, 0)
}

// drawGameOver draws the result box.
func (c *Client) drawGameOver(centerY int) {
	out, ok := c.game.Outcome()
	if !ok {
		return
	}
	row := centerY - 6
	row += c.drawBanner(row, draw.ColorRed, "GAME OVER")
	row++
	c.centered(row, out.Headline())
	row += 2
	for i := range out.Scores {
		line := fmt.Sprintf("Player %d  %-6s  score %-7d lives %d", i+1, out.Result(i), out.Scores[i], out.Lives[i])
		c.centeredColor(row+i, playerColors[i%len(playerColors)], line)
	}
	row += len(out.Scores) + 1
	left := c.game.ResultTimeLeft().Round(time.Second)
	c.centered(row, fmt.Sprintf("Leaving in %2d seconds...", int(left/time.Second)))
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerY int, now time.Time) {
	c.centered(centerY-2, "INACTIVITY WARNING")
	remaining := max(InactivityDisconnectUser-now.Sub(c.lastInput), 0)
	c.centered(centerY, fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(remaining.Seconds()),
	))
	c.centered(centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerY int) {
	c.centered(centerY-3, "SERVER SHUTTING DOWN")
	c.centered(centerY-1, "The server is restarting for maintenance.")
	c.centered(centerY, "Please reconnect in a moment.")
	remaining := int(c.shutdownTimer.Seconds()) + 1
	c.centered(centerY+2, fmt.Sprintf("Disconnecting in %2d seconds...", remaining))
	c.centered(centerY+4, "Press Q to disconnect now")
}
