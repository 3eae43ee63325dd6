package loop

import (
	"github.com/tomz197/katchnrun/internal/draw"
	"github.com/tomz197/katchnrun/internal/game"
	"github.com/tomz197/katchnrun/internal/object"
)

// drawWorld paints the stars, the falling entities and the paddles.
func drawWorld(cv *draw.Canvas, g *game.Game) {
	for _, s := range g.Stars() {
		cv.SetFloat(s.X, s.Y, draw.ColorGrey)
	}
	for kind := range object.KindCount {
		for _, f := range g.Fallers(kind) {
			drawFaller(cv, f)
		}
	}
	for _, p := range g.Players() {
		cv.FillRect(p.X, p.Y, p.W, p.H, paddleColor(p))
	}
}

// paddleColor is the player's colour, tinted while a speed effect is active.
func paddleColor(p *object.Player) draw.Color {
	switch {
	case p.Speed < p.BaseSpeed:
		return draw.ColorPurple
	case p.Speed > p.BaseSpeed:
		return draw.ColorWhite
	}
	return playerColors[p.Index%len(playerColors)]
}

func drawFaller(cv *draw.Canvas, f *object.Faller) {
	switch f.Kind {
	case object.RedBall:
		cv.FillCircle(f.X, f.Y, f.Radius, draw.ColorRed)
	case object.GreenBall:
		cv.FillCircle(f.X, f.Y, f.Radius, draw.ColorLime)
	case object.Coal:
		cv.FillRect(f.X, f.Y, f.W, f.H, draw.ColorCoal)
	case object.CandyCane:
		cv.FillRect(f.X, f.Y, f.W, f.H, draw.ColorWhite)
		cv.DrawLine(draw.Point{X: f.X, Y: f.Y + f.H}, draw.Point{X: f.X + f.W, Y: f.Y}, draw.ColorRed)
	case object.Grinch:
		pts := cv.BorrowPoints(4)
		pts[0] = draw.Point{X: f.X + f.W/2, Y: f.Y}
		pts[1] = draw.Point{X: f.X + f.W, Y: f.Y + f.H/2}
		pts[2] = draw.Point{X: f.X + f.W/2, Y: f.Y + f.H}
		pts[3] = draw.Point{X: f.X, Y: f.Y + f.H/2}
		cv.DrawPolygon(pts, draw.ColorGreen, true)
	case object.Goblin:
		cv.FillRect(f.X, f.Y+f.H/2, f.W, f.H/2, draw.ColorBrown)
		pts := cv.BorrowPoints(3)
		pts[0] = draw.Point{X: f.X + f.W/2, Y: f.Y}
		pts[1] = draw.Point{X: f.X + f.W, Y: f.Y + f.H/2}
		pts[2] = draw.Point{X: f.X, Y: f.Y + f.H/2}
		cv.DrawPolygon(pts, draw.ColorPurple, true)
	}
}
