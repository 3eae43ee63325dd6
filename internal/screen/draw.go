package screen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/katchnrun/internal/game"
	"github.com/tomz197/katchnrun/internal/object"
)

// Debug font cell size in pixels.
const (
	glyphW = 6
	glyphH = 16
)

var (
	colorSky    = color.RGBA{R: 8, G: 12, B: 32, A: 255}
	colorStar   = color.RGBA{R: 200, G: 200, B: 220, A: 255}
	colorRed    = color.RGBA{R: 220, G: 30, B: 40, A: 255}
	colorLime   = color.RGBA{R: 60, G: 220, B: 60, A: 255}
	colorCoal   = color.RGBA{R: 50, G: 50, B: 50, A: 255}
	colorWhite  = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	colorGrinch = color.RGBA{R: 20, G: 140, B: 40, A: 255}
	colorBrown  = color.RGBA{R: 120, G: 70, B: 30, A: 255}
	colorPurple = color.RGBA{R: 150, G: 60, B: 200, A: 255}
	colorPanel  = color.RGBA{R: 0, G: 0, B: 0, A: 180}

	playerColors = [2]color.RGBA{
		{R: 60, G: 220, B: 230, A: 255},
		{R: 240, G: 220, B: 40, A: 255},
	}
)

// Draw renders the current frame.
func (s *Screen) Draw(dst *ebiten.Image) {
	dst.Fill(colorSky)
	if !s.accepted {
		s.drawGate(dst)
		return
	}

	s.drawWorld(dst)
	switch s.game.Mode() {
	case game.ModeMenu:
		s.drawMenu(dst)
	case game.ModeCountdown:
		s.drawCountdown(dst)
	case game.ModePlaying:
		s.drawHUD(dst)
	case game.ModeGameOver:
		s.drawHUD(dst)
		s.drawGameOver(dst)
	}
	if s.paused {
		s.panel(dst, s.height/2-glyphH, 3)
		s.centered(dst, s.height/2, "PAUSED")
	}
}

func (s *Screen) drawWorld(dst *ebiten.Image) {
	for _, st := range s.game.Stars() {
		vector.DrawFilledRect(dst, float32(st.X), float32(st.Y), 2, 2, colorStar, false)
	}
	for kind := range object.KindCount {
		for _, f := range s.game.Fallers(kind) {
			s.drawFaller(dst, f)
		}
	}
	for _, p := range s.game.Players() {
		vector.DrawFilledRect(dst, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), paddleColor(p), false)
	}
}

// paddleColor is the player's colour, tinted while a speed effect is active.
func paddleColor(p *object.Player) color.RGBA {
	switch {
	case p.Speed < p.BaseSpeed:
		return colorPurple
	case p.Speed > p.BaseSpeed:
		return colorWhite
	}
	return playerColors[p.Index%len(playerColors)]
}

// fallerBounds is the top-left corner and size of f. Balls are stored by centre.
func fallerBounds(f *object.Faller) (x, y, w, h float32) {
	if f.Kind.IsBall() {
		return float32(f.X - f.Radius), float32(f.Y - f.Radius), float32(2 * f.Radius), float32(2 * f.Radius)
	}
	return float32(f.X), float32(f.Y), float32(f.W), float32(f.H)
}

func (s *Screen) drawFaller(dst *ebiten.Image, f *object.Faller) {
	x, y, w, h := fallerBounds(f)
	if img := s.sprites.Image(f.Kind); img != nil {
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
		op.GeoM.Translate(float64(x), float64(y))
		dst.DrawImage(img, op)
		return
	}

	switch f.Kind {
	case object.RedBall:
		vector.DrawFilledCircle(dst, float32(f.X), float32(f.Y), float32(f.Radius), colorRed, true)
	case object.GreenBall:
		vector.DrawFilledCircle(dst, float32(f.X), float32(f.Y), float32(f.Radius), colorLime, true)
	case object.Coal:
		vector.DrawFilledRect(dst, x, y, w, h, colorCoal, false)
	case object.CandyCane:
		vector.DrawFilledRect(dst, x, y, w, h, colorWhite, false)
		vector.StrokeLine(dst, x, y+h, x+w, y, w/4, colorRed, true)
	case object.Grinch:
		vector.DrawFilledRect(dst, x, y, w, h, colorGrinch, false)
		vector.DrawFilledCircle(dst, x+w/3, y+h/3, w/10, colorRed, true)
		vector.DrawFilledCircle(dst, x+2*w/3, y+h/3, w/10, colorRed, true)
	case object.Goblin:
		vector.DrawFilledRect(dst, x, y+h/2, w, h/2, colorBrown, false)
		vector.DrawFilledRect(dst, x+w/4, y, w/2, h/2, colorPurple, false)
	}
}

// centered prints text centred horizontally with its top at y.
func (s *Screen) centered(dst *ebiten.Image, y int, text string) {
	ebitenutil.DebugPrintAt(dst, text, (s.width-len(text)*glyphW)/2, y)
}

// panel darkens a full-width band of lines text rows starting at y.
func (s *Screen) panel(dst *ebiten.Image, y, lines int) {
	vector.DrawFilledRect(dst, 0, float32(y), float32(s.width), float32(lines*glyphH), colorPanel, false)
}

func (s *Screen) drawGate(dst *ebiten.Image) {
	y := s.height/2 - 2*glyphH
	vector.StrokeRect(dst, float32(s.width/2-120), float32(y), 240, float32(4*glyphH), 2, colorWhite, false)
	s.centered(dst, y+glyphH+glyphH/2, "Continue to level? (y/n)")
}

func (s *Screen) drawMenu(dst *ebiten.Image) {
	lines := []string{
		"KATCH N' RUN",
		"",
		"Player 1: Left / Right arrows",
		"Player 2: A / D",
		"",
		"Red ball +100 (a life every 50)   Green ball +100 (a life every 35)",
		"Candy cane +2000 and a life   Coal -2 lives   Grinch -5000 and -3 lives",
		"Goblin: anything can happen",
		"",
		"Press ENTER to start, Q to quit",
	}
	y := s.height/2 - len(lines)*glyphH/2
	s.panel(dst, y-glyphH, len(lines)+2)
	for i, l := range lines {
		s.centered(dst, y+i*glyphH, l)
	}
}

func (s *Screen) drawCountdown(dst *ebiten.Image) {
	y := s.height/2 - glyphH
	s.panel(dst, y-glyphH/2, 3)
	s.centered(dst, y, fmt.Sprint(s.game.Countdown()))
	s.centered(dst, y+glyphH, "Get ready!")
}

func (s *Screen) drawHUD(dst *ebiten.Image) {
	players := s.game.Players()
	for i, p := range players {
		text := fmt.Sprintf("P%d  Score: %d  Lives: %d", i+1, p.Score, p.Lives)
		x := 8
		if i == 1 {
			x = s.width - 8 - len(text)*glyphW
		}
		vector.DrawFilledRect(dst, float32(x-4), 4, float32(len(text)*glyphW+8), glyphH, playerColors[i%len(playerColors)], false)
		ebitenutil.DebugPrintAt(dst, text, x, 4)
	}
	s.centered(dst, 4, fmt.Sprintf("Time: %d", s.game.TimeLeft()))
}

func (s *Screen) drawGameOver(dst *ebiten.Image) {
	out, ok := s.game.Outcome()
	if !ok {
		return
	}
	lines := []string{"GAME OVER", out.Headline(), ""}
	for i := range out.Scores {
		lines = append(lines, fmt.Sprintf("Player %d  %s  score %d  lives %d", i+1, out.Result(i), out.Scores[i], out.Lives[i]))
	}
	lines = append(lines, "", fmt.Sprintf("Leaving in %d seconds...", int(s.game.ResultTimeLeft().Seconds()+0.5)))

	y := s.height/2 - len(lines)*glyphH/2
	s.panel(dst, y-glyphH, len(lines)+2)
	for i, l := range lines {
		s.centered(dst, y+i*glyphH, l)
	}
}
