package object

import "github.com/tomz197/katchnrun/internal/physics"

// Player is one of the two paddles.
type Player struct {
	Index     int
	X, Y      float64 // top-left corner
	W, H      float64
	Speed     float64 // current speed, world units per frame
	BaseSpeed float64 // speed restored when a timed effect ends

	Score  int // may go negative
	Lives  int
	Caught int // balls caught since the last bonus life

	Direction int // -1 left, 0 idle, +1 right
}

// NewPlayer creates a player with a square paddle of the given size.
func NewPlayer(index int, x, y, size, speed float64, lives int) *Player {
	return &Player{
		Index:     index,
		X:         x,
		Y:         y,
		W:         size,
		H:         size,
		Speed:     speed,
		BaseSpeed: speed,
		Lives:     lives,
	}
}

// Bounds returns the collision box.
func (p *Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Update moves the paddle along its direction and keeps it on screen.
func (p *Player) Update(ctx UpdateContext) bool {
	p.X += p.Speed * float64(p.Direction)
	p.X = physics.Clamp(p.X, 0, ctx.Screen.Width-p.W)
	return false
}

// Damage removes n lives. Returns true if the player has no lives left.
func (p *Player) Damage(n int) bool {
	p.Lives -= n
	return p.Lives <= 0
}

// Catch counts one caught ball and grants a life every `every` catches.
// Returns true when a life was granted.
func (p *Player) Catch(points, every int) bool {
	p.Score += points
	p.Caught++
	if p.Caught >= every {
		p.Lives++
		p.Caught = 0
		return true
	}
	return false
}

// Alive reports whether the player still has lives.
func (p *Player) Alive() bool {
	return p.Lives > 0
}

var _ Object = (*Player)(nil)
