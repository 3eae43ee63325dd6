package object

// Star is a decorative background particle. It drifts down and wraps to the
// top; it never collides.
type Star struct {
	X, Y  float64
	Speed float64
}

// NewStar creates a star at the given position.
func NewStar(x, y, speed float64) *Star {
	return &Star{X: x, Y: y, Speed: speed}
}

// Update drifts the star and wraps it back to the top of the screen.
func (s *Star) Update(ctx UpdateContext) bool {
	s.Y += s.Speed
	if s.Y > ctx.Screen.Height {
		s.Y = 0
	}
	return false
}

var _ Object = (*Star)(nil)
