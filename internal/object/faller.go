package object

import "github.com/tomz197/katchnrun/internal/physics"

// Faller is a falling entity. Balls are positioned by their center and use
// Radius; every other kind is positioned by its top-left corner and uses W and H.
type Faller struct {
	ID     uint64
	Kind   Kind
	X, Y   float64
	W, H   float64
	Radius float64
	Speed  float64 // world units per frame

	destroyed bool
}

// NewBall creates a round faller centered at (x, y).
func NewBall(kind Kind, x, y, radius, speed float64) *Faller {
	return &Faller{Kind: kind, X: x, Y: y, Radius: radius, W: radius * 2, H: radius * 2, Speed: speed}
}

// NewItem creates a rectangular faller with its top-left corner at (x, y).
func NewItem(kind Kind, x, y, w, h, speed float64) *Faller {
	return &Faller{Kind: kind, X: x, Y: y, W: w, H: h, Speed: speed}
}

// Bounds returns the collision box.
func (f *Faller) Bounds() physics.Rect {
	if f.Kind.IsBall() {
		return physics.BallBounds(f.X, f.Y, f.Radius)
	}
	return physics.Rect{X: f.X, Y: f.Y, W: f.W, H: f.H}
}

// Update moves the faller down by its speed. Returns true once it has left
// the bottom of the screen.
func (f *Faller) Update(ctx UpdateContext) bool {
	f.Y += f.Speed
	return f.Y > ctx.Screen.Height
}

// MarkDestroyed marks the faller for removal.
func (f *Faller) MarkDestroyed() {
	f.destroyed = true
}

// IsDestroyed returns true if the faller is marked for removal.
func (f *Faller) IsDestroyed() bool {
	return f.destroyed
}

var (
	_ Object       = (*Faller)(nil)
	_ Destructible = (*Faller)(nil)
)
