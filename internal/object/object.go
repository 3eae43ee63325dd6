// Package object defines the entities that live in the play area.
package object

// Kind identifies a type of falling entity. The declaration order is also the
// order in which kinds are resolved against the players each frame.
type Kind int

const (
	RedBall Kind = iota
	GreenBall
	Coal
	CandyCane
	Grinch
	Goblin

	KindCount // number of kinds, not a kind
)

var kindNames = [KindCount]string{
	RedBall:   "red ball",
	GreenBall: "green ball",
	Coal:      "coal",
	CandyCane: "candy cane",
	Grinch:    "grinch",
	Goblin:    "goblin",
}

func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return "unknown"
	}
	return kindNames[k]
}

// IsBall reports whether entities of this kind are round and collide by radius.
func (k Kind) IsBall() bool {
	return k == RedBall || k == GreenBall
}

// Screen holds the world dimensions in world units.
type Screen struct {
	Width  float64
	Height float64
}

// UpdateContext provides what an object needs during update.
type UpdateContext struct {
	Screen Screen
}

// Object is an updatable game entity.
type Object interface {
	// Update advances the object by one frame. Returns true if the object
	// should be removed.
	Update(ctx UpdateContext) (remove bool)
}

// Destructible is implemented by objects that can be marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal at the next compaction.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}
