// Package audio plays the game's music and sound cues.
package audio

// Cue names a sound the game can request.
type Cue int

const (
	CueMusic Cue = iota // looping background music
	CueDamage
	CueCash
	CueSlow
	CueMorePoints
	CueSteal
	CueSpeedBoost
)

func (c Cue) String() string {
	switch c {
	case CueMusic:
		return "music"
	case CueDamage:
		return "damage"
	case CueCash:
		return "cash"
	case CueSlow:
		return "slow"
	case CueMorePoints:
		return "more-points"
	case CueSteal:
		return "steal"
	case CueSpeedBoost:
		return "speed-boost"
	}
	return "unknown"
}

// Sink receives cues. Play must not block and never reports failure: a sink
// that cannot play stays silent.
type Sink interface {
	Play(cue Cue)
}

// Nop is a silent Sink.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue) {}
