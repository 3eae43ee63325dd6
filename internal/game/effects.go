package game

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tomz197/katchnrun/internal/audio"
	"github.com/tomz197/katchnrun/internal/config"
	"github.com/tomz197/katchnrun/internal/object"
)

// ErrBadEffectTable is returned (wrapped) when goblin bands do not partition [0, 1).
var ErrBadEffectTable = errors.New("goblin effect table must partition [0, 1)")

// Effect is one of the goblin's random outcomes.
type Effect int

const (
	EffectBonus    Effect = iota // score bonus
	EffectPenalty                // lose lives
	EffectLifeGain               // gain lives
	EffectSlow                   // slowed for a while
	EffectSteal                  // take score from the next player
	EffectBoost                  // sped up for a while
)

var effectNames = map[Effect]string{
	EffectBonus:    "bonus",
	EffectPenalty:  "penalty",
	EffectLifeGain: "life",
	EffectSlow:     "slow",
	EffectSteal:    "steal",
	EffectBoost:    "boost",
}

func (e Effect) String() string {
	if name, ok := effectNames[e]; ok {
		return name
	}
	return "unknown"
}

// ParseEffect maps a tuning-file effect name to an Effect.
func ParseEffect(name string) (Effect, error) {
	for e, n := range effectNames {
		if n == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown effect %q", ErrBadEffectTable, name)
}

// Band maps r in [Lo, Hi) to an effect.
type Band struct {
	Lo, Hi float64
	Effect Effect
}

// EffectTable selects a goblin effect from a uniform draw in [0, 1).
type EffectTable struct {
	bands []Band
}

// NewEffectTable builds a table from ordered upper bounds. The first band
// starts at 0, each band starts where the previous one ended, every band is
// non-empty, and the last ends exactly at 1.
func NewEffectTable(cfg []config.BandConfig) (*EffectTable, error) {
	if len(cfg) == 0 {
		return nil, fmt.Errorf("%w: no bands", ErrBadEffectTable)
	}
	t := &EffectTable{bands: make([]Band, 0, len(cfg))}
	lo := 0.0
	for i, b := range cfg {
		e, err := ParseEffect(b.Effect)
		if err != nil {
			return nil, err
		}
		if b.Upper <= lo {
			return nil, fmt.Errorf("%w: band %d (%s) is empty or out of order: [%v, %v)", ErrBadEffectTable, i, b.Effect, lo, b.Upper)
		}
		if b.Upper > 1 {
			return nil, fmt.Errorf("%w: band %d (%s) ends past 1: %v", ErrBadEffectTable, i, b.Effect, b.Upper)
		}
		t.bands = append(t.bands, Band{Lo: lo, Hi: b.Upper, Effect: e})
		lo = b.Upper
	}
	if lo != 1 {
		return nil, fmt.Errorf("%w: bands end at %v", ErrBadEffectTable, lo)
	}
	return t, nil
}

// Bands returns a copy of the table.
func (t *EffectTable) Bands() []Band {
	return append([]Band(nil), t.bands...)
}

// Pick returns the effect whose band contains r. Values outside [0, 1) are
// clamped to the first or last band.
func (t *EffectTable) Pick(r float64) Effect {
	i := sort.Search(len(t.bands), func(i int) bool { return r < t.bands[i].Hi })
	if i == len(t.bands) {
		i--
	}
	return t.bands[i].Effect
}

// applyEffect applies a goblin effect to player p.
func (g *Game) applyEffect(e Effect, p *object.Player) {
	gc := g.cfg.Goblin
	switch e {
	case EffectBonus:
		p.Score += gc.Bonus
		g.sink.Play(audio.CueMorePoints)
	case EffectPenalty:
		g.sink.Play(audio.CueDamage)
		g.damage(p, gc.Penalty)
	case EffectLifeGain:
		p.Lives += gc.LifeGain
		g.sink.Play(audio.CueCash)
	case EffectSlow:
		g.setSpeed(p, g.cfg.Players.SlowSpeed, gc.SlowFor)
		g.sink.Play(audio.CueSlow)
	case EffectSteal:
		players := g.world.Players
		target := players[(p.Index+1)%len(players)]
		p.Score += gc.Steal
		target.Score -= gc.Steal
		g.sink.Play(audio.CueSteal)
	case EffectBoost:
		g.setSpeed(p, g.cfg.Players.FastSpeed, gc.FastFor)
		g.sink.Play(audio.CueSpeedBoost)
	}
	g.logger.Debug("goblin effect", "player", p.Index+1, "effect", e)
}

// setSpeed overrides a player's speed for d, replacing any speed effect
// still pending for that player.
func (g *Game) setSpeed(p *object.Player, speed float64, d time.Duration) {
	if id, ok := g.speedTimers[p.Index]; ok {
		g.clock.Cancel(id)
	}
	p.Speed = speed
	g.speedTimers[p.Index] = g.clock.After(ownerEffect, d, func() {
		p.Speed = p.BaseSpeed
		delete(g.speedTimers, p.Index)
	})
}
