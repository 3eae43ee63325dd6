package game

import (
	"github.com/tomz197/katchnrun/internal/audio"
	"github.com/tomz197/katchnrun/internal/object"
)

// resolve tests every faller against every player and applies the effects of
// each overlap. Hit entities are only marked; they are compacted after all
// pairs are tested, so an entity touching both players affects each of them.
// Once an effect ends the match no further pair is tested.
func (g *Game) resolve() {
	defer g.world.Compact()

	players := g.world.Players
	for kind := range object.KindCount {
		for _, f := range g.world.Fallers(kind) {
			if f.IsDestroyed() {
				continue
			}
			box := f.Bounds()
			for _, p := range players {
				if !box.Overlaps(p.Bounds()) {
					continue
				}
				g.hit(f, p)
				if g.mode != ModePlaying {
					return
				}
			}
		}
	}
}

// hit applies the effect of faller f touching player p. Goblin hits are gated
// per (goblin, player) pair by the cooldown.
func (g *Game) hit(f *object.Faller, p *object.Player) {
	sc := g.cfg.Scoring
	switch f.Kind {
	case object.RedBall:
		if p.Catch(sc.BallPoints, sc.RedLifeEvery) {
			g.logger.Debug("bonus life", "player", p.Index+1, "kind", f.Kind)
		}
		f.MarkDestroyed()
	case object.GreenBall:
		if p.Catch(sc.BallPoints, sc.GreenLifeEvery) {
			g.logger.Debug("bonus life", "player", p.Index+1, "kind", f.Kind)
		}
		f.MarkDestroyed()
	case object.Coal:
		f.MarkDestroyed()
		g.sink.Play(audio.CueDamage)
		g.damage(p, sc.CoalDamage)
	case object.CandyCane:
		p.Score += sc.CanePoints
		p.Lives += sc.CaneLives
		f.MarkDestroyed()
	case object.Grinch:
		p.Score -= sc.GrinchPenalty
		f.MarkDestroyed()
		g.sink.Play(audio.CueDamage)
		g.damage(p, sc.GrinchDamage)
	case object.Goblin:
		if !g.cooldowns.acquire(f.ID, p.Index) {
			return
		}
		g.applyEffect(g.effects.Pick(g.rng.Float64()), p)
		f.MarkDestroyed()
	}
}

// damage removes lives from p and ends the match if none are left.
func (g *Game) damage(p *object.Player, n int) {
	if p.Damage(n) {
		g.logger.Debug("out of lives", "player", p.Index+1)
		g.endMatch(ReasonLives, p.Index)
	}
}
