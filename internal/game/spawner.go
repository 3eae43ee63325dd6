package game

import (
	"github.com/tomz197/katchnrun/internal/config"
	"github.com/tomz197/katchnrun/internal/object"
)

// spawnConfig returns the spawn parameters of a kind.
func spawnConfig(t *config.SpawnTable, kind object.Kind) config.SpawnConfig {
	switch kind {
	case object.RedBall:
		return t.RedBall
	case object.GreenBall:
		return t.GreenBall
	case object.Coal:
		return t.Coal
	case object.CandyCane:
		return t.CandyCane
	case object.Grinch:
		return t.Grinch
	case object.Goblin:
		return t.Goblin
	}
	panic("game: unknown kind " + kind.String())
}

// startSpawning registers one periodic spawn task per kind.
func (g *Game) startSpawning() {
	for kind := range object.KindCount {
		sc := spawnConfig(&g.cfg.Spawns, kind)
		g.clock.Every(ownerSpawn, sc.Interval, func() {
			g.spawn(kind)
		})
	}
}

// spawn creates one entity of the given kind at the top of the world, at a
// uniformly random x, with a speed drawn from the kind's range.
func (g *Game) spawn(kind object.Kind) *object.Faller {
	sc := spawnConfig(&g.cfg.Spawns, kind)
	w, h := g.cfg.World.Width, g.cfg.World.Height

	x := g.rng.Float64() * w
	speed := sc.SpeedMin + g.rng.Float64()*(sc.SpeedMax-sc.SpeedMin)

	var f *object.Faller
	if kind.IsBall() {
		f = object.NewBall(kind, x, 0, sc.Radius, speed)
	} else {
		f = object.NewItem(kind, x, 0, sc.Width*w, sc.Height*h, speed)
	}
	g.world.Add(f)
	return f
}
