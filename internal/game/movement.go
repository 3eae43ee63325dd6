package game

import "github.com/tomz197/katchnrun/internal/object"

// advance moves everything by one frame. Fallers that leave the bottom are
// dropped; players are clamped to the screen; stars wrap.
func (g *Game) advance() {
	ctx := g.world.Context()
	for kind := range object.KindCount {
		g.world.Sweep(kind, func(f *object.Faller) bool {
			return f.Update(ctx)
		})
	}
	for _, p := range g.world.Players {
		p.Update(ctx)
	}
	for _, s := range g.world.Stars {
		s.Update(ctx)
	}
}
