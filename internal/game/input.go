package game

// Key names understood by KeyDown and KeyUp.
const (
	KeyP1Left  = "ArrowLeft"
	KeyP1Right = "ArrowRight"
	KeyP2Left  = "a"
	KeyP2Right = "d"
	KeyConfirm = "Enter"
)

type binding struct {
	player    int
	direction int
}

var bindings = map[string]binding{
	KeyP1Left:  {player: 0, direction: -1},
	KeyP1Right: {player: 0, direction: 1},
	KeyP2Left:  {player: 1, direction: -1},
	KeyP2Right: {player: 1, direction: 1},
}

// KeyDown handles a key press. The confirm key starts the countdown from the
// menu; direction keys steer their player once players exist.
func (g *Game) KeyDown(key string) {
	if key == KeyConfirm {
		g.Start()
		return
	}
	if p := g.bound(key); p >= 0 {
		g.world.Players[p].Direction = bindings[key].direction
	}
}

// KeyUp handles a key release. Releasing either direction key of a player
// stops that player.
func (g *Game) KeyUp(key string) {
	if p := g.bound(key); p >= 0 {
		g.world.Players[p].Direction = 0
	}
}

// bound returns the player index a key controls, or -1.
func (g *Game) bound(key string) int {
	b, ok := bindings[key]
	if !ok || b.player >= len(g.world.Players) {
		return -1
	}
	return b.player
}
