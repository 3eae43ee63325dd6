package game

import (
	"testing"
	"time"

	"github.com/tomz197/katchnrun/internal/audio"
	"github.com/tomz197/katchnrun/internal/config"
	"github.com/tomz197/katchnrun/internal/logging"
	"github.com/tomz197/katchnrun/internal/object"
)

// seq is a Source that replays fixed values in a loop.
type seq struct {
	vals []float64
	i    int
}

func (s *seq) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// recorder is a Sink that remembers every cue.
type recorder struct {
	cues []audio.Cue
}

func (r *recorder) Play(c audio.Cue) { r.cues = append(r.cues, c) }

func (r *recorder) count(c audio.Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

// quietConfig is the default tuning with no stars and spawns so far apart
// that none happen during a test.
func quietConfig() *config.Tuning {
	cfg := config.Default()
	cfg.Stars.Count = 0
	for _, s := range []*config.SpawnConfig{
		&cfg.Spawns.RedBall, &cfg.Spawns.GreenBall, &cfg.Spawns.Coal,
		&cfg.Spawns.CandyCane, &cfg.Spawns.Grinch, &cfg.Spawns.Goblin,
	} {
		s.Interval = time.Hour
	}
	return cfg
}

func newGame(t *testing.T, cfg *config.Tuning, rng Source, opts ...Option) *Game {
	t.Helper()
	if rng == nil {
		rng = &seq{vals: []float64{0.5}}
	}
	opts = append([]Option{WithRand(rng), WithLogger(logging.Discard())}, opts...)
	g, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

// newPlaying returns a game that has finished its countdown.
func newPlaying(t *testing.T, cfg *config.Tuning, rng Source, opts ...Option) *Game {
	t.Helper()
	g := newGame(t, cfg, rng, opts...)
	g.KeyDown(KeyConfirm)
	step(g, time.Duration(cfg.Match.CountdownSeconds)*time.Second)
	if g.Mode() != ModePlaying {
		t.Fatalf("mode after countdown = %s, want playing", g.Mode())
	}
	return g
}

// step runs frames of at most 50ms until d has elapsed.
func step(g *Game, d time.Duration) {
	for d > 0 {
		dt := min(d, 50*time.Millisecond)
		g.Update(dt)
		d -= dt
	}
}

// onPlayer returns a motionless item of the given kind inside player p's paddle.
func onPlayer(g *Game, kind object.Kind, p int) *object.Faller {
	pl := g.Players()[p]
	var f *object.Faller
	if kind.IsBall() {
		f = object.NewBall(kind, pl.X+pl.W/2, pl.Y+pl.H/2, 10, 0)
	} else {
		f = object.NewItem(kind, pl.X+pl.W/4, pl.Y+pl.H/4, pl.W/2, pl.H/2, 0)
	}
	g.world.Add(f)
	return f
}

func contains(fs []*object.Faller, f *object.Faller) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}
