// Package game runs one Katch N' Run session: the menu, the countdown, the
// timed match and the result screen.
//
// A Game is driven by a single goroutine that calls Update once per frame.
// Timers (countdown, match clock, spawn intervals, effect expiry, goblin
// cooldowns) live on a virtual clock advanced by Update, so every callback
// runs on the frame goroutine between two frames.
package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/katchnrun/internal/audio"
	"github.com/tomz197/katchnrun/internal/clock"
	"github.com/tomz197/katchnrun/internal/config"
	"github.com/tomz197/katchnrun/internal/object"
	"github.com/tomz197/katchnrun/internal/world"
)

// MaxFrameDelta caps the time a single Update may advance the clock, so a
// stalled process does not burst-fire seconds of spawns when it resumes.
const MaxFrameDelta = 250 * time.Millisecond

// Scheduler owners.
const (
	ownerCountdown clock.Owner = "countdown"
	ownerMatch     clock.Owner = "match"
	ownerSpawn     clock.Owner = "spawn"
	ownerEffect    clock.Owner = "effect"
	ownerCooldown  clock.Owner = "cooldown"
	ownerFinish    clock.Owner = "finish"
)

// Source is the random source used for spawn positions, speeds and goblin
// effects. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Game is one session.
type Game struct {
	cfg       *config.Tuning
	world     *world.World
	clock     *clock.Scheduler
	rng       Source
	sink      audio.Sink
	logger    *log.Logger
	effects   *EffectTable
	cooldowns *cooldowns

	mode      Mode
	countdown int
	timeLeft  int
	outcome   Outcome
	finished  bool
	finishAt  time.Duration // clock time at which finished becomes true
	paused    bool

	speedTimers map[int]clock.ID // pending speed restore per player
	observers   []func(Outcome)
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source.
func WithRand(src Source) Option {
	return func(g *Game) { g.rng = src }
}

// WithSink sets the audio sink.
func WithSink(s audio.Sink) Option {
	return func(g *Game) { g.sink = s }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// OnGameOver registers a callback run once when the match ends.
func OnGameOver(fn func(Outcome)) Option {
	return func(g *Game) { g.observers = append(g.observers, fn) }
}

// New creates a game in the menu. cfg must not be modified afterwards.
func New(cfg *config.Tuning, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	table, err := NewEffectTable(cfg.Goblin.Bands)
	if err != nil {
		return nil, err
	}

	clk := clock.New()
	g := &Game{
		cfg:         cfg,
		world:       world.New(object.Screen{Width: cfg.World.Width, Height: cfg.World.Height}),
		clock:       clk,
		sink:        audio.Nop{},
		effects:     table,
		cooldowns:   newCooldowns(clk, cfg.Goblin.Cooldown),
		mode:        ModeMenu,
		countdown:   cfg.Match.CountdownSeconds,
		timeLeft:    cfg.Match.MatchSeconds,
		speedTimers: make(map[int]clock.ID),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		seed := uint64(cfg.Seed)
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		g.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	return g, nil
}

// Update advances the session by one frame of dt wall time: due timers fire
// first, then, while playing, movement and collision resolution.
func (g *Game) Update(dt time.Duration) {
	if g.paused {
		return
	}
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	g.clock.Advance(dt)
	if g.mode != ModePlaying {
		return
	}
	g.advance()
	g.resolve()
}

// SetPaused freezes or resumes the session. While paused no timer runs and
// nothing moves.
func (g *Game) SetPaused(paused bool) {
	if paused == g.paused {
		return
	}
	g.paused = paused
	if paused {
		g.clock.Pause()
	} else {
		g.clock.Resume()
	}
	g.logger.Debug("pause changed", "paused", paused)
}

// Paused reports whether the session is frozen.
func (g *Game) Paused() bool { return g.paused }

// Mode returns the current phase.
func (g *Game) Mode() Mode { return g.mode }

// Countdown returns the seconds left before play starts.
func (g *Game) Countdown() int { return g.countdown }

// TimeLeft returns the seconds left in the match.
func (g *Game) TimeLeft() int { return g.timeLeft }

// Players returns the players. Empty until play starts.
func (g *Game) Players() []*object.Player { return g.world.Players }

// Stars returns the background stars. Empty until play starts.
func (g *Game) Stars() []*object.Star { return g.world.Stars }

// Fallers returns the live entities of a kind. The slice is only valid
// until the next Update.
func (g *Game) Fallers(kind object.Kind) []*object.Faller { return g.world.Fallers(kind) }

// Screen returns the world size.
func (g *Game) Screen() object.Screen { return g.world.Screen }

// Outcome returns the match result once the game is over.
func (g *Game) Outcome() (Outcome, bool) {
	return g.outcome, g.mode == ModeGameOver
}

// Finished reports whether the result screen has been shown long enough and
// the session should close.
func (g *Game) Finished() bool { return g.finished }

// ResultTimeLeft returns how much longer the result screen stays up.
func (g *Game) ResultTimeLeft() time.Duration {
	if g.mode != ModeGameOver || g.finished {
		return 0
	}
	return max(g.finishAt-g.clock.Now(), 0)
}

// PendingTimers returns the number of scheduled callbacks.
func (g *Game) PendingTimers() int { return g.clock.Pending() }

func (g *Game) String() string {
	return fmt.Sprintf("game(%s, countdown=%d, time=%d)", g.mode, g.countdown, g.timeLeft)
}
