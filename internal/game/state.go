package game

import (
	"time"

	"github.com/tomz197/katchnrun/internal/audio"
	"github.com/tomz197/katchnrun/internal/object"
)

// Mode is the session phase. Phases only move forward:
// menu -> countdown -> playing -> gameover.
type Mode int

const (
	ModeMenu Mode = iota
	ModeCountdown
	ModePlaying
	ModeGameOver
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeCountdown:
		return "countdown"
	case ModePlaying:
		return "playing"
	case ModeGameOver:
		return "gameover"
	}
	return "unknown"
}

// Start leaves the menu and begins the countdown. Returns false outside the menu.
func (g *Game) Start() bool {
	if g.mode != ModeMenu {
		return false
	}
	g.mode = ModeCountdown
	g.countdown = g.cfg.Match.CountdownSeconds
	g.sink.Play(audio.CueMusic)
	g.logger.Info("countdown started", "seconds", g.countdown)

	if g.countdown <= 0 {
		g.beginPlaying()
		return true
	}
	g.clock.Every(ownerCountdown, time.Second, g.tickCountdown)
	return true
}

func (g *Game) tickCountdown() {
	g.countdown--
	if g.countdown > 0 {
		return
	}
	g.countdown = 0
	g.clock.CancelOwner(ownerCountdown)
	g.beginPlaying()
}

// beginPlaying creates the players and stars and starts the spawn and match timers.
func (g *Game) beginPlaying() {
	g.mode = ModePlaying
	g.world.Reset()

	w, h := g.cfg.World.Width, g.cfg.World.Height
	pc := g.cfg.Players
	size := pc.Size * w
	y := h - pc.BottomGap*h
	speed := pc.Speed * w
	g.world.Players = []*object.Player{
		object.NewPlayer(0, w/4-size, y, size, speed, pc.Lives),
		object.NewPlayer(1, 3*w/4-size, y, size, speed, pc.Lives),
	}

	sc := g.cfg.Stars
	for i := 0; i < sc.Count; i++ {
		g.world.Stars = append(g.world.Stars, object.NewStar(
			g.rng.Float64()*w,
			g.rng.Float64()*h,
			sc.SpeedMin+g.rng.Float64()*(sc.SpeedMax-sc.SpeedMin),
		))
	}

	g.startSpawning()
	g.timeLeft = g.cfg.Match.MatchSeconds
	g.clock.Every(ownerMatch, time.Second, g.tickMatch)
	g.logger.Info("match started", "seconds", g.timeLeft)
}

func (g *Game) tickMatch() {
	g.timeLeft--
	if g.timeLeft > 0 {
		return
	}
	g.timeLeft = 0
	g.endMatch(ReasonTime, -1)
}

// endMatch moves to gameover. loser is the index of the player whose lives
// ran out, or -1 when time expired. Every pending timer is cancelled so no
// effect lands after the result is decided.
func (g *Game) endMatch(reason Reason, loser int) {
	if g.mode == ModeGameOver {
		return
	}
	g.mode = ModeGameOver
	cancelled := g.clock.CancelAll()
	g.cooldowns.reset()
	clear(g.speedTimers)

	g.outcome = decide(g.world.Players, reason, loser)
	g.logger.Info("match over",
		"reason", reason,
		"result", g.outcome.Headline(),
		"scores", g.outcome.Scores,
		"lives", g.outcome.Lives,
		"cancelledTimers", cancelled,
	)
	for _, fn := range g.observers {
		fn(g.outcome)
	}

	g.finishAt = g.clock.Now() + g.cfg.Match.GameOverDelay
	g.clock.After(ownerFinish, g.cfg.Match.GameOverDelay, func() {
		g.finished = true
	})
}
