// Package screen runs a match in an Ebitengine window.
package screen

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/katchnrun/internal/audio"
	"github.com/tomz197/katchnrun/internal/config"
	"github.com/tomz197/katchnrun/internal/game"
)

// Options configures a Screen.
type Options struct {
	Tuning     *config.Tuning // nil uses config.Default()
	Sink       audio.Sink     // nil is silent; paused with the game when it has SetPaused
	Logger     *log.Logger    // nil uses log.Default()
	OnGameOver func(game.Outcome)
	Source     game.Source // nil seeds from the tuning
	SpriteDir  string      // optional PNG sprites, one per kind
}

// Pauser is a sink that can be paused together with the game.
type Pauser interface {
	SetPaused(paused bool)
}

// keySource reports key edges for one tick.
type keySource interface {
	JustPressed(k ebiten.Key) bool
	JustReleased(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) JustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeys) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }

// gameKeys maps window keys to the names game.Game understands.
var gameKeys = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.KeyArrowLeft, game.KeyP1Left},
	{ebiten.KeyArrowRight, game.KeyP1Right},
	{ebiten.KeyA, game.KeyP2Left},
	{ebiten.KeyD, game.KeyP2Right},
	{ebiten.KeyEnter, game.KeyConfirm},
	{ebiten.KeyNumpadEnter, game.KeyConfirm},
}

// Screen implements ebiten.Game.
type Screen struct {
	game    *game.Game
	sink    audio.Sink
	sprites *Sprites
	logger  *log.Logger
	keys    keySource
	focused func() bool

	accepted bool
	declined bool
	paused   bool
	tick     time.Duration
	width    int
	height   int
}

var _ ebiten.Game = (*Screen)(nil)

// New creates a window frontend and starts loading its sprites.
func New(opts Options) (*Screen, error) {
	tuning := opts.Tuning
	if tuning == nil {
		tuning = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	sink := opts.Sink
	if sink == nil {
		sink = audio.Nop{}
	}

	gameOpts := []game.Option{game.WithSink(sink), game.WithLogger(logger)}
	if opts.Source != nil {
		gameOpts = append(gameOpts, game.WithRand(opts.Source))
	}
	if opts.OnGameOver != nil {
		gameOpts = append(gameOpts, game.OnGameOver(opts.OnGameOver))
	}
	g, err := game.New(tuning, gameOpts...)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	sc := g.Screen()
	return &Screen{
		game:    g,
		sink:    sink,
		sprites: LoadSprites(opts.SpriteDir, logger),
		logger:  logger,
		keys:    ebitenKeys{},
		focused: ebiten.IsFocused,
		tick:    time.Second / time.Duration(ebiten.DefaultTPS),
		width:   int(sc.Width),
		height:  int(sc.Height),
	}, nil
}

// Game returns the screen's game.
func (s *Screen) Game() *game.Game { return s.game }

// Declined reports whether the player answered no at the gate.
func (s *Screen) Declined() bool { return s.declined }

// Update runs one tick. It returns ebiten.Termination once the session is over.
func (s *Screen) Update() error {
	if s.keys.JustPressed(ebiten.KeyEscape) || s.keys.JustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	s.setPaused(!s.focused())

	if !s.accepted {
		switch {
		case s.keys.JustPressed(ebiten.KeyY):
			s.accepted = true
			s.logger.Debug("gate accepted")
		case s.keys.JustPressed(ebiten.KeyN):
			s.declined = true
			s.logger.Debug("gate declined")
			return ebiten.Termination
		}
		return nil
	}

	for _, k := range gameKeys {
		if s.keys.JustPressed(k.key) {
			s.game.KeyDown(k.name)
		}
		if s.keys.JustReleased(k.key) {
			s.game.KeyUp(k.name)
		}
	}

	s.game.Update(s.tick)
	if s.game.Finished() {
		return ebiten.Termination
	}
	return nil
}

// setPaused pauses the game and the sink while the window is in the background.
func (s *Screen) setPaused(paused bool) {
	if paused == s.paused {
		return
	}
	s.paused = paused
	s.game.SetPaused(paused)
	if p, ok := s.sink.(Pauser); ok {
		p.SetPaused(paused)
	}
	s.logger.Debug("focus changed", "paused", paused)
}

// Layout keeps the logical screen at the world size; Ebitengine scales it.
func (s *Screen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.width, s.height
}
