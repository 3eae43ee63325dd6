// Package loop runs a match in a terminal: the gate prompt, the game's own
// phases, and the server notices of an SSH session.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/katchnrun/internal/audio"
	"github.com/tomz197/katchnrun/internal/config"
	"github.com/tomz197/katchnrun/internal/draw"
	"github.com/tomz197/katchnrun/internal/game"
	"github.com/tomz197/katchnrun/internal/input"
	"github.com/tomz197/katchnrun/internal/session"
)

// Phase is the client's own state around the game.
type Phase int

const (
	PhaseGate     Phase = iota // "Continue to level?" prompt
	PhaseGame                  // the game is visible and owns the screen
	PhaseShutdown              // server is shutting down
)

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Tuning       *config.Tuning  // nil uses config.Default()
	Sink         audio.Sink      // nil is silent
	Logger       *log.Logger     // nil uses log.Default()
	Handle       *session.Handle // nil when not hosted by a session hub
	OnGameOver   func(game.Outcome)
	Source       game.Source // nil seeds from the tuning
}

// Client handles rendering and input for a single terminal.
type Client struct {
	game         *game.Game
	canvas       *draw.Canvas
	out          *draw.Frame // canvas cells and text overlay of one frame
	writer       io.Writer
	inputStream  *input.Stream
	tracker      input.Tracker
	handle       *session.Handle
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger

	phase         Phase
	running       bool
	declined      bool
	lastFrame     time.Time
	lastInput     time.Time
	shutdownTimer time.Duration
	isInactive    bool
	prevView      view
}

// view is everything whose change needs a full terminal clear.
type view struct {
	phase    Phase
	mode     game.Mode
	inactive bool
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.StdoutSize
	}
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

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	area := draw.FitArea(termWidth, termHeight, MaxTermWidth, MaxTermHeight)
	screen := g.Screen()
	canvas := draw.NewScaledCanvas(area.Width, area.Height, screen.Width, screen.Height)
	canvas.SetOffset(area.OffsetCol, area.OffsetRow)

	now := time.Now()
	return &Client{
		game:         g,
		canvas:       canvas,
		out:          draw.NewFrame(w, area),
		writer:       w,
		inputStream:  input.StartStream(r),
		handle:       opts.Handle,
		termSizeFunc: termSizeFunc,
		logger:       logger,
		phase:        PhaseGate,
		running:      true,
		lastFrame:    now,
		lastInput:    now,
		prevView:     view{phase: -1},
	}, nil
}

// Game returns the client's game.
func (c *Client) Game() *game.Game { return c.game }

// Phase returns the client's current phase.
func (c *Client) Phase() Phase { return c.phase }

// Running reports whether the loop would keep going.
func (c *Client) Running() bool { return c.running }

// Declined reports whether the player answered no at the gate.
func (c *Client) Declined() bool { return c.declined }

// Run starts the client loop. Blocks until the player quits, the match's
// result screen ends, the session is shut down, or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	if err := draw.Enter(c.writer); err != nil {
		return fmt.Errorf("enter screen: %w", err)
	}
	defer func() {
		_ = draw.Leave(c.writer)
	}()
	defer c.inputStream.Stop()

	for c.running {
		if ctx.Err() != nil {
			break
		}
		frameStart := time.Now()

		if err := c.frame(input.ReadInput(c.inputStream), frameStart); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < ClientTargetFrameTime {
			time.Sleep(ClientTargetFrameTime - elapsed)
		}
	}

	return nil
}

// frame runs one Input → Update → Draw cycle at wall time now.
func (c *Client) frame(in input.Input, now time.Time) error {
	dt := now.Sub(c.lastFrame)
	c.lastFrame = now

	c.processInput(in, now)
	c.processNotices()
	c.updateScreen()
	c.update(dt)
	return c.drawFrame(now)
}

// processInput tracks inactivity and forwards key edges.
func (c *Client) processInput(in input.Input, now time.Time) {
	if in.Active() {
		c.lastInput = now
		c.isInactive = false
	} else if c.idle() {
		switch since := now.Sub(c.lastInput); {
		case since > InactivityDisconnectUser:
			c.logger.Info("disconnecting inactive session")
			c.running = false
		case since > InactivityWarnUser:
			c.isInactive = true
		}
	} else {
		c.lastInput = now
	}

	if in.Quit() {
		c.running = false
		return
	}

	down, up := c.tracker.Diff(in)
	switch c.phase {
	case PhaseGate:
		for _, k := range down {
			switch k {
			case input.KeyYes:
				c.phase = PhaseGame
				c.logger.Debug("gate accepted")
			case input.KeyNo:
				c.declined = true
				c.running = false
				c.logger.Debug("gate declined")
			}
		}
	case PhaseGame:
		for _, k := range down {
			c.game.KeyDown(k.Name())
		}
		for _, k := range up {
			c.game.KeyUp(k.Name())
		}
	}
}

// idle reports whether inactivity counts: nobody is playing.
func (c *Client) idle() bool {
	if c.phase != PhaseGame {
		return true
	}
	return c.game.Mode() == game.ModeMenu
}

// processNotices handles messages from the session hub.
func (c *Client) processNotices() {
	if c.handle == nil {
		return
	}
	for {
		select {
		case n, ok := <-c.handle.Notices:
			if !ok {
				c.running = false
				return
			}
			if n == session.NoticeShutdown && c.phase != PhaseShutdown {
				c.phase = PhaseShutdown
				c.shutdownTimer = ShutdownDisplay
			}
		default:
			return
		}
	}
}

// updateScreen follows terminal resizes. A changed area clears the terminal
// so old borders and offset content do not linger.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	area := draw.FitArea(termWidth, termHeight, MaxTermWidth, MaxTermHeight)
	if !c.out.SetArea(area) {
		return
	}
	c.canvas.Resize(area.Width, area.Height)
	c.canvas.SetOffset(area.OffsetCol, area.OffsetRow)
	c.canvas.ForceRedraw()
}

// update advances whatever the current phase runs.
func (c *Client) update(dt time.Duration) {
	switch c.phase {
	case PhaseGame:
		c.game.Update(dt)
		if c.game.Finished() {
			c.running = false
		}
	case PhaseShutdown:
		c.shutdownTimer -= dt
		if c.shutdownTimer <= 0 {
			c.running = false
		}
	}
}
