package screen

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/katchnrun/internal/audio"
	"github.com/tomz197/katchnrun/internal/config"
	"github.com/tomz197/katchnrun/internal/game"
	"github.com/tomz197/katchnrun/internal/logging"
	"github.com/tomz197/katchnrun/internal/object"
)

// fakeKeys reports the edges queued for the next tick only.
type fakeKeys struct {
	pressed, released map[ebiten.Key]bool
}

func (k *fakeKeys) JustPressed(key ebiten.Key) bool  { return k.pressed[key] }
func (k *fakeKeys) JustReleased(key ebiten.Key) bool { return k.released[key] }

type pausingSink struct {
	audio.Nop
	paused []bool
}

func (p *pausingSink) SetPaused(paused bool) { p.paused = append(p.paused, paused) }

type harness struct {
	t       *testing.T
	s       *Screen
	keys    *fakeKeys
	focused bool
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	opts.Logger = logging.Discard()
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h := &harness{t: t, s: s, keys: &fakeKeys{}, focused: true}
	s.keys = h.keys
	s.focused = func() bool { return h.focused }
	return h
}

// tick runs one Update with the given keys pressed this tick.
func (h *harness) tick(pressed ...ebiten.Key) error {
	h.keys.pressed = map[ebiten.Key]bool{}
	for _, k := range pressed {
		h.keys.pressed[k] = true
	}
	h.keys.released = nil
	return h.s.Update()
}

func (h *harness) release(keys ...ebiten.Key) error {
	h.keys.pressed = nil
	h.keys.released = map[ebiten.Key]bool{}
	for _, k := range keys {
		h.keys.released[k] = true
	}
	return h.s.Update()
}

// run ticks with no input for d.
func (h *harness) run(d time.Duration) error {
	for ; d > 0; d -= h.s.tick {
		if err := h.tick(); err != nil {
			return err
		}
	}
	return nil
}

func TestGate(t *testing.T) {
	tests := []struct {
		name     string
		key      ebiten.Key
		wantErr  error
		accepted bool
	}{
		{name: "yes", key: ebiten.KeyY, accepted: true},
		{name: "no", key: ebiten.KeyN, wantErr: ebiten.Termination},
		{name: "escape", key: ebiten.KeyEscape, wantErr: ebiten.Termination},
		{name: "other key waits", key: ebiten.KeyEnter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{})
			err := h.tick(tt.key)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Update = %v, want %v", err, tt.wantErr)
			}
			if h.s.accepted != tt.accepted {
				t.Fatalf("accepted = %v, want %v", h.s.accepted, tt.accepted)
			}
			if h.s.Game().Mode() != game.ModeMenu {
				t.Fatalf("mode = %s, gate must keep the game in the menu", h.s.Game().Mode())
			}
			if h.s.Declined() != (tt.key == ebiten.KeyN) {
				t.Fatalf("declined = %v", h.s.Declined())
			}
		})
	}
}

func TestPlayThroughToTermination(t *testing.T) {
	tuning := config.Default()
	tuning.Match.CountdownSeconds = 1
	tuning.Match.MatchSeconds = 2
	tuning.Match.GameOverDelay = time.Second

	var outcomes int
	h := newHarness(t, Options{Tuning: tuning, OnGameOver: func(game.Outcome) { outcomes++ }})
	if err := h.tick(ebiten.KeyY); err != nil {
		t.Fatal(err)
	}
	if err := h.tick(ebiten.KeyEnter); err != nil {
		t.Fatal(err)
	}
	if h.s.Game().Mode() != game.ModeCountdown {
		t.Fatalf("mode = %s after Enter", h.s.Game().Mode())
	}
	if err := h.run(time.Second); err != nil {
		t.Fatal(err)
	}
	if h.s.Game().Mode() != game.ModePlaying {
		t.Fatalf("mode = %s after the countdown", h.s.Game().Mode())
	}

	if err := h.tick(ebiten.KeyD); err != nil {
		t.Fatal(err)
	}
	if d := h.s.Game().Players()[1].Direction; d != 1 {
		t.Fatalf("player 2 direction = %d after D", d)
	}
	if err := h.release(ebiten.KeyD); err != nil {
		t.Fatal(err)
	}
	if d := h.s.Game().Players()[1].Direction; d != 0 {
		t.Fatalf("player 2 direction = %d after release", d)
	}

	err := h.run(5 * time.Second)
	if !errors.Is(err, ebiten.Termination) {
		t.Fatalf("run = %v, want termination after the result screen", err)
	}
	if outcomes != 1 {
		t.Fatalf("game over callbacks = %d", outcomes)
	}
}

func TestFocusPausesGameAndSink(t *testing.T) {
	tuning := config.Default()
	tuning.Match.CountdownSeconds = 0
	sink := &pausingSink{}
	h := newHarness(t, Options{Tuning: tuning, Sink: sink})
	_ = h.tick(ebiten.KeyY)
	_ = h.tick(ebiten.KeyEnter)
	left := h.s.Game().TimeLeft()

	h.focused = false
	if err := h.run(3 * time.Second); err != nil {
		t.Fatal(err)
	}
	if !h.s.Game().Paused() {
		t.Fatal("game not paused while unfocused")
	}
	if got := h.s.Game().TimeLeft(); got != left {
		t.Fatalf("time left moved from %d to %d while paused", left, got)
	}

	h.focused = true
	_ = h.tick()
	if h.s.Game().Paused() {
		t.Fatal("game still paused after focus returned")
	}
	if len(sink.paused) != 2 || !sink.paused[0] || sink.paused[1] {
		t.Fatalf("sink pause calls = %v, want [true false]", sink.paused)
	}
}

func TestLayoutIsWorldSize(t *testing.T) {
	h := newHarness(t, Options{})
	w, ht := h.s.Layout(3000, 100)
	sc := h.s.Game().Screen()
	if w != int(sc.Width) || ht != int(sc.Height) {
		t.Fatalf("Layout = %dx%d, want %vx%v", w, ht, sc.Width, sc.Height)
	}
}

func TestFallerBounds(t *testing.T) {
	ball := object.NewBall(object.RedBall, 100, 50, 10, 0)
	if x, y, w, h := fallerBounds(ball); x != 90 || y != 40 || w != 20 || h != 20 {
		t.Fatalf("ball bounds = %v %v %v %v", x, y, w, h)
	}
	coal := object.NewItem(object.Coal, 100, 50, 30, 20, 0)
	if x, y, w, h := fallerBounds(coal); x != 100 || y != 50 || w != 30 || h != 20 {
		t.Fatalf("coal bounds = %v %v %v %v", x, y, w, h)
	}
}

func TestSpriteFile(t *testing.T) {
	tests := map[object.Kind]string{
		object.RedBall:   "red_ball.png",
		object.CandyCane: "candy_cane.png",
		object.Goblin:    "goblin.png",
	}
	for kind, want := range tests {
		if got := SpriteFile(kind); got != want {
			t.Errorf("SpriteFile(%s) = %q, want %q", kind, got, want)
		}
	}
}

func waitReady(t *testing.T, s *Sprites) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !s.Ready() {
		if time.Now().After(deadline) {
			t.Fatal("sprites never became ready")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestLoadSprites(t *testing.T) {
	dir := t.TempDir()

	f, err := os.Create(filepath.Join(dir, SpriteFile(object.Coal)))
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.White)
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if err := os.WriteFile(filepath.Join(dir, SpriteFile(object.Grinch)), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := LoadSprites(dir, logging.Discard())
	waitReady(t, s)
	if got := s.count(); got != 1 {
		t.Fatalf("decoded %d sprites, want 1", got)
	}
	if s.Image(object.Grinch) != nil || s.Image(object.RedBall) != nil {
		t.Fatal("image returned for a broken or missing sprite")
	}
}

func TestLoadSpritesEmptyDir(t *testing.T) {
	s := LoadSprites("", logging.Discard())
	if !s.Ready() {
		t.Fatal("no sprite dir should be ready at once")
	}
	if s.Image(object.Coal) != nil {
		t.Fatal("image without a sprite dir")
	}
}
