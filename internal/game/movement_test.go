package game

import (
	"testing"
	"time"

	"github.com/tomz197/katchnrun/internal/object"
)

func TestFallersLeaveTheBottom(t *testing.T) {
	g := newPlaying(t, quietConfig(), nil)
	h := g.Screen().Height
	leaving := object.NewItem(object.Coal, 10, h-0.5, 5, 5, 1)
	staying := object.NewItem(object.Coal, 10, h-2, 5, 5, 1)
	g.world.Add(leaving)
	g.world.Add(staying)

	step(g, 50*time.Millisecond)

	fs := g.Fallers(object.Coal)
	if contains(fs, leaving) {
		t.Fatal("faller below the screen was kept")
	}
	if !contains(fs, staying) || staying.Y != h-1 {
		t.Fatalf("staying faller: kept=%v y=%v", contains(fs, staying), staying.Y)
	}
}

func TestPlayersStayOnScreen(t *testing.T) {
	g := newPlaying(t, quietConfig(), nil)
	w := g.Screen().Width

	g.KeyDown(KeyP1Left)
	g.KeyDown(KeyP2Right)
	step(g, 10*time.Second)

	p0, p1 := g.Players()[0], g.Players()[1]
	if p0.X != 0 {
		t.Errorf("player 1 x = %v, want 0", p0.X)
	}
	if p1.X != w-p1.W {
		t.Errorf("player 2 x = %v, want %v", p1.X, w-p1.W)
	}
}

func TestStarsWrap(t *testing.T) {
	cfg := quietConfig()
	cfg.Stars.Count = 10
	g := newPlaying(t, cfg, nil)
	h := g.Screen().Height

	if len(g.Stars()) != 10 {
		t.Fatalf("stars = %d, want 10", len(g.Stars()))
	}
	step(g, 30*time.Second)
	for i, s := range g.Stars() {
		if s.Y < 0 || s.Y > h {
			t.Fatalf("star %d at y=%v left the screen", i, s.Y)
		}
	}
}
