package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if got.Match.MatchSeconds != 60 || got.Players.Lives != 5 {
		t.Fatalf("unexpected defaults: %+v", got.Match)
	}
}

func TestLoadOverridesSubset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := `
match:
  matchSeconds: 90
spawns:
  coal:
    interval: 750ms
goblin:
  cooldown: 2s
seed: 42
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Match.MatchSeconds != 90 {
		t.Errorf("matchSeconds = %d, want 90", got.Match.MatchSeconds)
	}
	if got.Match.CountdownSeconds != 3 {
		t.Errorf("countdownSeconds = %d, want default 3", got.Match.CountdownSeconds)
	}
	if got.Spawns.Coal.Interval != 750*time.Millisecond {
		t.Errorf("coal interval = %v, want 750ms", got.Spawns.Coal.Interval)
	}
	if got.Spawns.Coal.Width != 0.03 {
		t.Errorf("coal width = %v, want default 0.03", got.Spawns.Coal.Width)
	}
	if got.Goblin.Cooldown != 2*time.Second {
		t.Errorf("goblin cooldown = %v, want 2s", got.Goblin.Cooldown)
	}
	if len(got.Goblin.Bands) != 6 {
		t.Errorf("bands = %d, want default 6", len(got.Goblin.Bands))
	}
	if got.Seed != 42 {
		t.Errorf("seed = %d, want 42", got.Seed)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero lives", "players:\n  lives: 0\n"},
		{"zero match", "match:\n  matchSeconds: 0\n"},
		{"inverted speed", "spawns:\n  grinch:\n    speedMin: 5\n    speedMax: 1\n"},
		{"zero interval", "spawns:\n  redBall:\n    interval: 0s\n"},
		{"negative world", "world:\n  width: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tuning.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Load error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want os.ErrNotExist", err)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("KATCH_TEST_VALUE", "abc")
	t.Setenv("KATCH_TEST_INT", "12")
	t.Setenv("KATCH_TEST_BAD_INT", "x")

	if got := GetEnv("KATCH_TEST_VALUE", "d"); got != "abc" {
		t.Errorf("GetEnv = %q", got)
	}
	if got := GetEnv("KATCH_TEST_UNSET", "d"); got != "d" {
		t.Errorf("GetEnv fallback = %q", got)
	}
	if got := GetEnvInt("KATCH_TEST_INT", 1); got != 12 {
		t.Errorf("GetEnvInt = %d", got)
	}
	if got := GetEnvInt("KATCH_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvInt bad value = %d", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("KATCH_DOTENV_A=from-file\nKATCH_DOTENV_B=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KATCH_DOTENV_B", "from-process")
	os.Unsetenv("KATCH_DOTENV_A")
	t.Cleanup(func() { os.Unsetenv("KATCH_DOTENV_A") })

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("KATCH_DOTENV_A"); got != "from-file" {
		t.Errorf("A = %q, want from-file", got)
	}
	if got := os.Getenv("KATCH_DOTENV_B"); got != "from-process" {
		t.Errorf("B = %q, want from-process", got)
	}
}
