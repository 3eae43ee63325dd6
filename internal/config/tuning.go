package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned (wrapped) when a tuning value is out of range.
var ErrInvalid = errors.New("invalid tuning")

// Tuning holds every gameplay parameter. Default returns the values of the
// original Christmas event; a YAML file may override any subset of them.
type Tuning struct {
	World   WorldConfig   `yaml:"world"`
	Match   MatchConfig   `yaml:"match"`
	Players PlayerConfig  `yaml:"players"`
	Scoring ScoringConfig `yaml:"scoring"`
	Spawns  SpawnTable    `yaml:"spawns"`
	Goblin  GoblinConfig  `yaml:"goblin"`
	Stars   StarConfig    `yaml:"stars"`

	// Seed for the game's random source. 0 picks a time-based seed.
	Seed int64 `yaml:"seed"`
}

// WorldConfig is the logical play area in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// MatchConfig controls the session lifecycle.
type MatchConfig struct {
	CountdownSeconds int           `yaml:"countdownSeconds"`
	MatchSeconds     int           `yaml:"matchSeconds"`
	GameOverDelay    time.Duration `yaml:"gameOverDelay"` // result screen time before the session ends
}

// PlayerConfig describes the two paddles. Fractions are relative to the world size.
type PlayerConfig struct {
	Lives     int     `yaml:"lives"`
	Size      float64 `yaml:"size"`      // width and height, fraction of world width
	Speed     float64 `yaml:"speed"`     // units per frame, fraction of world width
	BottomGap float64 `yaml:"bottomGap"` // distance from the bottom, fraction of world height
	SlowSpeed float64 `yaml:"slowSpeed"` // absolute units per frame
	FastSpeed float64 `yaml:"fastSpeed"` // absolute units per frame
}

// ScoringConfig holds the fixed effects of the non-random kinds.
type ScoringConfig struct {
	BallPoints     int `yaml:"ballPoints"`
	RedLifeEvery   int `yaml:"redLifeEvery"`
	GreenLifeEvery int `yaml:"greenLifeEvery"`
	CoalDamage     int `yaml:"coalDamage"`
	CanePoints     int `yaml:"canePoints"`
	CaneLives      int `yaml:"caneLives"`
	GrinchPenalty  int `yaml:"grinchPenalty"`
	GrinchDamage   int `yaml:"grinchDamage"`
}

// SpawnConfig describes how one kind of faller is produced.
// Balls use Radius; everything else uses Width and Height as world fractions.
type SpawnConfig struct {
	Interval time.Duration `yaml:"interval"`
	SpeedMin float64       `yaml:"speedMin"`
	SpeedMax float64       `yaml:"speedMax"`
	Radius   float64       `yaml:"radius,omitempty"`
	Width    float64       `yaml:"width,omitempty"`
	Height   float64       `yaml:"height,omitempty"`
}

// SpawnTable has one entry per falling kind.
type SpawnTable struct {
	RedBall   SpawnConfig `yaml:"redBall"`
	GreenBall SpawnConfig `yaml:"greenBall"`
	CandyCane SpawnConfig `yaml:"candyCane"`
	Coal      SpawnConfig `yaml:"coal"`
	Grinch    SpawnConfig `yaml:"grinch"`
	Goblin    SpawnConfig `yaml:"goblin"`
}

// BandConfig maps the half-open interval ending at Upper to an effect name.
// Bands are listed in ascending order; each starts where the previous ended.
type BandConfig struct {
	Effect string  `yaml:"effect"`
	Upper  float64 `yaml:"upper"`
}

// GoblinConfig holds the goblin's random effect table and its magnitudes.
type GoblinConfig struct {
	Cooldown time.Duration `yaml:"cooldown"`
	Bonus    int           `yaml:"bonus"`
	Penalty  int           `yaml:"penalty"`
	LifeGain int           `yaml:"lifeGain"`
	Steal    int           `yaml:"steal"`
	SlowFor  time.Duration `yaml:"slowFor"`
	FastFor  time.Duration `yaml:"fastFor"`
	Bands    []BandConfig  `yaml:"bands"`
}

// StarConfig controls the decorative background.
type StarConfig struct {
	Count    int     `yaml:"count"`
	SpeedMin float64 `yaml:"speedMin"`
	SpeedMax float64 `yaml:"speedMax"`
}

// Default returns the stock tuning.
func Default() *Tuning {
	item := SpawnConfig{SpeedMin: 0.2, SpeedMax: 1.2, Width: 0.03, Height: 0.05}
	return &Tuning{
		World: WorldConfig{Width: 1280, Height: 720},
		Match: MatchConfig{
			CountdownSeconds: 3,
			MatchSeconds:     60,
			GameOverDelay:    10 * time.Second,
		},
		Players: PlayerConfig{
			Lives:     5,
			Size:      0.05,
			Speed:     0.008,
			BottomGap: 0.1,
			SlowSpeed: 1,
			FastSpeed: 22,
		},
		Scoring: ScoringConfig{
			BallPoints:     100,
			RedLifeEvery:   50,
			GreenLifeEvery: 35,
			CoalDamage:     2,
			CanePoints:     2000,
			CaneLives:      1,
			GrinchPenalty:  5000,
			GrinchDamage:   3,
		},
		Spawns: SpawnTable{
			RedBall:   SpawnConfig{Interval: 100 * time.Millisecond, SpeedMin: 0.2, SpeedMax: 1.2, Radius: 10},
			GreenBall: SpawnConfig{Interval: 100 * time.Millisecond, SpeedMin: 0.2, SpeedMax: 1.2, Radius: 10},
			CandyCane: withInterval(item, 2000*time.Millisecond),
			Coal:      withInterval(item, 1500*time.Millisecond),
			Grinch:    SpawnConfig{Interval: 2500 * time.Millisecond, SpeedMin: 2, SpeedMax: 6, Width: 0.06, Height: 0.08},
			Goblin:    SpawnConfig{Interval: 6000 * time.Millisecond, SpeedMin: 0.2, SpeedMax: 0.7, Width: 0.07, Height: 0.1},
		},
		Goblin: GoblinConfig{
			Cooldown: time.Second,
			Bonus:    5000,
			Penalty:  4,
			LifeGain: 3,
			Steal:    5000,
			SlowFor:  10 * time.Second,
			FastFor:  8 * time.Second,
			Bands: []BandConfig{
				{Effect: "bonus", Upper: 0.2},
				{Effect: "penalty", Upper: 0.4},
				{Effect: "life", Upper: 0.6},
				{Effect: "slow", Upper: 0.8},
				{Effect: "steal", Upper: 0.9},
				{Effect: "boost", Upper: 1.0},
			},
		},
		Stars: StarConfig{Count: 100, SpeedMin: 0.2, SpeedMax: 0.7},
	}
}

func withInterval(c SpawnConfig, d time.Duration) SpawnConfig {
	c.Interval = d
	return c
}

// Load reads a YAML tuning file over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate checks value ranges. The goblin band layout is checked by the
// game when it builds its effect table.
func (t *Tuning) Validate() error {
	switch {
	case t.World.Width <= 0 || t.World.Height <= 0:
		return fmt.Errorf("%w: world size %vx%v", ErrInvalid, t.World.Width, t.World.Height)
	case t.Match.CountdownSeconds < 0:
		return fmt.Errorf("%w: countdownSeconds %d", ErrInvalid, t.Match.CountdownSeconds)
	case t.Match.MatchSeconds <= 0:
		return fmt.Errorf("%w: matchSeconds %d", ErrInvalid, t.Match.MatchSeconds)
	case t.Match.GameOverDelay < 0:
		return fmt.Errorf("%w: gameOverDelay %v", ErrInvalid, t.Match.GameOverDelay)
	case t.Players.Lives <= 0:
		return fmt.Errorf("%w: lives %d", ErrInvalid, t.Players.Lives)
	case t.Players.Size <= 0 || t.Players.Size >= 0.5:
		return fmt.Errorf("%w: player size %v", ErrInvalid, t.Players.Size)
	case t.Players.Speed <= 0:
		return fmt.Errorf("%w: player speed %v", ErrInvalid, t.Players.Speed)
	case t.Scoring.RedLifeEvery <= 0 || t.Scoring.GreenLifeEvery <= 0:
		return fmt.Errorf("%w: life thresholds must be positive", ErrInvalid)
	case t.Goblin.Cooldown <= 0:
		return fmt.Errorf("%w: goblin cooldown %v", ErrInvalid, t.Goblin.Cooldown)
	case t.Stars.Count < 0 || t.Stars.SpeedMax < t.Stars.SpeedMin:
		return fmt.Errorf("%w: stars", ErrInvalid)
	}

	spawns := map[string]SpawnConfig{
		"redBall":   t.Spawns.RedBall,
		"greenBall": t.Spawns.GreenBall,
		"candyCane": t.Spawns.CandyCane,
		"coal":      t.Spawns.Coal,
		"grinch":    t.Spawns.Grinch,
		"goblin":    t.Spawns.Goblin,
	}
	for name, s := range spawns {
		if s.Interval <= 0 {
			return fmt.Errorf("%w: spawns.%s.interval %v", ErrInvalid, name, s.Interval)
		}
		if s.SpeedMin < 0 || s.SpeedMax < s.SpeedMin {
			return fmt.Errorf("%w: spawns.%s speed range [%v, %v)", ErrInvalid, name, s.SpeedMin, s.SpeedMax)
		}
		if s.Radius <= 0 && (s.Width <= 0 || s.Height <= 0) {
			return fmt.Errorf("%w: spawns.%s needs a radius or a width and height", ErrInvalid, name)
		}
	}
	if t.Spawns.RedBall.Radius <= 0 || t.Spawns.GreenBall.Radius <= 0 {
		return fmt.Errorf("%w: balls need a radius", ErrInvalid)
	}
	return nil
}
