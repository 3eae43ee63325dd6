// Package save keeps a short history of finished matches on disk.
package save

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/tomz197/katchnrun/internal/game"
)

const (
	historyObject   = "history"
	historyProperty = "matches"

	// DefaultLimit is the number of results kept when none is given.
	DefaultLimit = 50
)

// Result is one finished match.
type Result struct {
	PlayedAt time.Time `yaml:"playedAt"`
	Reason   string    `yaml:"reason"`
	Winner   int       `yaml:"winner"` // zero-based, -1 on a draw
	Draw     bool      `yaml:"draw"`
	Scores   []int     `yaml:"scores"`
	Lives    []int     `yaml:"lives"`
}

// FromOutcome converts a match outcome into a storable result.
func FromOutcome(o game.Outcome, at time.Time) Result {
	return Result{
		PlayedAt: at,
		Reason:   o.Reason.String(),
		Winner:   o.Winner,
		Draw:     o.Draw,
		Scores:   slices.Clone(o.Scores),
		Lives:    slices.Clone(o.Lives),
	}
}

// TopScore returns the highest score in the result.
func (r Result) TopScore() int {
	if len(r.Scores) == 0 {
		return 0
	}
	return slices.Max(r.Scores)
}

// Store holds the match history. A Store with no gdata manager keeps the
// history in memory only. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	manager *gdata.Manager
	history []Result
	limit   int
	logger  *log.Logger
}

// Open creates a store backed by the per-user data directory of appName.
// When the directory cannot be opened the store falls back to memory.
func Open(appName string, logger *log.Logger) *Store {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("match history not persisted", "err", err)
		manager = nil
	}
	s, err := NewStore(manager, DefaultLimit, logger)
	if err != nil {
		logger.Warn("could not load match history", "err", err)
	}
	return s
}

// NewStore creates a store and loads any saved history. manager may be nil.
// A load error is returned alongside a usable, empty store.
func NewStore(manager *gdata.Manager, limit int, logger *log.Logger) (*Store, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	s := &Store{manager: manager, limit: limit, logger: logger}
	if err := s.load(); err != nil {
		return s, err
	}
	return s, nil
}

// Persistent reports whether results survive a restart.
func (s *Store) Persistent() bool { return s.manager != nil }

func (s *Store) load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(historyObject, historyProperty) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(historyObject, historyProperty)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	var history []Result
	if err := yaml.Unmarshal(data, &history); err != nil {
		return fmt.Errorf("unmarshal history: %w", err)
	}
	s.history = history
	s.logger.Debug("match history loaded", "matches", len(history))
	return nil
}

// Record appends a result, drops the oldest entries past the limit and
// writes the history out.
func (s *Store) Record(r Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, r)
	if over := len(s.history) - s.limit; over > 0 {
		s.history = slices.Delete(s.history, 0, over)
	}
	if s.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(s.history)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := s.manager.SaveObjectProp(historyObject, historyProperty, data); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// History returns the stored results, oldest first.
func (s *Store) History() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// Best returns the result with the highest single score.
func (s *Store) Best() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return Result{}, false
	}
	best := s.history[0]
	for _, r := range s.history[1:] {
		if r.TopScore() > best.TopScore() {
			best = r
		}
	}
	return best, true
}
