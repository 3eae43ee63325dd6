package game

import (
	"time"

	"github.com/tomz197/katchnrun/internal/clock"
)

type cooldownKey struct {
	entity uint64
	player int
}

// cooldowns remembers recent goblin hits per (entity, player) pair. Entries
// expire after delay on the game clock.
type cooldowns struct {
	clock  *clock.Scheduler
	delay  time.Duration
	active map[cooldownKey]struct{}
}

func newCooldowns(clk *clock.Scheduler, delay time.Duration) *cooldowns {
	return &cooldowns{clock: clk, delay: delay, active: make(map[cooldownKey]struct{})}
}

// acquire records a hit and returns true, or returns false if the pair is
// still cooling down.
func (c *cooldowns) acquire(entity uint64, player int) bool {
	k := cooldownKey{entity: entity, player: player}
	if _, ok := c.active[k]; ok {
		return false
	}
	c.active[k] = struct{}{}
	c.clock.After(ownerCooldown, c.delay, func() {
		delete(c.active, k)
	})
	return true
}

func (c *cooldowns) isActive(entity uint64, player int) bool {
	_, ok := c.active[cooldownKey{entity: entity, player: player}]
	return ok
}

func (c *cooldowns) size() int { return len(c.active) }

func (c *cooldowns) reset() { clear(c.active) }
