// Package clock provides a frame-driven scheduler for periodic ticks and
// delayed callbacks.
//
// Time never advances on its own: the owner calls Advance once per frame with
// the elapsed delta, and due callbacks run synchronously on the caller's
// goroutine. This keeps every game mutation on the frame goroutine and makes
// timer behavior fully deterministic in tests.
package clock

import "time"

// ID identifies a scheduled task.
type ID uint64

// Owner groups tasks so they can be cancelled together.
type Owner string

type task struct {
	id       ID
	owner    Owner
	due      time.Duration
	interval time.Duration // 0 for one-shot tasks
	seq      uint64        // tie-breaker for equal due times
	fn       func()
	dead     bool
}

// Scheduler runs callbacks against a virtual clock.
// It is not safe for concurrent use.
type Scheduler struct {
	now    time.Duration
	tasks  []*task
	byID   map[ID]*task
	nextID ID
	seq    uint64
	paused bool
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{byID: make(map[ID]*task)}
}

// Now returns the virtual time elapsed since the scheduler was created,
// excluding time spent paused.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of live tasks.
func (s *Scheduler) Pending() int {
	return len(s.byID)
}

// Every schedules fn to run every interval, first at now+interval.
func (s *Scheduler) Every(owner Owner, interval time.Duration, fn func()) ID {
	if interval <= 0 {
		panic("clock: non-positive interval")
	}
	return s.add(owner, interval, interval, fn)
}

// After schedules fn to run once, delay from now.
func (s *Scheduler) After(owner Owner, delay time.Duration, fn func()) ID {
	if delay < 0 {
		delay = 0
	}
	return s.add(owner, delay, 0, fn)
}

func (s *Scheduler) add(owner Owner, delay, interval time.Duration, fn func()) ID {
	s.nextID++
	s.seq++
	t := &task{
		id:       s.nextID,
		owner:    owner,
		due:      s.now + delay,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
	}
	s.tasks = append(s.tasks, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel stops a task. Returns false if it already fired (one-shot) or was
// cancelled before.
func (s *Scheduler) Cancel(id ID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	s.kill(t)
	return true
}

// CancelOwner stops every task registered by owner and returns how many were live.
func (s *Scheduler) CancelOwner(owner Owner) int {
	n := 0
	for _, t := range s.tasks {
		if !t.dead && t.owner == owner {
			s.kill(t)
			n++
		}
	}
	return n
}

// CancelAll stops every live task and returns how many there were.
func (s *Scheduler) CancelAll() int {
	n := 0
	for _, t := range s.tasks {
		if !t.dead {
			s.kill(t)
			n++
		}
	}
	s.tasks = s.tasks[:0]
	return n
}

func (s *Scheduler) kill(t *task) {
	t.dead = true
	delete(s.byID, t.id)
}

// Pause freezes the clock. Advance is a no-op until Resume.
func (s *Scheduler) Pause() {
	s.paused = true
}

// Resume unfreezes the clock.
func (s *Scheduler) Resume() {
	s.paused = false
}

// Paused reports whether the clock is frozen.
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Advance moves the clock forward by dt and runs every task that falls due,
// in due order. A periodic task that fell behind runs once per missed
// interval. Tasks scheduled by a callback run in the same call if they fall
// due within the window; tasks cancelled by a callback never run.
// Returns the number of callbacks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if s.paused || dt <= 0 {
		return 0
	}
	target := s.now + dt
	fired := 0
	for {
		t := s.next(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.interval > 0 {
			t.due += t.interval
			s.seq++
			t.seq = s.seq
		} else {
			s.kill(t)
		}
		t.fn()
		fired++
	}
	s.now = target
	s.compact()
	return fired
}

// next returns the earliest live task due at or before limit.
func (s *Scheduler) next(limit time.Duration) *task {
	var best *task
	for _, t := range s.tasks {
		if t.dead || t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.dead {
			kept = append(kept, t)
		}
	}
	clear(s.tasks[len(kept):])
	s.tasks = kept
}
