package clock

import (
	"testing"
	"time"
)

func TestEveryFiresOncePerInterval(t *testing.T) {
	s := New()
	ticks := 0
	s.Every("timer", time.Second, func() { ticks++ })

	s.Advance(999 * time.Millisecond)
	if ticks != 0 {
		t.Fatalf("ticks before first interval = %d, want 0", ticks)
	}
	s.Advance(time.Millisecond)
	if ticks != 1 {
		t.Fatalf("ticks at 1s = %d, want 1", ticks)
	}
	s.Advance(3500 * time.Millisecond)
	if ticks != 4 {
		t.Fatalf("ticks after catch-up = %d, want 4", ticks)
	}
}

func TestAfterFiresOnce(t *testing.T) {
	s := New()
	calls := 0
	s.After("fx", 500*time.Millisecond, func() { calls++ })

	s.Advance(time.Second)
	s.Advance(time.Second)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if s.Pending() != 0 {
		t.Fatalf("pending = %d, want 0", s.Pending())
	}
}

func TestDueOrder(t *testing.T) {
	s := New()
	var order []string
	s.After("a", 300*time.Millisecond, func() { order = append(order, "c") })
	s.After("a", 100*time.Millisecond, func() { order = append(order, "a") })
	s.Every("b", 200*time.Millisecond, func() { order = append(order, "b") })
	s.After("a", 200*time.Millisecond, func() { order = append(order, "b2") })

	s.Advance(400 * time.Millisecond)

	want := []string{"a", "b", "b2", "c", "b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestCancel(t *testing.T) {
	s := New()
	calls := 0
	id := s.Every("x", 100*time.Millisecond, func() { calls++ })
	s.Advance(250 * time.Millisecond)
	if !s.Cancel(id) {
		t.Fatal("Cancel of live task returned false")
	}
	if s.Cancel(id) {
		t.Fatal("second Cancel returned true")
	}
	s.Advance(time.Second)
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestCancelFromCallbackSuppressesLaterTask(t *testing.T) {
	s := New()
	fired := false
	var later ID
	s.After("x", 100*time.Millisecond, func() { s.Cancel(later) })
	later = s.After("x", 200*time.Millisecond, func() { fired = true })

	s.Advance(time.Second)
	if fired {
		t.Fatal("task cancelled by an earlier callback still fired")
	}
}

func TestCallbackScheduledTaskRunsInSameAdvance(t *testing.T) {
	s := New()
	fired := false
	s.After("x", 100*time.Millisecond, func() {
		s.After("x", 100*time.Millisecond, func() { fired = true })
	})
	s.Advance(250 * time.Millisecond)
	if !fired {
		t.Fatal("nested task due inside the window did not fire")
	}
	if s.Now() != 250*time.Millisecond {
		t.Fatalf("Now = %v, want 250ms", s.Now())
	}
}

func TestCancelOwnerAndAll(t *testing.T) {
	s := New()
	s.Every("spawn", time.Second, func() {})
	s.Every("spawn", time.Second, func() {})
	s.After("effect", time.Second, func() {})

	if n := s.CancelOwner("spawn"); n != 2 {
		t.Fatalf("CancelOwner = %d, want 2", n)
	}
	if s.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", s.Pending())
	}
	if n := s.CancelAll(); n != 1 {
		t.Fatalf("CancelAll = %d, want 1", n)
	}
	if s.Advance(time.Minute) != 0 {
		t.Fatal("callbacks ran after CancelAll")
	}
}

func TestPause(t *testing.T) {
	s := New()
	calls := 0
	s.Every("x", 100*time.Millisecond, func() { calls++ })

	s.Pause()
	s.Advance(time.Second)
	if calls != 0 || s.Now() != 0 {
		t.Fatalf("paused clock advanced: calls=%d now=%v", calls, s.Now())
	}
	s.Resume()
	s.Advance(100 * time.Millisecond)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestEveryRejectsZeroInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New().Every("x", 0, func() {})
}
