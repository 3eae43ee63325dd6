// Package input turns raw terminal bytes into held keys.
//
// Terminals only report presses (and auto-repeats), never releases, so a key
// counts as held for a short window after each byte it produced. Tracker then
// turns the held set into press and release edges.
package input

import (
	"bufio"
	"sync"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// It has to bridge the gap between the first press and the keyboard's
// auto-repeat.
const keyHoldDuration = 550 * time.Millisecond

// repeatHoldDuration is the window used once a key is auto-repeating.
const repeatHoldDuration = 80 * time.Millisecond

// Key is a key the game reacts to.
type Key int

const (
	KeyP1Left Key = iota
	KeyP1Right
	KeyP2Left
	KeyP2Right
	KeyEnter
	KeyYes
	KeyNo
	KeyQuit

	keyCount
)

// keyNames are the browser-style names the game core binds to.
var keyNames = [keyCount]string{
	KeyP1Left:  "ArrowLeft",
	KeyP1Right: "ArrowRight",
	KeyP2Left:  "a",
	KeyP2Right: "d",
	KeyEnter:   "Enter",
	KeyYes:     "y",
	KeyNo:      "n",
	KeyQuit:    "q",
}

// Name returns the key's name as understood by game.KeyDown.
func (k Key) Name() string {
	if k < 0 || k >= keyCount {
		return ""
	}
	return keyNames[k]
}

func (k Key) String() string { return k.Name() }

// Input represents the current frame's input state.
type Input struct {
	held    [keyCount]bool
	Closed  bool   // the byte source is gone
	Pressed []byte // raw bytes read this frame
}

// Of returns an Input with the given keys held, as if typed this frame.
func Of(keys ...Key) Input {
	var in Input
	for _, k := range keys {
		if k >= 0 && k < keyCount {
			in.held[k] = true
			in.Pressed = append(in.Pressed, 0)
		}
	}
	return in
}

// Held reports whether k is down this frame.
func (in Input) Held(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	return in.held[k]
}

// Quit reports whether the player asked to leave or the input went away.
func (in Input) Quit() bool {
	return in.Closed || in.held[KeyQuit]
}

// Active reports whether anything was typed this frame.
func (in Input) Active() bool {
	return len(in.Pressed) > 0
}

// keyState tracks the first and last time each key was seen.
type keyState struct {
	first [keyCount]time.Time
	last  [keyCount]time.Time
}

func (ks *keyState) press(k Key, now time.Time) {
	if now.Sub(ks.last[k]) >= ks.window(k) {
		ks.first[k] = now
	}
	ks.last[k] = now
}

// window is the hold window of k: long until the key has repeated once,
// short afterwards so a release is noticed quickly.
func (ks *keyState) window(k Key) time.Duration {
	if ks.last[k].After(ks.first[k]) {
		return repeatHoldDuration
	}
	return keyHoldDuration
}

func (ks *keyState) held(k Key, now time.Time) bool {
	if ks.last[k].IsZero() {
		return false
	}
	return now.Sub(ks.last[k]) < ks.window(k)
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch       chan byte
	done     chan struct{} // closed by Stop
	exited   chan struct{} // closed when the reader goroutine returns
	stopOnce sync.Once
	state    keyState
	closed   bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream until r fails or Stop is called.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:     make(chan byte, 128),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go func() {
		defer close(s.exited)
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Stop releases the reader goroutine. It returns at its next byte instead of
// blocking on a full buffer nobody drains. The stream reads as closed
// afterwards.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	s.closed = true
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				s.state.press(KeyP1Right, now)
				i += 2
				continue
			case 'D':
				s.state.press(KeyP1Left, now)
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			}
		}

		if k, ok := byteKey(b); ok {
			s.state.press(k, now)
		}
	}

	in := Input{Closed: s.closed, Pressed: buf}
	for k := range keyCount {
		in.held[k] = s.state.held(k, now)
	}
	return in
}

// byteKey maps a single byte to a key.
func byteKey(b byte) (Key, bool) {
	switch b {
	case 'q', 'Q', '\x03':
		return KeyQuit, true
	case 'a', 'A':
		return KeyP2Left, true
	case 'd', 'D':
		return KeyP2Right, true
	case 'y', 'Y':
		return KeyYes, true
	case 'n', 'N':
		return KeyNo, true
	case '\n', '\r':
		return KeyEnter, true
	}
	return 0, false
}

// Tracker turns successive held sets into press and release edges.
type Tracker struct {
	prev [keyCount]bool
}

// Diff returns the keys that went down and the keys that came up since the
// previous call.
func (t *Tracker) Diff(in Input) (down, up []Key) {
	for k := range keyCount {
		now := in.held[k]
		switch {
		case now && !t.prev[k]:
			down = append(down, k)
		case !now && t.prev[k]:
			up = append(up, k)
		}
		t.prev[k] = now
	}
	return down, up
}
