package input

import (
	"bufio"
	"io"
	"slices"
	"strings"
	"testing"
	"time"
)

func newTestStream(data string) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
	return s
}

func TestReadInputKeys(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []Key
	}{
		{"right arrow", "\x1b[C", []Key{KeyP1Right}},
		{"left arrow", "\x1b[D", []Key{KeyP1Left}},
		{"player two", "aD", []Key{KeyP2Left, KeyP2Right}},
		{"enter", "\r", []Key{KeyEnter}},
		{"gate answers", "Yn", []Key{KeyYes, KeyNo}},
		{"ctrl-c", "\x03", []Key{KeyQuit}},
		{"up arrow ignored", "\x1b[A", nil},
		{"combination", "\x1b[Dd", []Key{KeyP1Left, KeyP2Right}},
		{"unbound", "xz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestStream(tt.data).read(time.Now())
			var got []Key
			for k := range keyCount {
				if in.Held(k) {
					got = append(got, k)
				}
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("held = %v, want %v", got, tt.want)
			}
			if string(in.Pressed) != tt.data {
				t.Fatalf("pressed = %q, want %q", in.Pressed, tt.data)
			}
		})
	}
}

func TestHoldWindow(t *testing.T) {
	s := newTestStream("a")
	t0 := time.Now()
	if !s.read(t0).Held(KeyP2Left) {
		t.Fatal("key not held on press")
	}
	// Bridges the auto-repeat delay.
	if !s.read(t0.Add(400 * time.Millisecond)).Held(KeyP2Left) {
		t.Fatal("key released before auto-repeat")
	}

	s.ch <- 'a'
	t1 := t0.Add(500 * time.Millisecond)
	s.read(t1)
	if !s.read(t1.Add(50 * time.Millisecond)).Held(KeyP2Left) {
		t.Fatal("repeating key released early")
	}
	if s.read(t1.Add(100 * time.Millisecond)).Held(KeyP2Left) {
		t.Fatal("key still held after repeats stopped")
	}
}

func TestClosedStreamQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("d")))
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		in := ReadInput(s)
		if in.Closed {
			if !in.Quit() {
				t.Fatal("closed input does not quit")
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("stream never reported closed")
}

func TestTrackerEdges(t *testing.T) {
	var tr Tracker
	s := newTestStream("\x1b[C")
	t0 := time.Now()

	down, up := tr.Diff(s.read(t0))
	if !slices.Equal(down, []Key{KeyP1Right}) || len(up) != 0 {
		t.Fatalf("press: down=%v up=%v", down, up)
	}
	down, up = tr.Diff(s.read(t0.Add(10 * time.Millisecond)))
	if len(down) != 0 || len(up) != 0 {
		t.Fatalf("hold: down=%v up=%v", down, up)
	}
	down, up = tr.Diff(s.read(t0.Add(time.Second)))
	if len(down) != 0 || !slices.Equal(up, []Key{KeyP1Right}) {
		t.Fatalf("release: down=%v up=%v", down, up)
	}
}

func TestKeyNames(t *testing.T) {
	want := map[Key]string{KeyP1Left: "ArrowLeft", KeyP1Right: "ArrowRight", KeyP2Left: "a", KeyP2Right: "d", KeyEnter: "Enter"}
	for k, name := range want {
		if k.Name() != name {
			t.Errorf("%d.Name() = %q, want %q", k, k.Name(), name)
		}
	}
	if Key(99).Name() != "" {
		t.Error("out-of-range key has a name")
	}
}

func TestOf(t *testing.T) {
	in := Of(KeyEnter, KeyP2Left)
	if !in.Held(KeyEnter) || !in.Held(KeyP2Left) || in.Held(KeyQuit) {
		t.Fatal("Of held set wrong")
	}
	if !in.Active() {
		t.Fatal("Of input not active")
	}
	if Of().Active() {
		t.Fatal("empty input active")
	}
}

func TestStopReleasesReader(t *testing.T) {
	pr, pw := io.Pipe()
	defer pr.Close()
	s := StartStream(bufio.NewReader(pr))
	s.Stop()

	// More bytes than the buffer holds; nobody drains the stream.
	go func() {
		_, _ = pw.Write(make([]byte, 1024))
	}()

	select {
	case <-s.exited:
	case <-time.After(2 * time.Second):
		t.Fatal("reader goroutine still running after Stop")
	}
	if in := s.read(time.Now()); !in.Closed {
		t.Fatal("stopped stream does not read as closed")
	}
	s.Stop()
}
