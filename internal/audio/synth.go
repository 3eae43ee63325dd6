package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// sweep is a sine tone gliding linearly from one frequency to another, with a
// short attack and a linear release over its whole length.
type sweep struct {
	sr       beep.SampleRate
	from, to float64
	total    int
	attack   int
	pos      int
	phase    float64
}

func newSweep(sr beep.SampleRate, from, to float64, d time.Duration) *sweep {
	return &sweep{sr: sr, from: from, to: to, total: sr.N(d), attack: sr.N(5 * time.Millisecond)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		p := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*p

		env := 1 - p
		if s.pos < s.attack {
			env *= float64(s.pos) / float64(s.attack)
		}
		v := 0.4 * env * math.Sin(2*math.Pi*s.phase)

		samples[i][0] = v
		samples[i][1] = v
		s.phase += freq / float64(s.sr)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// note is one step of a melody; a zero frequency is a rest.
type note struct {
	freq  float64
	beats float64
}

const (
	noteC5 = 523.25
	noteD5 = 587.33
	noteE5 = 659.25
	noteF5 = 698.46
	noteG5 = 783.99
)

var jingle = []note{
	{noteE5, 1}, {noteE5, 1}, {noteE5, 2},
	{noteE5, 1}, {noteE5, 1}, {noteE5, 2},
	{noteE5, 1}, {noteG5, 1}, {noteC5, 1.5}, {noteD5, 0.5}, {noteE5, 4},
	{noteF5, 1}, {noteF5, 1}, {noteF5, 1.5}, {noteF5, 0.5},
	{noteF5, 1}, {noteE5, 1}, {noteE5, 1}, {noteE5, 0.5}, {noteE5, 0.5},
	{noteE5, 1}, {noteD5, 1}, {noteD5, 1}, {noteE5, 1}, {noteD5, 2}, {noteG5, 2},
}

// melody loops a note sequence forever. Each note is a plucked square-ish
// tone that decays over its length.
type melody struct {
	sr    beep.SampleRate
	notes []note
	beat  int // samples per beat
	idx   int
	pos   int // position within the current note
	phase float64
}

func newMelody(sr beep.SampleRate, notes []note, bpm float64) *melody {
	return &melody{sr: sr, notes: notes, beat: sr.N(time.Duration(float64(time.Minute) / bpm))}
}

func (m *melody) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		cur := m.notes[m.idx]
		length := int(cur.beats * float64(m.beat))
		if m.pos >= length {
			m.idx = (m.idx + 1) % len(m.notes)
			m.pos = 0
			cur = m.notes[m.idx]
		}

		v := 0.0
		if cur.freq > 0 {
			t := float64(m.pos) / float64(m.sr)
			env := math.Exp(-t * 6)
			v = 0.12 * env * (math.Sin(2*math.Pi*m.phase) + 0.3*math.Sin(6*math.Pi*m.phase))
			m.phase += cur.freq / float64(m.sr)
			m.phase -= math.Floor(m.phase)
		}
		samples[i][0] = v
		samples[i][1] = v
		m.pos++
	}
	return len(samples), true
}

func (m *melody) Err() error { return nil }

// withVolume scales a stream linearly. math.Log2(0) is -Inf, so zero or
// negative volume is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// cueStreamer builds a finite streamer for a one-shot cue.
func cueStreamer(sr beep.SampleRate, cue Cue) beep.Streamer {
	switch cue {
	case CueDamage:
		return newSweep(sr, 220, 70, 250*time.Millisecond)
	case CueCash:
		return beep.Seq(
			newSweep(sr, 988, 988, 80*time.Millisecond),
			newSweep(sr, 1319, 1319, 220*time.Millisecond),
		)
	case CueSlow:
		return newSweep(sr, 600, 150, 450*time.Millisecond)
	case CueMorePoints:
		return beep.Seq(
			newSweep(sr, noteC5, noteC5, 70*time.Millisecond),
			newSweep(sr, noteE5, noteE5, 70*time.Millisecond),
			newSweep(sr, noteG5, noteG5, 70*time.Millisecond),
			newSweep(sr, 2*noteC5, 2*noteC5, 180*time.Millisecond),
		)
	case CueSteal:
		return beep.Seq(
			newSweep(sr, 900, 400, 100*time.Millisecond),
			newSweep(sr, 900, 400, 100*time.Millisecond),
		)
	case CueSpeedBoost:
		return newSweep(sr, 300, 1400, 350*time.Millisecond)
	}
	return nil
}
