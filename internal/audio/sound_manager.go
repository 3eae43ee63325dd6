package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager plays cues through the system speaker. Until Initialize
// succeeds every call is a silent no-op, so a machine without an audio
// device still runs the game.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	volume      float64
	initialized bool
	logger      *log.Logger
}

var _ Sink = (*SoundManager)(nil)

// NewSoundManager creates a sound manager with a master volume in [0, 1].
func NewSoundManager(volume float64, logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.Default()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play starts a cue. CueMusic starts the background loop unless it is already
// playing; every other cue is mixed in once.
func (sm *SoundManager) Play(cue Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if cue == CueMusic {
		if sm.music != nil {
			speaker.Lock()
			sm.music.Paused = false
			speaker.Unlock()
			return
		}
		sm.music = &beep.Ctrl{Streamer: withVolume(newMelody(sampleRate, jingle, 200), sm.volume)}
		speaker.Lock()
		sm.mixer.Add(sm.music)
		speaker.Unlock()
		return
	}

	s := cueStreamer(sampleRate, cue)
	if s == nil {
		sm.logger.Debug("unknown sound cue", "cue", cue)
		return
	}
	speaker.Lock()
	sm.mixer.Add(withVolume(s, sm.volume))
	speaker.Unlock()
}

// SetPaused pauses or resumes the background music.
func (sm *SoundManager) SetPaused(paused bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.music == nil {
		return
	}
	speaker.Lock()
	sm.music.Paused = paused
	speaker.Unlock()
}

// StopMusic stops the background loop.
func (sm *SoundManager) StopMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.music == nil {
		return
	}
	speaker.Lock()
	sm.music.Paused = true
	sm.music.Streamer = nil
	speaker.Unlock()
	sm.music = nil
}

// Close silences everything and closes the speaker.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.music = nil
	sm.initialized = false
}
