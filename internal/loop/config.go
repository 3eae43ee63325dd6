package loop

import "time"

// Max render resolution. Larger terminals get a centered, bordered area.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Shutdown
const (
	ShutdownDisplay = 10 * time.Second // shutdown message shown before auto-disconnect
)

// Inactivity, only counted while nobody is playing.
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)

// blinkPeriod is the on/off period of blinking prompts.
const blinkPeriod = 600 * time.Millisecond
