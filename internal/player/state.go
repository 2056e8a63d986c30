package player

import "math"

// Slider contract for the volume control.
const (
	MinVolume     = 0.0
	MaxVolume     = 1.0
	VolumeStep    = 0.01
	DefaultVolume = 0.5
)

// Status is the playback state of the audio resource.
type Status int

const (
	Paused Status = iota
	Playing
	// Pending means a play or pause request is outstanding; State.Target
	// holds what was asked for.
	Pending
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// State is a snapshot of the controller.
type State struct {
	Status Status
	Target Status
	Volume float64
	// Autoplay is set while the pending request is the mount-time autoplay attempt.
	Autoplay bool
}

// IsPlaying is the flag the view renders. A pending manual request shows
// its target immediately; a pending autoplay attempt shows paused until it
// succeeds.
func (s State) IsPlaying() bool {
	switch s.Status {
	case Playing:
		return true
	case Pending:
		return s.Target == Playing && !s.Autoplay
	default:
		return false
	}
}

// ClampVolume forces v into [MinVolume, MaxVolume]. The second return is
// false for NaN, which callers reject.
func ClampVolume(v float64) (float64, bool) {
	if math.IsNaN(v) {
		return 0, false
	}
	return math.Max(MinVolume, math.Min(MaxVolume, v)), true
}
