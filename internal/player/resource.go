package player

import (
	"context"
	"errors"
)

var (
	// ErrClosed is returned by a resource that has been released.
	ErrClosed = errors.New("audio resource closed")
	// ErrNoDevice is returned when no output device could be opened.
	ErrNoDevice = errors.New("no audio output device")
)

// Resource is the single looping audio track the controller owns.
//
// Play and Pause may block until the host confirms; the controller calls
// them from its own goroutine. SetVolume must not block. Close stops
// playback, releases the track and unblocks any outstanding Play or Pause.
type Resource interface {
	SetVolume(v float64) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Close() error
}
