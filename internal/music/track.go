// Package music plays the looping background track on the local audio
// device. Track implements player.Resource.
package music

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/Archna-29/portfolio/internal/player"
)

const sampleRate = beep.SampleRate(44100)

// Output is the sink a Track plays into.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	if err := speaker.Init(sr, bufferSize); err != nil {
		return fmt.Errorf("%w: %v", player.ErrNoDevice, err)
	}
	return nil
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Lock()                { speaker.Lock() }
func (speakerOutput) Unlock()              { speaker.Unlock() }
func (speakerOutput) Close()               { speaker.Close() }

// Speaker is the system audio device.
var Speaker Output = speakerOutput{}

// Track is a looping audio file. Nothing is read from disk until the first
// Play.
type Track struct {
	path string
	out  Output

	mu     sync.Mutex
	level  float64
	ctrl   *beep.Ctrl
	volume *effects.Volume
	file   beep.StreamSeekCloser
	opened bool
	closed bool
}

// NewTrack returns a track for the mp3 or wav file at path, played on out.
func NewTrack(path string, out Output) *Track {
	if out == nil {
		out = Speaker
	}
	return &Track{path: path, out: out, level: player.DefaultVolume}
}

// SetVolume implements player.Resource.
func (t *Track) SetVolume(v float64) error {
	level, ok := player.ClampVolume(v)
	if !ok {
		return fmt.Errorf("invalid volume %v", v)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return player.ErrClosed
	}
	t.level = level
	if t.volume != nil {
		t.out.Lock()
		applyLevel(t.volume, level)
		t.out.Unlock()
	}
	return nil
}

// Play implements player.Resource. The first call decodes the file and
// opens the output device; either failing is reported as an error and
// leaves the track paused.
func (t *Track) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return player.ErrClosed
	}
	if !t.opened {
		if err := t.openLocked(); err != nil {
			return err
		}
	}
	t.out.Lock()
	t.ctrl.Paused = false
	t.out.Unlock()
	return nil
}

// Pause implements player.Resource.
func (t *Track) Pause(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return player.ErrClosed
	}
	if t.ctrl == nil {
		return nil
	}
	t.out.Lock()
	t.ctrl.Paused = true
	t.out.Unlock()
	return nil
}

// Close implements player.Resource.
func (t *Track) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true

	if !t.opened {
		return nil
	}
	t.out.Lock()
	t.ctrl.Paused = true
	t.ctrl.Streamer = nil
	t.out.Unlock()
	t.out.Close()
	return t.file.Close()
}

// Playing reports whether the track is currently audible.
func (t *Track) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ctrl == nil || t.closed {
		return false
	}
	t.out.Lock()
	defer t.out.Unlock()
	return !t.ctrl.Paused
}

func (t *Track) openLocked() error {
	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("opening track: %w", err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(t.path)) {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("unsupported track format %q", filepath.Ext(t.path))
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("decoding track: %w", err)
	}

	if err := t.out.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		stream.Close()
		return err
	}

	var s beep.Streamer = beep.Loop(-1, stream)
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, s)
	}

	t.volume = &effects.Volume{Streamer: s, Base: 2}
	applyLevel(t.volume, t.level)
	t.ctrl = &beep.Ctrl{Streamer: t.volume, Paused: true}
	t.file = stream
	t.opened = true

	t.out.Play(t.ctrl)
	return nil
}

// applyLevel maps a linear level in [0, 1] onto a base-2 gain.
func applyLevel(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(level)
}
