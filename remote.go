package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/Archna-29/portfolio/internal/player"
)

// audioCommand drives the page's <audio> element.
type audioCommand struct {
	Type   string  `json:"type"`
	ID     uint64  `json:"id,omitempty"`
	Op     string  `json:"op"`
	Volume float64 `json:"volume"`
}

// remoteAudio is the browser's <audio> element seen from the server. Play
// and Pause wait for the page to report how audio.play()/audio.pause()
// settled; a blocked autoplay comes back as NotAllowedError.
type remoteAudio struct {
	send func(v any) error

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]chan error
	volume  float64
	closed  bool
}

func newRemoteAudio(send func(v any) error) *remoteAudio {
	return &remoteAudio{
		send:    send,
		pending: make(map[uint64]chan error),
	}
}

func (a *remoteAudio) SetVolume(v float64) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return player.ErrClosed
	}
	a.volume = v
	a.mu.Unlock()

	return a.send(audioCommand{Type: "audio", Op: "volume", Volume: v})
}

func (a *remoteAudio) Play(ctx context.Context) error {
	return a.request(ctx, "play")
}

func (a *remoteAudio) Pause(ctx context.Context) error {
	return a.request(ctx, "pause")
}

func (a *remoteAudio) request(ctx context.Context, op string) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return player.ErrClosed
	}
	a.nextID++
	id := a.nextID
	done := make(chan error, 1)
	a.pending[id] = done
	volume := a.volume
	a.mu.Unlock()

	if err := a.send(audioCommand{Type: "audio", ID: id, Op: op, Volume: volume}); err != nil {
		a.forget(id)
		return fmt.Errorf("sending %s: %w", op, err)
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		a.forget(id)
		return ctx.Err()
	}
}

// resolve completes request id with the page's error name, empty on success.
func (a *remoteAudio) resolve(id uint64, errMsg string) {
	a.mu.Lock()
	done, ok := a.pending[id]
	delete(a.pending, id)
	a.mu.Unlock()

	if !ok {
		return
	}
	if errMsg != "" {
		done <- fmt.Errorf("browser: %s", errMsg)
		return
	}
	done <- nil
}

func (a *remoteAudio) forget(id uint64) {
	a.mu.Lock()
	delete(a.pending, id)
	a.mu.Unlock()
}

// Close fails every outstanding request and asks the page to stop. The
// stop is best effort: the socket is usually already gone.
func (a *remoteAudio) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	pending := a.pending
	a.pending = make(map[uint64]chan error)
	a.mu.Unlock()

	for _, done := range pending {
		done <- player.ErrClosed
	}
	_ = a.send(audioCommand{Type: "audio", Op: "stop"})
	return nil
}

// outstanding returns the number of requests still waiting on the page.
func (a *remoteAudio) outstanding() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}
