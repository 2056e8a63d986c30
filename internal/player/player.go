// Package player mediates all interaction with the background-music track:
// mount-time autoplay, play/pause toggling and volume.
package player

import (
	"context"
	"log"
	"sync"
)

type request struct {
	seq      uint64
	target   Status
	autoplay bool
}

// Controller owns the playback state of one Resource.
type Controller struct {
	mu       sync.Mutex
	notifyMu sync.Mutex

	res    Resource
	cancel context.CancelFunc
	wake   chan struct{}
	queue  []request
	seq    uint64
	wg     sync.WaitGroup

	status   Status
	target   Status
	settled  Status
	autoplay bool
	volume   float64

	logger   *log.Logger
	onChange func(State)
}

// Option configures a Controller.
type Option func(*Controller)

// WithVolume sets the initial volume, clamped to [0, 1].
func WithVolume(v float64) Option {
	return func(c *Controller) {
		if v, ok := ClampVolume(v); ok {
			c.volume = v
		}
	}
}

// WithLogger routes diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns an unmounted, paused controller at DefaultVolume.
func New(opts ...Option) *Controller {
	c := &Controller{
		volume: DefaultVolume,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers fn to receive every state change, in order. fn runs
// synchronously and must not call back into the controller.
func (c *Controller) OnChange(fn func(State)) {
	c.notifyMu.Lock()
	c.onChange = fn
	c.notifyMu.Unlock()
}

// Mount takes ownership of res, applies the current volume and starts an
// autoplay attempt. It never blocks on the attempt and never fails: a
// blocked autoplay only leaves the controller paused. Cancelling ctx has
// the same effect as Unmount.
func (c *Controller) Mount(ctx context.Context, res Resource) {
	c.Unmount()
	if res == nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	wake := make(chan struct{}, 1)

	c.mu.Lock()
	c.res = res
	c.cancel = cancel
	c.wake = wake
	c.queue = nil
	c.status, c.settled = Paused, Paused
	if err := res.SetVolume(c.volume); err != nil {
		c.logger.Printf("player: set volume: %v", err)
	}
	c.wg.Add(1)
	go c.run(ctx, res, wake)
	c.enqueueLocked(Playing, true)
	c.publishLocked()
}

// Unmount cancels any outstanding request, closes the resource and waits
// for the request worker to exit. Observers see the controller return to
// Paused. Safe to call more than once, including while the autoplay
// attempt is still pending.
func (c *Controller) Unmount() {
	c.mu.Lock()
	res, cancel := c.res, c.cancel
	if res == nil {
		c.mu.Unlock()
		return
	}
	c.detachLocked()
	c.publishLocked()

	cancel()
	if err := res.Close(); err != nil {
		c.logger.Printf("player: close: %v", err)
	}
	c.wg.Wait()
}

// release is the worker's exit path. When the Mount context ends without
// an Unmount, the controller detaches and closes res itself.
func (c *Controller) release(res Resource) {
	c.mu.Lock()
	if c.res != res {
		c.mu.Unlock()
		return
	}
	cancel := c.cancel
	c.detachLocked()
	c.publishLocked()

	cancel()
	if err := res.Close(); err != nil {
		c.logger.Printf("player: close: %v", err)
	}
}

func (c *Controller) detachLocked() {
	c.res = nil
	c.cancel = nil
	c.queue = nil
	c.status, c.settled = Paused, Paused
	c.autoplay = false
}

// HandlePlayPause requests the opposite of what is displayed and flips the
// displayed flag at once. The request is reconciled when the resource
// answers: a failure reverts to the last confirmed state. No-op when
// unmounted.
func (c *Controller) HandlePlayPause() {
	c.mu.Lock()
	if c.res == nil {
		c.mu.Unlock()
		return
	}

	target := Playing
	if c.stateLocked().IsPlaying() {
		target = Paused
	}
	c.enqueueLocked(target, false)
	c.publishLocked()
}

// HandleVolumeChange sets the local and live volume. Out-of-range input is
// clamped; NaN is ignored.
func (c *Controller) HandleVolumeChange(v float64) {
	v, ok := ClampVolume(v)
	if !ok {
		c.logger.Printf("player: ignoring NaN volume")
		return
	}

	c.mu.Lock()
	c.volume = v
	if c.res != nil {
		if err := c.res.SetVolume(v); err != nil {
			c.logger.Printf("player: set volume: %v", err)
		}
	}
	c.publishLocked()
}

// State returns a snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// IsPlaying reports the displayed playing flag.
func (c *Controller) IsPlaying() bool {
	return c.State().IsPlaying()
}

// Volume returns the current volume.
func (c *Controller) Volume() float64 {
	return c.State().Volume
}

// Mounted reports whether a resource is attached.
func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.res != nil
}

func (c *Controller) stateLocked() State {
	st := State{
		Status: c.status,
		Volume: c.volume,
	}
	if c.status == Pending {
		st.Target = c.target
		st.Autoplay = c.autoplay
	}
	return st
}

func (c *Controller) enqueueLocked(target Status, autoplay bool) {
	c.seq++
	c.status = Pending
	c.target = target
	c.autoplay = autoplay
	c.queue = append(c.queue, request{seq: c.seq, target: target, autoplay: autoplay})

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// publishLocked hands the snapshot to the observer and releases c.mu.
// notifyMu is taken before c.mu is released so observers see changes in
// the order they were made.
func (c *Controller) publishLocked() {
	st := c.stateLocked()
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	if c.onChange != nil {
		c.onChange(st)
	}
}

// run executes requests in the order they were made.
func (c *Controller) run(ctx context.Context, res Resource, wake <-chan struct{}) {
	defer c.wg.Done()
	defer c.release(res)

	for {
		select {
		case <-ctx.Done():
			return
		case <-wake:
		}

		for ctx.Err() == nil {
			c.mu.Lock()
			if c.res != res || len(c.queue) == 0 {
				c.mu.Unlock()
				break
			}
			req := c.queue[0]
			c.queue = c.queue[1:]
			c.mu.Unlock()

			var err error
			if req.target == Playing {
				err = res.Play(ctx)
			} else {
				err = res.Pause(ctx)
			}
			if ctx.Err() != nil {
				return
			}
			c.complete(res, req, err)
		}
	}
}

func (c *Controller) complete(res Resource, req request, err error) {
	c.mu.Lock()
	if c.res != res {
		c.mu.Unlock()
		return
	}

	if err == nil {
		c.settled = req.target
	}

	if req.seq != c.seq {
		// Superseded by a newer request.
		if err != nil {
			c.logger.Printf("player: superseded %s request failed: %v", verb(req.target), err)
		}
		c.mu.Unlock()
		return
	}

	switch {
	case err == nil:
		c.status = req.target
	case req.autoplay:
		c.logger.Printf("player: autoplay prevented: %v", err)
		c.status = c.settled
	default:
		c.logger.Printf("player: %s request failed: %v", verb(req.target), err)
		c.status = c.settled
	}
	c.autoplay = false
	c.publishLocked()
}

func verb(target Status) string {
	if target == Playing {
		return "play"
	}
	return "pause"
}
