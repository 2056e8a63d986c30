// Package layout derives the sidebar presentation mode from the page scroll offset.
package layout

import "sync"

// Threshold is the scroll offset past which the sidebar compacts.
const Threshold = 100.0

// Mode is the presentation variant selected by scroll position.
type Mode int

const (
	Expanded Mode = iota
	Compact
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Expanded:
		return "Expanded"
	case Compact:
		return "Compact"
	default:
		return "Unknown"
	}
}

// Source delivers scroll offsets. Subscribe returns the function that
// releases the subscription.
type Source interface {
	Subscribe(fn func(y float64)) (unsubscribe func())
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(fn func(y float64)) func()

// Subscribe implements Source.
func (f SourceFunc) Subscribe(fn func(y float64)) func() {
	return f(fn)
}

// Controller tracks whether the page is scrolled past Threshold.
type Controller struct {
	mu          sync.Mutex
	scrolled    bool
	mounted     bool
	unsubscribe func()
	onChange    func(Mode)
}

// New returns an unmounted controller in Expanded mode.
func New() *Controller {
	return &Controller{}
}

// OnChange registers fn to be called once per threshold crossing.
func (c *Controller) OnChange(fn func(Mode)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Mount subscribes to src, starting Expanded. A controller left Compact by
// an earlier mount reports the reset. A nil source leaves the controller
// Expanded.
func (c *Controller) Mount(src Source) {
	c.Unmount()

	c.mu.Lock()
	c.mounted = true
	wasScrolled := c.scrolled
	c.scrolled = false
	fn := c.onChange
	c.mu.Unlock()

	if wasScrolled && fn != nil {
		fn(Expanded)
	}

	if src == nil {
		return
	}

	unsubscribe := src.Subscribe(c.Sample)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		// Unmounted while subscribing.
		if unsubscribe != nil {
			unsubscribe()
		}
		return
	}
	c.unsubscribe = unsubscribe
}

// Sample applies one scroll offset.
func (c *Controller) Sample(y float64) {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}

	scrolled := y > Threshold
	if scrolled == c.scrolled {
		c.mu.Unlock()
		return
	}
	c.scrolled = scrolled
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(modeOf(scrolled))
	}
}

// Unmount releases the scroll subscription. Safe to call more than once.
func (c *Controller) Unmount() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mounted = false
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// IsScrolled reports whether the last sample was past Threshold.
func (c *Controller) IsScrolled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scrolled
}

// Mode returns the current presentation mode.
func (c *Controller) Mode() Mode {
	return modeOf(c.IsScrolled())
}

func modeOf(scrolled bool) Mode {
	if scrolled {
		return Compact
	}
	return Expanded
}
