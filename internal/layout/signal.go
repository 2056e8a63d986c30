package layout

import "sync"

// Signal is a Source fed by explicit Publish calls. Transports that receive
// scroll offsets from elsewhere (a websocket, a terminal viewport) publish
// into it.
type Signal struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(y float64)
}

// NewSignal returns a Signal with no subscribers.
func NewSignal() *Signal {
	return &Signal{subs: make(map[int]func(y float64))}
}

// Subscribe implements Source.
func (s *Signal) Subscribe(fn func(y float64)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Publish delivers y to every current subscriber.
func (s *Signal) Publish(y float64) {
	s.mu.Lock()
	fns := make([]func(float64), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(y)
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Signal) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
