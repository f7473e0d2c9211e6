package store

import "sync"

// notifier fans state changes out to subscribers.
type notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func()
}

// Subscribe registers fn to run after every state change and returns a
// function that removes it.
func (n *notifier) Subscribe(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.listeners == nil {
		n.listeners = make(map[int]func())
	}
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

// notify must be called without holding the store's state lock.
func (n *notifier) notify() {
	n.mu.Lock()
	listeners := make([]func(), 0, len(n.listeners))
	for _, fn := range n.listeners {
		listeners = append(listeners, fn)
	}
	n.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// state is the part shared by every REST-backed store: the collection lock
// and the loading flag.
type state struct {
	notifier
	mu      sync.RWMutex
	loading bool
}

// Loading reports whether an operation has started and not yet settled.
// Overlapping operations share the flag; the first to settle clears it.
func (s *state) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// begin raises the loading flag before the request goroutine starts.
func (s *state) begin() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.notify()
}

// settle clears the loading flag and applies fn, when non-nil, in the same
// critical section.
func (s *state) settle(fn func()) {
	s.mu.Lock()
	s.loading = false
	if fn != nil {
		fn()
	}
	s.mu.Unlock()
	s.notify()
}
