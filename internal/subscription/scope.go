// Package subscription manages document-level event listeners as scoped
// resources. A Scope is acquired when a component enters a state that needs
// global listeners and released exactly once when it leaves that state,
// whatever the exit path.
package subscription

import "sync"

// Registry reference-counts listeners per event name and notifies the
// client side when the first listener for an event appears and when the
// last one goes away.
type Registry struct {
	mu        sync.Mutex
	counts    map[string]int
	onListen  func(event string)
	onRelease func(event string)
}

// NewRegistry creates a registry. Either callback may be nil.
func NewRegistry(onListen, onRelease func(event string)) *Registry {
	return &Registry{
		counts:    make(map[string]int),
		onListen:  onListen,
		onRelease: onRelease,
	}
}

// Active reports whether at least one scope listens for event.
func (r *Registry) Active(event string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[event] > 0
}

// Count returns the number of scopes listening for event.
func (r *Registry) Count(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[event]
}

// Total returns the number of live listener registrations.
func (r *Registry) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, n := range r.counts {
		total += n
	}
	return total
}

// Acquire registers listeners for events and returns the Scope that owns
// them.
func (r *Registry) Acquire(events ...string) *Scope {
	for _, event := range events {
		r.add(event)
	}
	return &Scope{registry: r, events: append([]string(nil), events...)}
}

func (r *Registry) add(event string) {
	r.mu.Lock()
	r.counts[event]++
	first := r.counts[event] == 1
	r.mu.Unlock()

	if first && r.onListen != nil {
		r.onListen(event)
	}
}

func (r *Registry) remove(event string) {
	r.mu.Lock()
	if r.counts[event] == 0 {
		r.mu.Unlock()
		return
	}
	r.counts[event]--
	last := r.counts[event] == 0
	if last {
		delete(r.counts, event)
	}
	r.mu.Unlock()

	if last && r.onRelease != nil {
		r.onRelease(event)
	}
}

// Scope owns a set of listener registrations.
type Scope struct {
	registry *Registry
	events   []string
	once     sync.Once
	released bool
	mu       sync.Mutex
}

// Release unregisters every listener of the scope, in reverse order of
// acquisition. Calling it again has no effect. A nil Scope is valid.
func (s *Scope) Release() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		for i := len(s.events) - 1; i >= 0; i-- {
			s.registry.remove(s.events[i])
		}
		s.mu.Lock()
		s.released = true
		s.mu.Unlock()
	})
}

// Released reports whether Release has run.
func (s *Scope) Released() bool {
	if s == nil {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

// Slot holds at most one Scope and reconciles it with a boolean condition:
// the scope exists exactly while the condition holds.
type Slot struct {
	scope *Scope
}

// Sync acquires a scope through acquire when want is true and none is held,
// and releases the held scope when want is false.
func (s *Slot) Sync(want bool, acquire func() *Scope) {
	switch {
	case want && s.scope == nil:
		s.scope = acquire()
	case !want && s.scope != nil:
		s.scope.Release()
		s.scope = nil
	}
}

// Held reports whether the slot currently owns a scope.
func (s *Slot) Held() bool {
	return s.scope != nil
}

// Release drops the held scope, if any.
func (s *Slot) Release() {
	s.Sync(false, nil)
}
