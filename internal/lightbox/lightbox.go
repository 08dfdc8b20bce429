// Package lightbox models the gallery's full-screen viewer as an explicit
// two-state machine: Closed, or Open on exactly one item.
//
// Transitions are pure functions on a Lightbox, which only holds the static
// item list and the identity function used to find the current item in it.
package lightbox

import (
	"github.com/deltafood/delta/internal/carousel"
)

// State is either Closed or Open[T].
type State interface {
	isState()
}

// Closed is the initial state. Nothing is selected.
type Closed struct{}

// Open shows a single Item. Direction records how it was reached so the
// presentation can slide it in from the right edge.
type Open[T any] struct {
	Item      T
	Direction carousel.Direction
}

func (Closed) isState()  {}
func (Open[T]) isState() {}

// Event is a user action that may close or move the lightbox.
type Event interface {
	isEvent()
}

// CloseClicked is the explicit close control.
type CloseClicked struct{}

// PointerDown is a document-level pointer press. Inside reports whether the
// target lies within the modal's root element.
type PointerDown struct {
	Inside bool
}

// KeyDown is a document-level key press, named as in KeyboardEvent.key.
type KeyDown struct {
	Key string
}

// Navigate is a press on the previous/next controls.
type Navigate struct {
	Direction carousel.Direction
}

func (CloseClicked) isEvent() {}
func (PointerDown) isEvent()  {}
func (KeyDown) isEvent()      {}
func (Navigate) isEvent()     {}

// Lightbox holds the ordered, static item list.
type Lightbox[T any, K comparable] struct {
	items []T
	key   func(T) K
}

// New creates a Lightbox over items, identified by key.
func New[T any, K comparable](items []T, key func(T) K) *Lightbox[T, K] {
	return &Lightbox[T, K]{items: items, key: key}
}

// Len returns the number of items.
func (l *Lightbox[T, K]) Len() int {
	return len(l.items)
}

// Items returns the item list.
func (l *Lightbox[T, K]) Items() []T {
	return l.items
}

// Select opens the lightbox on the item with the given id. It reports false,
// and returns Closed, when no item has that id.
func (l *Lightbox[T, K]) Select(id K) (State, bool) {
	i := l.indexOfKey(id)
	if i < 0 {
		return Closed{}, false
	}
	return Open[T]{Item: l.items[i]}, true
}

// Next moves to the following item, wrapping at the end. Closed and
// unresolvable selections are returned unchanged.
func (l *Lightbox[T, K]) Next(s State) State {
	return l.step(s, carousel.Forward)
}

// Prev moves to the preceding item, wrapping at the start. Closed and
// unresolvable selections are returned unchanged.
func (l *Lightbox[T, K]) Prev(s State) State {
	return l.step(s, carousel.Backward)
}

// Close returns Closed from any state.
func (l *Lightbox[T, K]) Close(State) State {
	return Closed{}
}

// Handle applies an event. Events never open a closed lightbox.
func (l *Lightbox[T, K]) Handle(s State, e Event) State {
	if _, open := s.(Open[T]); !open {
		return s
	}

	switch e := e.(type) {
	case CloseClicked:
		return l.Close(s)
	case PointerDown:
		if e.Inside {
			return s
		}
		return l.Close(s)
	case KeyDown:
		switch e.Key {
		case "Escape", "Esc":
			return l.Close(s)
		// The page is right-to-left: the left chevron means "next".
		case "ArrowLeft":
			return l.Next(s)
		case "ArrowRight":
			return l.Prev(s)
		}
		return s
	case Navigate:
		return l.step(s, e.Direction)
	default:
		return s
	}
}

// IndexOf returns the position of the selected item, or -1 when closed or
// unresolvable.
func (l *Lightbox[T, K]) IndexOf(s State) int {
	open, ok := s.(Open[T])
	if !ok {
		return -1
	}
	return l.indexOfKey(l.key(open.Item))
}

func (l *Lightbox[T, K]) step(s State, d carousel.Direction) State {
	open, ok := s.(Open[T])
	if !ok {
		return s
	}
	i := l.indexOfKey(l.key(open.Item))
	n := len(l.items)
	if i < 0 || n == 0 {
		return s
	}

	switch d {
	case carousel.Forward:
		i = (i + 1) % n
	case carousel.Backward:
		i = (i - 1 + n) % n
	default:
		return s
	}
	return Open[T]{Item: l.items[i], Direction: d}
}

func (l *Lightbox[T, K]) indexOfKey(id K) int {
	for i, item := range l.items {
		if l.key(item) == id {
			return i
		}
	}
	return -1
}

// IsOpen reports whether s is an Open state.
func IsOpen(s State) bool {
	switch s.(type) {
	case nil, Closed:
		return false
	default:
		return true
	}
}

// Selected returns the item of an Open[T] state.
func Selected[T any](s State) (T, bool) {
	open, ok := s.(Open[T])
	return open.Item, ok
}
