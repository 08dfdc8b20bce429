package lightbox

import (
	"testing"

	"github.com/deltafood/delta/internal/carousel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type photo struct {
	ID  int
	Alt string
}

func gallery(n int) *Lightbox[photo, int] {
	items := make([]photo, n)
	for i := range items {
		items[i] = photo{ID: i + 1}
	}
	return New(items, func(p photo) int { return p.ID })
}

func selectedID(t *testing.T, s State) int {
	t.Helper()
	p, ok := Selected[photo](s)
	require.True(t, ok, "expected an open lightbox, got %T", s)
	return p.ID
}

func TestEightPhotoScenario(t *testing.T) {
	lb := gallery(8)

	s, ok := lb.Select(3)
	require.True(t, ok)
	assert.Equal(t, 3, selectedID(t, s))

	s = lb.Next(s)
	assert.Equal(t, 4, selectedID(t, s))

	s = lb.Prev(lb.Prev(s))
	assert.Equal(t, 2, selectedID(t, s))
}

func TestNavigationWraps(t *testing.T) {
	lb := gallery(8)

	s, _ := lb.Select(8)
	s = lb.Next(s)
	assert.Equal(t, 1, selectedID(t, s))
	assert.Equal(t, carousel.Forward, s.(Open[photo]).Direction)

	s = lb.Prev(s)
	assert.Equal(t, 8, selectedID(t, s))
	assert.Equal(t, carousel.Backward, s.(Open[photo]).Direction)
}

func TestSelectUnknownID(t *testing.T) {
	s, ok := gallery(3).Select(42)
	assert.False(t, ok)
	assert.Equal(t, Closed{}, s)
}

func TestClosedIgnoresNavigationAndEvents(t *testing.T) {
	lb := gallery(4)
	var s State = Closed{}

	assert.Equal(t, s, lb.Next(s))
	assert.Equal(t, s, lb.Prev(s))
	assert.Equal(t, s, lb.Handle(s, KeyDown{Key: "ArrowLeft"}))
	assert.Equal(t, s, lb.Handle(s, PointerDown{Inside: false}))
	assert.Equal(t, -1, lb.IndexOf(s))
}

func TestUnresolvedSelectionIsNoop(t *testing.T) {
	lb := gallery(4)
	stale := Open[photo]{Item: photo{ID: 99}}

	assert.Equal(t, State(stale), lb.Next(stale))
	assert.Equal(t, State(stale), lb.Prev(stale))
}

func TestDismissal(t *testing.T) {
	tests := []struct {
		name       string
		event      Event
		wantClosed bool
	}{
		{"close control", CloseClicked{}, true},
		{"pointer outside", PointerDown{Inside: false}, true},
		{"pointer inside", PointerDown{Inside: true}, false},
		{"escape", KeyDown{Key: "Escape"}, true},
		{"legacy escape", KeyDown{Key: "Esc"}, true},
		{"other key", KeyDown{Key: "a"}, false},
	}

	lb := gallery(8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := lb.Select(5)
			next := lb.Handle(s, tt.event)
			if tt.wantClosed {
				assert.Equal(t, Closed{}, next)
				assert.False(t, IsOpen(next))
				_, ok := Selected[photo](next)
				assert.False(t, ok, "selection must be cleared")
			} else {
				assert.Equal(t, 5, selectedID(t, next))
			}
		})
	}
}

func TestArrowKeysFollowReadingDirection(t *testing.T) {
	lb := gallery(8)
	s, _ := lb.Select(5)

	assert.Equal(t, 6, selectedID(t, lb.Handle(s, KeyDown{Key: "ArrowLeft"})))
	assert.Equal(t, 4, selectedID(t, lb.Handle(s, KeyDown{Key: "ArrowRight"})))
	assert.Equal(t, 6, selectedID(t, lb.Handle(s, Navigate{Direction: carousel.Forward})))
	assert.Equal(t, 5, selectedID(t, lb.Handle(s, Navigate{Direction: carousel.None})))
}

func TestNavigationReplacesSelection(t *testing.T) {
	lb := gallery(3)
	s, _ := lb.Select(1)
	s = lb.Next(s)

	open, ok := s.(Open[photo])
	require.True(t, ok)
	assert.Equal(t, photo{ID: 2}, open.Item)
	assert.Equal(t, 1, lb.IndexOf(s))
}

func TestIsOpen(t *testing.T) {
	assert.False(t, IsOpen(nil))
	assert.False(t, IsOpen(Closed{}))
	assert.True(t, IsOpen(Open[photo]{}))
}
