package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	listened, released []string
}

func (r *recorder) registry() *Registry {
	return NewRegistry(
		func(e string) { r.listened = append(r.listened, e) },
		func(e string) { r.released = append(r.released, e) },
	)
}

func TestScopeAcquireRelease(t *testing.T) {
	rec := &recorder{}
	reg := rec.registry()

	scope := reg.Acquire("pointerdown", "keydown")
	assert.True(t, reg.Active("pointerdown"))
	assert.True(t, reg.Active("keydown"))
	assert.Equal(t, []string{"pointerdown", "keydown"}, rec.listened)

	scope.Release()
	assert.False(t, reg.Active("pointerdown"))
	assert.False(t, reg.Active("keydown"))
	assert.Equal(t, []string{"keydown", "pointerdown"}, rec.released, "released in reverse order")
	assert.True(t, scope.Released())
	assert.Equal(t, 0, reg.Total())
}

func TestReleaseIsIdempotent(t *testing.T) {
	rec := &recorder{}
	reg := rec.registry()

	scope := reg.Acquire("keydown")
	scope.Release()
	scope.Release()
	assert.Len(t, rec.released, 1)

	var nilScope *Scope
	nilScope.Release()
	assert.True(t, nilScope.Released())
}

func TestSharedEventsAreRefCounted(t *testing.T) {
	rec := &recorder{}
	reg := rec.registry()

	a := reg.Acquire("keydown")
	b := reg.Acquire("keydown", "scroll")
	assert.Equal(t, 2, reg.Count("keydown"))
	assert.Equal(t, []string{"keydown", "scroll"}, rec.listened, "client is told once per event")

	a.Release()
	assert.True(t, reg.Active("keydown"))
	assert.Empty(t, rec.released)

	b.Release()
	assert.False(t, reg.Active("keydown"))
	assert.ElementsMatch(t, []string{"keydown", "scroll"}, rec.released)
}

func TestSlotFollowsCondition(t *testing.T) {
	reg := NewRegistry(nil, nil)
	var slot Slot
	acquire := func() *Scope { return reg.Acquire("pointerdown", "keydown") }

	slot.Sync(false, acquire)
	assert.False(t, slot.Held())

	slot.Sync(true, acquire)
	slot.Sync(true, acquire)
	assert.True(t, slot.Held())
	assert.Equal(t, 1, reg.Count("keydown"), "staying open must not acquire twice")

	slot.Sync(false, acquire)
	assert.False(t, slot.Held())
	assert.Equal(t, 0, reg.Total())

	slot.Sync(true, acquire)
	slot.Release()
	assert.Equal(t, 0, reg.Total())
}
