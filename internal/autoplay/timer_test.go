package autoplay_test

import (
	"testing"
	"time"

	"github.com/deltafood/delta/internal/autoplay"
	"github.com/deltafood/delta/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerRepeats(t *testing.T) {
	clock := testutils.NewManualClock()
	ticks := 0
	timer := autoplay.New(clock, 5*time.Second, func(uint64) { ticks++ })

	timer.Reset()
	clock.Advance(4999 * time.Millisecond)
	assert.Equal(t, 0, ticks)

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, ticks)

	clock.Advance(10 * time.Second)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 1, timer.Active())
	assert.Equal(t, 1, clock.Pending())
}

func TestResetRestartsTheWindow(t *testing.T) {
	clock := testutils.NewManualClock()
	ticks := 0
	timer := autoplay.New(clock, 5*time.Second, func(uint64) { ticks++ })

	timer.Reset()
	clock.Advance(4 * time.Second)
	timer.Reset() // manual navigation
	clock.Advance(4 * time.Second)
	assert.Equal(t, 0, ticks, "the earlier countdown must not carry over")

	clock.Advance(time.Second)
	assert.Equal(t, 1, ticks)
}

func TestAtMostOneTimerAlive(t *testing.T) {
	clock := testutils.NewManualClock()
	timer := autoplay.New(clock, 5*time.Second, func(uint64) {})

	for i := 0; i < 10; i++ {
		timer.Reset()
		require.Equal(t, 1, clock.Pending())
		require.Equal(t, 1, timer.Active())
	}
	assert.Equal(t, 9, timer.Cancels(), "every reschedule cancels its predecessor")
}

func TestStopIsFinal(t *testing.T) {
	clock := testutils.NewManualClock()
	ticks := 0
	timer := autoplay.New(clock, time.Second, func(uint64) { ticks++ })

	timer.Reset()
	timer.Stop()
	assert.Equal(t, 0, clock.Pending())
	assert.Equal(t, 0, timer.Active())

	timer.Reset()
	clock.Advance(time.Minute)
	assert.Equal(t, 0, ticks)
	assert.Equal(t, 0, clock.Pending())
}

func TestResetFromInsideTick(t *testing.T) {
	clock := testutils.NewManualClock()
	var timer *autoplay.Timer
	ticks := 0
	timer = autoplay.New(clock, time.Second, func(uint64) {
		ticks++
		timer.Reset() // index change caused by the tick
	})

	timer.Reset()
	clock.Advance(3 * time.Second)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 1, clock.Pending())
}

func TestTickCarriesResetEpoch(t *testing.T) {
	clock := testutils.NewManualClock()
	var timer *autoplay.Timer
	var seen []uint64
	var afterReset uint64
	timer = autoplay.New(clock, time.Second, func(epoch uint64) {
		seen = append(seen, epoch)
		if len(seen) == 2 {
			// A reset racing the tick hands out a newer epoch.
			afterReset = timer.Reset()
		}
	})

	first := timer.Reset()
	clock.Advance(2 * time.Second)
	require.Equal(t, []uint64{first, first}, seen, "re-armed ticks keep the epoch")
	assert.Greater(t, afterReset, first)

	clock.Advance(time.Second)
	assert.Equal(t, afterReset, seen[2])

	timer.Stop()
	assert.Equal(t, afterReset, timer.Reset(), "reset after stop hands out no new epoch")
}

func TestRealClock(t *testing.T) {
	fired := make(chan struct{}, 1)
	timer := autoplay.New(nil, 10*time.Millisecond, func(uint64) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	timer.Reset()
	defer timer.Stop()

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("real clock tick did not fire")
	}
}
