package simclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFake_AdvanceFiresInDueOrder(t *testing.T) {
	t.Parallel()

	clock := NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	var fired []string
	clock.AfterFunc(3*time.Second, func() { fired = append(fired, "c") })
	clock.AfterFunc(1*time.Second, func() { fired = append(fired, "a") })
	clock.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })

	clock.Advance(90 * time.Second)
	require.Equal(t, []string{"a", "b", "c"}, fired)
	require.Zero(t, clock.PendingCount())
}

func TestFake_AdvanceStopsAtTarget(t *testing.T) {
	t.Parallel()

	clock := NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	fired := 0
	clock.AfterFunc(10*time.Second, func() { fired++ })

	clock.Advance(9 * time.Second)
	require.Zero(t, fired)

	clock.Advance(time.Second)
	require.Equal(t, 1, fired)
}

func TestFake_StopPreventsFiring(t *testing.T) {
	t.Parallel()

	clock := NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	fired := false
	timer := clock.AfterFunc(time.Second, func() { fired = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop()) // second stop is a no-op

	clock.Advance(time.Minute)
	require.False(t, fired)
}

func TestFake_CallbackMaySchedule(t *testing.T) {
	t.Parallel()

	clock := NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	var fired []string
	clock.AfterFunc(time.Second, func() {
		fired = append(fired, "first")
		clock.AfterFunc(time.Second, func() { fired = append(fired, "chained") })
	})

	// The chained timer falls inside the advance window and must fire too.
	clock.Advance(5 * time.Second)
	require.Equal(t, []string{"first", "chained"}, fired)
}

func TestFake_NowTracksAdvance(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewFake(start)

	clock.Advance(42 * time.Minute)
	require.Equal(t, start.Add(42*time.Minute), clock.Now())
}
