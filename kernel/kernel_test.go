package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRunsOnNextPass(t *testing.T) {
	l := New()
	ran := 0
	_, err := l.Post(func() { ran++ })
	require.NoError(t, err)

	assert.Equal(t, 1, l.Pending())
	assert.Equal(t, 1, l.RunReady())
	assert.Equal(t, 1, ran)
	assert.Equal(t, 0, l.Pending())
}

func TestPostDelayedWaitsForTick(t *testing.T) {
	l := New()
	ran := false
	_, err := l.PostDelayed(func() { ran = true }, 100)
	require.NoError(t, err)

	l.TickTo(99)
	assert.Equal(t, 0, l.RunReady())
	assert.False(t, ran)

	l.TickTo(100)
	assert.Equal(t, 1, l.RunReady())
	assert.True(t, ran)
}

func TestTickToNeverMovesBackwards(t *testing.T) {
	l := New()
	l.TickTo(50)
	l.TickTo(10)
	assert.Equal(t, uint64(50), l.Now())
}

func TestCancelRemovesPending(t *testing.T) {
	l := New()
	ran := false
	id, err := l.Post(func() { ran = true })
	require.NoError(t, err)

	assert.True(t, l.Scheduled(id))
	assert.True(t, l.Cancel(id))
	assert.False(t, l.Cancel(id), "second cancel must be a no-op")
	assert.False(t, l.Scheduled(id))

	l.RunReady()
	assert.False(t, ran)
}

func TestCancelZeroID(t *testing.T) {
	l := New()
	assert.False(t, l.Cancel(0))
	assert.False(t, l.Scheduled(0))
}

func TestRunReadyOrdersByDueThenPostOrder(t *testing.T) {
	l := New()
	var order []string
	post := func(name string, delay uint64) {
		_, err := l.PostDelayed(func() { order = append(order, name) }, delay)
		require.NoError(t, err)
	}
	post("late", 20)
	post("first", 0)
	post("second", 0)
	post("mid", 10)

	l.TickTo(20)
	l.RunReady()
	assert.Equal(t, []string{"first", "second", "mid", "late"}, order)
}

func TestRepostDuringPassWaitsForNextPass(t *testing.T) {
	l := New()
	count := 0
	var fn func()
	fn = func() {
		count++
		_, err := l.Post(fn)
		require.NoError(t, err)
	}
	_, err := l.Post(fn)
	require.NoError(t, err)

	assert.Equal(t, 1, l.RunReady())
	assert.Equal(t, 1, l.RunReady())
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, l.Pending())
}

func TestPostFailsWhenSlotsExhausted(t *testing.T) {
	l := New()
	for i := 0; i < maxTimers; i++ {
		_, err := l.PostDelayed(func() {}, 1000)
		require.NoError(t, err)
	}
	_, err := l.Post(func() {})
	assert.ErrorIs(t, err, ErrNoTimerSlot)

	l.TickTo(1000)
	l.RunReady()
	_, err = l.Post(func() {})
	assert.NoError(t, err)
}

func TestPostNilCallback(t *testing.T) {
	l := New()
	_, err := l.Post(nil)
	assert.Error(t, err)
	assert.Equal(t, 0, l.Pending())
}

func TestTimerIDsAreUnique(t *testing.T) {
	l := New()
	seen := make(map[TimerID]bool)
	for i := 0; i < 100; i++ {
		id, err := l.Post(func() {})
		require.NoError(t, err)
		assert.NotZero(t, id)
		assert.False(t, seen[id], "id %d reused", id)
		seen[id] = true
		l.RunReady()
	}
}
