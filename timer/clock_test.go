package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClockWithSource(secs int) (*Clock, *int) {
	starts := 0

	source := func(time.Duration) (<-chan time.Time, func()) {
		starts++
		return nil, func() {}
	}

	return NewClock(secs, time.Second, source, func(uint64) {}), &starts
}

func TestClockCountsDownToZeroOnce(t *testing.T) {
	c, _ := newTestClockWithSource(3)

	assert.True(t, c.Start())

	gen := c.Generation()

	assert.False(t, c.Tick(gen))
	assert.False(t, c.Tick(gen))
	assert.True(t, c.Tick(gen))

	assert.Equal(t, 0, c.Remaining())
	assert.False(t, c.Running())

	assert.False(t, c.Tick(gen))
	assert.False(t, c.Tick(c.Generation()))
	assert.Equal(t, 0, c.Remaining(), "never negative")
}

func TestClockStartIsIdempotent(t *testing.T) {
	c, starts := newTestClockWithSource(10)

	assert.True(t, c.Start())
	assert.False(t, c.Start())
	assert.Equal(t, 1, *starts)

	c.Stop()
	c.Wait()
}

func TestClockDoesNotStartAtZero(t *testing.T) {
	c, starts := newTestClockWithSource(0)

	assert.False(t, c.Start())
	assert.Equal(t, 0, *starts)
}

func TestClockStopDiscardsStaleTicks(t *testing.T) {
	c, _ := newTestClockWithSource(10)

	c.Start()
	gen := c.Generation()
	c.Stop()

	assert.False(t, c.Tick(gen))
	assert.Equal(t, 10, c.Remaining())

	c.Start()
	assert.False(t, c.Tick(gen))
	assert.Equal(t, 10, c.Remaining())

	c.Tick(c.Generation())
	assert.Equal(t, 9, c.Remaining())

	c.Stop()
	c.Wait()
}

func TestClockSetDuration(t *testing.T) {
	c, _ := newTestClockWithSource(10)

	c.Start()
	c.Tick(c.Generation())
	c.SetDuration(20)

	assert.False(t, c.Running())
	assert.Equal(t, 20, c.Duration())
	assert.Equal(t, 20, c.Remaining())

	c.Start()
	c.Tick(c.Generation())
	c.Rewind()

	assert.Equal(t, 20, c.Remaining())
	c.Wait()
}

func TestClockDeliversGeneration(t *testing.T) {
	ticks := make(chan time.Time)
	got := make(chan uint64, 1)

	source := func(time.Duration) (<-chan time.Time, func()) {
		return ticks, func() {}
	}

	c := NewClock(5, time.Second, source, func(gen uint64) {
		got <- gen
	})

	c.Start()
	ticks <- time.Now()

	select {
	case gen := <-got:
		assert.Equal(t, c.Generation(), gen)
	case <-time.After(2 * time.Second):
		t.Fatal("tick not delivered")
	}

	c.Stop()
	c.Wait()
}
