package timer

import (
	"sync"
	"time"
)

// TickSource starts a recurring tick with the given period. The returned
// function stops it.
type TickSource func(period time.Duration) (<-chan time.Time, func())

// TickerSource is the wall-clock TickSource.
func TickerSource(period time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(period)

	return t.C, t.Stop
}

// Clock counts a run down one second per tick. It is not safe for concurrent
// use: the owner serialises every call, including the deliver callback.
type Clock struct {
	source    TickSource
	deliver   func(gen uint64)
	cancel    func()
	period    time.Duration
	duration  int
	remaining int
	gen       uint64
	wg        sync.WaitGroup
	running   bool
}

// NewClock returns an inactive clock set to durationSecs. Each tick of a
// running clock is handed to deliver along with the generation that started
// it.
func NewClock(
	durationSecs int,
	period time.Duration,
	source TickSource,
	deliver func(gen uint64),
) *Clock {
	if source == nil {
		source = TickerSource
	}

	if period <= 0 {
		period = time.Second
	}

	return &Clock{
		source:    source,
		deliver:   deliver,
		period:    period,
		duration:  durationSecs,
		remaining: durationSecs,
	}
}

func (c *Clock) Duration() int {
	return c.duration
}

func (c *Clock) Remaining() int {
	return c.remaining
}

func (c *Clock) Running() bool {
	return c.running
}

// Generation identifies the current tick stream.
func (c *Clock) Generation() uint64 {
	return c.gen
}

// Start begins ticking. It does nothing if the clock is already running or
// has nothing left to count.
func (c *Clock) Start() bool {
	if c.running || c.remaining <= 0 {
		return false
	}

	c.running = true
	c.gen++

	gen := c.gen
	ticks, stop := c.source(c.period)
	done := make(chan struct{})

	c.cancel = func() {
		close(done)
		stop()
	}

	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		for {
			select {
			case <-done:
				return
			case <-ticks:
				select {
				case <-done:
					return
				default:
				}

				c.deliver(gen)
			}
		}
	}()

	return true
}

// Stop cancels the tick stream. Ticks already in flight carry a stale
// generation and are ignored by Tick.
func (c *Clock) Stop() {
	c.gen++

	if !c.running {
		return
	}

	c.running = false

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Tick applies one tick of generation gen. It reports true exactly once per
// run, on the tick that brings remaining to zero, and stops the clock.
func (c *Clock) Tick(gen uint64) bool {
	if gen != c.gen || !c.running || c.remaining <= 0 {
		return false
	}

	c.remaining--

	if c.remaining == 0 {
		c.Stop()
		return true
	}

	return false
}

// SetDuration sets both duration and remaining. Callers must stop the clock
// first.
func (c *Clock) SetDuration(secs int) {
	c.Stop()

	c.duration = secs
	c.remaining = secs
}

// Rewind stops the clock and restores the full duration.
func (c *Clock) Rewind() {
	c.SetDuration(c.duration)
}

// Wait blocks until every tick goroutine has exited. The owner must not hold
// the lock that deliver takes.
func (c *Clock) Wait() {
	c.wg.Wait()
}
