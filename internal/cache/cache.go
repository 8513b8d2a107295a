// Package cache holds read-through list views and per-user focus-time
// counters for the timer and dashboard.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultSize = 128
	DefaultTTL  = 5 * time.Minute
)

// SessionsKey is the key of a user's focus-session list.
func SessionsKey(userID string) string {
	return "focus-sessions:" + userID
}

// TasksKey is the key of a user's task list.
func TasksKey(userID string) string {
	return "tasks:" + userID
}

// Cache is safe for concurrent use.
type Cache struct {
	entries *expirable.LRU[string, any]
	focus   map[string]int
	gens    map[string]uint64
	subs    map[int]func(key string)
	mu      sync.Mutex
	nextSub int
}

// New returns a cache of at most size entries, each kept for ttl.
func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultSize
	}

	return &Cache{
		entries: expirable.NewLRU[string, any](size, nil, ttl),
		focus:   make(map[string]int),
		gens:    make(map[string]uint64),
		subs:    make(map[int]func(string)),
	}
}

func (c *Cache) Get(key string) (any, bool) {
	return c.entries.Get(key)
}

func (c *Cache) Set(key string, v any) {
	c.entries.Add(key, v)
}

// Invalidate drops key and tells subscribers about it. Invalidating a key
// that is not cached is not an error.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	c.gens[key]++
	c.entries.Remove(key)
	subs := make([]func(string), 0, len(c.subs))

	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(key)
	}
}

// Subscribe registers fn to be called after every invalidation. The returned
// function removes the subscription.
func (c *Cache) Subscribe(fn func(key string)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// SetFocusTime seeds the cumulative focus minutes of a user.
func (c *Cache) SetFocusTime(userID string, total int) {
	c.mu.Lock()
	c.focus[userID] = total
	c.mu.Unlock()
}

// AddFocusTime adds mins to the user's counter and returns the new total.
func (c *Cache) AddFocusTime(userID string, mins int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.focus[userID] += mins

	return c.focus[userID]
}

func (c *Cache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.gens[key]
}

// setIfCurrent stores v only when key was not invalidated since gen was read.
func (c *Cache) setIfCurrent(key string, gen uint64, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gens[key] == gen {
		c.entries.Add(key, v)
	}
}

func (c *Cache) FocusTime(userID string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.focus[userID]

	return v, ok
}

// Fetch returns the cached value at key, calling load on a miss and caching
// its result. A result loaded across an Invalidate of key is returned but not
// cached. Values of a different type count as a miss.
func Fetch[T any](
	ctx context.Context,
	c *Cache,
	key string,
	load func(context.Context) (T, error),
) (T, error) {
	if v, ok := c.Get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}

	gen := c.generation(key)

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	c.setIfCurrent(key, gen, v)

	return v, nil
}
