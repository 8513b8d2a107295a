package timer

import (
	"sync"
	"time"
)

type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastError
)

// Toast is an in-app message that disappears on its own.
type Toast struct {
	Expires time.Time
	Title   string
	Body    string
	Level   ToastLevel
}

// Toasts holds the visible toasts. It is safe for concurrent use.
type Toasts struct {
	now   func() time.Time
	items []Toast
	mu    sync.Mutex
}

func NewToasts(now func() time.Time) *Toasts {
	if now == nil {
		now = time.Now
	}

	return &Toasts{now: now}
}

// Show adds a toast that is dismissed after ttl.
func (t *Toasts) Show(level ToastLevel, title, body string, ttl time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items = append(t.items, Toast{
		Title:   title,
		Body:    body,
		Level:   level,
		Expires: t.now().Add(ttl),
	})
}

// Active drops expired toasts and returns the rest, oldest first.
func (t *Toasts) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	kept := t.items[:0]

	for _, item := range t.items {
		if now.Before(item.Expires) {
			kept = append(kept, item)
		}
	}

	t.items = kept

	out := make([]Toast, len(kept))
	copy(out, kept)

	return out
}
