// Package debounce coalesces bursts of calls that share a key so that only
// the last one runs once the key has been quiet for a while.
package debounce

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bep/debounce"
)

// ErrSuperseded is returned to a caller whose call was replaced by a newer
// call for the same key before it ran.
var ErrSuperseded = errors.New("superseded by a newer call")

type call struct {
	superseded chan struct{}
	fire       chan struct{}
}

type entry struct {
	debounced func(f func())
	pending   *call
}

// Group debounces calls per key. The zero value is not usable; use New.
type Group struct {
	wait time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

func New(wait time.Duration) *Group {
	return &Group{
		wait:    wait,
		entries: make(map[string]*entry),
	}
}

// Do schedules fn for key and blocks until it has run, returning its error.
// A later Do for the same key makes this one return ErrSuperseded without
// running fn. With immediate set, fn runs right away and any pending call
// for the key is superseded.
func (g *Group) Do(ctx context.Context, key string, immediate bool, fn func(ctx context.Context) error) error {
	c := &call{
		superseded: make(chan struct{}),
		fire:       make(chan struct{}),
	}

	g.mu.Lock()
	e, ok := g.entries[key]
	if !ok {
		e = &entry{debounced: debounce.New(g.wait)}
		g.entries[key] = e
	}
	if e.pending != nil {
		close(e.pending.superseded)
	}
	e.pending = c
	if immediate {
		// replace the scheduled func so a pending timer fires into nothing
		e.debounced(func() {})
		close(c.fire)
	} else {
		e.debounced(func() { close(c.fire) })
	}
	g.mu.Unlock()

	defer g.release(key, c)

	select {
	case <-c.superseded:
		return ErrSuperseded
	case <-ctx.Done():
		return ctx.Err()
	case <-c.fire:
	}

	// fire and superseded can close together; only the latest call runs
	if !g.current(key, c) {
		return ErrSuperseded
	}
	return fn(ctx)
}

// current reports whether c is still the latest call for key.
func (g *Group) current(key string, c *call) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.entries[key]
	return ok && e.pending == c
}

// release drops the key's entry once its latest call has finished.
func (g *Group) release(key string, c *call) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if e, ok := g.entries[key]; ok && e.pending == c {
		delete(g.entries, key)
	}
}

// Len returns the number of keys with a call in flight.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}
