package query

import (
	"context"
	"sync"
)

// Observer receives the state of one key every time it changes
type Observer struct {
	client *Client
	entry  *entry

	mu      sync.Mutex
	closed  bool
	updates chan State
}

// Watch subscribes to key. The current state is delivered immediately and a
// fetch starts when there is no fresh data.
func (c *Client) Watch(key Key, fetcher Fetcher) *Observer {
	c.mu.Lock()
	e := c.entryLocked(key)
	e.fetcher = fetcher
	e.lastUsed = c.now()

	o := &Observer{client: c, entry: e, updates: make(chan State, 1)}
	e.observers[o] = struct{}{}
	o.push(c.snapshotLocked(e))
	needFetch := c.staleLocked(e)
	c.mu.Unlock()

	if needFetch {
		c.start(context.Background(), e, fetcher)
	}
	return o
}

// Updates delivers state changes. Only the latest undelivered state is kept.
// The channel is closed by Close.
func (o *Observer) Updates() <-chan State {
	return o.updates
}

// Close unsubscribes. When the last observer of a key leaves, a fetch still
// running for it no longer updates the cache.
func (o *Observer) Close() {
	c := o.client
	c.mu.Lock()
	if _, ok := o.entry.observers[o]; ok {
		delete(o.entry.observers, o)
		if len(o.entry.observers) == 0 && o.entry.active > 0 {
			o.entry.seq++
			c.group.Forget(o.entry.id)
		}
		o.entry.lastUsed = c.now()
	}
	c.mu.Unlock()

	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.closed {
		o.closed = true
		close(o.updates)
	}
}

// push replaces any undelivered state with s
func (o *Observer) push(s State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	select {
	case <-o.updates:
	default:
	}
	o.updates <- s
}
