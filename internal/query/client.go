package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Status is the settled state of a cache entry
type Status string

const (
	StatusIdle     Status = "idle"
	StatusFetching Status = "fetching"
	StatusSuccess  Status = "success"
	StatusError    Status = "error"
)

// State is a snapshot of one cache entry
type State struct {
	Status     Status
	Data       any
	Err        error
	UpdatedAt  time.Time
	Stale      bool
	IsFetching bool
}

// Fetcher loads the data for a key
type Fetcher func(ctx context.Context) (any, error)

// Options configures a Client
type Options struct {
	// StaleTime is how long successful data is served without refetching
	StaleTime time.Duration
	// GCTime is how long an unobserved entry is kept after its last use
	GCTime time.Duration
	// FetchTimeout bounds a shared fetch; zero means no bound
	FetchTimeout time.Duration
}

type entry struct {
	key         Key
	id          string
	state       State
	invalidated bool
	seq         uint64
	active      int
	lastUsed    time.Time
	fetcher     Fetcher
	observers   map[*Observer]struct{}
}

// Client is a keyed query cache. Concurrent reads of the same key share one
// fetch, and only the newest fetch started for a key may update it.
// Cached values are shared between callers and must be treated as read-only.
type Client struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
	opts    Options
	logger  *zap.Logger
	now     func() time.Time
}

// NewClient creates a query client
func NewClient(opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		entries: make(map[string]*entry),
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// Fetch returns fresh cached data for key, or waits for a fetch of it.
// Cancelling ctx abandons the wait but not the shared fetch.
func (c *Client) Fetch(ctx context.Context, key Key, fetcher Fetcher) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	e := c.entryLocked(key)
	e.fetcher = fetcher
	e.lastUsed = c.now()
	if e.state.Status == StatusSuccess && !c.staleLocked(e) {
		data := e.state.Data
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-c.start(ctx, e, fetcher):
		return res.Val, res.Err
	}
}

// Get is Fetch with a typed result
func Get[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("query %s: cached %T, want %T", key, v, zero)
	}
	return t, nil
}

// start joins the in-flight fetch of e or begins a new one. A new fetch keeps
// the values of ctx but not its cancellation.
func (c *Client) start(ctx context.Context, e *entry, fetcher Fetcher) <-chan singleflight.Result {
	return c.group.DoChan(e.id, func() (any, error) {
		c.mu.Lock()
		e.seq++
		seq := e.seq
		e.active++
		if e.state.Status == StatusIdle {
			e.state.Status = StatusFetching
		}
		c.notifyLocked(e)
		c.mu.Unlock()

		ctx := context.WithoutCancel(ctx)
		if c.opts.FetchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.opts.FetchTimeout)
			defer cancel()
		}

		data, err := fetcher(ctx)
		c.commit(e, seq, data, err)
		return data, err
	})
}

// commit stores a fetch result unless a newer fetch has started since
func (c *Client) commit(e *entry, seq uint64, data any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e.active--
	if seq != e.seq {
		c.logger.Debug("Discarding superseded query result",
			zap.String("key", e.id),
			zap.Uint64("seq", seq),
			zap.Uint64("latest", e.seq),
		)
		// Nothing settled yet and nothing left running
		if e.active == 0 && e.state.Status == StatusFetching {
			e.state.Status = StatusIdle
		}
		c.notifyLocked(e)
		return
	}

	now := c.now()
	e.lastUsed = now
	if err != nil {
		c.logger.Warn("Query failed", zap.String("key", e.id), zap.Error(err))
		// Previous data stays available
		e.state.Status = StatusError
		e.state.Err = err
	} else {
		e.state.Status = StatusSuccess
		e.state.Data = data
		e.state.Err = nil
		e.state.UpdatedAt = now
		e.invalidated = false
	}
	c.notifyLocked(e)
}

// State returns a snapshot of key's cache entry
func (c *Client) State(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return State{Status: StatusIdle, Stale: true}
	}
	return c.snapshotLocked(e)
}

// Invalidate marks every entry under root stale. Later reads start a fresh
// fetch, results of fetches already running are discarded, and observed
// entries are refetched in the background.
func (c *Client) Invalidate(root string) {
	type pending struct {
		e       *entry
		fetcher Fetcher
	}

	c.mu.Lock()
	var refetch []pending
	for id, e := range c.entries {
		if e.key.Root != root {
			continue
		}
		e.invalidated = true
		e.seq++
		c.group.Forget(id)
		c.notifyLocked(e)
		if len(e.observers) > 0 && e.fetcher != nil {
			refetch = append(refetch, pending{e, e.fetcher})
		}
	}
	c.mu.Unlock()

	c.logger.Debug("Invalidated queries", zap.String("root", root), zap.Int("refetching", len(refetch)))
	for _, p := range refetch {
		c.start(context.Background(), p.e, p.fetcher)
	}
}

// Mutate runs fn and, if it succeeds, invalidates every root
func (c *Client) Mutate(ctx context.Context, roots []string, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	for _, root := range roots {
		c.Invalidate(root)
	}
	return nil
}

// MutateValue is Mutate for mutations that return a value
func MutateValue[T any](ctx context.Context, c *Client, roots []string, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := c.Mutate(ctx, roots, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}

// Prune drops unobserved, idle entries not used within GCTime and reports
// how many were removed
func (c *Client) Prune(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, e := range c.entries {
		if len(e.observers) > 0 || e.active > 0 {
			continue
		}
		if now.Sub(e.lastUsed) < c.opts.GCTime {
			continue
		}
		delete(c.entries, id)
		removed++
	}
	return removed
}

// Run prunes expired entries until ctx is done
func (c *Client) Run(ctx context.Context) {
	interval := c.opts.GCTime
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Prune(c.now()); n > 0 {
				c.logger.Debug("Pruned query cache", zap.Int("entries", n))
			}
		}
	}
}

func (c *Client) entryLocked(key Key) *entry {
	id := key.String()
	e, ok := c.entries[id]
	if !ok {
		e = &entry{
			key:       key,
			id:        id,
			state:     State{Status: StatusIdle},
			observers: make(map[*Observer]struct{}),
		}
		c.entries[id] = e
	}
	return e
}

func (c *Client) staleLocked(e *entry) bool {
	if e.invalidated || e.state.Status != StatusSuccess {
		return true
	}
	return c.now().Sub(e.state.UpdatedAt) >= c.opts.StaleTime
}

func (c *Client) snapshotLocked(e *entry) State {
	s := e.state
	s.Stale = e.state.UpdatedAt.IsZero() || c.staleLocked(e)
	s.IsFetching = e.active > 0
	return s
}

func (c *Client) notifyLocked(e *entry) {
	if len(e.observers) == 0 {
		return
	}
	s := c.snapshotLocked(e)
	for o := range e.observers {
		o.push(s)
	}
}
