package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T) *Client {
	return NewClient(Options{
		StaleTime:    time.Minute,
		GCTime:       5 * time.Minute,
		FetchTimeout: 5 * time.Second,
	}, zaptest.NewLogger(t))
}

// gate is a fetcher that blocks until released and counts its calls
type gate struct {
	calls   atomic.Int32
	release chan struct{}
	value   any
	err     error
}

func newGate(value any) *gate {
	return &gate{release: make(chan struct{}), value: value}
}

func (g *gate) fetch(ctx context.Context) (any, error) {
	g.calls.Add(1)
	select {
	case <-g.release:
		return g.value, g.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func value(v any) Fetcher {
	return func(context.Context) (any, error) { return v, nil }
}

func waitFetching(t *testing.T, c *Client, key Key) {
	t.Helper()
	require.Eventually(t, func() bool { return c.State(key).IsFetching }, time.Second, time.Millisecond)
}

func TestClient_FreshDataServedFromCache(t *testing.T) {
	c := newTestClient(t)
	key := NewKey("products", nil)

	var calls atomic.Int32
	fetcher := func(context.Context) (any, error) {
		calls.Add(1)
		return "catalog", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.Fetch(context.Background(), key, fetcher)
		require.NoError(t, err)
		assert.Equal(t, "catalog", v)
	}
	assert.Equal(t, int32(1), calls.Load())

	state := c.State(key)
	assert.Equal(t, StatusSuccess, state.Status)
	assert.False(t, state.Stale)
	assert.False(t, state.IsFetching)
}

func TestClient_StaleDataRefetches(t *testing.T) {
	c := newTestClient(t)
	key := NewKey("products", nil)
	now := time.Now()
	c.now = func() time.Time { return now }

	_, err := c.Fetch(context.Background(), key, value("v1"))
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	assert.True(t, c.State(key).Stale)

	v, err := c.Fetch(context.Background(), key, value("v2"))
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestClient_ConcurrentFetchesShareOneCall(t *testing.T) {
	c := newTestClient(t)
	key := NewKey("knowledge", nil)
	g := newGate("entries")

	const n = 8
	var wg sync.WaitGroup
	results := make([]any, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Fetch(context.Background(), key, g.fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	waitFetching(t, c, key)
	close(g.release)
	wg.Wait()

	assert.Equal(t, int32(1), g.calls.Load())
	for _, v := range results {
		assert.Equal(t, "entries", v)
	}
}

func TestClient_InvalidateDuringFetchForcesFreshFetch(t *testing.T) {
	c := newTestClient(t)
	key := NewKey("products", "1")
	before := newGate("before mutation")

	oldResult := make(chan any, 1)
	go func() {
		v, _ := c.Fetch(context.Background(), key, before.fetch)
		oldResult <- v
	}()
	waitFetching(t, c, key)

	c.Invalidate("products")

	v, err := c.Fetch(context.Background(), key, value("after mutation"))
	require.NoError(t, err)
	assert.Equal(t, "after mutation", v, "a read after invalidation must not join the earlier fetch")

	close(before.release)
	assert.Equal(t, "before mutation", <-oldResult)

	require.Eventually(t, func() bool { return !c.State(key).IsFetching }, time.Second, time.Millisecond)
	assert.Equal(t, "after mutation", c.State(key).Data)
}

func TestClient_SupersededResultDiscarded(t *testing.T) {
	c := newTestClient(t)
	key := NewKey("conversations", nil)
	first, second := newGate("first"), newGate("second")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = c.Fetch(context.Background(), key, first.fetch)
	}()
	require.Eventually(t, func() bool { return first.calls.Load() == 1 }, time.Second, time.Millisecond)

	c.Invalidate("conversations")
	go func() {
		defer wg.Done()
		_, _ = c.Fetch(context.Background(), key, second.fetch)
	}()
	require.Eventually(t, func() bool { return second.calls.Load() == 1 }, time.Second, time.Millisecond)

	// Resolve out of order: the newer fetch finishes first
	close(second.release)
	require.Eventually(t, func() bool { return c.State(key).Status == StatusSuccess }, time.Second, time.Millisecond)
	close(first.release)
	wg.Wait()

	assert.Equal(t, "second", c.State(key).Data)
}

func TestClient_DiscardedFirstFetchSettlesIdle(t *testing.T) {
	c := newTestClient(t)
	key := NewKey("products", nil)
	g := newGate("catalog")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Fetch(context.Background(), key, g.fetch)
	}()
	waitFetching(t, c, key)
	assert.Equal(t, StatusFetching, c.State(key).Status)

	c.Invalidate("products")
	close(g.release)
	<-done

	state := c.State(key)
	assert.Equal(t, StatusIdle, state.Status)
	assert.False(t, state.IsFetching)
	assert.Nil(t, state.Data)
	assert.True(t, state.Stale)

	v, err := c.Fetch(context.Background(), key, value("fresh"))
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
	assert.Equal(t, StatusSuccess, c.State(key).Status)
}

func TestClient_ErrorKeepsPreviousData(t *testing.T) {
	c := newTestClient(t)
	key := NewKey("ai-settings", nil)
	boom := errors.New("backend down")

	_, err := c.Fetch(context.Background(), key, value("settings v1"))
	require.NoError(t, err)

	c.Invalidate("ai-settings")
	_, err = c.Fetch(context.Background(), key, func(context.Context) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	state := c.State(key)
	assert.Equal(t, StatusError, state.Status)
	assert.ErrorIs(t, state.Err, boom)
	assert.Equal(t, "settings v1", state.Data)

	v, err := c.Fetch(context.Background(), key, value("settings v2"))
	require.NoError(t, err)
	assert.Equal(t, "settings v2", v)
	assert.NoError(t, c.State(key).Err)
}

func TestClient_ErrorsAreScopedToKey(t *testing.T) {
	c := newTestClient(t)
	bad, good := NewKey("users", "1"), NewKey("users", "2")

	_, err := c.Fetch(context.Background(), bad, func(context.Context) (any, error) { return nil, errors.New("nope") })
	require.Error(t, err)

	v, err := c.Fetch(context.Background(), good, value("Sarah"))
	require.NoError(t, err)
	assert.Equal(t, "Sarah", v)
	assert.Equal(t, StatusSuccess, c.State(good).Status)
}

func TestClient_CallerCancellationKeepsSharedFetch(t *testing.T) {
	c := newTestClient(t)
	key := NewKey("analytics", nil)
	g := newGate("report")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.Fetch(ctx, key, g.fetch)
		done <- err
	}()
	waitFetching(t, c, key)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(g.release)
	require.Eventually(t, func() bool { return c.State(key).Status == StatusSuccess }, time.Second, time.Millisecond)
	assert.Equal(t, "report", c.State(key).Data)
}

func TestClient_FetchTimeout(t *testing.T) {
	c := NewClient(Options{StaleTime: time.Minute, FetchTimeout: 10 * time.Millisecond}, zaptest.NewLogger(t))
	key := NewKey("analytics", nil)

	_, err := c.Fetch(context.Background(), key, newGate(nil).fetch)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StatusError, c.State(key).Status)
}

func TestClient_Mutate(t *testing.T) {
	c := newTestClient(t)
	products, kpis := NewKey("products", nil), NewKey("dashboard-kpis", nil)
	_, err := c.Fetch(context.Background(), products, value("list"))
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), kpis, value("kpis"))
	require.NoError(t, err)

	failed := errors.New("validation failed")
	err = c.Mutate(context.Background(), []string{"products", "dashboard-kpis"}, func(context.Context) error {
		return failed
	})
	assert.ErrorIs(t, err, failed)
	assert.False(t, c.State(products).Stale, "failed mutations invalidate nothing")

	created, err := MutateValue(context.Background(), c, []string{"products", "dashboard-kpis"}, func(context.Context) (string, error) {
		return "new product", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new product", created)
	assert.True(t, c.State(products).Stale)
	assert.True(t, c.State(kpis).Stale)
}

func TestGet_TypeMismatch(t *testing.T) {
	c := newTestClient(t)
	key := NewKey("users", nil)

	n, err := Get(context.Background(), c, key, func(context.Context) (int, error) { return 3, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = Get(context.Background(), c, key, func(context.Context) (string, error) { return "x", nil })
	assert.Error(t, err)
}

func TestClient_Prune(t *testing.T) {
	c := newTestClient(t)
	now := time.Now()
	c.now = func() time.Time { return now }

	kept, dropped := NewKey("users", nil), NewKey("orders", nil)
	_, err := c.Fetch(context.Background(), dropped, value("orders"))
	require.NoError(t, err)
	o := c.Watch(kept, value("users"))
	defer o.Close()

	assert.Zero(t, c.Prune(now.Add(time.Minute)))
	assert.Equal(t, 1, c.Prune(now.Add(10*time.Minute)))

	assert.Equal(t, StatusIdle, c.State(dropped).Status)
	require.Eventually(t, func() bool { return c.State(kept).Status == StatusSuccess }, time.Second, time.Millisecond)
}
