package service

import (
	"context"
	"testing"
	"time"

	"github.com/liliang-cn/ragshop/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLatency_Delay(t *testing.T) {
	l := NewLatency(config.LatencyConfig{
		Enabled: true,
		Scale:   0.5,
		Read:    300 * time.Millisecond,
		List:    500 * time.Millisecond,
		Write:   500 * time.Millisecond,
		Heavy:   800 * time.Millisecond,
		Export:  time.Second,
		Reindex: 2 * time.Second,
	})

	assert.Equal(t, 150*time.Millisecond, l.Delay(WeightRead))
	assert.Equal(t, 250*time.Millisecond, l.Delay(WeightList))
	assert.Equal(t, 250*time.Millisecond, l.Delay(WeightWrite))
	assert.Equal(t, 400*time.Millisecond, l.Delay(WeightHeavy))
	assert.Equal(t, 500*time.Millisecond, l.Delay(WeightExport))
	assert.Equal(t, time.Second, l.Delay(WeightReindex))

	disabled := NewLatency(config.LatencyConfig{Enabled: false, Read: time.Second})
	assert.Zero(t, disabled.Delay(WeightRead))
}

func TestLatency_Wait(t *testing.T) {
	t.Run("waits the configured delay", func(t *testing.T) {
		l := NewLatency(config.LatencyConfig{Enabled: true, Read: 20 * time.Millisecond})
		start := time.Now()
		assert.NoError(t, l.Wait(context.Background(), WeightRead))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("cancellation interrupts the wait", func(t *testing.T) {
		l := NewLatency(config.LatencyConfig{Enabled: true, Read: time.Minute})
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := l.Wait(ctx, WeightRead)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("no latency still reports cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, NoLatency().Wait(ctx, WeightWrite), context.Canceled)
	})
}
