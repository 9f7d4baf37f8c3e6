package service

import (
	"context"
	"time"

	"github.com/liliang-cn/ragshop/internal/config"
)

// Weight selects which simulated delay an operation waits
type Weight int

const (
	WeightRead Weight = iota
	WeightList
	WeightWrite
	WeightHeavy
	WeightExport
	WeightReindex
)

// Latency simulates the network delay of a remote backend
type Latency struct {
	enabled bool
	delays  map[Weight]time.Duration
}

// NewLatency creates a latency simulator from configuration
func NewLatency(cfg config.LatencyConfig) *Latency {
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	scaled := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * scale)
	}
	return &Latency{
		enabled: cfg.Enabled,
		delays: map[Weight]time.Duration{
			WeightRead:    scaled(cfg.Read),
			WeightList:    scaled(cfg.List),
			WeightWrite:   scaled(cfg.Write),
			WeightHeavy:   scaled(cfg.Heavy),
			WeightExport:  scaled(cfg.Export),
			WeightReindex: scaled(cfg.Reindex),
		},
	}
}

// NoLatency returns a simulator that never waits
func NoLatency() *Latency {
	return &Latency{}
}

// Delay returns the configured delay for a weight
func (l *Latency) Delay(w Weight) time.Duration {
	if l == nil || !l.enabled {
		return 0
	}
	return l.delays[w]
}

// Wait blocks for the delay of w or until ctx is done
func (l *Latency) Wait(ctx context.Context, w Weight) error {
	d := l.Delay(w)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
