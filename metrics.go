package slotvec

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting snapshot metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    saveBytes    prometheus.Counter
//	    saveDuration prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSave(bytes int, duration time.Duration, err error) {
//	    p.saveBytes.Add(float64(bytes))
//	    p.saveDuration.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordSave is called after each snapshot save.
	// bytes is the encoded size, err is nil if successful.
	RecordSave(bytes int, duration time.Duration, err error)

	// RecordLoad is called after each snapshot load.
	RecordLoad(bytes int, duration time.Duration, err error)

	// RecordPrune is called after old snapshots were deleted.
	RecordPrune(deleted int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSave(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordPrune(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SaveCount      atomic.Int64
	SaveErrors     atomic.Int64
	SaveBytes      atomic.Int64
	SaveTotalNanos atomic.Int64
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadBytes      atomic.Int64
	LoadTotalNanos atomic.Int64
	PruneCount     atomic.Int64
	PruneErrors    atomic.Int64
	PrunedBlobs    atomic.Int64
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(bytes int, duration time.Duration, err error) {
	b.SaveCount.Add(1)
	b.SaveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SaveErrors.Add(1)
		return
	}
	b.SaveBytes.Add(int64(bytes))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(bytes int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadBytes.Add(int64(bytes))
}

// RecordPrune implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPrune(deleted int, duration time.Duration, err error) {
	b.PruneCount.Add(1)
	b.PrunedBlobs.Add(int64(deleted))
	if err != nil {
		b.PruneErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SaveCount:    b.SaveCount.Load(),
		SaveErrors:   b.SaveErrors.Load(),
		SaveBytes:    b.SaveBytes.Load(),
		SaveAvgNanos: avgNanos(b.SaveTotalNanos.Load(), b.SaveCount.Load()),
		LoadCount:    b.LoadCount.Load(),
		LoadErrors:   b.LoadErrors.Load(),
		LoadBytes:    b.LoadBytes.Load(),
		LoadAvgNanos: avgNanos(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
		PruneCount:   b.PruneCount.Load(),
		PruneErrors:  b.PruneErrors.Load(),
		PrunedBlobs:  b.PrunedBlobs.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SaveCount    int64
	SaveErrors   int64
	SaveBytes    int64
	SaveAvgNanos int64
	LoadCount    int64
	LoadErrors   int64
	LoadBytes    int64
	LoadAvgNanos int64
	PruneCount   int64
	PruneErrors  int64
	PrunedBlobs  int64
}
