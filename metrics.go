package langclust

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    parseCounter       prometheus.Counter
//	    iterationHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordParse(lines int, duration time.Duration, err error) {
//	    p.parseCounter.Add(float64(lines))
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordParse is called after the dump parsing stage.
	// lines is the number of input lines attempted, duration is the total
	// time taken, err is nil if successful.
	RecordParse(lines int, duration time.Duration, err error)

	// RecordAssociate is called after the question/answer association stage.
	RecordAssociate(duration time.Duration, err error)

	// RecordSeed is called after the center seeding stage.
	// k is the number of centers requested.
	RecordSeed(k int, duration time.Duration, err error)

	// RecordIteration is called after every completed refinement iteration.
	// shift is the total squared center movement.
	RecordIteration(iteration int, shift int64, duration time.Duration)

	// RecordSummarize is called after the summary stage.
	RecordSummarize(clusters int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordParse(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordAssociate(time.Duration, error)      {}
func (NoopMetricsCollector) RecordSeed(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordIteration(int, int64, time.Duration) {}
func (NoopMetricsCollector) RecordSummarize(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ParseCount          atomic.Int64
	ParseLines          atomic.Int64
	ParseErrors         atomic.Int64
	ParseTotalNanos     atomic.Int64
	AssociateCount      atomic.Int64
	AssociateErrors     atomic.Int64
	SeedCount           atomic.Int64
	SeedErrors          atomic.Int64
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
	LastShift           atomic.Int64
	SummarizeCount      atomic.Int64
	SummarizeErrors     atomic.Int64
}

// RecordParse implements MetricsCollector.
func (b *BasicMetricsCollector) RecordParse(lines int, duration time.Duration, err error) {
	b.ParseCount.Add(1)
	b.ParseLines.Add(int64(lines))
	b.ParseTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ParseErrors.Add(1)
	}
}

// RecordAssociate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAssociate(duration time.Duration, err error) {
	b.AssociateCount.Add(1)
	if err != nil {
		b.AssociateErrors.Add(1)
	}
}

// RecordSeed implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSeed(k int, duration time.Duration, err error) {
	b.SeedCount.Add(1)
	if err != nil {
		b.SeedErrors.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(iteration int, shift int64, duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
	b.LastShift.Store(shift)
}

// RecordSummarize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSummarize(clusters int, duration time.Duration, err error) {
	b.SummarizeCount.Add(1)
	if err != nil {
		b.SummarizeErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ParseCount:        b.ParseCount.Load(),
		ParseLines:        b.ParseLines.Load(),
		ParseErrors:       b.ParseErrors.Load(),
		AssociateCount:    b.AssociateCount.Load(),
		AssociateErrors:   b.AssociateErrors.Load(),
		SeedCount:         b.SeedCount.Load(),
		SeedErrors:        b.SeedErrors.Load(),
		IterationCount:    b.IterationCount.Load(),
		IterationAvgNanos: b.getAvgIterationNanos(),
		LastShift:         b.LastShift.Load(),
		SummarizeCount:    b.SummarizeCount.Load(),
		SummarizeErrors:   b.SummarizeErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgIterationNanos() int64 {
	count := b.IterationCount.Load()
	if count == 0 {
		return 0
	}
	return b.IterationTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ParseCount        int64
	ParseLines        int64
	ParseErrors       int64
	AssociateCount    int64
	AssociateErrors   int64
	SeedCount         int64
	SeedErrors        int64
	IterationCount    int64
	IterationAvgNanos int64
	LastShift         int64
	SummarizeCount    int64
	SummarizeErrors   int64
}
