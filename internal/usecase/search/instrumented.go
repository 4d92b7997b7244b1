package search

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scanexplorer/internal/domain"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/dsl"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/result"
	"github.com/kailas-cloud/scanexplorer/internal/logger"
	"github.com/kailas-cloud/scanexplorer/internal/metrics"
)

// InstrumentedEngine wraps Engine with round-trip metrics and failure logging.
type InstrumentedEngine struct {
	inner Engine
}

// NewInstrumentedEngine wraps an engine with observability.
func NewInstrumentedEngine(inner Engine) *InstrumentedEngine {
	return &InstrumentedEngine{inner: inner}
}

// Grouped delegates and records the round-trip.
func (e *InstrumentedEngine) Grouped(ctx context.Context, body dsl.Body) (int, []result.Bucket, error) {
	start := time.Now()
	total, buckets, err := e.inner.Grouped(ctx, body)
	e.observe(ctx, "grouped", start, err)
	return total, buckets, err
}

// Hits delegates and records the round-trip.
func (e *InstrumentedEngine) Hits(ctx context.Context, body dsl.Body) (int, []result.Hit, error) {
	start := time.Now()
	total, hits, err := e.inner.Hits(ctx, body)
	e.observe(ctx, "hits", start, err)
	return total, hits, err
}

// OCRText delegates and records the round-trip.
func (e *InstrumentedEngine) OCRText(ctx context.Context, body dsl.Body) (string, error) {
	start := time.Now()
	text, err := e.inner.OCRText(ctx, body)
	e.observe(ctx, "ocr", start, err)
	return text, err
}

// Highlighted delegates and records the round-trip.
func (e *InstrumentedEngine) Highlighted(ctx context.Context, body dsl.Body) ([]result.Hit, error) {
	start := time.Now()
	hits, err := e.inner.Highlighted(ctx, body)
	e.observe(ctx, "highlight", start, err)
	return hits, err
}

func (e *InstrumentedEngine) observe(ctx context.Context, op string, start time.Time, err error) {
	duration := time.Since(start)
	metrics.EngineRequestDuration.WithLabelValues(op).Observe(duration.Seconds())
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		return
	}
	metrics.EngineErrorsTotal.WithLabelValues(op).Inc()
	logger.FromContext(ctx).Warn("Search engine request failed",
		zap.String("op", op),
		zap.Duration("duration", duration),
		zap.Error(err),
	)
}
