// Package activity streams visitor interactions to a loader in batches.
package activity

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"

	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
	"github.com/couchcryptid/sikkim-flood-portal/internal/observability"
)

const (
	initialBackoff    = 200 * time.Millisecond
	maxBackoff        = 5 * time.Second
	finalFlushTimeout = 5 * time.Second
)

// BatchExtractor reads up to batchSize events from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.ActivityEvent, error)
}

// BatchLoader writes multiple events to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.ActivityEvent) error
}

// Drainer is implemented by extractors that hold events in memory. The
// pipeline drains them once on shutdown.
type Drainer interface {
	Drain() []domain.ActivityEvent
}

// Pipeline moves batches from an extractor to a loader until cancelled.
type Pipeline struct {
	extractor BatchExtractor
	loader    BatchLoader
	logger    *slog.Logger
	metrics   *observability.Metrics
	running   atomic.Bool
	batchSize int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor: e,
		loader:    l,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// CheckReadiness returns nil while Run is active.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.running.Load() {
		return errors.New("activity stream is not running")
	}
	return nil
}

// Run executes the batch loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("activity stream started", "batch_size", p.batchSize)
	p.running.Store(true)
	p.metrics.ActivityRunning.Set(1)
	defer func() {
		p.running.Store(false)
		p.metrics.ActivityRunning.Set(0)
	}()

	backoff := initialBackoff
	for {
		if ctx.Err() != nil || !p.processBatch(ctx, &backoff) {
			p.logger.Info("activity stream stopping", "reason", ctx.Err())
			p.flushFinal(ctx, nil)
			return nil
		}
	}
}

// processBatch runs one extract-load cycle. Returns false if the loop should stop.
func (p *Pipeline) processBatch(ctx context.Context, backoff *time.Duration) bool {
	batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.backoffOrStop(ctx, backoff)
	}
	if len(batch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.BatchSize.Observe(float64(len(batch)))

	if ctx.Err() != nil {
		p.flushFinal(ctx, batch)
		return false
	}

	start := time.Now()
	for {
		err := p.loader.LoadBatch(ctx, batch)
		if err == nil {
			break
		}
		p.metrics.ActivityPublishErrors.Inc()
		p.logger.Error("load batch failed", "error", err, "batch_size", len(batch))
		if !p.backoffOrStop(ctx, backoff) {
			p.flushFinal(ctx, batch)
			return false
		}
	}

	*backoff = initialBackoff
	p.metrics.ActivityPublished.Add(float64(len(batch)))
	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	return true
}

// flushFinal makes one last attempt to load batch, followed by anything the
// extractor still buffers, after ctx was cancelled. All loads share a single
// finalFlushTimeout.
func (p *Pipeline) flushFinal(ctx context.Context, batch []domain.ActivityEvent) {
	pending := batch
	if d, ok := p.extractor.(Drainer); ok {
		pending = append(pending, d.Drain()...)
	}
	if len(pending) == 0 {
		return
	}

	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalFlushTimeout)
	defer cancel()

	size := p.batchSize
	if size < 1 {
		size = len(pending)
	}
	for start := 0; start < len(pending); start += size {
		chunk := pending[start:min(start+size, len(pending))]
		if err := p.loader.LoadBatch(flushCtx, chunk); err != nil {
			p.metrics.ActivityPublishErrors.Inc()
			p.logger.Warn("dropping activity on shutdown", "error", err, "dropped", len(pending)-start)
			return
		}
		p.metrics.ActivityPublished.Add(float64(len(chunk)))
	}
}

// backoffOrStop sleeps with the current backoff and advances it. Returns
// false if the context was cancelled.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !retry.SleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = retry.NextBackoff(*backoff, maxBackoff)
	return true
}
