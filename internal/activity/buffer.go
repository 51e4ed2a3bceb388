package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
	"github.com/couchcryptid/sikkim-flood-portal/internal/observability"
)

// Recorder accepts activity events without blocking the caller.
type Recorder interface {
	Record(event domain.ActivityEvent)
}

// NewEvent stamps an activity event with a fresh id and the domain clock.
func NewEvent(t domain.ActivityType, sessionID, subject string) domain.ActivityEvent {
	return domain.ActivityEvent{
		ID:        uuid.NewString(),
		Type:      t,
		SessionID: sessionID,
		Subject:   subject,
		At:        domain.Now(),
	}
}

// Buffer is a bounded in-memory queue between request handlers and the
// activity pipeline. It implements Recorder and BatchExtractor. When full,
// new events are dropped and counted. It also implements Drainer so nothing
// recorded before shutdown is lost.
type Buffer struct {
	events        chan domain.ActivityEvent
	flushInterval time.Duration
	clock         clockwork.Clock
	metrics       *observability.Metrics
}

// NewBuffer creates a Buffer holding at most size events. A batch is handed
// out once it is full or flushInterval after its first event arrived.
func NewBuffer(size int, flushInterval time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *Buffer {
	if size < 1 {
		size = 1
	}
	return &Buffer{
		events:        make(chan domain.ActivityEvent, size),
		flushInterval: flushInterval,
		clock:         clock,
		metrics:       metrics,
	}
}

// Record enqueues event, dropping it if the buffer is full.
func (b *Buffer) Record(event domain.ActivityEvent) {
	select {
	case b.events <- event:
		b.metrics.ActivityRecorded.Inc()
	default:
		b.metrics.ActivityDropped.Inc()
	}
}

// Len is the number of buffered events.
func (b *Buffer) Len() int { return len(b.events) }

// Drain removes and returns every buffered event without blocking.
func (b *Buffer) Drain() []domain.ActivityEvent {
	var out []domain.ActivityEvent
	for {
		select {
		case ev := <-b.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// ExtractBatch blocks until at least one event is available, then collects
// up to batchSize events or until the flush interval elapses. If ctx is
// cancelled after the first event arrived, the partial batch is returned
// without error.
func (b *Buffer) ExtractBatch(ctx context.Context, batchSize int) ([]domain.ActivityEvent, error) {
	var first domain.ActivityEvent
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case first = <-b.events:
	}

	batch := make([]domain.ActivityEvent, 1, batchSize)
	batch[0] = first

	timer := b.clock.NewTimer(b.flushInterval)
	defer timer.Stop()

	for len(batch) < batchSize {
		select {
		case ev := <-b.events:
			batch = append(batch, ev)
		case <-timer.Chan():
			return batch, nil
		case <-ctx.Done():
			return batch, nil
		}
	}
	return batch, nil
}
