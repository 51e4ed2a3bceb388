package activity_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sikkim-flood-portal/internal/activity"
	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
	"github.com/couchcryptid/sikkim-flood-portal/internal/observability"
)

// --- mocks ---

type mockLoader struct {
	mu       sync.Mutex
	failures int // fail this many calls before succeeding
	calls    int
	loaded   []domain.ActivityEvent
}

func (m *mockLoader) LoadBatch(_ context.Context, events []domain.ActivityEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.calls <= m.failures {
		return errors.New("broker unavailable")
	}
	m.loaded = append(m.loaded, events...)
	return nil
}

func (m *mockLoader) snapshot() ([]domain.ActivityEvent, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ActivityEvent, len(m.loaded))
	copy(out, m.loaded)
	return out, m.calls
}

// cancellingLoader cancels the pipeline's context on its first call, as a
// shutdown signal arriving mid-stream would.
type cancellingLoader struct {
	mockLoader
	cancel context.CancelFunc
}

func (c *cancellingLoader) LoadBatch(ctx context.Context, events []domain.ActivityEvent) error {
	c.cancel()
	return c.mockLoader.LoadBatch(ctx, events)
}

type failingExtractor struct{ calls int }

func (f *failingExtractor) ExtractBatch(ctx context.Context, _ int) ([]domain.ActivityEvent, error) {
	f.calls++
	if f.calls == 1 {
		return nil, errors.New("source broken")
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newBuffer() *activity.Buffer {
	return activity.NewBuffer(100, 20*time.Millisecond, clockwork.NewRealClock(), observability.NewMetricsForTesting())
}

// --- tests ---

func TestPipeline_Run_DeliversInOrder(t *testing.T) {
	buf := newBuffer()
	ldr := &mockLoader{}
	p := activity.New(buf, ldr, discard(), observability.NewMetricsForTesting(), 2)

	want := []domain.ActivityEvent{event("a"), event("b"), event("c")}
	for _, ev := range want {
		buf.Record(ev)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	require.NoError(t, p.Run(ctx))

	got, _ := ldr.snapshot()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("loaded events mismatch (-want +got):\n%s", diff)
	}
}

func TestPipeline_Run_RetriesFailedLoad(t *testing.T) {
	buf := newBuffer()
	ldr := &mockLoader{failures: 1}
	p := activity.New(buf, ldr, discard(), observability.NewMetricsForTesting(), 10)
	buf.Record(event("retry-me"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Run(ctx))

	got, calls := ldr.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, "retry-me", got[0].Subject)
	assert.Equal(t, 2, calls)
}

func TestPipeline_Run_ExtractErrorBacksOff(t *testing.T) {
	ext := &failingExtractor{}
	p := activity.New(ext, &mockLoader{}, discard(), observability.NewMetricsForTesting(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	require.NoError(t, p.Run(ctx))

	assert.Equal(t, 2, ext.calls)
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ldr := &mockLoader{}
	p := activity.New(newBuffer(), ldr, discard(), observability.NewMetricsForTesting(), 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Run(ctx))
	got, _ := ldr.snapshot()
	assert.Empty(t, got)
}

func TestPipeline_Run_DrainsBufferOnShutdown(t *testing.T) {
	buf := newBuffer()
	want := []domain.ActivityEvent{event("a"), event("b"), event("c"), event("d"), event("e")}
	for _, ev := range want {
		buf.Record(ev)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ldr := &cancellingLoader{cancel: cancel}
	p := activity.New(buf, ldr, discard(), observability.NewMetricsForTesting(), 2)

	require.NoError(t, p.Run(ctx))

	got, calls := ldr.snapshot()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("loaded events mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, calls)
	assert.Zero(t, buf.Len())
}

func TestPipeline_Run_DrainsEventsRecordedBeforeStart(t *testing.T) {
	buf := newBuffer()
	buf.Record(event("late"))
	ldr := &mockLoader{}
	p := activity.New(buf, ldr, discard(), observability.NewMetricsForTesting(), 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, p.Run(ctx))

	got, _ := ldr.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, "late", got[0].Subject)
}

func TestPipeline_Readiness(t *testing.T) {
	p := activity.New(newBuffer(), &mockLoader{}, discard(), observability.NewMetricsForTesting(), 10)
	require.Error(t, p.CheckReadiness(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = p.Run(ctx)
	}()

	assert.Eventually(t, func() bool {
		return p.CheckReadiness(context.Background()) == nil
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestLogLoader_LoadBatch(t *testing.T) {
	ldr := activity.NewLogLoader(discard())
	require.NoError(t, ldr.LoadBatch(context.Background(), []domain.ActivityEvent{event("x")}))
}
