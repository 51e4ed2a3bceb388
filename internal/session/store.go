package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"github.com/couchcryptid/sikkim-flood-portal/internal/cache"
	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
	"github.com/couchcryptid/sikkim-flood-portal/internal/observability"
)

// StoreConfig bounds the session store.
type StoreConfig struct {
	Capacity      int
	IdleTTL       time.Duration
	SweepSchedule string // cron spec, e.g. "@every 1m"
}

type entry struct {
	state    State
	lastSeen time.Time
}

// Store keeps visitor sessions in memory. The least recently used session is
// evicted at capacity and sessions idle for longer than IdleTTL expire.
// Mutations are serialized by a single store lock.
type Store struct {
	cfg      StoreConfig
	catalog  *domain.Catalog
	sessions *cache.LRU[string, *entry]
	clock    clockwork.Clock
	metrics  *observability.Metrics
	logger   *slog.Logger

	mu       sync.Mutex
	onExpire func(id string)
}

// NewStore creates an empty store whose new sessions start from NewState(c).
func NewStore(cfg StoreConfig, c *domain.Catalog, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Store {
	s := &Store{
		cfg:      cfg,
		catalog:  c,
		sessions: cache.New[string, *entry](cfg.Capacity),
		clock:    clock,
		metrics:  metrics,
		logger:   logger,
	}
	s.sessions.OnEvict(func(id string, _ *entry) {
		s.metrics.SessionsEvicted.WithLabelValues("capacity").Inc()
		s.metrics.SessionsActive.Dec()
		s.logger.Debug("session evicted", "session_id", id, "reason", "capacity")
	})
	return s
}

// OnExpire registers fn to be called with the id of every session the
// sweeper removes for idleness.
func (s *Store) OnExpire(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpire = fn
}

// Create starts a new session and returns its id and initial state.
func (s *Store) Create() (string, State) {
	id := uuid.NewString()
	state := NewState(s.catalog)

	s.mu.Lock()
	s.sessions.Put(id, &entry{state: state, lastSeen: s.clock.Now()})
	s.mu.Unlock()

	s.metrics.SessionsActive.Inc()
	return id, state.Clone()
}

// Get returns a copy of the session state and refreshes its idle timer.
func (s *Store) Get(id string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(id)
	if !ok {
		return State{}, false
	}
	e.lastSeen = s.clock.Now()
	return e.state.Clone(), true
}

// GetOrCreate returns the session for id, starting a new one when id is
// empty, unknown or expired. created reports whether a new id was issued.
func (s *Store) GetOrCreate(id string) (sessionID string, state State, created bool) {
	if id != "" {
		if st, ok := s.Get(id); ok {
			return id, st, false
		}
	}
	newID, st := s.Create()
	return newID, st, true
}

// Update applies fn to the session state under the store lock. The returned
// state is a copy taken after fn ran; fn's change flag is passed through.
func (s *Store) Update(id string, fn func(*State) (bool, error)) (State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(id)
	if !ok {
		return State{}, false, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	e.lastSeen = s.clock.Now()

	working := e.state.Clone()
	changed, err := fn(&working)
	if err != nil {
		return e.state.Clone(), false, err
	}
	e.state = working
	return working.Clone(), changed, nil
}

// Len returns the number of sessions held, expired ones included until the
// next sweep.
func (s *Store) Len() int { return s.sessions.Len() }

// Sweep removes every idle session and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	now := s.clock.Now()
	var expired []string
	n := s.sessions.DeleteFunc(func(id string, e *entry) bool {
		if now.Sub(e.lastSeen) > s.cfg.IdleTTL {
			expired = append(expired, id)
			return true
		}
		return false
	})
	hook := s.onExpire
	s.mu.Unlock()

	if n > 0 {
		s.metrics.SessionsEvicted.WithLabelValues("idle").Add(float64(n))
		s.metrics.SessionsActive.Sub(float64(n))
		s.logger.Info("expired idle sessions", "count", n, "remaining", s.sessions.Len())
	}
	if hook != nil {
		for _, id := range expired {
			hook(id)
		}
	}
	return n
}

// Run sweeps idle sessions on the configured cron schedule until ctx is
// cancelled.
func (s *Store) Run(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(s.cfg.SweepSchedule, func() { s.Sweep() }); err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}

	s.logger.Info("session sweeper started",
		"schedule", s.cfg.SweepSchedule,
		"idle_ttl", s.cfg.IdleTTL,
		"capacity", s.cfg.Capacity,
	)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")
	return nil
}

// live returns the entry for id, dropping it when it has expired. Callers
// hold s.mu.
func (s *Store) live(id string) (*entry, bool) {
	e, ok := s.sessions.Get(id)
	if !ok {
		return nil, false
	}
	if s.clock.Since(e.lastSeen) > s.cfg.IdleTTL {
		if s.sessions.Delete(id) {
			s.metrics.SessionsEvicted.WithLabelValues("idle").Inc()
			s.metrics.SessionsActive.Dec()
		}
		return nil, false
	}
	return e, true
}
