// Package dashboard owns the single session bundle and serializes every
// action on it.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lifeos/internal/core"
	"lifeos/internal/habit"
	"lifeos/internal/ledger"
	"lifeos/internal/log"
	"lifeos/internal/storage"
	"lifeos/internal/tasks"
)

// RecentTransactions is how many ledger entries the dashboard shows.
const RecentTransactions = 5

// Session is the only owner of the dashboard state. Every state change is
// persisted through the store; a failed save is logged and the in-memory
// state is kept.
type Session struct {
	mu      sync.Mutex
	store   storage.Saver
	ledger  *ledger.Ledger
	tasks   *tasks.List
	habit   *habit.Tracker
	loc     *time.Location
	now     func() time.Time
	logger  *log.Logger
	events  *log.StructuredLogger
	version uint64
}

type Option func(*Session)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLocation sets the zone in which calendar days are counted.
func WithLocation(loc *time.Location) Option {
	return func(s *Session) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open loads the bundle from store and starts a session on it. A load error
// is returned as is so the caller can refuse to start instead of
// overwriting stored data with an empty bundle.
func Open(ctx context.Context, store storage.Store, opts ...Option) (*Session, error) {
	b, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bundle: %w", err)
	}
	s := New(b, store, opts...)

	if fold := s.ledger.Recompute(); fold != b.Balance {
		s.logger.WarnContext(ctx, "Stored balance differs from transaction total",
			log.FieldBalanceCents, b.Balance.Cents,
			"fold_cents", fold.Cents,
			"transactions", s.ledger.Len())
	}
	s.logger.InfoContext(ctx, "Session loaded",
		"tasks", len(b.Tasks),
		"transactions", len(b.Transactions),
		log.FieldStreak, b.Streak)
	return s, nil
}

// New starts a session on an already loaded bundle.
func New(b core.Bundle, store storage.Saver, opts ...Option) *Session {
	b = b.Clone()
	s := &Session{
		store:  store,
		loc:    time.Local,
		now:    time.Now,
		logger: log.New(log.DefaultConfig()).WithComponent(log.ComponentSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = log.NewStructuredLogger(s.logger)
	s.ledger = ledger.New(b.Transactions, b.Balance)
	s.tasks = tasks.New(b.Tasks)
	s.habit = habit.NewTracker(b.State(), s.loc)
	return s
}

// Location returns the zone used for day boundaries.
func (s *Session) Location() *time.Location {
	return s.loc
}

// Now returns the session clock in the session location.
func (s *Session) Now() time.Time {
	return s.now().In(s.loc)
}

// Version increases on every state change. It is used to key caches.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Snapshot returns a deep copy of the bundle.
func (s *Session) Snapshot() core.Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bundle()
}

func (s *Session) bundle() core.Bundle {
	st := s.habit.State()
	return core.Bundle{
		Tasks:         s.tasks.Items(),
		Transactions:  s.ledger.Transactions(),
		Balance:       s.ledger.Balance(),
		Streak:        st.Streak,
		LastHabitDate: st.LastHabitDate,
	}
}

// changed persists the bundle. Callers hold s.mu.
func (s *Session) changed(ctx context.Context, op string) {
	s.version++
	if s.store == nil {
		return
	}
	// The write must not die with the request that triggered it.
	ctx = context.WithoutCancel(ctx)
	if err := s.store.Save(ctx, s.bundle()); err != nil {
		s.events.LogError(ctx, "Failed to persist bundle", err, log.ComponentStorage, op,
			log.LogFields{log.FieldVersion: s.version})
		return
	}
	s.logger.DebugContext(ctx, "Bundle persisted", log.FieldOperation, op, log.FieldVersion, s.version)
}
