package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/sporters/courtside/internal/model"
)

// subscriberBuffer is the per-subscriber channel depth. A subscriber that
// falls this far behind starts dropping updates instead of stalling the
// poll loop.
const subscriberBuffer = 8

// Store owns the current market snapshot.
type Store struct {
	logger *slog.Logger

	mu        sync.RWMutex
	markets   []model.Market
	updatedAt time.Time
	lastErr   string

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan model.Snapshot
}

// New creates an empty store.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		logger: logger,
		subs:   make(map[int]chan model.Snapshot),
	}
}

// Replace swaps in a fresh market list, clears any recorded error, and
// notifies subscribers.
func (s *Store) Replace(markets []model.Market) {
	now := time.Now().UTC()

	s.mu.Lock()
	s.markets = markets
	s.updatedAt = now
	s.lastErr = ""
	s.mu.Unlock()

	s.broadcast(model.Snapshot{Markets: markets, UpdatedAt: now})
}

// SetError records the most recent fetch failure. The displayed list is
// left untouched so readers keep seeing the prior snapshot.
func (s *Store) SetError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	markets := make([]model.Market, len(s.markets))
	copy(markets, s.markets)

	return model.Snapshot{Markets: markets, UpdatedAt: s.updatedAt}
}

// LastError returns the most recent fetch failure message, empty after a
// successful refresh.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Subscribe registers for snapshot updates. The returned id releases the
// subscription via Unsubscribe.
func (s *Store) Subscribe() (int, <-chan model.Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan model.Snapshot, subscriberBuffer)
	s.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (s *Store) Unsubscribe(id int) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if ch, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Store) broadcast(snap model.Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for id, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			s.logger.Debug("subscriber lagging, dropping update", "subscriber", id)
		}
	}
}
