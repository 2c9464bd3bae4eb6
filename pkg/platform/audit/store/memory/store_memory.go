package memory

import (
	"context"
	"sync"

	audit "ledgerguard/pkg/platform/audit"
	txcontext "ledgerguard/pkg/platform/tx"
)

// InMemoryStore keeps events in append order. Used in tests and when the
// server runs without Postgres.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []entry
	seq    uint64
}

type entry struct {
	seq   uint64
	event audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

func (s *InMemoryStore) Append(ctx context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	md := make(map[string]any, len(event.Metadata))
	for k, v := range event.Metadata {
		md[k] = v
	}
	event.Metadata = md
	s.seq++
	seq := s.seq
	s.events = append(s.events, entry{seq: seq, event: event})

	// An event written inside a failed unit of work is discarded with it.
	txcontext.OnRollback(ctx, func() { s.remove(seq) })
	return nil
}

func (s *InMemoryStore) remove(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.events {
		if e.seq == seq {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return
		}
	}
}

func (s *InMemoryStore) ListByEntity(_ context.Context, entityID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.event.EntityID == entityID {
			out = append(out, e.event)
		}
	}
	return out, nil
}

// ListAll returns every event in append order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]audit.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.event)
	}
	return out, nil
}
