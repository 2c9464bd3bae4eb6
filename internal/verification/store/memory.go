package store

import (
	"context"
	"sort"
	"sync"

	"ledgerguard/internal/verification/models"
	id "ledgerguard/pkg/domain"
	"ledgerguard/pkg/platform/sentinel"
	txcontext "ledgerguard/pkg/platform/tx"
)

// InMemory keeps records in a map. Execute holds the store mutex across
// validate and mutate, which stands in for the row lock.
type InMemory struct {
	mu      sync.Mutex
	records map[id.RecordID]*models.Record
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[id.RecordID]*models.Record)}
}

func (s *InMemory) Create(ctx context.Context, record *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.ID]; exists {
		return sentinel.ErrConflict
	}
	for _, r := range s.records {
		if r.OwnerID != record.OwnerID || r.Kind != record.Kind {
			continue
		}
		if record.Kind == models.KindKYC || (record.IsPrimary && r.IsPrimary) {
			return sentinel.ErrConflict
		}
	}
	s.records[record.ID] = record.Clone()
	written := record.Version
	txcontext.OnRollback(ctx, func() { s.drop(record.ID, written) })
	return nil
}

// drop and restore undo a write only while the slot still holds the version
// that write produced, so a rollback never clobbers a later commit.
func (s *InMemory) drop(recordID id.RecordID, written int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.records[recordID]; ok && cur.Version == written {
		delete(s.records, recordID)
	}
}

func (s *InMemory) restore(prev *models.Record, written int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.records[prev.ID]; ok && cur.Version == written {
		s.records[prev.ID] = prev
	}
}

func (s *InMemory) undelete(prev *models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[prev.ID]; !ok {
		s.records[prev.ID] = prev
	}
}

func (s *InMemory) FindByID(_ context.Context, recordID id.RecordID) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[recordID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return r.Clone(), nil
}

func (s *InMemory) FindKYCByOwner(_ context.Context, owner id.NodeID) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.OwnerID == owner && r.Kind == models.KindKYC {
			return r.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// ListByOwner returns the owner's records of kind, oldest first.
func (s *InMemory) ListByOwner(_ context.Context, owner id.NodeID, kind models.Kind) ([]*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Record
	for _, r := range s.records {
		if r.OwnerID == owner && r.Kind == kind {
			out = append(out, r.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Execute runs validate then mutate on a copy while holding the lock and
// persists the copy with the version bumped. A validate error leaves the
// record untouched.
func (s *InMemory) Execute(ctx context.Context, recordID id.RecordID, validate func(*models.Record) error, mutate func(*models.Record)) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[recordID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := current.Clone()
	if err := validate(working); err != nil {
		return nil, err
	}
	mutate(working)
	working.Version = current.Version + 1
	s.records[recordID] = working

	prev, written := current, working.Version
	txcontext.OnRollback(ctx, func() { s.restore(prev, written) })
	return working.Clone(), nil
}

// ClearPrimary unsets the primary flag on the owner's bank records.
func (s *InMemory) ClearPrimary(ctx context.Context, owner id.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for recordID, r := range s.records {
		if r.OwnerID != owner || r.Kind != models.KindBank || !r.IsPrimary {
			continue
		}
		prev := r
		cleared := r.Clone()
		cleared.IsPrimary = false
		cleared.Version++
		s.records[recordID] = cleared
		written := cleared.Version
		txcontext.OnRollback(ctx, func() { s.restore(prev, written) })
	}
	return nil
}

func (s *InMemory) Delete(ctx context.Context, recordID id.RecordID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.records[recordID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.records, recordID)
	txcontext.OnRollback(ctx, func() { s.undelete(prev) })
	return nil
}
