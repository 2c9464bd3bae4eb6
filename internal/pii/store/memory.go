package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"ledgerguard/internal/pii/models"
	id "ledgerguard/pkg/domain"
	"ledgerguard/pkg/platform/sentinel"
	txcontext "ledgerguard/pkg/platform/tx"
)

type slotKey struct {
	owner id.NodeID
	typ   models.PIIType
	scope models.Scope
}

// InMemory holds encrypted fields in maps guarded by a RWMutex.
type InMemory struct {
	mu     sync.RWMutex
	fields map[id.FieldID]*models.Field
	slots  map[slotKey]id.FieldID
}

func NewInMemory() *InMemory {
	return &InMemory{
		fields: make(map[id.FieldID]*models.Field),
		slots:  make(map[slotKey]id.FieldID),
	}
}

func keyOf(f *models.Field) slotKey {
	return slotKey{owner: f.OwnerID, typ: f.Type, scope: f.Scope}
}

func (s *InMemory) Insert(ctx context.Context, field *models.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.fields[field.ID]; exists {
		return sentinel.ErrConflict
	}
	if _, taken := s.slots[keyOf(field)]; taken {
		return sentinel.ErrConflict
	}
	stored := *field
	s.fields[field.ID] = &stored
	s.slots[keyOf(field)] = field.ID

	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fields, stored.ID)
		if s.slots[keyOf(&stored)] == stored.ID {
			delete(s.slots, keyOf(&stored))
		}
	})
	return nil
}

func (s *InMemory) DeleteSlot(ctx context.Context, owner id.NodeID, typ models.PIIType, scope models.Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := slotKey{owner: owner, typ: typ, scope: scope}
	fieldID, ok := s.slots[k]
	if !ok {
		return nil
	}
	s.deleteLocked(ctx, fieldID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, fieldID id.FieldID) (*models.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.fields[fieldID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *f
	return &c, nil
}

// ListByRecord returns fields ordered by creation time.
func (s *InMemory) ListByRecord(_ context.Context, recordID id.RecordID) ([]*models.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Field
	for _, f := range s.fields {
		if f.RecordID == recordID {
			c := *f
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemory) DeleteByRecord(ctx context.Context, recordID id.RecordID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for fieldID, f := range s.fields {
		if f.RecordID == recordID {
			s.deleteLocked(ctx, fieldID)
			n++
		}
	}
	return n, nil
}

func (s *InMemory) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for fieldID, f := range s.fields {
		if f.IsExpired(now) {
			s.deleteLocked(ctx, fieldID)
			n++
		}
	}
	return n, nil
}

func (s *InMemory) deleteLocked(ctx context.Context, fieldID id.FieldID) {
	f := s.fields[fieldID]
	delete(s.fields, fieldID)
	delete(s.slots, keyOf(f))
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, taken := s.slots[keyOf(f)]; taken {
			return
		}
		s.fields[f.ID] = f
		s.slots[keyOf(f)] = f.ID
	})
}
