package store

import (
	"context"
	"sync"

	"ledgerguard/internal/hierarchy/models"
	id "ledgerguard/pkg/domain"
	"ledgerguard/pkg/platform/sentinel"
	txcontext "ledgerguard/pkg/platform/tx"
)

// InMemory keeps the tenant tree in maps guarded by a RWMutex.
type InMemory struct {
	mu       sync.RWMutex
	nodes    map[id.NodeID]*models.TenantNode
	byLogin  map[string]id.NodeID
	children map[id.NodeID][]id.NodeID
	roots    map[id.TenantID]id.NodeID
}

func NewInMemory() *InMemory {
	return &InMemory{
		nodes:    make(map[id.NodeID]*models.TenantNode),
		byLogin:  make(map[string]id.NodeID),
		children: make(map[id.NodeID][]id.NodeID),
		roots:    make(map[id.TenantID]id.NodeID),
	}
}

func (s *InMemory) Create(ctx context.Context, node *models.TenantNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nodes[node.ID]; exists {
		return sentinel.ErrConflict
	}
	if _, taken := s.byLogin[node.Login]; taken {
		return sentinel.ErrConflict
	}
	if node.IsRoot() {
		if _, hasRoot := s.roots[node.TenantID]; hasRoot {
			return sentinel.ErrConflict
		}
	} else if _, ok := s.nodes[*node.ParentID]; !ok {
		return sentinel.ErrNotFound
	}

	s.nodes[node.ID] = node.Clone()
	s.byLogin[node.Login] = node.ID
	if node.IsRoot() {
		s.roots[node.TenantID] = node.ID
	} else {
		s.children[*node.ParentID] = append(s.children[*node.ParentID], node.ID)
	}

	txcontext.OnRollback(ctx, func() { s.remove(node) })
	return nil
}

func (s *InMemory) remove(node *models.TenantNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, node.ID)
	delete(s.byLogin, node.Login)
	if node.IsRoot() {
		delete(s.roots, node.TenantID)
		return
	}
	siblings := s.children[*node.ParentID]
	for i, c := range siblings {
		if c == node.ID {
			s.children[*node.ParentID] = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
}

func (s *InMemory) FindByID(_ context.Context, nodeID id.NodeID) (*models.TenantNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[nodeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return n.Clone(), nil
}

func (s *InMemory) FindByLogin(_ context.Context, login string) (*models.TenantNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nodeID, ok := s.byLogin[login]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.nodes[nodeID].Clone(), nil
}

func (s *InMemory) ChildrenOf(_ context.Context, parents []id.NodeID) ([]*models.TenantNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.TenantNode
	for _, p := range parents {
		for _, c := range s.children[p] {
			out = append(out, s.nodes[c].Clone())
		}
	}
	return out, nil
}

func (s *InMemory) SetKYCVerified(ctx context.Context, nodeID id.NodeID, verified bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[nodeID]
	if !ok {
		return sentinel.ErrNotFound
	}
	prev := n.IsKYCVerified
	n.IsKYCVerified = verified
	txcontext.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if cur, ok := s.nodes[nodeID]; ok {
			cur.IsKYCVerified = prev
		}
	})
	return nil
}
