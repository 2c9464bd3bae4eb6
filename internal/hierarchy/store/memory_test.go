package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"ledgerguard/internal/hierarchy/models"
	id "ledgerguard/pkg/domain"
	"ledgerguard/pkg/platform/sentinel"
	txcontext "ledgerguard/pkg/platform/tx"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	root  *models.TenantNode
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()

	var err error
	s.root, err = models.NewRootNode(id.NewNodeID(), id.NewTenantID(), "root@acme.test", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, s.root))
}

func (s *InMemoryStoreSuite) child(parent *models.TenantNode, login string, role models.RoleName) *models.TenantNode {
	n, err := models.NewChildNode(id.NewNodeID(), parent, login, role, role.ExpectedRoleType(), time.Now())
	s.Require().NoError(err)
	return n
}

func (s *InMemoryStoreSuite) TestCreate() {
	s.Run("second root for the same tenant conflicts", func() {
		other, err := models.NewRootNode(id.NewNodeID(), s.root.TenantID, "other@acme.test", time.Now())
		s.Require().NoError(err)
		s.ErrorIs(s.store.Create(s.ctx, other), sentinel.ErrConflict)
	})

	s.Run("duplicate login conflicts", func() {
		dup := s.child(s.root, "root@acme.test", models.RoleAdmin)
		s.ErrorIs(s.store.Create(s.ctx, dup), sentinel.ErrConflict)
	})

	s.Run("missing parent is not found", func() {
		ghost := s.child(s.root, "ghost@acme.test", models.RoleAdmin)
		orphan := s.child(ghost, "orphan@acme.test", models.RoleUser)
		s.ErrorIs(s.store.Create(s.ctx, orphan), sentinel.ErrNotFound)
	})

	s.Run("returned nodes are copies", func() {
		found, err := s.store.FindByID(s.ctx, s.root.ID)
		s.Require().NoError(err)
		found.Login = "mutated"

		again, err := s.store.FindByID(s.ctx, s.root.ID)
		s.Require().NoError(err)
		s.Equal("root@acme.test", again.Login)
	})
}

func (s *InMemoryStoreSuite) TestChildrenOf() {
	a := s.child(s.root, "a@acme.test", models.RoleAdmin)
	b := s.child(s.root, "b@acme.test", models.RoleAdmin)
	u := s.child(a, "u@acme.test", models.RoleUser)
	for _, n := range []*models.TenantNode{a, b, u} {
		s.Require().NoError(s.store.Create(s.ctx, n))
	}

	level1, err := s.store.ChildrenOf(s.ctx, []id.NodeID{s.root.ID})
	s.Require().NoError(err)
	s.Len(level1, 2)

	level2, err := s.store.ChildrenOf(s.ctx, []id.NodeID{a.ID, b.ID})
	s.Require().NoError(err)
	s.Require().Len(level2, 1)
	s.Equal(u.ID, level2[0].ID)
}

func (s *InMemoryStoreSuite) TestRollback() {
	runner := txcontext.NewMemoryRunner()
	a := s.child(s.root, "a@acme.test", models.RoleAdmin)

	err := runner.RunInTx(s.ctx, func(ctx context.Context) error {
		if err := s.store.Create(ctx, a); err != nil {
			return err
		}
		if err := s.store.SetKYCVerified(ctx, s.root.ID, true); err != nil {
			return err
		}
		return errors.New("abort")
	})
	s.Error(err)

	_, err = s.store.FindByID(s.ctx, a.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindByLogin(s.ctx, "a@acme.test")
	s.ErrorIs(err, sentinel.ErrNotFound)

	root, err := s.store.FindByID(s.ctx, s.root.ID)
	s.Require().NoError(err)
	s.False(root.IsKYCVerified)

	children, err := s.store.ChildrenOf(s.ctx, []id.NodeID{s.root.ID})
	s.Require().NoError(err)
	s.Empty(children)
}

func (s *InMemoryStoreSuite) TestSetKYCVerified() {
	s.Require().NoError(s.store.SetKYCVerified(s.ctx, s.root.ID, true))
	root, err := s.store.FindByID(s.ctx, s.root.ID)
	s.Require().NoError(err)
	s.True(root.IsKYCVerified)

	s.ErrorIs(s.store.SetKYCVerified(s.ctx, id.NewNodeID(), true), sentinel.ErrNotFound)
}
