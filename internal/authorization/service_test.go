package authorization

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"ledgerguard/internal/authorization/mocks"
	"ledgerguard/internal/hierarchy/models"
	hierarchy "ledgerguard/internal/hierarchy/service"
	hierarchystore "ledgerguard/internal/hierarchy/store"
	id "ledgerguard/pkg/domain"
	dErrors "ledgerguard/pkg/domain-errors"
	audit "ledgerguard/pkg/platform/audit"
	"ledgerguard/pkg/platform/audit/publishers/compliance"
	auditmemory "ledgerguard/pkg/platform/audit/store/memory"
)

// =============================================================================
// Authorization Service Test Suite
// =============================================================================
// Justification for unit tests: the decision table is the security boundary
// of the engine. Every rule, its precedence and the one-event audit contract
// are pinned here against a real in-memory tree.

type AuthorizationSuite struct {
	suite.Suite
	ctx       context.Context
	hierarchy *hierarchy.Service
	auditLog  *auditmemory.InMemoryStore
	service   *Service

	root, adminA, userU, empOfUser, empOfA, adminB, userV, empOfRoot *models.TenantNode
	otherRoot, otherAdmin                                            *models.TenantNode
}

func TestAuthorizationSuite(t *testing.T) {
	suite.Run(t, new(AuthorizationSuite))
}

func (s *AuthorizationSuite) SetupTest() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var err error
	s.hierarchy, err = hierarchy.New(hierarchystore.NewInMemory(), hierarchy.WithLogger(logger))
	s.Require().NoError(err)

	s.auditLog = auditmemory.NewInMemoryStore()
	s.service, err = New(s.hierarchy,
		WithLogger(logger),
		WithAuditPublisher(compliance.New(s.auditLog, compliance.WithLogger(logger))),
	)
	s.Require().NoError(err)

	// root
	// ├── A (ADMIN)
	// │   ├── U (USER)
	// │   │   └── empOfUser
	// │   └── empOfA
	// ├── B (ADMIN)
	// │   └── V (USER)
	// └── empOfRoot
	s.root, err = s.hierarchy.RegisterRoot(s.ctx, "root@acme.test")
	s.Require().NoError(err)
	s.adminA = s.register(s.root, "a@acme.test", models.RoleAdmin)
	s.userU = s.register(s.adminA, "u@acme.test", models.RoleUser)
	s.empOfUser = s.register(s.userU, "eu@acme.test", models.RoleEmployee)
	s.empOfA = s.register(s.adminA, "ea@acme.test", models.RoleEmployee)
	s.adminB = s.register(s.root, "b@acme.test", models.RoleAdmin)
	s.userV = s.register(s.adminB, "v@acme.test", models.RoleUser)
	s.empOfRoot = s.register(s.root, "er@acme.test", models.RoleEmployee)

	s.otherRoot, err = s.hierarchy.RegisterRoot(s.ctx, "root@other.test")
	s.Require().NoError(err)
	s.otherAdmin = s.register(s.otherRoot, "c@other.test", models.RoleAdmin)

	s.auditLog.Clear()
}

func (s *AuthorizationSuite) register(parent *models.TenantNode, login string, role models.RoleName) *models.TenantNode {
	n, err := s.hierarchy.RegisterNode(s.ctx, parent.ID, login, role, role.ExpectedRoleType())
	s.Require().NoError(err)
	return n
}

func (s *AuthorizationSuite) all() []*models.TenantNode {
	return []*models.TenantNode{
		s.root, s.adminA, s.userU, s.empOfUser, s.empOfA,
		s.adminB, s.userV, s.empOfRoot, s.otherRoot, s.otherAdmin,
	}
}

func (s *AuthorizationSuite) evaluate(actor, target *models.TenantNode) *Decision {
	a, err := s.hierarchy.ResolveActor(s.ctx, actor.ID)
	s.Require().NoError(err)
	d, err := s.service.Evaluate(s.ctx, a, target.ID)
	s.Require().NoError(err)
	return d
}

func (s *AuthorizationSuite) TestNew() {
	_, err := New(nil)
	s.Error(err)
	s.Contains(err.Error(), "hierarchy is required")
}

// =============================================================================
// Decision Table Tests
// =============================================================================

func (s *AuthorizationSuite) TestDecisionTable() {
	cases := []struct {
		name    string
		actor   func() *models.TenantNode
		target  func() *models.TenantNode
		allowed bool
		reason  ReasonCode
	}{
		{"self", func() *models.TenantNode { return s.userU }, func() *models.TenantNode { return s.userU }, true, ReasonSelf},
		{"self wins over missing parent context", func() *models.TenantNode { return s.empOfUser }, func() *models.TenantNode { return s.empOfUser }, true, ReasonSelf},
		{"employee of a user has no parent context", func() *models.TenantNode { return s.empOfUser }, func() *models.TenantNode { return s.userU }, false, ReasonNoParentContext},
		{"root over admin", func() *models.TenantNode { return s.root }, func() *models.TenantNode { return s.adminA }, true, ReasonRootOverAdmin},
		{"root employee over admin", func() *models.TenantNode { return s.empOfRoot }, func() *models.TenantNode { return s.adminB }, true, ReasonRootOverAdmin},
		{"root over admin of another tenant", func() *models.TenantNode { return s.root }, func() *models.TenantNode { return s.otherAdmin }, false, ReasonOutOfScope},
		{"root over user is out of scope", func() *models.TenantNode { return s.root }, func() *models.TenantNode { return s.userU }, false, ReasonOutOfScope},
		{"admin over direct child", func() *models.TenantNode { return s.adminA }, func() *models.TenantNode { return s.userU }, true, ReasonHierarchyAccess},
		{"admin over grandchild", func() *models.TenantNode { return s.adminA }, func() *models.TenantNode { return s.empOfUser }, true, ReasonHierarchyAccess},
		{"admin over sibling admin", func() *models.TenantNode { return s.adminA }, func() *models.TenantNode { return s.adminB }, false, ReasonOutOfScope},
		{"admin over root", func() *models.TenantNode { return s.adminA }, func() *models.TenantNode { return s.root }, false, ReasonOutOfScope},
		{"stranger admin", func() *models.TenantNode { return s.adminB }, func() *models.TenantNode { return s.userU }, false, ReasonOutOfScope},
		{"admin employee over admin's user", func() *models.TenantNode { return s.empOfA }, func() *models.TenantNode { return s.userU }, true, ReasonDelegatedHierarchyAccess},
		{"admin employee over its parent", func() *models.TenantNode { return s.empOfA }, func() *models.TenantNode { return s.adminA }, false, ReasonOutOfScope},
		{"root employee over user", func() *models.TenantNode { return s.empOfRoot }, func() *models.TenantNode { return s.userV }, true, ReasonDelegatedHierarchyAccess},
		{"user over its own employee", func() *models.TenantNode { return s.userU }, func() *models.TenantNode { return s.empOfUser }, false, ReasonOutOfScope},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			d := s.evaluate(tc.actor(), tc.target())
			s.Equal(tc.allowed, d.Allowed)
			s.Equal(tc.reason, d.Reason)
		})
	}
}

// For an ADMIN with descendant set D, access is granted exactly on D ∪ {self}.
func (s *AuthorizationSuite) TestAdminDecisionPartition() {
	for _, admin := range []*models.TenantNode{s.adminA, s.adminB, s.otherAdmin} {
		descendants, err := s.hierarchy.DescendantsOf(s.ctx, admin.ID, nil)
		s.Require().NoError(err)

		for _, x := range s.all() {
			d := s.evaluate(admin, x)
			want := x.ID == admin.ID || descendants.Contains(x.ID)
			s.Equal(want, d.Allowed, "admin %s target %s", admin.Login, x.Login)
		}
	}
}

func (s *AuthorizationSuite) TestEvaluateDoesNotAudit() {
	s.evaluate(s.adminA, s.userU)
	events, err := s.auditLog.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(events)
}

// =============================================================================
// Audited Decide Tests
// =============================================================================

func (s *AuthorizationSuite) TestDecideEmitsExactlyOneEvent() {
	s.Run("grant", func() {
		s.auditLog.Clear()
		d, err := s.service.DecideByID(s.ctx, s.adminA.ID, s.userU.ID)
		s.Require().NoError(err)
		s.True(d.Allowed)

		events, err := s.auditLog.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(string(audit.EventAccessGranted), events[0].Action)
		s.Equal(s.userU.ID.String(), events[0].EntityID)
		s.Equal("HIERARCHY_ACCESS", events[0].Metadata["reasonCode"])
	})

	s.Run("deny", func() {
		s.auditLog.Clear()
		d, err := s.service.DecideByID(s.ctx, s.adminB.ID, s.userU.ID)
		s.Require().NoError(err)
		s.False(d.Allowed)
		s.True(dErrors.HasCode(Denied(d), dErrors.CodeAuthorizationDenied))
		s.Equal("OUT_OF_SCOPE", dErrors.ReasonOf(Denied(d)))

		events, err := s.auditLog.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(string(audit.EventAccessDenied), events[0].Action)
		s.Equal("OUT_OF_SCOPE", events[0].Metadata["reasonCode"])
	})

	s.Run("unknown target is not an authorization event", func() {
		s.auditLog.Clear()
		_, err := s.service.DecideByID(s.ctx, s.adminA.ID, id.NewNodeID())
		s.True(dErrors.HasCode(err, dErrors.CodeNodeNotFound))

		events, err := s.auditLog.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Empty(events)
	})
}

func (s *AuthorizationSuite) TestDecideFailures() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()
	mockHierarchy := mocks.NewMockHierarchy(ctrl)
	mockPublisher := mocks.NewMockAuditPublisher(ctrl)
	svc, err := New(mockHierarchy,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(mockPublisher),
	)
	s.Require().NoError(err)

	admin, err := s.hierarchy.ResolveActor(s.ctx, s.adminA.ID)
	s.Require().NoError(err)

	s.Run("depth guard is audited and surfaced", func() {
		guard := dErrors.New(dErrors.CodeHierarchyDepthExceeded, "too deep")
		mockHierarchy.EXPECT().Get(gomock.Any(), s.userU.ID).Return(s.userU, nil)
		mockHierarchy.EXPECT().DescendantsOf(gomock.Any(), s.adminA.ID, scopeExclusion).Return(nil, guard)
		mockPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev audit.Event) error {
				s.Equal(string(audit.EventAccessDenied), ev.Action)
				s.Equal("HIERARCHY_DEPTH_EXCEEDED", ev.Metadata["reasonCode"])
				return nil
			})

		_, err := svc.Decide(s.ctx, admin, s.userU.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeHierarchyDepthExceeded))
	})

	s.Run("audit failure fails the decision", func() {
		mockHierarchy.EXPECT().Get(gomock.Any(), s.adminA.ID).Return(s.adminA, nil)
		mockPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("sink down"))

		d, err := svc.Decide(s.ctx, admin, s.adminA.ID)
		s.Error(err)
		s.Nil(d)
	})
}
