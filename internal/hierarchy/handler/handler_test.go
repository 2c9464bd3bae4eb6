package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"ledgerguard/internal/authorization"
	"ledgerguard/internal/hierarchy/handler/mocks"
	"ledgerguard/internal/hierarchy/models"
	id "ledgerguard/pkg/domain"
	dErrors "ledgerguard/pkg/domain-errors"
	"ledgerguard/pkg/testutil"
)

// =============================================================================
// Hierarchy Handler Test Suite
// =============================================================================
// Justification for unit tests: the handler owns request parsing, the scope
// check before any tree read or write, and status mapping. Traversal itself is
// covered by the service and store suites.

type HierarchyHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	authz   *mocks.MockAuthorizer
	router  chi.Router
	actor   id.NodeID
}

func TestHierarchyHandlerSuite(t *testing.T) {
	suite.Run(t, new(HierarchyHandlerSuite))
}

func (s *HierarchyHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.authz = mocks.NewMockAuthorizer(ctrl)
	s.router = chi.NewRouter()
	s.actor = id.NewNodeID()
	New(s.service, s.authz, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *HierarchyHandlerSuite) allow(target id.NodeID) {
	s.authz.EXPECT().DecideByID(gomock.Any(), s.actor, target).Return(&authorization.Decision{
		ActorID: s.actor, TargetOwnerID: target, Allowed: true, Reason: authorization.ReasonHierarchyAccess,
	}, nil)
}

func (s *HierarchyHandlerSuite) deny(target id.NodeID) {
	s.authz.EXPECT().DecideByID(gomock.Any(), s.actor, target).Return(&authorization.Decision{
		ActorID: s.actor, TargetOwnerID: target, Allowed: false, Reason: authorization.ReasonOutOfScope,
	}, nil)
}

func (s *HierarchyHandlerSuite) get(path string) *http.Request {
	return testutil.WithActorID(testutil.NewRequest(s.T(), http.MethodGet, path), s.actor.String())
}

// =============================================================================
// Descendants / Ancestors
// =============================================================================

func (s *HierarchyHandlerSuite) TestDescendants() {
	node := id.NewNodeID()
	a, b := id.NewNodeID(), id.NewNodeID()

	s.Run("exclusion is parsed and ids are returned", func() {
		s.allow(node)
		s.service.EXPECT().
			DescendantsOf(gomock.Any(), node, models.RoleExclusion{models.RoleSuperAdmin, models.RoleEmployee}).
			Return(models.NodeSet{a: {}, b: {}}, nil)

		rr := testutil.DoRequest(s.router, s.get("/hierarchy/"+node.String()+"/descendants?exclude=SUPER_ADMIN,employee"))

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[NodeListResponse](s.T(), rr)
		s.Equal(node.String(), resp.NodeID)
		s.ElementsMatch([]string{a.String(), b.String()}, resp.Nodes)
	})

	s.Run("unknown role in exclusion", func() {
		rr := testutil.DoRequest(s.router, s.get("/hierarchy/"+node.String()+"/descendants?exclude=OWNER"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("out of scope actor is forbidden", func() {
		s.deny(node)
		rr := testutil.DoRequest(s.router, s.get("/hierarchy/"+node.String()+"/descendants"))
		testutil.AssertErrorReason(s.T(), rr, http.StatusForbidden, "authorization_denied", "OUT_OF_SCOPE")
	})

	s.Run("depth guard surfaces as internal error", func() {
		s.allow(node)
		s.service.EXPECT().DescendantsOf(gomock.Any(), node, gomock.Nil()).
			Return(nil, dErrors.New(dErrors.CodeHierarchyDepthExceeded, "guard"))
		rr := testutil.DoRequest(s.router, s.get("/hierarchy/"+node.String()+"/descendants"))
		testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
	})
}

func (s *HierarchyHandlerSuite) TestAncestors() {
	root, mid, node := id.NewNodeID(), id.NewNodeID(), id.NewNodeID()
	s.allow(node)
	s.service.EXPECT().AncestorsOf(gomock.Any(), node).Return([]id.NodeID{root, mid}, nil)

	rr := testutil.DoRequest(s.router, s.get("/hierarchy/"+node.String()+"/ancestors"))

	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[NodeListResponse](s.T(), rr)
	s.Equal([]string{root.String(), mid.String()}, resp.Nodes, "root first")
}

func (s *HierarchyHandlerSuite) TestGetNode() {
	s.Run("missing actor", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/hierarchy/"+id.NewNodeID().String()))
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})

	s.Run("unknown node", func() {
		missing := id.NewNodeID()
		s.authz.EXPECT().DecideByID(gomock.Any(), s.actor, missing).
			Return(nil, dErrors.New(dErrors.CodeNodeNotFound, "node not found"))
		rr := testutil.DoRequest(s.router, s.get("/hierarchy/"+missing.String()))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "node_not_found")
	})
}

// =============================================================================
// Register
// =============================================================================

func (s *HierarchyHandlerSuite) TestRegisterNode() {
	parent := id.NewNodeID()

	s.Run("creates child under parent in scope", func() {
		s.allow(parent)
		created := &models.TenantNode{
			ID:             id.NewNodeID(),
			TenantID:       id.NewTenantID(),
			ParentID:       &parent,
			Login:          "clerk",
			RoleName:       models.RoleEmployee,
			RoleType:       models.RoleTypeEmployee,
			HierarchyLevel: 2,
			HierarchyPath:  []id.NodeID{id.NewNodeID(), parent},
			CreatedAt:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		}
		s.service.EXPECT().
			RegisterNode(gomock.Any(), parent, "clerk", models.RoleEmployee, models.RoleTypeEmployee).
			Return(created, nil)

		req := testutil.WithActorID(testutil.NewJSONRequest(s.T(), http.MethodPost, "/hierarchy/nodes", RegisterNodeRequest{
			ParentID: parent.String(), Login: "clerk", RoleName: "EMPLOYEE", RoleType: "employee",
		}), s.actor.String())
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[NodeResponse](s.T(), rr)
		s.Equal(created.ID.String(), resp.ID)
		s.Equal(parent.String(), resp.ParentID)
		s.Equal(2, resp.HierarchyLevel)
		s.Len(resp.HierarchyPath, 2)
	})

	s.Run("parent out of scope is forbidden before any write", func() {
		s.deny(parent)
		req := testutil.WithActorID(testutil.NewJSONRequest(s.T(), http.MethodPost, "/hierarchy/nodes", RegisterNodeRequest{
			ParentID: parent.String(), Login: "other", RoleName: "USER", RoleType: "business",
		}), s.actor.String())
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusForbidden)
	})

	s.Run("invalid body", func() {
		req := testutil.WithActorID(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/hierarchy/nodes",
			`{"parent_id":"`+parent.String()+`","login":"x","role_name":"USER","role_type":"staff"}`), s.actor.String())
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("unknown fields are rejected", func() {
		req := testutil.WithActorID(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/hierarchy/nodes",
			`{"parent_id":"`+parent.String()+`","login":"x","role_name":"USER","role_type":"business","level":3}`), s.actor.String())
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}
