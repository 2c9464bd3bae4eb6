package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,Authorizer

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"ledgerguard/internal/authorization"
	"ledgerguard/internal/hierarchy/models"
	id "ledgerguard/pkg/domain"
	dErrors "ledgerguard/pkg/domain-errors"
	"ledgerguard/pkg/platform/httputil"
	"ledgerguard/pkg/requestcontext"
)

// Service is the subset of the hierarchy index the handler needs.
type Service interface {
	Get(ctx context.Context, nodeID id.NodeID) (*models.TenantNode, error)
	RegisterNode(ctx context.Context, parentID id.NodeID, login string, role models.RoleName, roleType models.RoleType) (*models.TenantNode, error)
	DescendantsOf(ctx context.Context, nodeID id.NodeID, exclude models.RoleExclusion) (models.NodeSet, error)
	AncestorsOf(ctx context.Context, nodeID id.NodeID) ([]id.NodeID, error)
}

// Authorizer gates tree reads and writes on the actor's scope over the node.
type Authorizer interface {
	DecideByID(ctx context.Context, actorID, targetOwnerID id.NodeID) (*authorization.Decision, error)
}

// Handler exposes the hierarchy index over HTTP.
type Handler struct {
	service Service
	authz   Authorizer
	logger  *slog.Logger
}

func New(service Service, authz Authorizer, logger *slog.Logger) *Handler {
	return &Handler{service: service, authz: authz, logger: logger}
}

// Register mounts hierarchy endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/hierarchy", func(r chi.Router) {
		r.Post("/nodes", h.HandleRegisterNode)
		r.Get("/{id}", h.HandleGetNode)
		r.Get("/{id}/descendants", h.HandleDescendants)
		r.Get("/{id}/ancestors", h.HandleAncestors)
	})
}

// HandleRegisterNode handles POST /v1/hierarchy/nodes. The actor must be in
// scope over the parent.
func (h *Handler) HandleRegisterNode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req RegisterNodeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid register node request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	parentID, role, roleType, err := req.Parse()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	actorID, ok := h.authorize(w, r, parentID)
	if !ok {
		return
	}

	node, err := h.service.RegisterNode(ctx, parentID, req.Login, role, roleType)
	if err != nil {
		h.logger.WarnContext(ctx, "register node failed",
			"request_id", requestID,
			"actor_id", actorID,
			"parent_id", parentID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "node registered",
		"request_id", requestID,
		"actor_id", actorID,
		"node_id", node.ID,
		"role_name", node.RoleName,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromNode(node))
}

// HandleGetNode handles GET /v1/hierarchy/{id}.
func (h *Handler) HandleGetNode(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := h.nodeParam(w, r)
	if !ok {
		return
	}
	if _, ok := h.authorize(w, r, nodeID); !ok {
		return
	}
	node, err := h.service.Get(r.Context(), nodeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromNode(node))
}

// HandleDescendants handles GET /v1/hierarchy/{id}/descendants. The optional
// exclude query takes comma separated role names.
func (h *Handler) HandleDescendants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nodeID, ok := h.nodeParam(w, r)
	if !ok {
		return
	}
	exclude, err := parseExclusion(r.URL.Query().Get("exclude"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if _, ok := h.authorize(w, r, nodeID); !ok {
		return
	}

	set, err := h.service.DescendantsOf(ctx, nodeID, exclude)
	if err != nil {
		h.logger.ErrorContext(ctx, "descendant lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"node_id", nodeID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &NodeListResponse{
		NodeID: nodeID.String(),
		Nodes:  sortedIDs(set.Slice()),
	})
}

// HandleAncestors handles GET /v1/hierarchy/{id}/ancestors. Order is root first.
func (h *Handler) HandleAncestors(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := h.nodeParam(w, r)
	if !ok {
		return
	}
	if _, ok := h.authorize(w, r, nodeID); !ok {
		return
	}
	path, err := h.service.AncestorsOf(r.Context(), nodeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	nodes := make([]string, len(path))
	for i, p := range path {
		nodes[i] = p.String()
	}
	httputil.WriteJSON(w, http.StatusOK, &NodeListResponse{NodeID: nodeID.String(), Nodes: nodes})
}

func (h *Handler) nodeParam(w http.ResponseWriter, r *http.Request) (id.NodeID, bool) {
	nodeID, err := id.ParseNodeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.NodeID{}, false
	}
	return nodeID, true
}

// authorize writes the error response itself and reports whether to continue.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, target id.NodeID) (id.NodeID, bool) {
	ctx := r.Context()
	actorID := requestcontext.ActorID(ctx)
	if actorID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return actorID, false
	}
	decision, err := h.authz.DecideByID(ctx, actorID, target)
	if err != nil {
		httputil.WriteError(w, err)
		return actorID, false
	}
	if err := authorization.Denied(decision); err != nil {
		httputil.WriteError(w, err)
		return actorID, false
	}
	return actorID, true
}

func parseExclusion(raw string) (models.RoleExclusion, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out models.RoleExclusion
	for _, part := range strings.Split(raw, ",") {
		role, err := models.ParseRoleName(part)
		if err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, nil
}

func sortedIDs(ids []id.NodeID) []string {
	out := make([]string, len(ids))
	for i, n := range ids {
		out[i] = n.String()
	}
	slices.Sort(out)
	return out
}
