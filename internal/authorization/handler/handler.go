package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ledgerguard/internal/authorization"
	id "ledgerguard/pkg/domain"
	dErrors "ledgerguard/pkg/domain-errors"
	"ledgerguard/pkg/platform/httputil"
	"ledgerguard/pkg/requestcontext"
)

// Service is the audited decision entry point.
type Service interface {
	DecideByID(ctx context.Context, actorID, targetOwnerID id.NodeID) (*authorization.Decision, error)
}

// Handler exposes access checks over HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts authorization endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/access/{ownerID}", h.HandleAccess)
}

// DecisionResponse is the body of GET /v1/access/{ownerID}.
type DecisionResponse struct {
	ActorID       string `json:"actor_id"`
	ActorRole     string `json:"actor_role"`
	TargetOwnerID string `json:"target_owner_id"`
	Allowed       bool   `json:"allowed"`
	ReasonCode    string `json:"reason_code"`
}

// HandleAccess handles GET /v1/access/{ownerID}. A deny is a normal 200
// response with allowed=false.
func (h *Handler) HandleAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actorID := requestcontext.ActorID(ctx)
	if actorID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	ownerID, err := id.ParseNodeID(chi.URLParam(r, "ownerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	decision, err := h.service.DecideByID(ctx, actorID, ownerID)
	if err != nil {
		h.logger.WarnContext(ctx, "access check failed",
			"request_id", requestID,
			"actor_id", actorID,
			"target_owner_id", ownerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &DecisionResponse{
		ActorID:       decision.ActorID.String(),
		ActorRole:     string(decision.ActorRole),
		TargetOwnerID: decision.TargetOwnerID.String(),
		Allowed:       decision.Allowed,
		ReasonCode:    string(decision.Reason),
	})
}
