package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,ActorResolver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	hierarchymodels "ledgerguard/internal/hierarchy/models"
	"ledgerguard/internal/verification/models"
	"ledgerguard/internal/verification/service"
	id "ledgerguard/pkg/domain"
	dErrors "ledgerguard/pkg/domain-errors"
	"ledgerguard/pkg/platform/httputil"
	"ledgerguard/pkg/requestcontext"
)

// Service defines the interface for verification operations.
type Service interface {
	Transition(ctx context.Context, actor hierarchymodels.Actor, req service.TransitionRequest) (*models.Record, error)
	SubmitKYC(ctx context.Context, actor hierarchymodels.Actor, req service.SubmitKYCRequest) (*models.Record, error)
	AddBankAccount(ctx context.Context, actor hierarchymodels.Actor, req service.AddBankRequest) (*models.Record, error)
	SetPrimaryBank(ctx context.Context, actor hierarchymodels.Actor, recordID id.RecordID) (*models.Record, error)
	DeleteRecord(ctx context.Context, actor hierarchymodels.Actor, kind models.Kind, recordID id.RecordID) error
	ViewRecord(ctx context.Context, actor hierarchymodels.Actor, kind models.Kind, recordID id.RecordID) (*service.RecordView, error)
	OwnerStatus(ctx context.Context, actor hierarchymodels.Actor, owner id.NodeID) (*service.OwnerStatus, error)
}

// ActorResolver turns the authenticated node id into a classified actor.
type ActorResolver interface {
	ResolveActor(ctx context.Context, nodeID id.NodeID) (hierarchymodels.Actor, error)
}

// Handler handles verification HTTP endpoints.
type Handler struct {
	service Service
	actors  ActorResolver
	logger  *slog.Logger
}

func New(service Service, actors ActorResolver, logger *slog.Logger) *Handler {
	return &Handler{service: service, actors: actors, logger: logger}
}

// Register registers the verification routes with the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/records/{kind}/{id}", func(r chi.Router) {
		r.Get("/", h.HandleView)
		r.Delete("/", h.HandleDelete)
		r.Post("/transition", h.HandleTransition)
	})
	r.Post("/kyc", h.HandleSubmitKYC)
	r.Post("/banks", h.HandleAddBank)
	r.Post("/banks/{id}/primary", h.HandleSetPrimary)
	r.Get("/owners/{ownerID}/status", h.HandleOwnerStatus)
}

// HandleTransition handles POST /v1/records/{kind}/{id}/transition.
func (h *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	kind, recordID, ok := h.recordParams(w, r)
	if !ok {
		return
	}
	var req TransitionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid transition request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	status, err := req.Parse()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	rec, err := h.service.Transition(ctx, actor, service.TransitionRequest{
		Kind:     kind,
		RecordID: recordID,
		Status:   status,
		Reason:   req.Reason,
	})
	if err != nil {
		h.logFailure(ctx, "transition failed", actor, recordID.String(), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(rec))
}

// HandleView handles GET /v1/records/{kind}/{id}.
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind, recordID, ok := h.recordParams(w, r)
	if !ok {
		return
	}
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	view, err := h.service.ViewRecord(ctx, actor, kind, recordID)
	if err != nil {
		h.logFailure(ctx, "record view failed", actor, recordID.String(), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromView(view))
}

// HandleDelete handles DELETE /v1/records/{kind}/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind, recordID, ok := h.recordParams(w, r)
	if !ok {
		return
	}
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteRecord(ctx, actor, kind, recordID); err != nil {
		h.logFailure(ctx, "record delete failed", actor, recordID.String(), err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSubmitKYC handles POST /v1/kyc.
func (h *Handler) HandleSubmitKYC(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SubmitKYCRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	ownerID, err := id.ParseNodeID(req.OwnerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	rec, err := h.service.SubmitKYC(ctx, actor, service.SubmitKYCRequest{
		OwnerID: ownerID,
		Country: req.Country,
		PAN:     req.PAN,
		Aadhaar: req.Aadhaar,
	})
	if err != nil {
		h.logFailure(ctx, "kyc submission failed", actor, ownerID.String(), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromRecord(rec))
}

// HandleAddBank handles POST /v1/banks.
func (h *Handler) HandleAddBank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req AddBankRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}
	ownerID, err := id.ParseNodeID(req.OwnerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	rec, err := h.service.AddBankAccount(ctx, actor, service.AddBankRequest{
		OwnerID:       ownerID,
		BankName:      req.BankName,
		HolderName:    req.HolderName,
		IFSC:          req.IFSC,
		AccountType:   req.AccountType,
		AccountNumber: req.AccountNumber,
		Primary:       req.Primary,
	})
	if err != nil {
		h.logFailure(ctx, "bank account add failed", actor, ownerID.String(), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromRecord(rec))
}

// HandleSetPrimary handles POST /v1/banks/{id}/primary.
func (h *Handler) HandleSetPrimary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recordID, err := id.ParseRecordID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	rec, err := h.service.SetPrimaryBank(ctx, actor, recordID)
	if err != nil {
		h.logFailure(ctx, "set primary bank failed", actor, recordID.String(), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(rec))
}

// HandleOwnerStatus handles GET /v1/owners/{ownerID}/status.
func (h *Handler) HandleOwnerStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, err := id.ParseNodeID(chi.URLParam(r, "ownerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	status, err := h.service.OwnerStatus(ctx, actor, ownerID)
	if err != nil {
		h.logFailure(ctx, "owner status query failed", actor, ownerID.String(), err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromOwnerStatus(status))
}

func (h *Handler) recordParams(w http.ResponseWriter, r *http.Request) (models.Kind, id.RecordID, bool) {
	kind, err := models.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", id.RecordID{}, false
	}
	recordID, err := id.ParseRecordID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", id.RecordID{}, false
	}
	return kind, recordID, true
}

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (hierarchymodels.Actor, bool) {
	ctx := r.Context()
	actorID := requestcontext.ActorID(ctx)
	if actorID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return nil, false
	}
	actor, err := h.actors.ResolveActor(ctx, actorID)
	if err != nil {
		// A token for a node that no longer exists is an authentication failure.
		if dErrors.HasCode(err, dErrors.CodeNodeNotFound) {
			err = dErrors.New(dErrors.CodeUnauthorized, "unknown actor")
		}
		httputil.WriteError(w, err)
		return nil, false
	}
	return actor, true
}

func (h *Handler) logFailure(ctx context.Context, msg string, actor hierarchymodels.Actor, entityID string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"actor_id", actor.Node().ID,
		"entity_id", entityID,
		"error", err,
	}
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
		return
	}
	h.logger.InfoContext(ctx, msg, attrs...)
}
