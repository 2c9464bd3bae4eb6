// Package service drives the KYC and bank verification status machine.
//
// Every state change runs in one unit of work: the record row is locked,
// the actor is authorized against the record owner, the transition is
// validated and applied, the owner's derived KYC flag is written and the
// success event goes to the audit outbox. Any failure rolls all of it back
// and a single *_TRANSITION_FAILED event is emitted afterwards.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,Authorizer,OwnerStore,Vault,AuditPublisher,TxRunner

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ledgerguard/internal/authorization"
	hierarchymodels "ledgerguard/internal/hierarchy/models"
	piimodels "ledgerguard/internal/pii/models"
	piiservice "ledgerguard/internal/pii/service"
	verificationmetrics "ledgerguard/internal/verification/metrics"
	"ledgerguard/internal/verification/models"
	id "ledgerguard/pkg/domain"
	dErrors "ledgerguard/pkg/domain-errors"
	audit "ledgerguard/pkg/platform/audit"
	"ledgerguard/pkg/platform/sentinel"
	txcontext "ledgerguard/pkg/platform/tx"
	"ledgerguard/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, record *models.Record) error
	FindByID(ctx context.Context, recordID id.RecordID) (*models.Record, error)
	FindKYCByOwner(ctx context.Context, owner id.NodeID) (*models.Record, error)
	ListByOwner(ctx context.Context, owner id.NodeID, kind models.Kind) ([]*models.Record, error)
	Execute(ctx context.Context, recordID id.RecordID, validate func(*models.Record) error, mutate func(*models.Record)) (*models.Record, error)
	ClearPrimary(ctx context.Context, owner id.NodeID) error
	Delete(ctx context.Context, recordID id.RecordID) error
}

// Authorizer is the authorization engine. Evaluate is unaudited; Decide
// emits the access event itself.
type Authorizer interface {
	Evaluate(ctx context.Context, actor hierarchymodels.Actor, targetOwnerID id.NodeID) (*authorization.Decision, error)
	Decide(ctx context.Context, actor hierarchymodels.Actor, targetOwnerID id.NodeID) (*authorization.Decision, error)
}

// OwnerStore holds the owner's derived isKycVerified flag.
type OwnerStore interface {
	FindByID(ctx context.Context, nodeID id.NodeID) (*hierarchymodels.TenantNode, error)
	SetKYCVerified(ctx context.Context, nodeID id.NodeID, verified bool) error
}

type Vault interface {
	Store(ctx context.Context, req piiservice.StoreRequest) (*piimodels.Field, error)
	ListForRecord(ctx context.Context, recordID id.RecordID, privilege piimodels.Privilege) ([]piimodels.FieldView, error)
	DeleteForRecord(ctx context.Context, recordID id.RecordID) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	store          Store
	authz          Authorizer
	owners         OwnerStore
	vault          Vault
	tx             TxRunner
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *verificationmetrics.Metrics
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *verificationmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = p }
}

func WithTx(tx TxRunner) Option {
	return func(s *Service) { s.tx = tx }
}

func New(store Store, authz Authorizer, owners OwnerStore, vault Vault, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("verification store is required")
	}
	if authz == nil {
		return nil, errors.New("authorizer is required")
	}
	if owners == nil {
		return nil, errors.New("owner store is required")
	}
	if vault == nil {
		return nil, errors.New("pii vault is required")
	}
	s := &Service{
		store:  store,
		authz:  authz,
		owners: owners,
		vault:  vault,
		logger: slog.Default(),
		tracer: otel.Tracer("ledgerguard/verification"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = txcontext.NewMemoryRunner()
	}
	return s, nil
}

// TransitionRequest asks for a record to move to Status.
type TransitionRequest struct {
	Kind     models.Kind
	RecordID id.RecordID
	Status   models.Status
	Reason   string
}

// Transition applies a status change on behalf of actor. Denials, illegal
// edges and concurrent modifications leave the record unchanged.
func (s *Service) Transition(ctx context.Context, actor hierarchymodels.Actor, req TransitionRequest) (*models.Record, error) {
	ctx, span := s.tracer.Start(ctx, "verification.Transition", trace.WithAttributes(
		attribute.String("record_id", req.RecordID.String()),
		attribute.String("kind", string(req.Kind)),
		attribute.String("requested_status", string(req.Status)),
	))
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveTransitionLatency(time.Since(start)) }()

	if actor == nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "actor is required")
	}
	if !req.Kind.IsValid() || !req.Status.IsValid() {
		err := dErrors.New(dErrors.CodeBadRequest, "kind and status are required")
		s.transitionFailed(ctx, actor, req.Kind, req.RecordID.String(), "transition", err)
		return nil, err
	}

	actorID := actor.Node().ID
	now := requestcontext.Now(ctx)
	var previous models.Status
	var record *models.Record
	err := s.tx.RunInTx(s.ownerShard(ctx, req.RecordID), func(txCtx context.Context) error {
		updated, err := s.store.Execute(txCtx, req.RecordID,
			func(r *models.Record) error {
				if r.Kind != req.Kind {
					return sentinel.ErrNotFound
				}
				previous = r.Status
				if _, err := s.authorize(txCtx, actor, r.OwnerID); err != nil {
					return err
				}
				return r.CanTransition(req.Status, req.Reason, actorID)
			},
			func(r *models.Record) {
				r.ApplyTransition(req.Status, req.Reason, actorID, now)
			},
		)
		if err != nil {
			return wrapRecordErr(err)
		}

		if updated.Kind == models.KindKYC {
			if err := s.owners.SetKYCVerified(txCtx, updated.OwnerID, updated.IsVerified()); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update owner kyc flag")
			}
		}

		md := map[string]any{
			"previousStatus": string(previous),
			"newStatus":      string(updated.Status),
			"ownerId":        updated.OwnerID.String(),
			"version":        updated.Version,
		}
		if updated.RejectionReason != nil {
			md["reason"] = *updated.RejectionReason
		}
		if err := s.emit(txCtx, actorID, models.SuccessEvent(updated.Kind, updated.Status), updated.Kind, updated.ID.String(), md); err != nil {
			return err
		}
		record = updated
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transition failed")
		s.transitionFailed(ctx, actor, req.Kind, req.RecordID.String(), "transition", err)
		return nil, err
	}

	s.metrics.IncTransition(string(record.Kind), string(record.Status))
	s.logger.InfoContext(ctx, "verification transition applied",
		"record_id", record.ID,
		"kind", record.Kind,
		"previous_status", previous,
		"new_status", record.Status,
		"actor_id", actorID,
	)
	return record, nil
}

// SubmitKYCRequest carries a KYC submission. PAN and Aadhaar go to the vault.
type SubmitKYCRequest struct {
	OwnerID id.NodeID
	Country string
	PAN     string
	Aadhaar string
}

// SubmitKYC creates the owner's KYC record in PENDING, or moves a rejected
// record back to PENDING with fresh identifiers.
func (s *Service) SubmitKYC(ctx context.Context, actor hierarchymodels.Actor, req SubmitKYCRequest) (*models.Record, error) {
	ctx, span := s.tracer.Start(ctx, "verification.SubmitKYC", trace.WithAttributes(
		attribute.String("owner_id", req.OwnerID.String()),
	))
	defer span.End()

	if actor == nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "actor is required")
	}
	actorID := actor.Node().ID
	now := requestcontext.Now(ctx)
	var record *models.Record
	resubmitted := false
	err := s.tx.RunInTx(txcontext.WithShardKey(ctx, req.OwnerID.String()), func(txCtx context.Context) error {
		if _, err := s.authorize(txCtx, actor, req.OwnerID); err != nil {
			return err
		}

		existing, err := s.store.FindKYCByOwner(txCtx, req.OwnerID)
		switch {
		case err == nil:
			record, err = s.store.Execute(txCtx, existing.ID,
				func(r *models.Record) error { return r.CanResubmit() },
				func(r *models.Record) { r.ApplyResubmission(req.Country, actorID, now) },
			)
			if err != nil {
				return wrapRecordErr(err)
			}
			resubmitted = true
		case errors.Is(err, sentinel.ErrNotFound):
			record, err = models.NewKYCRecord(id.NewRecordID(), req.OwnerID, req.Country, now)
			if err != nil {
				return err
			}
			if err := s.store.Create(txCtx, record); err != nil {
				return wrapRecordErr(err)
			}
		default:
			return wrapRecordErr(err)
		}

		for _, f := range []struct {
			typ   piimodels.PIIType
			value string
		}{
			{piimodels.PIITypePAN, req.PAN},
			{piimodels.PIITypeAadhaar, req.Aadhaar},
		} {
			if _, err := s.vault.Store(txCtx, piiservice.StoreRequest{
				Type:      f.typ,
				Plaintext: f.value,
				OwnerID:   req.OwnerID,
				RecordID:  record.ID,
				Scope:     piimodels.ScopeKYC,
			}); err != nil {
				return err
			}
		}

		return s.emit(txCtx, actorID, models.CreatedEvent(models.KindKYC), models.KindKYC, record.ID.String(), map[string]any{
			"ownerId":     req.OwnerID.String(),
			"country":     record.Country,
			"newStatus":   string(record.Status),
			"resubmitted": resubmitted,
		})
	})
	if err != nil {
		span.RecordError(err)
		s.transitionFailed(ctx, actor, models.KindKYC, req.OwnerID.String(), "submit", err)
		return nil, err
	}

	s.metrics.IncRecordCreated(string(models.KindKYC))
	s.logger.InfoContext(ctx, "kyc submitted",
		"record_id", record.ID,
		"owner_id", req.OwnerID,
		"resubmitted", resubmitted,
	)
	return record, nil
}

// AddBankRequest carries a new bank account. AccountNumber goes to the vault.
type AddBankRequest struct {
	OwnerID       id.NodeID
	BankName      string
	HolderName    string
	IFSC          string
	AccountType   string
	AccountNumber string
	Primary       bool
}

// AddBankAccount creates a PENDING bank record. The owner's first account is
// primary; a later one becomes primary only when asked.
func (s *Service) AddBankAccount(ctx context.Context, actor hierarchymodels.Actor, req AddBankRequest) (*models.Record, error) {
	ctx, span := s.tracer.Start(ctx, "verification.AddBankAccount", trace.WithAttributes(
		attribute.String("owner_id", req.OwnerID.String()),
	))
	defer span.End()

	if actor == nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "actor is required")
	}
	actorID := actor.Node().ID
	now := requestcontext.Now(ctx)
	var record *models.Record
	err := s.tx.RunInTx(txcontext.WithShardKey(ctx, req.OwnerID.String()), func(txCtx context.Context) error {
		if _, err := s.authorize(txCtx, actor, req.OwnerID); err != nil {
			return err
		}
		rec, err := models.NewBankRecord(id.NewRecordID(), req.OwnerID, models.BankDetails{
			BankName:    req.BankName,
			HolderName:  req.HolderName,
			IFSC:        req.IFSC,
			AccountType: req.AccountType,
		}, now)
		if err != nil {
			return err
		}

		existing, err := s.store.ListByOwner(txCtx, req.OwnerID, models.KindBank)
		if err != nil {
			return wrapRecordErr(err)
		}
		rec.IsPrimary = req.Primary || len(existing) == 0
		if rec.IsPrimary {
			if err := s.store.ClearPrimary(txCtx, req.OwnerID); err != nil {
				return wrapRecordErr(err)
			}
		}
		if err := s.store.Create(txCtx, rec); err != nil {
			return wrapRecordErr(err)
		}

		if _, err := s.vault.Store(txCtx, piiservice.StoreRequest{
			Type:      piimodels.PIITypeBankAccount,
			Plaintext: req.AccountNumber,
			OwnerID:   req.OwnerID,
			RecordID:  rec.ID,
			Scope:     piimodels.BankScope(rec.ID),
		}); err != nil {
			return err
		}

		record = rec
		return s.emit(txCtx, actorID, models.CreatedEvent(models.KindBank), models.KindBank, rec.ID.String(), map[string]any{
			"ownerId":     req.OwnerID.String(),
			"bankName":    rec.BankName,
			"accountType": string(rec.AccountType),
			"isPrimary":   rec.IsPrimary,
			"newStatus":   string(rec.Status),
		})
	})
	if err != nil {
		span.RecordError(err)
		s.transitionFailed(ctx, actor, models.KindBank, req.OwnerID.String(), "add", err)
		return nil, err
	}

	s.metrics.IncRecordCreated(string(models.KindBank))
	s.logger.InfoContext(ctx, "bank account added",
		"record_id", record.ID,
		"owner_id", req.OwnerID,
		"is_primary", record.IsPrimary,
	)
	return record, nil
}

// SetPrimaryBank makes recordID the owner's only primary account.
func (s *Service) SetPrimaryBank(ctx context.Context, actor hierarchymodels.Actor, recordID id.RecordID) (*models.Record, error) {
	if actor == nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "actor is required")
	}
	actorID := actor.Node().ID
	now := requestcontext.Now(ctx)

	var record *models.Record
	err := s.tx.RunInTx(s.ownerShard(ctx, recordID), func(txCtx context.Context) error {
		current, err := s.load(txCtx, models.KindBank, recordID)
		if err != nil {
			return err
		}
		if _, err := s.authorize(txCtx, actor, current.OwnerID); err != nil {
			return err
		}
		if err := s.store.ClearPrimary(txCtx, current.OwnerID); err != nil {
			return wrapRecordErr(err)
		}
		record, err = s.store.Execute(txCtx, recordID,
			func(r *models.Record) error {
				if r.OwnerID != current.OwnerID {
					return sentinel.ErrStale
				}
				return nil
			},
			func(r *models.Record) {
				r.IsPrimary = true
				r.UpdatedAt = now
			},
		)
		if err != nil {
			return wrapRecordErr(err)
		}
		return s.emit(txCtx, actorID, audit.EventBankPrimarySet, models.KindBank, recordID.String(), map[string]any{
			"ownerId": record.OwnerID.String(),
		})
	})
	if err != nil {
		s.transitionFailed(ctx, actor, models.KindBank, recordID.String(), "set_primary", err)
		return nil, err
	}
	return record, nil
}

// DeleteRecord removes a record and destroys its vault fields. Deleting a
// KYC record clears the owner's verified flag.
func (s *Service) DeleteRecord(ctx context.Context, actor hierarchymodels.Actor, kind models.Kind, recordID id.RecordID) error {
	if actor == nil {
		return dErrors.New(dErrors.CodeUnauthorized, "actor is required")
	}
	actorID := actor.Node().ID
	err := s.tx.RunInTx(s.ownerShard(ctx, recordID), func(txCtx context.Context) error {
		record, err := s.load(txCtx, kind, recordID)
		if err != nil {
			return err
		}
		if _, err := s.authorize(txCtx, actor, record.OwnerID); err != nil {
			return err
		}
		destroyed, err := s.vault.DeleteForRecord(txCtx, recordID)
		if err != nil {
			return err
		}
		if err := s.store.Delete(txCtx, recordID); err != nil {
			return wrapRecordErr(err)
		}
		if kind == models.KindKYC {
			if err := s.owners.SetKYCVerified(txCtx, record.OwnerID, false); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update owner kyc flag")
			}
		}
		return s.emit(txCtx, actorID, audit.EventRecordDeleted, kind, recordID.String(), map[string]any{
			"ownerId":         record.OwnerID.String(),
			"previousStatus":  string(record.Status),
			"fieldsDestroyed": destroyed,
		})
	})
	if err != nil {
		s.transitionFailed(ctx, actor, kind, recordID.String(), "delete", err)
		return err
	}
	s.logger.InfoContext(ctx, "verification record deleted", "record_id", recordID, "kind", kind)
	return nil
}

// RecordView is a record with its vault fields rendered at the viewer's
// privilege.
type RecordView struct {
	Record     *models.Record
	Fields     []piimodels.FieldView
	Privilege  piimodels.Privilege
	ReasonCode authorization.ReasonCode
}

// ViewRecord authorizes the read and renders vault fields. Delegated
// employees see masked identifiers.
func (s *Service) ViewRecord(ctx context.Context, actor hierarchymodels.Actor, kind models.Kind, recordID id.RecordID) (*RecordView, error) {
	ctx, span := s.tracer.Start(ctx, "verification.ViewRecord", trace.WithAttributes(
		attribute.String("record_id", recordID.String()),
	))
	defer span.End()

	if actor == nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "actor is required")
	}
	actorID := actor.Node().ID
	record, err := s.load(ctx, kind, recordID)
	if err != nil {
		return nil, err
	}

	decision, err := s.authz.Evaluate(ctx, actor, record.OwnerID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		if auditErr := s.emit(ctx, actorID, audit.EventAccessDenied, kind, recordID.String(), map[string]any{
			"reasonCode": string(decision.Reason),
			"operation":  "view",
		}); auditErr != nil {
			return nil, auditErr
		}
		s.logger.WarnContext(ctx, "record view denied",
			"record_id", recordID,
			"actor_id", actorID,
			"reason_code", decision.Reason,
		)
		return nil, authorization.Denied(decision)
	}

	privilege := piiservice.PrivilegeFor(decision)
	fields, err := s.vault.ListForRecord(ctx, recordID, privilege)
	if err != nil {
		return nil, err
	}
	if err := s.emit(ctx, actorID, audit.EventRecordViewed, kind, recordID.String(), map[string]any{
		"reasonCode": string(decision.Reason),
		"privilege":  string(privilege),
	}); err != nil {
		return nil, err
	}
	return &RecordView{
		Record:     record,
		Fields:     fields,
		Privilege:  privilege,
		ReasonCode: decision.Reason,
	}, nil
}

// IsKYCVerified reads the owner's derived flag after an audited decision.
func (s *Service) IsKYCVerified(ctx context.Context, actor hierarchymodels.Actor, owner id.NodeID) (bool, error) {
	if err := s.decide(ctx, actor, owner); err != nil {
		return false, err
	}
	return s.kycFlag(ctx, owner)
}

// HasVerifiedFundingSource reports whether the owner has any VERIFIED bank
// record. It is computed on read.
func (s *Service) HasVerifiedFundingSource(ctx context.Context, actor hierarchymodels.Actor, owner id.NodeID) (bool, error) {
	if err := s.decide(ctx, actor, owner); err != nil {
		return false, err
	}
	return s.fundingSource(ctx, owner)
}

// OwnerStatus carries both derived flags for one owner.
type OwnerStatus struct {
	OwnerID                  id.NodeID
	IsKYCVerified            bool
	HasVerifiedFundingSource bool
}

// OwnerStatus answers both flag queries behind a single audited decision.
func (s *Service) OwnerStatus(ctx context.Context, actor hierarchymodels.Actor, owner id.NodeID) (*OwnerStatus, error) {
	if err := s.decide(ctx, actor, owner); err != nil {
		return nil, err
	}
	kyc, err := s.kycFlag(ctx, owner)
	if err != nil {
		return nil, err
	}
	funded, err := s.fundingSource(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &OwnerStatus{OwnerID: owner, IsKYCVerified: kyc, HasVerifiedFundingSource: funded}, nil
}

func (s *Service) kycFlag(ctx context.Context, owner id.NodeID) (bool, error) {
	node, err := s.owners.FindByID(ctx, owner)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, dErrors.New(dErrors.CodeNodeNotFound, "node not found")
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load owner")
	}
	return node.IsKYCVerified, nil
}

func (s *Service) fundingSource(ctx context.Context, owner id.NodeID) (bool, error) {
	banks, err := s.store.ListByOwner(ctx, owner, models.KindBank)
	if err != nil {
		return false, wrapRecordErr(err)
	}
	for _, b := range banks {
		if b.IsVerified() {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) decide(ctx context.Context, actor hierarchymodels.Actor, owner id.NodeID) error {
	if actor == nil {
		return dErrors.New(dErrors.CodeUnauthorized, "actor is required")
	}
	decision, err := s.authz.Decide(ctx, actor, owner)
	if err != nil {
		return err
	}
	return authorization.Denied(decision)
}

func (s *Service) authorize(ctx context.Context, actor hierarchymodels.Actor, owner id.NodeID) (*authorization.Decision, error) {
	decision, err := s.authz.Evaluate(ctx, actor, owner)
	if err != nil {
		return nil, err
	}
	if err := authorization.Denied(decision); err != nil {
		return nil, err
	}
	return decision, nil
}

// ownerShard keys the unit of work on the record's owner so it serialises
// with submissions and every other write to that owner's records and flag.
// OwnerID never changes after creation. Unknown records fall back to the
// record id and fail inside the unit of work.
func (s *Service) ownerShard(ctx context.Context, recordID id.RecordID) context.Context {
	record, err := s.store.FindByID(ctx, recordID)
	if err != nil {
		return txcontext.WithShardKey(ctx, recordID.String())
	}
	return txcontext.WithShardKey(ctx, record.OwnerID.String())
}

func (s *Service) load(ctx context.Context, kind models.Kind, recordID id.RecordID) (*models.Record, error) {
	record, err := s.store.FindByID(ctx, recordID)
	if err != nil {
		return nil, wrapRecordErr(err)
	}
	if record.Kind != kind {
		return nil, wrapRecordErr(sentinel.ErrNotFound)
	}
	return record, nil
}

// transitionFailed records the single failure event for an operation that
// changed nothing. It runs after rollback so the event survives it.
func (s *Service) transitionFailed(ctx context.Context, actor hierarchymodels.Actor, kind models.Kind, entityID, operation string, cause error) {
	reason := failureReason(cause)
	s.metrics.IncTransitionFailure(string(kind), reason)

	attrs := []any{
		"entity_id", entityID,
		"kind", kind,
		"operation", operation,
		"actor_id", actor.Node().ID,
		"reason_code", reason,
	}
	switch dErrors.CodeOf(cause) {
	case dErrors.CodeHierarchyDepthExceeded, dErrors.CodeCorruptionDetected, dErrors.CodeInternal:
		s.logger.ErrorContext(ctx, "verification operation failed", append(attrs, "error", cause)...)
	case dErrors.CodeAuthorizationDenied:
		s.logger.WarnContext(ctx, "verification operation denied", attrs...)
	default:
		s.logger.InfoContext(ctx, "verification operation rejected", attrs...)
	}

	if !kind.IsValid() {
		kind = models.KindKYC
	}
	err := s.emit(ctx, actor.Node().ID, models.FailureEvent(kind), kind, entityID, map[string]any{
		"reasonCode": reason,
		"operation":  operation,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to audit verification failure",
			"entity_id", entityID,
			"error", err,
		)
	}
}

func failureReason(err error) string {
	if reason := dErrors.ReasonOf(err); reason != "" {
		return reason
	}
	return strings.ToUpper(string(dErrors.CodeOf(err)))
}

func (s *Service) emit(ctx context.Context, actorID id.NodeID, action audit.AuditEvent, kind models.Kind, entityID string, md map[string]any) error {
	if s.auditPublisher == nil {
		return nil
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		ActorID:    actorID.String(),
		Action:     string(action),
		EntityType: kind.EntityType(),
		EntityID:   entityID,
		Metadata:   md,
	}); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}

// wrapRecordErr translates store sentinels. Domain errors pass through.
func wrapRecordErr(err error) error {
	if _, ok := dErrors.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "record not found").WithReason(models.ReasonRecordNotFound)
	case errors.Is(err, sentinel.ErrStale):
		return dErrors.Wrap(err, dErrors.CodeConcurrentModification, "record changed concurrently").
			WithReason("CONCURRENT_MODIFICATION")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "record conflicts with an existing record").
			WithReason(models.ReasonRecordExists)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "verification store failure")
}
