// Package service is the PII vault: it encrypts identifiers on write and
// decrypts, groups or masks them on read according to viewer privilege.
// Plaintext never reaches logs, audit metadata or error messages.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,Cipher,AuditPublisher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ledgerguard/internal/authorization"
	"ledgerguard/internal/pii/format"
	piimetrics "ledgerguard/internal/pii/metrics"
	"ledgerguard/internal/pii/models"
	id "ledgerguard/pkg/domain"
	dErrors "ledgerguard/pkg/domain-errors"
	audit "ledgerguard/pkg/platform/audit"
	"ledgerguard/pkg/platform/sentinel"
	txcontext "ledgerguard/pkg/platform/tx"
	"ledgerguard/pkg/requestcontext"
)

// DefaultTTL applies when a store request carries no TTL.
const DefaultTTL = 365 * 24 * time.Hour

type Store interface {
	Insert(ctx context.Context, field *models.Field) error
	DeleteSlot(ctx context.Context, owner id.NodeID, typ models.PIIType, scope models.Scope) error
	FindByID(ctx context.Context, fieldID id.FieldID) (*models.Field, error)
	ListByRecord(ctx context.Context, recordID id.RecordID) ([]*models.Field, error)
	DeleteByRecord(ctx context.Context, recordID id.RecordID) (int, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Vault struct {
	store          Store
	cipher         Cipher
	tx             TxRunner
	defaultTTL     time.Duration
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *piimetrics.Metrics
	tracer         trace.Tracer
}

type Option func(*Vault)

func WithLogger(logger *slog.Logger) Option {
	return func(v *Vault) { v.logger = logger }
}

func WithMetrics(m *piimetrics.Metrics) Option {
	return func(v *Vault) { v.metrics = m }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(v *Vault) { v.auditPublisher = p }
}

func WithTx(tx TxRunner) Option {
	return func(v *Vault) { v.tx = tx }
}

func WithDefaultTTL(ttl time.Duration) Option {
	return func(v *Vault) {
		if ttl > 0 {
			v.defaultTTL = ttl
		}
	}
}

func New(store Store, cipher Cipher, opts ...Option) (*Vault, error) {
	if store == nil {
		return nil, errors.New("pii store is required")
	}
	if cipher == nil {
		return nil, errors.New("pii cipher is required")
	}
	v := &Vault{
		store:      store,
		cipher:     cipher,
		defaultTTL: DefaultTTL,
		logger:     slog.Default(),
		tracer:     otel.Tracer("ledgerguard/pii"),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.tx == nil {
		v.tx = txcontext.NewMemoryRunner()
	}
	return v, nil
}

// StoreRequest describes a value to protect.
type StoreRequest struct {
	Type      models.PIIType
	Plaintext string
	OwnerID   id.NodeID
	RecordID  id.RecordID
	Scope     models.Scope
	TTL       time.Duration
}

// Store validates, encrypts and persists a value, replacing any live field
// for the same owner, type and scope. A ciphertext that does not decrypt back
// to the input fails with CodeCorruptionDetected and nothing is written.
func (v *Vault) Store(ctx context.Context, req StoreRequest) (*models.Field, error) {
	ctx, span := v.tracer.Start(ctx, "pii.Store", trace.WithAttributes(
		attribute.String("pii_type", string(req.Type)),
		attribute.String("owner_id", req.OwnerID.String()),
	))
	defer span.End()

	if req.OwnerID.IsNil() || req.RecordID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "owner and record are required")
	}
	if req.Scope == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "scope is required")
	}
	value, err := format.Normalize(req.Type, req.Plaintext)
	if err != nil {
		return nil, err
	}
	ttl := req.TTL
	if ttl <= 0 {
		ttl = v.defaultTTL
	}

	ciphertext, err := v.cipher.Encrypt(value)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encrypt pii")
	}
	if roundTrip, err := v.cipher.Decrypt(ciphertext); err != nil || roundTrip != value {
		return nil, v.corruptionOnWrite(ctx, req)
	}

	now := requestcontext.Now(ctx)
	field := &models.Field{
		ID:             id.NewFieldID(),
		OwnerID:        req.OwnerID,
		RecordID:       req.RecordID,
		Type:           req.Type,
		EncryptedValue: ciphertext,
		Scope:          req.Scope,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
	}

	err = v.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := v.store.DeleteSlot(txCtx, field.OwnerID, field.Type, field.Scope); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to replace pii field")
		}
		if err := v.store.Insert(txCtx, field); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "pii field already stored for this scope")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store pii field")
		}
		return v.emit(txCtx, audit.EventPIIStored, field.ID.String(), map[string]any{
			"piiType":  string(field.Type),
			"scope":    string(field.Scope),
			"ownerId":  field.OwnerID.String(),
			"recordId": field.RecordID.String(),
			"masked":   format.Mask(field.Type, value),
		})
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	v.metrics.IncStored(string(field.Type))
	v.logger.InfoContext(ctx, "pii field stored",
		"field_id", field.ID,
		"pii_type", field.Type,
		"scope", field.Scope,
	)
	return field, nil
}

func (v *Vault) corruptionOnWrite(ctx context.Context, req StoreRequest) error {
	v.metrics.IncCorruption("write")
	v.logger.ErrorContext(ctx, "pii ciphertext failed round-trip verification",
		"pii_type", req.Type,
		"owner_id", req.OwnerID,
		"record_id", req.RecordID,
	)
	err := dErrors.New(dErrors.CodeCorruptionDetected, "pii encryption could not be verified").
		WithReason("CORRUPTION_DETECTED")
	if auditErr := v.emit(ctx, audit.EventPIICorruptionDetected, req.RecordID.String(), map[string]any{
		"piiType": string(req.Type),
		"path":    "write",
	}); auditErr != nil {
		return errors.Join(err, auditErr)
	}
	return err
}

// Read renders a field for a viewer. It never fails: expired fields read as
// EXPIRED and undecryptable ones as OPAQUE.
func (v *Vault) Read(ctx context.Context, field *models.Field, privilege models.Privilege) models.DisplayValue {
	dv := v.read(ctx, field, privilege)
	v.metrics.IncRead(string(dv.Kind))
	return dv
}

func (v *Vault) read(ctx context.Context, field *models.Field, privilege models.Privilege) models.DisplayValue {
	if field.IsExpired(requestcontext.Now(ctx)) {
		return models.DisplayValue{Kind: models.DisplayExpired}
	}
	plain, err := v.cipher.Decrypt(field.EncryptedValue)
	if err != nil {
		v.metrics.IncCorruption("read")
		v.logger.WarnContext(ctx, "pii field could not be decrypted",
			"field_id", field.ID,
			"pii_type", field.Type,
		)
		return models.DisplayValue{Kind: models.DisplayOpaque, Value: models.OpaquePlaceholder}
	}
	if privilege == models.PrivilegeFull {
		return models.DisplayValue{Kind: models.DisplayPlain, Value: format.Full(field.Type, plain)}
	}
	return models.DisplayValue{Kind: models.DisplayMasked, Value: format.Mask(field.Type, plain)}
}

// ReadByID loads and renders a single field.
func (v *Vault) ReadByID(ctx context.Context, fieldID id.FieldID, privilege models.Privilege) (models.DisplayValue, error) {
	field, err := v.store.FindByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.DisplayValue{}, dErrors.New(dErrors.CodeNotFound, "pii field not found")
		}
		return models.DisplayValue{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load pii field")
	}
	return v.Read(ctx, field, privilege), nil
}

// ListForRecord renders every field attached to a record. One bad row does
// not fail the listing.
func (v *Vault) ListForRecord(ctx context.Context, recordID id.RecordID, privilege models.Privilege) ([]models.FieldView, error) {
	fields, err := v.store.ListByRecord(ctx, recordID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pii fields")
	}
	views := make([]models.FieldView, 0, len(fields))
	for _, f := range fields {
		views = append(views, models.FieldView{
			ID:        f.ID,
			Type:      f.Type,
			Scope:     f.Scope,
			ExpiresAt: f.ExpiresAt,
			Display:   v.Read(ctx, f, privilege),
		})
	}
	return views, nil
}

// DeleteForRecord destroys every field attached to a record. It joins the
// caller's unit of work.
func (v *Vault) DeleteForRecord(ctx context.Context, recordID id.RecordID) (int, error) {
	n, err := v.store.DeleteByRecord(ctx, recordID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete pii fields")
	}
	return n, nil
}

// PurgeExpired removes fields past their TTL.
func (v *Vault) PurgeExpired(ctx context.Context) (int, error) {
	var n int
	err := v.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		n, err = v.store.DeleteExpired(txCtx, requestcontext.Now(txCtx))
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to purge expired pii")
		}
		if n == 0 {
			return nil
		}
		return v.emit(txCtx, audit.EventPIIPurged, "expired", map[string]any{"count": n})
	})
	if err != nil {
		return 0, err
	}
	v.metrics.AddPurged(n)
	return n, nil
}

// PrivilegeFor maps an allow decision to the viewer's privilege. Owners,
// admins over their subtree and the root over admins see full values;
// delegated employees see masked ones. Anything else is masked.
func PrivilegeFor(d *authorization.Decision) models.Privilege {
	if d == nil || !d.Allowed {
		return models.PrivilegeMasked
	}
	switch d.Reason {
	case authorization.ReasonSelf, authorization.ReasonHierarchyAccess, authorization.ReasonRootOverAdmin:
		return models.PrivilegeFull
	}
	return models.PrivilegeMasked
}

func (v *Vault) emit(ctx context.Context, action audit.AuditEvent, entityID string, md map[string]any) error {
	if v.auditPublisher == nil {
		return nil
	}
	actorID := "system"
	if actor := requestcontext.ActorID(ctx); !actor.IsNil() {
		actorID = actor.String()
	}
	return v.auditPublisher.Emit(ctx, audit.Event{
		ActorID:    actorID,
		Action:     string(action),
		EntityType: audit.EntityPIIField,
		EntityID:   entityID,
		Metadata:   md,
	})
}
