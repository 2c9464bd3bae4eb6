package authorization

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Hierarchy,AuditPublisher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	authzmetrics "ledgerguard/internal/authorization/metrics"
	"ledgerguard/internal/hierarchy/models"
	id "ledgerguard/pkg/domain"
	dErrors "ledgerguard/pkg/domain-errors"
	audit "ledgerguard/pkg/platform/audit"
)

// Hierarchy is the subset of the hierarchy index the engine reads.
type Hierarchy interface {
	Get(ctx context.Context, nodeID id.NodeID) (*models.TenantNode, error)
	DescendantsOf(ctx context.Context, nodeID id.NodeID, exclude models.RoleExclusion) (models.NodeSet, error)
	ResolveActor(ctx context.Context, nodeID id.NodeID) (models.Actor, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is the AuthorizationEngine. It never mutates data.
type Service struct {
	hierarchy      Hierarchy
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *authzmetrics.Metrics
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *authzmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = p }
}

func New(hierarchy Hierarchy, opts ...Option) (*Service, error) {
	if hierarchy == nil {
		return nil, errors.New("hierarchy is required")
	}
	s := &Service{
		hierarchy: hierarchy,
		logger:    slog.Default(),
		tracer:    otel.Tracer("ledgerguard/authorization"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Evaluate decides without emitting audit. Callers that audit the enclosing
// operation use it so one external call yields one event.
func (s *Service) Evaluate(ctx context.Context, actor models.Actor, targetOwnerID id.NodeID) (*Decision, error) {
	ctx, span := s.tracer.Start(ctx, "authorization.Evaluate", trace.WithAttributes(
		attribute.String("actor_id", actor.Node().ID.String()),
		attribute.String("target_owner_id", targetOwnerID.String()),
	))
	defer span.End()
	start := time.Now()

	target, err := s.hierarchy.Get(ctx, targetOwnerID)
	if err != nil {
		span.SetStatus(codes.Error, "target lookup failed")
		return nil, err
	}

	allowed, reason, err := evaluateRules(ctx, actor, target, s.inScope)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rule evaluation failed")
		return nil, err
	}

	decision := &Decision{
		ActorID:       actor.Node().ID,
		ActorRole:     actor.Node().RoleName,
		TargetOwnerID: targetOwnerID,
		Allowed:       allowed,
		Reason:        reason,
	}
	span.SetAttributes(
		attribute.Bool("allowed", allowed),
		attribute.String("reason_code", string(reason)),
	)
	s.metrics.IncrementDecision(decision.Outcome(), string(reason))
	s.metrics.ObserveDecideLatency(time.Since(start))
	return decision, nil
}

// Decide evaluates and emits exactly one ACCESS_GRANTED or ACCESS_DENIED
// event. A depth guard trip is audited as a denial and returned as an error.
// An unknown target is returned without audit.
func (s *Service) Decide(ctx context.Context, actor models.Actor, targetOwnerID id.NodeID) (*Decision, error) {
	decision, err := s.Evaluate(ctx, actor, targetOwnerID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeHierarchyDepthExceeded) {
			s.logger.ErrorContext(ctx, "authorization aborted by hierarchy guard",
				"actor_id", actor.Node().ID,
				"target_owner_id", targetOwnerID,
			)
			if auditErr := s.emit(ctx, &Decision{
				ActorID:       actor.Node().ID,
				ActorRole:     actor.Node().RoleName,
				TargetOwnerID: targetOwnerID,
				Reason:        ReasonDepthExceeded,
			}); auditErr != nil {
				return nil, auditErr
			}
		}
		return nil, err
	}

	if err := s.emit(ctx, decision); err != nil {
		return nil, err
	}

	if decision.Allowed {
		s.logger.InfoContext(ctx, "access granted",
			"actor_id", decision.ActorID,
			"target_owner_id", decision.TargetOwnerID,
			"reason_code", decision.Reason,
		)
	} else {
		s.logger.WarnContext(ctx, "access denied",
			"actor_id", decision.ActorID,
			"actor_role", decision.ActorRole,
			"target_owner_id", decision.TargetOwnerID,
			"reason_code", decision.Reason,
		)
	}
	return decision, nil
}

// DecideByID resolves the actor first.
func (s *Service) DecideByID(ctx context.Context, actorID, targetOwnerID id.NodeID) (*Decision, error) {
	actor, err := s.hierarchy.ResolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.Decide(ctx, actor, targetOwnerID)
}

// Denied converts a deny decision into CodeAuthorizationDenied carrying the
// reason code. It returns nil for allow.
func Denied(d *Decision) error {
	if d == nil || d.Allowed {
		return nil
	}
	return dErrors.New(dErrors.CodeAuthorizationDenied, "actor may not act on this owner").
		WithReason(string(d.Reason))
}

func (s *Service) inScope(ctx context.Context, root, target id.NodeID) (bool, error) {
	set, err := s.hierarchy.DescendantsOf(ctx, root, scopeExclusion)
	if err != nil {
		return false, err
	}
	return set.Contains(target), nil
}

func (s *Service) emit(ctx context.Context, d *Decision) error {
	if s.auditPublisher == nil {
		return nil
	}
	action := audit.EventAccessDenied
	if d.Allowed {
		action = audit.EventAccessGranted
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		ActorID:    d.ActorID.String(),
		Action:     string(action),
		EntityType: audit.EntityNode,
		EntityID:   d.TargetOwnerID.String(),
		Metadata: map[string]any{
			"reasonCode": string(d.Reason),
			"actorRole":  string(d.ActorRole),
		},
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record authorization decision")
	}
	return nil
}
