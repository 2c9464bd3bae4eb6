//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,DescendantCache,AuditPublisher

// Package service maintains tenant trees and answers ancestry questions for
// authorization: descendant sets, ancestor paths and actor resolution.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	hierarchymetrics "ledgerguard/internal/hierarchy/metrics"
	"ledgerguard/internal/hierarchy/models"
	id "ledgerguard/pkg/domain"
	dErrors "ledgerguard/pkg/domain-errors"
	audit "ledgerguard/pkg/platform/audit"
	"ledgerguard/pkg/platform/sentinel"
	txcontext "ledgerguard/pkg/platform/tx"
	"ledgerguard/pkg/requestcontext"
)

// DefaultMaxDepth bounds descendant traversal when no limit is configured.
const DefaultMaxDepth = 1000

type Store interface {
	Create(ctx context.Context, node *models.TenantNode) error
	FindByID(ctx context.Context, nodeID id.NodeID) (*models.TenantNode, error)
	FindByLogin(ctx context.Context, login string) (*models.TenantNode, error)
	ChildrenOf(ctx context.Context, parents []id.NodeID) ([]*models.TenantNode, error)
}

// DescendantCache is an optional read-through cache for descendant sets. Get
// reports the node's invalidation generation even on a miss; Set stores only
// while that generation is still current.
type DescendantCache interface {
	Get(ctx context.Context, nodeID id.NodeID, signature string) (models.NodeSet, int64, bool)
	Set(ctx context.Context, nodeID id.NodeID, signature string, generation int64, set models.NodeSet)
	Invalidate(ctx context.Context, nodeIDs []id.NodeID)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service is the HierarchyIndex.
type Service struct {
	store          Store
	tx             TxRunner
	cache          DescendantCache
	flight         singleflight.Group
	maxDepth       int
	logger         *slog.Logger
	metrics        *hierarchymetrics.Metrics
	auditPublisher AuditPublisher
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *hierarchymetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = p }
}

func WithCache(c DescendantCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithTx(tx TxRunner) Option {
	return func(s *Service) { s.tx = tx }
}

// WithMaxDepth sets the traversal guard. Non-positive values keep the default.
func WithMaxDepth(depth int) Option {
	return func(s *Service) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("hierarchy store is required")
	}
	s := &Service{
		store:    store,
		maxDepth: DefaultMaxDepth,
		logger:   slog.Default(),
		tracer:   otel.Tracer("ledgerguard/hierarchy"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = txcontext.NewMemoryRunner()
	}
	return s, nil
}

// RegisterRoot creates the SUPER ADMIN root of a new tenant tree.
func (s *Service) RegisterRoot(ctx context.Context, login string) (*models.TenantNode, error) {
	node, err := models.NewRootNode(id.NewNodeID(), id.NewTenantID(), login, requestcontext.Now(ctx))
	if err != nil {
		return nil, toValidation(err)
	}
	if err := s.create(ctx, node); err != nil {
		return nil, err
	}
	return node, nil
}

// RegisterNode creates a node beneath parentID. Level, path and tenant are
// derived from the parent.
func (s *Service) RegisterNode(ctx context.Context, parentID id.NodeID, login string, role models.RoleName, roleType models.RoleType) (*models.TenantNode, error) {
	parent, err := s.Get(ctx, parentID)
	if err != nil {
		return nil, err
	}
	node, err := models.NewChildNode(id.NewNodeID(), parent, login, role, roleType, requestcontext.Now(ctx))
	if err != nil {
		return nil, toValidation(err)
	}
	if err := s.create(ctx, node); err != nil {
		return nil, err
	}

	// Every ancestor's descendant set just grew.
	if s.cache != nil {
		s.cache.Invalidate(ctx, node.HierarchyPath)
	}
	return node, nil
}

func (s *Service) create(ctx context.Context, node *models.TenantNode) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.store.Create(txCtx, node); err != nil {
			switch {
			case errors.Is(err, sentinel.ErrConflict):
				return dErrors.New(dErrors.CodeConflict, "login already registered or tenant already has a root")
			case errors.Is(err, sentinel.ErrNotFound):
				return dErrors.New(dErrors.CodeNodeNotFound, "parent node not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to register node")
		}
		return s.emit(txCtx, node)
	})
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncNodeRegistered(string(node.RoleName))
	}
	s.logger.InfoContext(ctx, "tenant node registered",
		"node_id", node.ID,
		"tenant_id", node.TenantID,
		"role", node.RoleName,
		"level", node.HierarchyLevel,
	)
	return nil
}

func (s *Service) emit(ctx context.Context, node *models.TenantNode) error {
	if s.auditPublisher == nil {
		return nil
	}
	actor := requestcontext.ActorID(ctx)
	actorID := "system"
	if !actor.IsNil() {
		actorID = actor.String()
	}
	md := map[string]any{
		"roleName":       string(node.RoleName),
		"roleType":       string(node.RoleType),
		"hierarchyLevel": node.HierarchyLevel,
		"tenantId":       node.TenantID.String(),
	}
	if node.ParentID != nil {
		md["parentId"] = node.ParentID.String()
	}
	return s.auditPublisher.Emit(ctx, audit.Event{
		ActorID:    actorID,
		Action:     string(audit.EventNodeRegistered),
		EntityType: audit.EntityNode,
		EntityID:   node.ID.String(),
		Metadata:   md,
	})
}

// Get loads a node or returns CodeNodeNotFound.
func (s *Service) Get(ctx context.Context, nodeID id.NodeID) (*models.TenantNode, error) {
	node, err := s.store.FindByID(ctx, nodeID)
	if err != nil {
		return nil, wrapNodeErr(err)
	}
	return node, nil
}

// DescendantsOf returns every node strictly beneath nodeID. Nodes whose role
// is excluded are dropped together with their subtrees. Traversal deeper than
// the configured max depth, or one that revisits a node, fails with
// CodeHierarchyDepthExceeded.
func (s *Service) DescendantsOf(ctx context.Context, nodeID id.NodeID, exclude models.RoleExclusion) (models.NodeSet, error) {
	ctx, span := s.tracer.Start(ctx, "hierarchy.DescendantsOf",
		trace.WithAttributes(attribute.String("node_id", nodeID.String())))
	defer span.End()
	start := time.Now()

	if _, err := s.Get(ctx, nodeID); err != nil {
		return nil, err
	}

	sig := exclude.Signature()
	var generation int64
	if s.cache != nil {
		set, gen, ok := s.cache.Get(ctx, nodeID, sig)
		if ok {
			s.observeCache("hit")
			return set, nil
		}
		generation = gen
		s.observeCache("miss")
	}

	var (
		set models.NodeSet
		err error
	)
	if _, inTx := txcontext.From(ctx); inTx {
		// Results computed on another caller's transaction are not shared.
		set, err = s.walk(ctx, nodeID, exclude)
	} else {
		// The shared walk outlives any single caller; each caller stops
		// waiting when its own context ends.
		flightCtx := context.WithoutCancel(ctx)
		ch := s.flight.DoChan(nodeID.String()+"|"+sig, func() (any, error) {
			return s.walk(flightCtx, nodeID, exclude)
		})
		select {
		case <-ctx.Done():
			err = dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "descendant lookup cancelled")
		case res := <-ch:
			err = res.Err
			if err == nil {
				set = res.Val.(models.NodeSet)
			}
		}
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, nodeID, sig, generation, set)
	}
	if s.metrics != nil {
		s.metrics.ObserveDescendants(start, len(set))
	}
	return set, nil
}

// walk is an iterative breadth-first traversal, one store round trip per level.
func (s *Service) walk(ctx context.Context, rootID id.NodeID, exclude models.RoleExclusion) (models.NodeSet, error) {
	result := make(models.NodeSet)
	seen := models.NodeSet{rootID: {}}
	frontier := []id.NodeID{rootID}

	for level := 1; len(frontier) > 0; level++ {
		children, err := s.store.ChildrenOf(ctx, frontier)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load children")
		}

		next := make([]id.NodeID, 0, len(children))
		for _, child := range children {
			if seen.Contains(child.ID) {
				return nil, s.depthExceeded(ctx, rootID, level, "cycle detected")
			}
			seen[child.ID] = struct{}{}
			if exclude.Excludes(child) {
				continue
			}
			result[child.ID] = struct{}{}
			next = append(next, child.ID)
		}

		if len(next) > 0 && level > s.maxDepth {
			return nil, s.depthExceeded(ctx, rootID, level, "max depth exceeded")
		}
		frontier = next
	}
	return result, nil
}

func (s *Service) depthExceeded(ctx context.Context, rootID id.NodeID, level int, why string) error {
	if s.metrics != nil {
		s.metrics.IncDepthExceeded()
	}
	s.logger.ErrorContext(ctx, "hierarchy traversal aborted",
		"node_id", rootID,
		"level", level,
		"max_depth", s.maxDepth,
		"reason", why,
	)
	return dErrors.New(dErrors.CodeHierarchyDepthExceeded, "hierarchy traversal exceeded depth guard").
		WithReason("HIERARCHY_DEPTH_EXCEEDED")
}

// AncestorsOf returns the root-first ancestor path (a copy).
func (s *Service) AncestorsOf(ctx context.Context, nodeID id.NodeID) ([]id.NodeID, error) {
	node, err := s.Get(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	return node.Ancestors(), nil
}

// IsDescendantOf answers from the stored path without traversal.
func (s *Service) IsDescendantOf(ctx context.Context, candidate, ancestor id.NodeID) (bool, error) {
	node, err := s.Get(ctx, candidate)
	if err != nil {
		return false, err
	}
	if _, err := s.Get(ctx, ancestor); err != nil {
		return false, err
	}
	return node.HasAncestor(ancestor), nil
}

// ResolveActor classifies a node as RootUser, BusinessUser or Employee.
// An employee whose parent row is missing resolves with a nil Parent.
func (s *Service) ResolveActor(ctx context.Context, nodeID id.NodeID) (models.Actor, error) {
	node, err := s.Get(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, node)
}

// ResolveActorByLogin looks up an actor by login (case-insensitive).
func (s *Service) ResolveActorByLogin(ctx context.Context, login string) (models.Actor, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	if login == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "login is required")
	}
	node, err := s.store.FindByLogin(ctx, login)
	if err != nil {
		return nil, wrapNodeErr(err)
	}
	return s.resolve(ctx, node)
}

func (s *Service) resolve(ctx context.Context, node *models.TenantNode) (models.Actor, error) {
	if !node.IsEmployee() || node.ParentID == nil {
		return models.NewActor(node, nil), nil
	}
	parent, err := s.store.FindByID(ctx, *node.ParentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "employee parent missing", "node_id", node.ID)
			return models.NewActor(node, nil), nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee parent")
	}
	return models.NewActor(node, parent), nil
}

func (s *Service) observeCache(result string) {
	if s.metrics != nil {
		s.metrics.IncCacheLookup(result)
	}
}

func wrapNodeErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNodeNotFound, "node not found").WithReason("NODE_NOT_FOUND")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load node")
}

func toValidation(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		if de, ok := dErrors.As(err); ok {
			return dErrors.New(dErrors.CodeValidation, de.Message)
		}
	}
	return err
}
