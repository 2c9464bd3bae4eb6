package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"ledgerguard/internal/hierarchy/models"
	id "ledgerguard/pkg/domain"
	"ledgerguard/pkg/platform/sentinel"
	txcontext "ledgerguard/pkg/platform/tx"
)

// PostgresStore persists the tenant tree in tenant_nodes. hierarchy_path is a
// uuid[] column exchanged as text through pq.Array.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const nodeColumns = `id, tenant_id, parent_id, login, role_name, role_type,
	hierarchy_level, hierarchy_path::text, is_kyc_verified, created_at`

func (s *PostgresStore) Create(ctx context.Context, node *models.TenantNode) error {
	var parent any
	if node.ParentID != nil {
		parent = uuid.UUID(*node.ParentID)
	}
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO tenant_nodes (id, tenant_id, parent_id, login, role_name, role_type,
			hierarchy_level, hierarchy_path, is_kyc_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text::uuid[], $9, $10)
	`,
		uuid.UUID(node.ID),
		uuid.UUID(node.TenantID),
		parent,
		node.Login,
		string(node.RoleName),
		string(node.RoleType),
		node.HierarchyLevel,
		pq.Array(pathStrings(node.HierarchyPath)),
		node.IsKYCVerified,
		node.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return sentinel.ErrConflict
			case "23503":
				return sentinel.ErrNotFound
			}
		}
		return fmt.Errorf("insert tenant node: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, nodeID id.NodeID) (*models.TenantNode, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+nodeColumns+` FROM tenant_nodes WHERE id = $1`, uuid.UUID(nodeID))
	return scanNode(row)
}

func (s *PostgresStore) FindByLogin(ctx context.Context, login string) (*models.TenantNode, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+nodeColumns+` FROM tenant_nodes WHERE login = $1`, login)
	return scanNode(row)
}

// ChildrenOf loads one BFS frontier in a single query.
func (s *PostgresStore) ChildrenOf(ctx context.Context, parents []id.NodeID) ([]*models.TenantNode, error) {
	if len(parents) == 0 {
		return nil, nil
	}
	rows, err := s.execer(ctx).QueryContext(ctx,
		`SELECT `+nodeColumns+` FROM tenant_nodes WHERE parent_id = ANY($1::text::uuid[])`,
		pq.Array(pathStrings(parents)))
	if err != nil {
		return nil, fmt.Errorf("query children: %w", err)
	}
	defer rows.Close()

	var out []*models.TenantNode
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate children: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) SetKYCVerified(ctx context.Context, nodeID id.NodeID, verified bool) error {
	res, err := s.execer(ctx).ExecContext(ctx,
		`UPDATE tenant_nodes SET is_kyc_verified = $2 WHERE id = $1`, uuid.UUID(nodeID), verified)
	if err != nil {
		return fmt.Errorf("update kyc flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update kyc flag: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNode(row rowScanner) (*models.TenantNode, error) {
	var (
		n        models.TenantNode
		nodeID   uuid.UUID
		tenantID uuid.UUID
		parentID uuid.NullUUID
		role     string
		roleType string
		path     []string
	)
	err := row.Scan(&nodeID, &tenantID, &parentID, &n.Login, &role, &roleType,
		&n.HierarchyLevel, pq.Array(&path), &n.IsKYCVerified, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan tenant node: %w", err)
	}

	n.ID = id.NodeID(nodeID)
	n.TenantID = id.TenantID(tenantID)
	if parentID.Valid {
		p := id.NodeID(parentID.UUID)
		n.ParentID = &p
	}
	n.RoleName = models.RoleName(role)
	n.RoleType = models.RoleType(roleType)
	n.HierarchyPath = make([]id.NodeID, 0, len(path))
	for _, raw := range path {
		u, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse hierarchy path: %w", err)
		}
		n.HierarchyPath = append(n.HierarchyPath, id.NodeID(u))
	}
	return &n, nil
}

func pathStrings(ids []id.NodeID) []string {
	out := make([]string, len(ids))
	for i, v := range ids {
		out[i] = v.String()
	}
	return out
}
