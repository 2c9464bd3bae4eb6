package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"ledgerguard/internal/pii/models"
	id "ledgerguard/pkg/domain"
	"ledgerguard/pkg/platform/sentinel"
	txcontext "ledgerguard/pkg/platform/tx"
)

// PostgresStore persists encrypted fields in pii_fields.
type PostgresStore struct {
	db *sql.DB
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const fieldColumns = `id, owner_id, record_id, pii_type, encrypted_value, scope, created_at, expires_at`

func (s *PostgresStore) Insert(ctx context.Context, f *models.Field) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO pii_fields (`+fieldColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		uuid.UUID(f.ID), uuid.UUID(f.OwnerID), uuid.UUID(f.RecordID),
		string(f.Type), f.EncryptedValue, string(f.Scope), f.CreatedAt, f.ExpiresAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert pii field: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteSlot(ctx context.Context, owner id.NodeID, typ models.PIIType, scope models.Scope) error {
	_, err := s.execer(ctx).ExecContext(ctx,
		`DELETE FROM pii_fields WHERE owner_id = $1 AND pii_type = $2 AND scope = $3`,
		uuid.UUID(owner), string(typ), string(scope))
	if err != nil {
		return fmt.Errorf("delete pii slot: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, fieldID id.FieldID) (*models.Field, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+fieldColumns+` FROM pii_fields WHERE id = $1`, uuid.UUID(fieldID))
	f, err := scanField(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return f, err
}

func (s *PostgresStore) ListByRecord(ctx context.Context, recordID id.RecordID) ([]*models.Field, error) {
	rows, err := s.execer(ctx).QueryContext(ctx,
		`SELECT `+fieldColumns+` FROM pii_fields WHERE record_id = $1 ORDER BY created_at`,
		uuid.UUID(recordID))
	if err != nil {
		return nil, fmt.Errorf("list pii fields: %w", err)
	}
	defer rows.Close()

	var out []*models.Field
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pii fields: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteByRecord(ctx context.Context, recordID id.RecordID) (int, error) {
	res, err := s.execer(ctx).ExecContext(ctx,
		`DELETE FROM pii_fields WHERE record_id = $1`, uuid.UUID(recordID))
	if err != nil {
		return 0, fmt.Errorf("delete pii fields: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *PostgresStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	res, err := s.execer(ctx).ExecContext(ctx,
		`DELETE FROM pii_fields WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("purge pii fields: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanField(row rowScanner) (*models.Field, error) {
	var (
		f                        models.Field
		fieldID, owner, recordID uuid.UUID
		typ, scope               string
	)
	if err := row.Scan(&fieldID, &owner, &recordID, &typ, &f.EncryptedValue, &scope, &f.CreatedAt, &f.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan pii field: %w", err)
	}
	f.ID = id.FieldID(fieldID)
	f.OwnerID = id.NodeID(owner)
	f.RecordID = id.RecordID(recordID)
	f.Type = models.PIIType(typ)
	f.Scope = models.Scope(scope)
	return &f, nil
}
