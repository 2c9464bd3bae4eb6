package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"ledgerguard/internal/verification/models"
	id "ledgerguard/pkg/domain"
	"ledgerguard/pkg/platform/sentinel"
	txcontext "ledgerguard/pkg/platform/tx"
)

// PostgresStore persists KYC and bank records in verification_records.
type PostgresStore struct {
	db *sql.DB
	tx *txcontext.Runner
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, tx: txcontext.NewRunner(db, txcontext.DefaultTimeout)}
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

const recordColumns = `id, kind, owner_id, status, rejection_reason, country, bank_name,
	holder_name, ifsc, account_type, is_primary, version, reviewed_by, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, r *models.Record) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO verification_records (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		uuid.UUID(r.ID), string(r.Kind), uuid.UUID(r.OwnerID), string(r.Status),
		nullString(r.RejectionReason), r.Country, r.BankName, r.HolderName, r.IFSC,
		string(r.AccountType), r.IsPrimary, r.Version, nullNode(r.ReviewedBy),
		r.CreatedAt, r.UpdatedAt,
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
		return fmt.Errorf("insert verification record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, recordID id.RecordID) (*models.Record, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM verification_records WHERE id = $1`, uuid.UUID(recordID))
	return scanRecord(row)
}

func (s *PostgresStore) FindKYCByOwner(ctx context.Context, owner id.NodeID) (*models.Record, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM verification_records WHERE owner_id = $1 AND kind = 'KYC'`,
		uuid.UUID(owner))
	return scanRecord(row)
}

func (s *PostgresStore) ListByOwner(ctx context.Context, owner id.NodeID, kind models.Kind) ([]*models.Record, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT `+recordColumns+` FROM verification_records
		WHERE owner_id = $1 AND kind = $2
		ORDER BY created_at, id
	`, uuid.UUID(owner), string(kind))
	if err != nil {
		return nil, fmt.Errorf("list verification records: %w", err)
	}
	defer rows.Close()

	var out []*models.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification records: %w", err)
	}
	return out, nil
}

// Execute locks the row with SELECT ... FOR UPDATE, runs validate and mutate
// on the loaded record and writes it back guarded by the loaded version.
// It joins the caller's transaction or opens one.
func (s *PostgresStore) Execute(ctx context.Context, recordID id.RecordID, validate func(*models.Record) error, mutate func(*models.Record)) (*models.Record, error) {
	var result *models.Record
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		row := s.execer(txCtx).QueryRowContext(txCtx,
			`SELECT `+recordColumns+` FROM verification_records WHERE id = $1 FOR UPDATE`,
			uuid.UUID(recordID))
		record, err := scanRecord(row)
		if err != nil {
			return err
		}
		if err := validate(record); err != nil {
			return err
		}
		mutate(record)

		loaded := record.Version
		res, err := s.execer(txCtx).ExecContext(txCtx, `
			UPDATE verification_records
			SET status = $3, rejection_reason = $4, country = $5, is_primary = $6,
				reviewed_by = $7, updated_at = $8, version = version + 1
			WHERE id = $1 AND version = $2
		`,
			uuid.UUID(record.ID), loaded, string(record.Status), nullString(record.RejectionReason),
			record.Country, record.IsPrimary, nullNode(record.ReviewedBy), record.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return sentinel.ErrConflict
			}
			return fmt.Errorf("update verification record: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update verification record: %w", err)
		}
		if n == 0 {
			return sentinel.ErrStale
		}
		record.Version = loaded + 1
		result = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PostgresStore) ClearPrimary(ctx context.Context, owner id.NodeID) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE verification_records
		SET is_primary = FALSE, version = version + 1
		WHERE owner_id = $1 AND kind = 'BANK' AND is_primary
	`, uuid.UUID(owner))
	if err != nil {
		return fmt.Errorf("clear primary bank: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, recordID id.RecordID) error {
	res, err := s.execer(ctx).ExecContext(ctx,
		`DELETE FROM verification_records WHERE id = $1`, uuid.UUID(recordID))
	if err != nil {
		return fmt.Errorf("delete verification record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete verification record: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.Record, error) {
	var (
		r           models.Record
		recordID    uuid.UUID
		owner       uuid.UUID
		kind        string
		status      string
		reason      sql.NullString
		accountType string
		reviewer    uuid.NullUUID
	)
	err := row.Scan(&recordID, &kind, &owner, &status, &reason, &r.Country, &r.BankName,
		&r.HolderName, &r.IFSC, &accountType, &r.IsPrimary, &r.Version, &reviewer,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan verification record: %w", err)
	}
	r.ID = id.RecordID(recordID)
	r.OwnerID = id.NodeID(owner)
	r.Kind = models.Kind(kind)
	r.Status = models.Status(status)
	r.AccountType = models.AccountType(accountType)
	if reason.Valid {
		v := reason.String
		r.RejectionReason = &v
	}
	if reviewer.Valid {
		n := id.NodeID(reviewer.UUID)
		r.ReviewedBy = &n
	}
	return &r, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullNode(n *id.NodeID) any {
	if n == nil {
		return nil
	}
	return uuid.UUID(*n)
}
