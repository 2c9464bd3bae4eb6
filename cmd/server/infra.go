package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"ledgerguard/internal/hierarchy/cache"
	hierarchyservice "ledgerguard/internal/hierarchy/service"
	hierarchystore "ledgerguard/internal/hierarchy/store"
	"ledgerguard/internal/pii/cipher"
	piiservice "ledgerguard/internal/pii/service"
	piistore "ledgerguard/internal/pii/store"
	"ledgerguard/internal/platform/config"
	"ledgerguard/internal/platform/postgres"
	"ledgerguard/internal/platform/redis"
	verificationservice "ledgerguard/internal/verification/service"
	verificationstore "ledgerguard/internal/verification/store"
	"ledgerguard/pkg/platform/audit"
	auditmemory "ledgerguard/pkg/platform/audit/store/memory"
	auditpostgres "ledgerguard/pkg/platform/audit/store/postgres"
	"ledgerguard/pkg/platform/circuit"
	txcontext "ledgerguard/pkg/platform/tx"
)

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// hierarchyStore covers both the tree service and the owner flag writes.
type hierarchyStore interface {
	hierarchyservice.Store
	verificationservice.OwnerStore
}

// infra is the backend selected from config: Postgres when a DSN is set,
// in-memory otherwise.
type infra struct {
	db        *sql.DB
	tx        txRunner
	hierarchy hierarchyStore
	pii       piiservice.Store
	records   verificationservice.Store
	audit     audit.Store
	outbox    *auditpostgres.Store
}

func openInfra(ctx context.Context, cfg config.Config, logger *slog.Logger) (*infra, error) {
	if cfg.Postgres.DSN == "" {
		logger.WarnContext(ctx, "DATABASE_URL not set, using in-memory stores")
		return &infra{
			tx:        txcontext.NewMemoryRunner(),
			hierarchy: hierarchystore.NewInMemory(),
			pii:       piistore.NewInMemory(),
			records:   verificationstore.NewInMemory(),
			audit:     auditmemory.NewInMemoryStore(),
		}, nil
	}

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	outbox := auditpostgres.New(db)
	logger.InfoContext(ctx, "postgres connected", "max_open_conns", cfg.Postgres.MaxOpenConns)
	return &infra{
		db:        db,
		tx:        txcontext.NewRunner(db, cfg.Postgres.TxTimeout),
		hierarchy: hierarchystore.NewPostgres(db),
		pii:       piistore.NewPostgres(db),
		records:   verificationstore.NewPostgres(db),
		audit:     outbox,
		outbox:    outbox,
	}, nil
}

func (i *infra) Close() {
	if i.db != nil {
		_ = i.db.Close()
	}
}

// descendantCache returns nil when Redis is not configured; the hierarchy
// service then walks the store on every call.
func descendantCache(ctx context.Context, cfg config.Config, logger *slog.Logger) (*cache.RedisCache, func(), error) {
	client, err := redis.Open(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return nil, func() {}, nil
	}
	c := cache.New(client, cfg.Redis.CacheTTL,
		cache.WithLogger(logger),
		cache.WithBreaker(circuit.New("descendant-cache")),
	)
	logger.InfoContext(ctx, "descendant cache enabled", "ttl", cfg.Redis.CacheTTL)
	return c, func() { _ = client.Close() }, nil
}

// newCipher refuses the seeded development key in production.
func newCipher(cfg config.PIIConfig, production bool) (*cipher.Cipher, error) {
	if cfg.EncryptionKey != "" {
		return cipher.NewFromBase64(cfg.EncryptionKey)
	}
	if production {
		return nil, errors.New("PII_ENCRYPTION_KEY is required in production")
	}
	return cipher.NewFromSeed(cfg.DevSeed)
}
