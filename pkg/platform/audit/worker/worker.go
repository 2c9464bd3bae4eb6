// Package worker relays committed outbox rows to the audit topic.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ledgerguard/pkg/platform/audit/store/postgres"
)

// Outbox is the slice of the Postgres audit store the relay needs.
type Outbox interface {
	ClaimUnpublished(ctx context.Context, limit int) ([]postgres.OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// Producer publishes one message synchronously.
type Producer interface {
	Produce(ctx context.Context, key string, value []byte) error
}

// TxRunner scopes claim, publish and mark to one transaction so a crash
// before commit leaves rows unpublished for the next poll.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Worker struct {
	outbox    Outbox
	producer  Producer
	tx        TxRunner
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

type Option func(*Worker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) { w.logger = logger }
}

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func NewWorker(outbox Outbox, producer Producer, tx TxRunner, opts ...Option) *Worker {
	w := &Worker{
		outbox:    outbox,
		producer:  producer,
		tx:        tx,
		logger:    slog.Default(),
		interval:  time.Second,
		batchSize: 100,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run polls until ctx is cancelled. Relay errors are logged and retried on
// the next tick; delivery is at-least-once keyed by entity id.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.RelayOnce(ctx); err != nil {
				w.logger.WarnContext(ctx, "outbox relay failed", "error", err)
			}
		}
	}
}

// RelayOnce publishes one batch and returns how many rows were marked.
func (w *Worker) RelayOnce(ctx context.Context) (int, error) {
	published := 0
	err := w.tx.RunInTx(ctx, func(txCtx context.Context) error {
		entries, err := w.outbox.ClaimUnpublished(txCtx, w.batchSize)
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, 0, len(entries))
		for _, e := range entries {
			if err := w.producer.Produce(txCtx, e.AggregateID, e.Payload); err != nil {
				break
			}
			ids = append(ids, e.ID)
		}
		if err := w.outbox.MarkPublished(txCtx, ids, time.Now()); err != nil {
			return err
		}
		published = len(ids)
		return nil
	})
	return published, err
}
