package tx

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	dErrors "ledgerguard/pkg/domain-errors"
)

// numShards spreads in-memory units of work across independent locks keyed by
// the aggregate the caller names with WithShardKey.
const numShards = 128

type memoryTxKey struct{}

type shardKey struct{}

// memoryTx records compensations registered by in-memory stores so a failed
// unit of work leaves no partial writes.
type memoryTx struct {
	mu    sync.Mutex
	undos []func()
}

// OnRollback registers undo to run if the surrounding in-memory unit of work
// fails. It is a no-op outside MemoryRunner.RunInTx.
func OnRollback(ctx context.Context, undo func()) {
	mtx, ok := ctx.Value(memoryTxKey{}).(*memoryTx)
	if !ok {
		return
	}
	mtx.mu.Lock()
	mtx.undos = append(mtx.undos, undo)
	mtx.mu.Unlock()
}

// WithShardKey names the aggregate a unit of work serialises on.
func WithShardKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, shardKey{}, key)
}

// MemoryRunner is the in-memory counterpart of Runner: units of work on the
// same shard key are serialised and failed units are compensated in reverse
// order.
type MemoryRunner struct {
	shards  [numShards]sync.Mutex
	timeout time.Duration
}

func NewMemoryRunner() *MemoryRunner {
	return &MemoryRunner{timeout: DefaultTimeout}
}

func (r *MemoryRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, ok := ctx.Value(memoryTxKey{}).(*memoryTx); ok {
		return fn(ctx)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	shard := r.selectShard(ctx)
	r.shards[shard].Lock()
	defer r.shards[shard].Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	mtx := &memoryTx{}
	if err := fn(context.WithValue(ctx, memoryTxKey{}, mtx)); err != nil {
		mtx.mu.Lock()
		undos := mtx.undos
		mtx.mu.Unlock()
		for i := len(undos) - 1; i >= 0; i-- {
			undos[i]()
		}
		return err
	}
	return nil
}

func (r *MemoryRunner) selectShard(ctx context.Context) int {
	key, _ := ctx.Value(shardKey{}).(string)
	if key == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % numShards)
}
