// Package cache stores computed descendant sets in Redis. Nodes are immutable
// and never re-parented, so a stale entry can only omit a newly registered
// node; registration invalidates every ancestor's entry and bumps its
// generation so a walk that started earlier cannot write its result back.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"ledgerguard/internal/hierarchy/models"
	id "ledgerguard/pkg/domain"
	"ledgerguard/pkg/platform/circuit"
)

const (
	keyPrefix = "ledgerguard:descendants:"
	genPrefix = "ledgerguard:descendants-gen:"
)

// setIfCurrent writes the entry only while the node's generation equals the
// one observed before the walk. A missing counter reads as 0.
var setIfCurrent = redis.NewScript(`
local cur = redis.call('GET', KEYS[1]) or '0'
if cur ~= ARGV[1] then
	return 0
end
redis.call('HSET', KEYS[2], ARGV[2], ARGV[3])
redis.call('PEXPIRE', KEYS[2], ARGV[4])
return 1
`)

// RedisCache keeps one hash per node keyed by exclusion signature. Errors are
// swallowed (treated as a miss) and feed a circuit breaker that bypasses Redis
// while it is unhealthy.
type RedisCache struct {
	client  redis.UniversalClient
	ttl     time.Duration
	breaker *circuit.Breaker
	logger  *slog.Logger
}

type Option func(*RedisCache)

func WithLogger(logger *slog.Logger) Option {
	return func(c *RedisCache) { c.logger = logger }
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *RedisCache) { c.breaker = b }
}

func New(client redis.UniversalClient, ttl time.Duration, opts ...Option) *RedisCache {
	c := &RedisCache{
		client:  client,
		ttl:     ttl,
		breaker: circuit.New("descendant-cache", circuit.WithFailureThreshold(5), circuit.WithCooldown(30*time.Second)),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func key(nodeID id.NodeID) string {
	return keyPrefix + nodeID.String()
}

func genKey(nodeID id.NodeID) string {
	return genPrefix + nodeID.String()
}

// Get returns the cached set, the node's current generation and whether the
// set was present. The generation is -1 when Redis could not be read, which
// no later Set will match.
func (c *RedisCache) Get(ctx context.Context, nodeID id.NodeID, signature string) (models.NodeSet, int64, bool) {
	if !c.breaker.Allow() {
		return nil, -1, false
	}
	var (
		genCmd *redis.StringCmd
		setCmd *redis.StringCmd
	)
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		genCmd = pipe.Get(ctx, genKey(nodeID))
		setCmd = pipe.HGet(ctx, key(nodeID), signature)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		c.recordFailure(ctx, err)
		return nil, -1, false
	}
	c.recordSuccess(ctx)

	generation, err := genCmd.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, -1, false
	}
	raw, err := setCmd.Bytes()
	if err != nil {
		return nil, generation, false
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		c.logger.WarnContext(ctx, "discarding undecodable descendant cache entry", "node_id", nodeID, "error", err)
		return nil, generation, false
	}
	set := make(models.NodeSet, len(ids))
	for _, s := range ids {
		nid, err := id.ParseNodeID(s)
		if err != nil {
			return nil, generation, false
		}
		set[nid] = struct{}{}
	}
	return set, generation, true
}

// Set stores set unless the node was invalidated after generation was read.
func (c *RedisCache) Set(ctx context.Context, nodeID id.NodeID, signature string, generation int64, set models.NodeSet) {
	if generation < 0 || !c.breaker.Allow() {
		return
	}
	ids := make([]string, 0, len(set))
	for nid := range set {
		ids = append(ids, nid.String())
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	stored, err := setIfCurrent.Run(ctx, c.client,
		[]string{genKey(nodeID), key(nodeID)},
		generation, signature, raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		c.recordFailure(ctx, err)
		return
	}
	c.recordSuccess(ctx)
	if stored == 0 {
		c.logger.DebugContext(ctx, "skipped descendant cache write for invalidated node", "node_id", nodeID)
	}
}

// Invalidate drops every cached set rooted at the given nodes and advances
// their generations. Generation counters never expire.
func (c *RedisCache) Invalidate(ctx context.Context, nodeIDs []id.NodeID) {
	if len(nodeIDs) == 0 {
		return
	}
	keys := make([]string, len(nodeIDs))
	for i, nid := range nodeIDs {
		keys[i] = key(nid)
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, nid := range nodeIDs {
			pipe.Incr(ctx, genKey(nid))
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		// Entries expire after ttl; a missed invalidation only hides the new node.
		c.logger.WarnContext(ctx, "descendant cache invalidation failed", "nodes", len(keys), "error", err)
		c.recordFailure(ctx, err)
	}
}

func (c *RedisCache) recordFailure(ctx context.Context, err error) {
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "descendant cache circuit opened", "error", err)
	}
}

func (c *RedisCache) recordSuccess(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "descendant cache circuit closed")
	}
}
