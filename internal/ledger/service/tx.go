package service

import (
	"context"
	"sync"
	"time"

	dErrors "ledger/pkg/domain-errors"
)

// StoreTx provides the atomic boundary for one recorder invocation: the
// balance check, the insert and the contract activation commit or roll back
// together. The postgres runner wraps a database transaction; the in-memory
// runner holds a per-contract lock.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// defaultTxTimeout caps a recorder invocation when the caller supplies no
// deadline, so an abandoned request cannot hold a contract lock forever.
const defaultTxTimeout = 5 * time.Second

// numTxShards spreads contract locks across independent mutexes so unrelated
// contracts never contend.
const numTxShards = 64

type lockContractKey struct{}

// withLockContract tags the context with the contract the unit will mutate;
// the in-memory runner uses it to pick a lock shard.
func withLockContract(ctx context.Context, contractID int64) context.Context {
	return context.WithValue(ctx, lockContractKey{}, contractID)
}

func lockContract(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(lockContractKey{}).(int64)
	return id, ok
}

// shardedMemoryTx serializes recorder units per contract with sharded
// mutexes. Only correct when paired with the in-memory stores: it provides
// mutual exclusion, not rollback, and the in-memory stores only mutate after
// all checks have passed.
type shardedMemoryTx struct {
	shards  [numTxShards]sync.Mutex
	timeout time.Duration
}

// NewInMemoryTx builds the in-memory transaction runner.
func NewInMemoryTx() StoreTx {
	return &shardedMemoryTx{}
}

func (t *shardedMemoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	shard := t.selectShard(ctx)
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	// Re-check after acquiring the lock; a queued caller may have waited
	// past its deadline.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx)
}

func (t *shardedMemoryTx) selectShard(ctx context.Context) int {
	if contractID, ok := lockContract(ctx); ok {
		return int(uint64(contractID) % numTxShards)
	}
	return 0
}
