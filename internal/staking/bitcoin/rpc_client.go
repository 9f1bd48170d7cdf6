package bitcoin

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"go.uber.org/ratelimit"
)

// rpcClient wraps btc rpcclient with metrics instrumentation, a rate limiter
// as backpressure against the upstream node and context deadline enforcement
// on every call.
type rpcClient struct {
	client     *rpcclient.Client
	rpcMetrics RPCMetrics
	limiter    ratelimit.Limiter
}

const defaultRPCRequestsPerSecond = 32

// NewRPCClient constructs an instrumented, rate-limited RPC client. rps
// bounds requests per second across all callers of this client.
func NewRPCClient(client *rpcclient.Client, rpcMetrics RPCMetrics, rps int) RPCClient {
	if rps <= 0 {
		rps = defaultRPCRequestsPerSecond
	}
	return &rpcClient{
		client:     client,
		rpcMetrics: rpcMetrics,
		limiter:    ratelimit.New(rps),
	}
}

// await unblocks the caller as soon as ctx ends, even while fn is still stuck
// in a node round trip. The abandoned call finishes in the background under
// the HTTP client's own timeout and its late result is discarded.
func await[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := fn()
		done <- outcome{value: value, err: err}
	}()
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case out := <-done:
		return out.value, out.err
	}
}

// GetBlockCount returns the latest block count.
func (r *rpcClient) GetBlockCount(ctx context.Context) (count int64, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_count", err, started)
	}()
	return await(ctx, r.client.GetBlockCount)
}

// GetBlockHash returns the block hash for a height.
func (r *rpcClient) GetBlockHash(ctx context.Context, blockHeight int64) (hash *chainhash.Hash, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_hash", err, started)
	}()
	return await(ctx, func() (*chainhash.Hash, error) {
		return r.client.GetBlockHash(blockHeight)
	})
}

// GetBlockVerboseTx returns a verbose block with transactions.
func (r *rpcClient) GetBlockVerboseTx(ctx context.Context, blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseTxResult, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_verbose_tx", err, started)
	}()
	return await(ctx, func() (*btcjson.GetBlockVerboseTxResult, error) {
		return r.client.GetBlockVerboseTx(blockHash)
	})
}

// GetRawTransactionVerbose returns a decoded transaction by id.
func (r *rpcClient) GetRawTransactionVerbose(ctx context.Context, txHash *chainhash.Hash) (res *btcjson.TxRawResult, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_raw_transaction_verbose", err, started)
	}()
	return await(ctx, func() (*btcjson.TxRawResult, error) {
		return r.client.GetRawTransactionVerbose(txHash)
	})
}
