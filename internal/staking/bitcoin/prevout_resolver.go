package bitcoin

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// prevOutputResolver resolves previous-output addresses for transaction
// inputs, caching fetched transactions for the lifetime of a single block
// fetch to avoid repeated node lookups.
type prevOutputResolver struct {
	rpc     RPCClient
	decoder ScriptDecoder
	cache   map[string]*btcjson.TxRawResult
}

func newPrevOutputResolver(rpc RPCClient, decoder ScriptDecoder) *prevOutputResolver {
	return &prevOutputResolver{
		rpc:     rpc,
		decoder: decoder,
		cache:   make(map[string]*btcjson.TxRawResult),
	}
}

// Resolve returns the address of the previous output referenced by txid/vout,
// or empty when it cannot be derived.
func (r *prevOutputResolver) Resolve(ctx context.Context, prevTxID string, prevVout uint32) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prev, ok := r.cache[prevTxID]
	if !ok {
		hash, err := chainhash.NewHashFromStr(prevTxID)
		if err != nil {
			return "", fmt.Errorf("parse prev txid %s: %w", prevTxID, err)
		}
		prev, err = r.rpc.GetRawTransactionVerbose(ctx, hash)
		if err != nil {
			return "", fmt.Errorf("get prev tx %s: %w", prevTxID, err)
		}
		r.cache[prevTxID] = prev
	}

	if int(prevVout) >= len(prev.Vout) {
		return "", fmt.Errorf("prev tx %s has no output %d", prevTxID, prevVout)
	}

	address, err := r.decoder.decodeAddress(prev.Vout[prevVout])
	if err != nil {
		return "", fmt.Errorf("decode prev output %s:%d address: %w", prevTxID, prevVout, err)
	}
	return address, nil
}
