package bitcoin

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPCClient is the node RPC surface the block source needs. Every call
	// honors the context deadline; a hung node never stalls the caller past
	// it.
	RPCClient interface {
		GetBlockCount(ctx context.Context) (int64, error)
		GetBlockHash(ctx context.Context, blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(ctx context.Context, blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawTransactionVerbose(ctx context.Context, txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
	}

	// ScriptDecoder extracts an address from a ScriptPubKey result.
	ScriptDecoder interface {
		decodeAddress(vout btcjson.Vout) (string, error)
	}

	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
