// Package chain defines the upstream block source boundary for staking
// indexation.
package chain

import (
	"context"
	"time"
)

// Block is one upstream block with its ordered transactions.
type Block struct {
	Height    uint64
	Hash      string
	Timestamp time.Time
	Txs       []Transaction
}

// Transaction carries the inputs and outputs the validator needs: resolved
// previous-output addresses on inputs where derivable and script descriptors
// on outputs.
type Transaction struct {
	TxID    string
	Inputs  []TxInput
	Outputs []TxOutput
}

// TxInput references a previous output. Address is empty when the previous
// output could not be resolved (coinbase, pruned, non-standard script).
type TxInput struct {
	PrevTxID string
	PrevVout uint32
	Address  string
}

// TxOutput is a transaction output with its value already converted to
// integer satoshi.
type TxOutput struct {
	Index      uint32
	ValueSat   uint64
	ScriptType string
	ScriptHex  string
	Address    string
}

// Source provides blocks by height for the scan engine.
type Source interface {
	LatestHeight(ctx context.Context) (uint64, error)
	FetchBlock(ctx context.Context, height uint64) (*Block, error)
}

// InputAddresses returns the set of resolved input addresses, used to exclude
// self-change outputs during stake output location.
func (t Transaction) InputAddresses() map[string]struct{} {
	set := make(map[string]struct{}, len(t.Inputs))
	for _, in := range t.Inputs {
		if in.Address != "" {
			set[in.Address] = struct{}{}
		}
	}
	return set
}
