package bitcoin

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/stakelens/stakescan-backend/internal/staking/chain"
	"github.com/stakelens/stakescan-backend/internal/staking/marker"
	"github.com/stakelens/stakescan-backend/internal/staking/model"
	"github.com/stakelens/stakescan-backend/pkg/safe"
)

// Source implements chain.Source against a Bitcoin node. Input addresses are
// resolved from the node only for transactions that carry a marker candidate
// output; everything else never triggers a previous-transaction lookup.
type Source struct {
	rpc     RPCClient
	decoder ScriptDecoder
	network model.Network
}

// NewSource creates a block source for the given network.
func NewSource(rpc RPCClient, decoder ScriptDecoder, network model.Network) *Source {
	return &Source{
		rpc:     rpc,
		decoder: decoder,
		network: network,
	}
}

// LatestHeight returns the latest block height from the node.
func (s *Source) LatestHeight(ctx context.Context) (uint64, error) {
	count, err := s.rpc.GetBlockCount(ctx)
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// FetchBlock retrieves a block at the given height with outputs converted to
// satoshi and input addresses resolved for marker-candidate transactions.
func (s *Source) FetchBlock(ctx context.Context, height uint64) (*chain.Block, error) {
	if height > math.MaxInt64 {
		return nil, fmt.Errorf("block height %d exceeds rpc limit", height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := s.rpc.GetBlockHash(ctx, int64(height))
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	src, err := s.rpc.GetBlockVerboseTx(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}

	resolver := newPrevOutputResolver(s.rpc, s.decoder)

	block := &chain.Block{
		Height:    height,
		Hash:      src.Hash,
		Timestamp: time.Unix(src.Time, 0).UTC(),
		Txs:       make([]chain.Transaction, 0, len(src.Tx)),
	}

	for _, tx := range src.Tx {
		converted, err := s.convertTransaction(ctx, resolver, tx)
		if err != nil {
			return nil, fmt.Errorf("block %d tx %s: %w", height, tx.Txid, err)
		}
		block.Txs = append(block.Txs, converted)
	}
	return block, nil
}

func (s *Source) convertTransaction(ctx context.Context, resolver *prevOutputResolver, tx btcjson.TxRawResult) (chain.Transaction, error) {
	outputs := make([]chain.TxOutput, 0, len(tx.Vout))
	hasCandidate := false
	for idx, vout := range tx.Vout {
		if vout.Value < 0 {
			return chain.Transaction{}, fmt.Errorf("output %d negative value: %f", idx, vout.Value)
		}
		index, err := safe.Uint32(idx)
		if err != nil {
			return chain.Transaction{}, fmt.Errorf("output index overflow: %w", err)
		}
		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return chain.Transaction{}, fmt.Errorf("output %d value: %w", idx, err)
		}
		address, err := s.decoder.decodeAddress(vout)
		if err != nil {
			return chain.Transaction{}, fmt.Errorf("output %d address: %w", idx, err)
		}
		if marker.HasCandidate(vout.ScriptPubKey.Hex) {
			hasCandidate = true
		}
		outputs = append(outputs, chain.TxOutput{
			Index:      index,
			ValueSat:   value,
			ScriptType: vout.ScriptPubKey.Type,
			ScriptHex:  vout.ScriptPubKey.Hex,
			Address:    address,
		})
	}

	inputs := make([]chain.TxInput, 0, len(tx.Vin))
	for _, vin := range tx.Vin {
		if vin.IsCoinBase() {
			continue
		}
		input := chain.TxInput{
			PrevTxID: vin.Txid,
			PrevVout: vin.Vout,
		}
		// Previous transactions are fetched only when this transaction can be
		// a protocol stake; the resolver caches them for the whole block.
		if hasCandidate {
			address, err := resolver.Resolve(ctx, vin.Txid, vin.Vout)
			if err != nil {
				return chain.Transaction{}, fmt.Errorf("resolve input %s:%d: %w", vin.Txid, vin.Vout, err)
			}
			input.Address = address
		}
		inputs = append(inputs, input)
	}

	return chain.Transaction{
		TxID:    tx.Txid,
		Inputs:  inputs,
		Outputs: outputs,
	}, nil
}
