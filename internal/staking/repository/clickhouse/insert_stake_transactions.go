package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/stakelens/stakescan-backend/internal/staking/model"
)

// InsertStakeTransactions bulk-persists stake transactions. Rows are
// append-only; the table deduplicates by (network, txid), which keeps
// re-scans of the same range idempotent.
func (r *Repository) InsertStakeTransactions(ctx context.Context, txs []model.StakeTransaction) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_stake_transactions", r.network, err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	const query = `
INSERT INTO stake_transactions (
	network,
	txid,
	block_height,
	timestamp,
	stake_amount_sat,
	staker_address,
	staker_public_key_hex,
	finality_provider_key_hex,
	staking_time_blocks,
	protocol_version,
	phase,
	is_valid,
	is_overflow,
	reasons
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare stake transactions batch: %w", err)
	}

	for _, tx := range txs {
		reasons := tx.Reasons
		if reasons == nil {
			reasons = []string{}
		}
		if err = batch.Append(
			string(r.network),
			tx.TxID,
			tx.BlockHeight,
			tx.Timestamp,
			tx.StakeAmountSat,
			tx.StakerAddress,
			tx.StakerPublicKeyHex,
			tx.FinalityProviderKeyHex,
			tx.StakingTimeBlocks,
			tx.ProtocolVersion,
			tx.Phase,
			tx.IsValid,
			tx.IsOverflow,
			reasons,
		); err != nil {
			return fmt.Errorf("append stake transaction %s: %w", tx.TxID, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert stake transactions: %w", err)
	}
	return nil
}
