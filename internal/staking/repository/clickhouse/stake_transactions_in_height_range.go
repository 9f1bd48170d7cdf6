package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/stakelens/stakescan-backend/internal/staking/model"
)

// StakeTransactionsInHeightRange returns persisted stake transactions whose
// block height lies in [start, end], deduplicated by txid. Used by the
// inactivity end-condition check.
func (r *Repository) StakeTransactionsInHeightRange(ctx context.Context, start, end uint64) ([]model.StakeTransaction, error) {
	started := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("stake_transactions_in_height_range", r.network, err, started)
	}()

	const query = `
SELECT
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
FROM stake_transactions FINAL
WHERE network = ? AND block_height BETWEEN ? AND ?
ORDER BY block_height`

	rows, err := r.conn.Query(ctx, query, string(r.network), start, end)
	if err != nil {
		return nil, fmt.Errorf("query stake transactions in [%d, %d]: %w", start, end, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var txs []model.StakeTransaction
	for rows.Next() {
		tx := model.StakeTransaction{Network: r.network}
		if err = rows.Scan(
			&tx.TxID,
			&tx.BlockHeight,
			&tx.Timestamp,
			&tx.StakeAmountSat,
			&tx.StakerAddress,
			&tx.StakerPublicKeyHex,
			&tx.FinalityProviderKeyHex,
			&tx.StakingTimeBlocks,
			&tx.ProtocolVersion,
			&tx.Phase,
			&tx.IsValid,
			&tx.IsOverflow,
			&tx.Reasons,
		); err != nil {
			return nil, fmt.Errorf("scan stake transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stake transactions: %w", err)
	}
	return txs, nil
}
