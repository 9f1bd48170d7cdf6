package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/stakelens/stakescan-backend/internal/staking/model"
)

// PhaseState returns the latest runtime state snapshot for a phase, or nil
// when the phase has never started.
func (r *Repository) PhaseState(ctx context.Context, phase uint32) (*model.PhaseRuntimeState, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("phase_state", r.network, err, start)
	}()

	const query = `
SELECT
	phase,
	start_height,
	current_height,
	end_height,
	active_stake_sat,
	active_tx_count,
	unique_stakers,
	overflow_stake_sat,
	overflow_tx_count,
	status,
	completion_reason
FROM phase_states
WHERE network = ? AND phase = ?
ORDER BY updated_at DESC
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, string(r.network), phase)
	if err != nil {
		return nil, fmt.Errorf("query phase %d state: %w", phase, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return nil, nil
	}

	state := model.PhaseRuntimeState{Network: r.network}
	var status, reason string
	if err = rows.Scan(
		&state.Phase,
		&state.StartHeight,
		&state.CurrentHeight,
		&state.EndHeight,
		&state.ActiveStakeSat,
		&state.ActiveTxCount,
		&state.UniqueStakers,
		&state.OverflowStakeSat,
		&state.OverflowTxCount,
		&status,
		&reason,
	); err != nil {
		return nil, fmt.Errorf("scan phase %d state: %w", phase, err)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate phase %d state: %w", phase, err)
	}
	state.Status = model.PhaseStatus(status)
	state.CompletionReason = model.CompletionReason(reason)
	return &state, nil
}

// InitPhaseState creates the runtime state for a phase that starts at
// startHeight and returns it.
func (r *Repository) InitPhaseState(ctx context.Context, phase uint32, startHeight uint64) (*model.PhaseRuntimeState, error) {
	state := &model.PhaseRuntimeState{
		Network:       r.network,
		Phase:         phase,
		StartHeight:   startHeight,
		CurrentHeight: startHeight,
		Status:        model.PhaseActive,
	}
	if err := r.insertPhaseState(ctx, "init_phase_state", state); err != nil {
		return nil, err
	}
	return state, nil
}

// ApplyPhaseIncrement advances a phase's aggregates for one processed height.
// The snapshot is built from the previous state plus the height's
// transactions and written in a single insert; atomicity relies on the
// single-writer contract of this package.
func (r *Repository) ApplyPhaseIncrement(ctx context.Context, phase uint32, height uint64, txs []model.StakeTransaction) error {
	state, err := r.PhaseState(ctx, phase)
	if err != nil {
		return err
	}
	if state == nil {
		return fmt.Errorf("phase %d state not initialized", phase)
	}

	state.CurrentHeight = height
	for _, tx := range txs {
		if !tx.IsValid {
			continue
		}
		if tx.IsOverflow {
			state.OverflowStakeSat += tx.StakeAmountSat
			state.OverflowTxCount++
			continue
		}
		state.ActiveStakeSat += tx.StakeAmountSat
		state.ActiveTxCount++
	}

	uniqueStakers, err := r.uniqueStakers(ctx, phase)
	if err != nil {
		return err
	}
	state.UniqueStakers = uniqueStakers

	return r.insertPhaseState(ctx, "apply_phase_increment", state)
}

// MarkPhaseCompleted transitions a phase to completed with the given reason
// and end height. The transition is recorded once; callers guarantee they do
// not re-complete an already completed phase.
func (r *Repository) MarkPhaseCompleted(ctx context.Context, phase uint32, height uint64, reason model.CompletionReason) error {
	state, err := r.PhaseState(ctx, phase)
	if err != nil {
		return err
	}
	if state == nil {
		return fmt.Errorf("phase %d state not initialized", phase)
	}
	if state.Completed() {
		return nil
	}

	state.Status = model.PhaseCompleted
	state.CompletionReason = reason
	state.EndHeight = height
	return r.insertPhaseState(ctx, "mark_phase_completed", state)
}

func (r *Repository) insertPhaseState(ctx context.Context, operation string, state *model.PhaseRuntimeState) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe(operation, r.network, err, start)
	}()

	const query = `
INSERT INTO phase_states (
	network,
	phase,
	start_height,
	current_height,
	end_height,
	active_stake_sat,
	active_tx_count,
	unique_stakers,
	overflow_stake_sat,
	overflow_tx_count,
	status,
	completion_reason,
	updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if err = r.conn.Exec(ctx, query,
		string(r.network),
		state.Phase,
		state.StartHeight,
		state.CurrentHeight,
		state.EndHeight,
		state.ActiveStakeSat,
		state.ActiveTxCount,
		state.UniqueStakers,
		state.OverflowStakeSat,
		state.OverflowTxCount,
		string(state.Status),
		string(state.CompletionReason),
		time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("insert phase %d state: %w", state.Phase, err)
	}
	return nil
}

// uniqueStakers counts distinct staker addresses over the phase's persisted
// active transactions.
func (r *Repository) uniqueStakers(ctx context.Context, phase uint32) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("unique_stakers", r.network, err, start)
	}()

	const query = `
SELECT uniqExact(staker_address) AS stakers
FROM stake_transactions
WHERE network = ? AND phase = ? AND is_valid = 1 AND is_overflow = 0 AND staker_address != ''`

	rows, err := r.conn.Query(ctx, query, string(r.network), phase)
	if err != nil {
		return 0, fmt.Errorf("query unique stakers for phase %d: %w", phase, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var stakers uint64
	if !rows.Next() {
		return 0, fmt.Errorf("unique stakers not found")
	}
	if err = rows.Scan(&stakers); err != nil {
		return 0, fmt.Errorf("scan unique stakers: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate unique stakers: %w", err)
	}
	return stakers, nil
}
