package scanner

import (
	"context"
	"fmt"

	"github.com/stakelens/stakescan-backend/internal/staking/model"
)

// phaseTracker mirrors phase runtime states in memory so that overflow
// accounting and cap-exhaustion checks observe stake admitted earlier in the
// same scan, before it is persisted. It implements params.StateReader.
// Invalidate drops the mirror whenever persistence diverges from it.
type phaseTracker struct {
	repo   Repository
	states map[uint32]*model.PhaseRuntimeState
	loaded bool
}

func newPhaseTracker(repo Repository) *phaseTracker {
	return &phaseTracker{
		repo:   repo,
		states: make(map[uint32]*model.PhaseRuntimeState),
	}
}

// preload pulls existing runtime states for all known phases. Called at scan
// start and after invalidation.
func (t *phaseTracker) preload(ctx context.Context, phases []model.PhaseParameters) error {
	if t.loaded {
		return nil
	}
	t.states = make(map[uint32]*model.PhaseRuntimeState, len(phases))
	for _, p := range phases {
		state, err := t.repo.PhaseState(ctx, p.Phase)
		if err != nil {
			return fmt.Errorf("load phase %d state: %w", p.Phase, err)
		}
		if state != nil {
			t.states[p.Phase] = state
		}
	}
	t.loaded = true
	return nil
}

// ensure returns the runtime state for a phase, initializing it at height on
// first touch.
func (t *phaseTracker) ensure(ctx context.Context, phase uint32, height uint64) (*model.PhaseRuntimeState, error) {
	if state, ok := t.states[phase]; ok {
		return state, nil
	}
	state, err := t.repo.InitPhaseState(ctx, phase, height)
	if err != nil {
		return nil, fmt.Errorf("init phase %d state at height %d: %w", phase, height, err)
	}
	t.states[phase] = state
	return state, nil
}

// reinit discards any mirrored state for a phase and initializes it fresh at
// height. Used by single-phase reindex, which rebuilds the phase's aggregates
// from scratch.
func (t *phaseTracker) reinit(ctx context.Context, phase uint32, height uint64) (*model.PhaseRuntimeState, error) {
	state, err := t.repo.InitPhaseState(ctx, phase, height)
	if err != nil {
		return nil, fmt.Errorf("reinit phase %d state at height %d: %w", phase, height, err)
	}
	t.states[phase] = state
	t.loaded = true
	return state, nil
}

// admit applies a validated transaction to the in-memory aggregates.
func (t *phaseTracker) admit(state *model.PhaseRuntimeState, tx model.StakeTransaction) {
	if !tx.IsValid {
		return
	}
	if tx.IsOverflow {
		state.OverflowStakeSat += tx.StakeAmountSat
		state.OverflowTxCount++
		return
	}
	state.ActiveStakeSat += tx.StakeAmountSat
	state.ActiveTxCount++
}

// invalidate drops the mirror; the next preload reloads from persistence.
// Mirrored aggregates already include stake admitted for the abandoned batch,
// so serving them further would count stake that was never persisted.
func (t *phaseTracker) invalidate() {
	t.loaded = false
}

// ActiveStakeSat implements params.StateReader for cap-exhaustion checks.
func (t *phaseTracker) ActiveStakeSat(phase uint32) uint64 {
	if state, ok := t.states[phase]; ok {
		return state.ActiveStakeSat
	}
	return 0
}

// Completed implements params.StateReader so completed phases stop resolving.
func (t *phaseTracker) Completed(phase uint32) bool {
	if state, ok := t.states[phase]; ok {
		return state.Completed()
	}
	return false
}

func (t *phaseTracker) state(phase uint32) *model.PhaseRuntimeState {
	return t.states[phase]
}
