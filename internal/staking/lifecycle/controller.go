package lifecycle

import (
	"context"
	"fmt"

	"github.com/stakelens/stakescan-backend/internal/staking/model"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Repository is the persistence surface the controller needs.
	Repository interface {
		MarkPhaseCompleted(ctx context.Context, phase uint32, height uint64, reason model.CompletionReason) error
		StakeTransactionsInHeightRange(ctx context.Context, start, end uint64) ([]model.StakeTransaction, error)
	}

	// Metrics records phase completions.
	Metrics interface {
		ObservePhaseCompleted(phase uint32, reason string)
	}
)

// Controller evaluates phase end conditions per processed height. Completion
// is terminal: it never retroactively invalidates recorded transactions, it
// only stops future attribution.
type Controller struct {
	repo           Repository
	policy         InactivityPolicy
	targetOverride uint64
	metrics        Metrics
	logger         *zap.Logger
}

// NewController builds a Controller. targetOverrideSat, when non-zero,
// replaces the phase's staking cap as the stake target.
func NewController(repo Repository, policy InactivityPolicy, targetOverrideSat uint64, metrics Metrics, logger *zap.Logger) *Controller {
	return &Controller{
		repo:           repo,
		policy:         policy,
		targetOverride: targetOverrideSat,
		metrics:        metrics,
		logger:         logger.Named("lifecycle"),
	}
}

// Evaluate checks the end conditions for the phase governing latestHeight, in
// order: target_reached, inactivity, block_height, timeout. On the first
// trigger it mutates state, persists the completion once and returns the
// reason. Evaluating an already-completed phase is a no-op.
func (c *Controller) Evaluate(ctx context.Context, params model.PhaseParameters, state *model.PhaseRuntimeState, latestHeight uint64) (model.CompletionReason, error) {
	if state.Completed() {
		return "", nil
	}

	if params.HasStakingCap() {
		target := params.StakingCapSat
		if c.targetOverride > 0 {
			target = c.targetOverride
		}

		if state.ActiveStakeSat >= target {
			return c.complete(ctx, state, latestHeight, model.ReasonTargetReached)
		}

		if c.policy.Applies(state.ActiveStakeSat, target) {
			idle, err := c.windowIdle(ctx, latestHeight)
			if err != nil {
				return "", err
			}
			if idle {
				return c.complete(ctx, state, latestHeight, model.ReasonInactivity)
			}
		}
	} else if params.HasCapHeight() && latestHeight >= params.CapHeight {
		return c.complete(ctx, state, latestHeight, model.ReasonBlockHeight)
	}

	if params.HasTimeout() && latestHeight >= params.TimeoutHeight {
		return c.complete(ctx, state, latestHeight, model.ReasonTimeout)
	}

	return "", nil
}

// windowIdle reports whether the most recent policy window holds no
// qualifying stake transaction.
func (c *Controller) windowIdle(ctx context.Context, latestHeight uint64) (bool, error) {
	start := uint64(1)
	if latestHeight >= c.policy.WindowBlocks {
		start = latestHeight - c.policy.WindowBlocks + 1
	}
	txs, err := c.repo.StakeTransactionsInHeightRange(ctx, start, latestHeight)
	if err != nil {
		return false, fmt.Errorf("query inactivity window [%d, %d]: %w", start, latestHeight, err)
	}
	for _, tx := range txs {
		if tx.IsValid && !tx.IsOverflow {
			return false, nil
		}
	}
	return true, nil
}

func (c *Controller) complete(ctx context.Context, state *model.PhaseRuntimeState, height uint64, reason model.CompletionReason) (model.CompletionReason, error) {
	if err := c.repo.MarkPhaseCompleted(ctx, state.Phase, height, reason); err != nil {
		return "", fmt.Errorf("mark phase %d completed: %w", state.Phase, err)
	}
	state.Status = model.PhaseCompleted
	state.CompletionReason = reason
	state.EndHeight = height

	if c.metrics != nil {
		c.metrics.ObservePhaseCompleted(state.Phase, string(reason))
	}
	c.logger.Info("phase completed",
		zap.Uint32("phase", state.Phase),
		zap.Uint64("height", height),
		zap.String("reason", string(reason)))
	return reason, nil
}
