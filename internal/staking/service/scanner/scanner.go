// Package scanner orchestrates resumable, batched, concurrent scanning of the
// chain for staking transactions.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stakelens/stakescan-backend/internal/clock"
	"github.com/stakelens/stakescan-backend/internal/staking/chain"
	"github.com/stakelens/stakescan-backend/internal/staking/model"
	"github.com/stakelens/stakescan-backend/internal/staking/params"
	"github.com/stakelens/stakescan-backend/internal/staking/validator"
	"github.com/stakelens/stakescan-backend/pkg/workerpool"
	"go.uber.org/zap"
)

// Config tunes the scan engine. Zero values fall back to defaults.
type Config struct {
	BatchSize         uint64
	FetchWorkers      int
	FetchAttempts     int
	FetchTimeout      time.Duration
	FetchRetryDelay   time.Duration
	InterBatchDelay   time.Duration
	PollInterval      time.Duration
	ConfirmationDepth uint16
}

func (c Config) withDefaults() Config {
	if c.BatchSize == 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.FetchWorkers <= 0 {
		c.FetchWorkers = defaultFetchWorkers
	}
	if c.FetchAttempts <= 0 {
		c.FetchAttempts = defaultFetchAttempts
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = defaultFetchTimeout
	}
	if c.FetchRetryDelay <= 0 {
		c.FetchRetryDelay = defaultFetchRetryDelay
	}
	if c.InterBatchDelay <= 0 {
		c.InterBatchDelay = defaultInterBatchDelay
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.ConfirmationDepth == 0 {
		c.ConfirmationDepth = defaultConfirmationDepth
	}
	return c
}

// Engine scans block ranges, validates staking transactions and advances the
// persisted cursor and phase aggregates strictly in ascending height order.
type Engine struct {
	logger    *zap.Logger
	source    Source
	repo      Repository
	resolver  *params.Resolver
	lifecycle Lifecycle
	metrics   Metrics
	sleep     func(context.Context, time.Duration) error
	cfg       Config
	tracker   *phaseTracker
}

// NewEngine builds a scan engine with the given collaborators.
func NewEngine(
	source Source,
	repo Repository,
	resolver *params.Resolver,
	lifecycle Lifecycle,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) (*Engine, error) {
	if metrics == nil {
		return nil, errors.New("scanner metrics is required")
	}
	if lifecycle == nil && !resolver.Reindexing() {
		return nil, errors.New("lifecycle controller is required outside reindex mode")
	}
	return &Engine{
		logger:    logger.Named("scanner"),
		source:    source,
		repo:      repo,
		resolver:  resolver,
		lifecycle: lifecycle,
		metrics:   metrics,
		sleep:     clock.SleepWithContext,
		cfg:       cfg.withDefaults(),
		tracker:   newPhaseTracker(repo),
	}, nil
}

// Run polls the node tip and scans newly confirmed heights until the context
// is canceled. Shutdown takes effect between batches: the in-flight batch
// always completes.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.followOnce(ctx); err != nil {
			e.logger.Warn("poll iteration failed, backing off", zap.Error(err))
		}
		if err := e.sleep(ctx, e.cfg.PollInterval); err != nil {
			return err
		}
	}
}

func (e *Engine) followOnce(ctx context.Context) error {
	tip, err := e.source.LatestHeight(ctx)
	if err != nil {
		return fmt.Errorf("query node tip: %w", err)
	}
	depth := e.confirmationDepth(tip)
	if tip <= depth {
		return nil
	}
	target := tip - depth

	last, err := e.repo.LastProcessedHeight(ctx)
	if err != nil {
		return fmt.Errorf("query cursor: %w", err)
	}
	if target <= last {
		e.logger.Debug("no newly confirmed heights",
			zap.Uint64("tip", tip),
			zap.Uint64("cursor", last))
		return nil
	}
	return e.Scan(ctx, last+1, target)
}

// confirmationDepth is the depth of the phase governing the tip, falling back
// to the configured default when no phase covers it.
func (e *Engine) confirmationDepth(tip uint64) uint64 {
	if p := e.resolver.Session(nil).Resolve(tip); p != nil && p.ConfirmationDepth > 0 {
		return uint64(p.ConfirmationDepth)
	}
	return uint64(e.cfg.ConfirmationDepth)
}

// Scan processes [startHeight, endHeight] in fixed-size batches. It is
// idempotent and resumable: the effective start is max(startHeight,
// cursor+1), so re-running over an already processed range is a no-op. A
// failed batch is logged and skipped; the scan proceeds best-effort.
func (e *Engine) Scan(ctx context.Context, startHeight, endHeight uint64) error {
	start, end, err := e.effectiveRange(ctx, startHeight, endHeight)
	if err != nil {
		return err
	}
	if start > end {
		e.logger.Info("nothing to scan",
			zap.Uint64("requested_start", startHeight),
			zap.Uint64("requested_end", endHeight))
		return nil
	}

	if err := e.prepare(ctx, start); err != nil {
		return err
	}

	e.logger.Info("scanning range",
		zap.Uint64("start", start),
		zap.Uint64("end", end),
		zap.Uint64("batch_size", e.cfg.BatchSize))

	for batchStart := start; batchStart <= end; {
		if err := ctx.Err(); err != nil {
			return err
		}

		batchEnd := batchStart + e.cfg.BatchSize - 1
		if batchEnd > end {
			batchEnd = end
		}
		size := int(batchEnd - batchStart + 1)

		started := time.Now()
		blocks, err := e.fetchBatch(ctx, batchStart, batchEnd)
		if err != nil {
			e.metrics.ObserveScanBatch(err, size, started)
			e.logger.Warn("batch fetch failed, skipping batch",
				zap.Uint64("batch_start", batchStart),
				zap.Uint64("batch_end", batchEnd),
				zap.Error(err))
		} else if err := e.processBatch(ctx, blocks); err != nil {
			e.metrics.ObserveScanBatch(err, size, started)
			e.logger.Error("batch finalization failed, cursor not advanced",
				zap.Uint64("batch_start", batchStart),
				zap.Uint64("batch_end", batchEnd),
				zap.Error(err))
		} else {
			e.metrics.ObserveScanBatch(nil, size, started)
		}

		batchStart = batchEnd + 1
		if batchStart > end {
			break
		}
		if err := e.sleep(ctx, e.cfg.InterBatchDelay); err != nil {
			return err
		}
	}
	return nil
}

// effectiveRange resolves the heights to scan, honoring the cursor in
// continuous mode and the replay boundaries in reindex mode.
func (e *Engine) effectiveRange(ctx context.Context, start, end uint64) (uint64, uint64, error) {
	if e.resolver.Reindexing() {
		replayStart, replayEnd := e.resolver.ReindexRange()
		if start < replayStart {
			start = replayStart
		}
		if end == 0 || end > replayEnd {
			end = replayEnd
		}
		return start, end, nil
	}

	last, err := e.repo.LastProcessedHeight(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("query cursor: %w", err)
	}
	if start <= last {
		start = last + 1
	}
	return start, end, nil
}

// prepare loads phase runtime states. A reindex rebuilds the target phase's
// aggregates from scratch.
func (e *Engine) prepare(ctx context.Context, start uint64) error {
	if e.resolver.Reindexing() {
		target := e.resolver.Session(nil).Resolve(start)
		if target == nil {
			return fmt.Errorf("reindex start height %d outside target phase range", start)
		}
		if _, err := e.tracker.reinit(ctx, target.Phase, start); err != nil {
			return err
		}
		return nil
	}
	return e.tracker.preload(ctx, e.resolver.Phases())
}

// fetchBatch fetches all blocks of a batch concurrently and returns them in
// ascending height order. All fetches are awaited before any processing.
func (e *Engine) fetchBatch(ctx context.Context, start, end uint64) ([]*chain.Block, error) {
	heights := make([]uint64, 0, end-start+1)
	for h := start; h <= end; h++ {
		heights = append(heights, h)
	}

	blocks := make([]*chain.Block, len(heights))
	err := workerpool.Process(ctx, e.cfg.FetchWorkers, heights, func(ctx context.Context, height uint64) error {
		block, err := e.fetchWithRetry(ctx, height)
		if err != nil {
			return err
		}
		blocks[height-start] = block
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// fetchWithRetry bounds every attempt with the configured fetch timeout and
// retries transient failures, including attempt timeouts, with a backoff that
// never decreases across consecutive attempts.
func (e *Engine) fetchWithRetry(ctx context.Context, height uint64) (*chain.Block, error) {
	var lastErr error
	for attempt := 1; attempt <= e.cfg.FetchAttempts; attempt++ {
		started := time.Now()
		attemptCtx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
		block, err := e.source.FetchBlock(attemptCtx, height)
		cancel()
		e.metrics.ObserveFetchBlock(err, height, started)
		if err == nil {
			return block, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		e.logger.Warn("fetch block failed",
			zap.Uint64("height", height),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < e.cfg.FetchAttempts {
			if err := e.sleep(ctx, time.Duration(attempt)*e.cfg.FetchRetryDelay); err != nil {
				return nil, err
			}
		}
	}
	return nil, fmt.Errorf("fetch block height %d: %w", height, lastErr)
}

// heightResult groups the persisted transactions of one processed height with
// the phase that governed it.
type heightResult struct {
	height uint64
	phase  *model.PhaseParameters
	txs    []model.StakeTransaction
}

// processBatch validates every transaction of every block in ascending height
// order, bulk-persists the batch, then advances aggregates, cursor and
// lifecycle per height. Any persistence failure aborts finalization of this
// batch without advancing the cursor for it; the next batch reloads phase
// states from the repository so abandoned stake never leaks into accounting.
func (e *Engine) processBatch(ctx context.Context, blocks []*chain.Block) error {
	if err := e.tracker.preload(ctx, e.resolver.Phases()); err != nil {
		return err
	}
	session := e.resolver.Session(e.tracker)

	var persist []model.StakeTransaction
	results := make([]heightResult, 0, len(blocks))

	for _, block := range blocks {
		res := heightResult{height: block.Height}
		p := session.Resolve(block.Height)
		if p == nil {
			e.logger.Debug("no phase parameters for height", zap.Uint64("height", block.Height))
			results = append(results, res)
			continue
		}
		res.phase = p

		state, err := e.tracker.ensure(ctx, p.Phase, block.Height)
		if err != nil {
			return err
		}

		for _, tx := range block.Txs {
			outcome := validator.Validate(tx, *p, block.Height, state.ActiveStakeSat)
			if !outcome.HasMarker {
				continue
			}
			st := e.buildStakeTransaction(tx, block, *p, outcome)
			persist = append(persist, st)
			res.txs = append(res.txs, st)
			e.tracker.admit(state, st)
			e.metrics.ObserveStakeTransaction(classify(st))
		}
		results = append(results, res)
	}

	started := time.Now()
	if err := e.repo.InsertStakeTransactions(ctx, persist); err != nil {
		e.metrics.ObserveInsert(err, len(persist), started)
		e.tracker.invalidate()
		return fmt.Errorf("bulk insert %d stake transactions: %w", len(persist), err)
	}
	e.metrics.ObserveInsert(nil, len(persist), started)

	for _, res := range results {
		if err := e.finalizeHeight(ctx, res); err != nil {
			e.tracker.invalidate()
			return err
		}
	}
	return nil
}

// finalizeHeight advances phase aggregates and the cursor for one height and
// evaluates the phase lifecycle. Cursor writes and lifecycle evaluation are
// skipped during an explicit single-phase reindex.
func (e *Engine) finalizeHeight(ctx context.Context, res heightResult) error {
	if res.phase != nil {
		if err := e.repo.ApplyPhaseIncrement(ctx, res.phase.Phase, res.height, res.txs); err != nil {
			return fmt.Errorf("apply phase %d increment at height %d: %w", res.phase.Phase, res.height, err)
		}
	}

	if e.resolver.Reindexing() {
		return nil
	}

	if err := e.repo.SetLastProcessedHeight(ctx, res.height); err != nil {
		return fmt.Errorf("advance cursor to height %d: %w", res.height, err)
	}

	if res.phase != nil {
		state := e.tracker.state(res.phase.Phase)
		if _, err := e.lifecycle.Evaluate(ctx, *res.phase, state, res.height); err != nil {
			// End-condition evaluation is retried at the next height; the
			// scan itself keeps going.
			e.logger.Error("phase lifecycle evaluation failed",
				zap.Uint32("phase", res.phase.Phase),
				zap.Uint64("height", res.height),
				zap.Error(err))
		}
	}
	return nil
}

func (e *Engine) buildStakeTransaction(tx chain.Transaction, block *chain.Block, p model.PhaseParameters, outcome validator.Result) model.StakeTransaction {
	st := model.StakeTransaction{
		TxID:           tx.TxID,
		BlockHeight:    block.Height,
		Timestamp:      block.Timestamp,
		StakeAmountSat: outcome.AdjustedAmountSat,
		StakerAddress:  firstInputAddress(tx),
		Phase:          p.Phase,
		IsValid:        outcome.IsValid,
		IsOverflow:     outcome.IsOverflow,
		Reasons:        outcome.ReasonStrings(),
	}
	if outcome.Decoded != nil {
		st.StakerPublicKeyHex = outcome.Decoded.StakerPublicKeyHex
		st.FinalityProviderKeyHex = outcome.Decoded.FinalityProviderKeyHex
		st.StakingTimeBlocks = outcome.Decoded.StakingTimeBlocks
		st.ProtocolVersion = outcome.Decoded.Version
	}
	return st
}

func firstInputAddress(tx chain.Transaction) string {
	for _, in := range tx.Inputs {
		if in.Address != "" {
			return in.Address
		}
	}
	return ""
}

func classify(tx model.StakeTransaction) string {
	switch {
	case !tx.IsValid:
		return "invalid"
	case tx.IsOverflow:
		return "overflow"
	default:
		return "active"
	}
}
