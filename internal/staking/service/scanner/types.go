package scanner

import (
	"context"
	"time"

	"github.com/stakelens/stakescan-backend/internal/staking/chain"
	"github.com/stakelens/stakescan-backend/internal/staking/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source provides blocks by height.
	Source interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchBlock(ctx context.Context, height uint64) (*chain.Block, error)
	}

	// Repository is the persistence surface of the scan engine. Exactly one
	// scan process per network may write through it; the cursor carries no
	// compare-and-swap guard and concurrent scans over overlapping ranges are
	// undefined behavior.
	Repository interface {
		LastProcessedHeight(ctx context.Context) (uint64, error)
		SetLastProcessedHeight(ctx context.Context, height uint64) error
		InsertStakeTransactions(ctx context.Context, txs []model.StakeTransaction) error
		PhaseState(ctx context.Context, phase uint32) (*model.PhaseRuntimeState, error)
		InitPhaseState(ctx context.Context, phase uint32, startHeight uint64) (*model.PhaseRuntimeState, error)
		ApplyPhaseIncrement(ctx context.Context, phase uint32, height uint64, txs []model.StakeTransaction) error
	}

	// Lifecycle evaluates phase end conditions after a height is processed.
	Lifecycle interface {
		Evaluate(ctx context.Context, params model.PhaseParameters, state *model.PhaseRuntimeState, latestHeight uint64) (model.CompletionReason, error)
	}

	// Metrics records scan engine observations.
	Metrics interface {
		ObserveScanBatch(err error, heights int, started time.Time)
		ObserveFetchBlock(err error, height uint64, started time.Time)
		ObserveInsert(err error, txs int, started time.Time)
		ObserveStakeTransaction(classification string)
	}
)
