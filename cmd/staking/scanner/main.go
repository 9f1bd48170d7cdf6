package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/stakelens/stakescan-backend/internal/metrics"
	"github.com/stakelens/stakescan-backend/internal/staking/bitcoin"
	"github.com/stakelens/stakescan-backend/internal/staking/lifecycle"
	"github.com/stakelens/stakescan-backend/internal/staking/model"
	"github.com/stakelens/stakescan-backend/internal/staking/params"
	"github.com/stakelens/stakescan-backend/internal/staking/repository/clickhouse"
	"github.com/stakelens/stakescan-backend/internal/staking/service/scanner"
)

type config struct {
	ClickhouseDSN  string        `long:"clickhouse-dsn" env:"SCANNER_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	Network        string        `long:"network" env:"SCANNER_NETWORK" description:"network name" required:"true"`
	RPCURL         string        `long:"rpc-url" env:"SCANNER_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser        string        `long:"rpc-user" env:"SCANNER_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword    string        `long:"rpc-password" env:"SCANNER_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCRateLimit   int           `long:"rpc-rate-limit" env:"SCANNER_RPC_RATE_LIMIT" description:"max RPC requests per second" default:"32"`
	PhaseTablePath string        `long:"phase-table" env:"SCANNER_PHASE_TABLE" description:"path to the phase parameter table (JSON)" required:"true"`
	MetricsAddr    string        `long:"metrics-addr" env:"SCANNER_METRICS_ADDR" description:"Prometheus metrics listen address" default:":9090"`
	BatchSize      uint64        `long:"batch-size" env:"SCANNER_BATCH_SIZE" description:"heights per scan batch" default:"100"`
	FetchTimeout   time.Duration `long:"fetch-timeout" env:"SCANNER_FETCH_TIMEOUT" description:"per-attempt block fetch timeout" default:"30s"`
	PollInterval   time.Duration `long:"poll-interval" env:"SCANNER_POLL_INTERVAL" description:"delay between tip polls" default:"30s"`
	BatchDelay     time.Duration `long:"batch-delay" env:"SCANNER_BATCH_DELAY" description:"delay between scan batches" default:"2s"`
	Confirmations  uint16        `long:"confirmations" env:"SCANNER_CONFIRMATIONS" description:"fallback confirmation depth" default:"6"`

	StakeTargetSat   uint64 `long:"stake-target-sat" env:"SCANNER_STAKE_TARGET_SAT" description:"stake target override in satoshi (default: phase cap)"`
	InactivityGapSat uint64 `long:"inactivity-gap-sat" env:"SCANNER_INACTIVITY_GAP_SAT" description:"inactivity gap to target in satoshi" default:"50000000"`
	InactivityFloor  uint64 `long:"inactivity-floor-sat" env:"SCANNER_INACTIVITY_FLOOR_SAT" description:"inactivity floor in satoshi (default: 80% of target)"`
	InactivityWindow uint64 `long:"inactivity-window" env:"SCANNER_INACTIVITY_WINDOW" description:"inactivity window in blocks" default:"144"`

	ReindexPhase uint32 `long:"reindex-phase" env:"SCANNER_REINDEX_PHASE" description:"replay a single phase and exit"`
	ReindexStart uint64 `long:"reindex-start" env:"SCANNER_REINDEX_START" description:"reindex start height override"`
	ReindexEnd   uint64 `long:"reindex-end" env:"SCANNER_REINDEX_END" description:"reindex end height override"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if cfg.ClickhouseDSN == "" {
		logger.Fatal("ClickHouse DSN is required")
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("staking scanner failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	network := model.Network(cfg.Network)
	logger = logger.With(zap.String("network", cfg.Network))

	table, err := params.Load(cfg.PhaseTablePath)
	if err != nil {
		return fmt.Errorf("load phase table: %w", err)
	}
	logger.Info("phase table loaded",
		zap.String("version", table.Version),
		zap.Int("phases", len(table.Phases)))

	var reindex *params.ReindexTarget
	if cfg.ReindexPhase > 0 || cfg.ReindexStart > 0 || cfg.ReindexEnd > 0 {
		reindex = &params.ReindexTarget{
			Phase:         cfg.ReindexPhase,
			StartOverride: cfg.ReindexStart,
			EndOverride:   cfg.ReindexEnd,
		}
	}
	resolver, err := params.NewResolver(table, reindex, logger)
	if err != nil {
		return fmt.Errorf("init phase resolver: %w", err)
	}

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, network, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}

	rpc, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init btc rpc client: %w", err)
	}
	defer func() {
		rpc.Shutdown()
		rpc.WaitForShutdown()
	}()

	decoder, err := bitcoin.NewScriptDecoder(network)
	if err != nil {
		return fmt.Errorf("init script decoder: %w", err)
	}
	source := bitcoin.NewSource(
		bitcoin.NewRPCClient(rpc, metrics.NewRPCClient(network), cfg.RPCRateLimit),
		decoder,
		network,
	)

	scannerMetrics := metrics.NewScanner(network)

	policy := lifecycle.InactivityPolicy{
		GapSat:       cfg.InactivityGapSat,
		FloorSat:     cfg.InactivityFloor,
		WindowBlocks: cfg.InactivityWindow,
	}
	controller := lifecycle.NewController(repo, policy, cfg.StakeTargetSat, scannerMetrics, logger)

	engine, err := scanner.NewEngine(
		source,
		repo,
		resolver,
		controller,
		scannerMetrics,
		scanner.Config{
			BatchSize:         cfg.BatchSize,
			FetchTimeout:      cfg.FetchTimeout,
			InterBatchDelay:   cfg.BatchDelay,
			PollInterval:      cfg.PollInterval,
			ConfirmationDepth: cfg.Confirmations,
		},
		logger,
	)
	if err != nil {
		return fmt.Errorf("init scan engine: %w", err)
	}

	go serveMetrics(cfg.MetricsAddr, logger)

	if resolver.Reindexing() {
		start, end := resolver.ReindexRange()
		logger.Info("reindexing phase",
			zap.Uint32("phase", cfg.ReindexPhase),
			zap.Uint64("start", start),
			zap.Uint64("end", end))
		return engine.Scan(ctx, start, end)
	}
	return engine.Run(ctx)
}

func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server failed", zap.Error(err))
	}
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	connCfg := &rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}
	return rpcclient.New(connCfg, nil)
}
