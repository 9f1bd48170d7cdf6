package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/stakelens/stakescan-backend/internal/staking/model"
)

var (
	scanBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stakescan",
		Subsystem: "scanner",
		Name:      "scan_batch_total",
		Help:      "Count of processed scan batches.",
	}, []string{"network", "status"})

	scanBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stakescan",
		Subsystem: "scanner",
		Name:      "scan_batch_duration_seconds",
		Help:      "Duration of processing a batch of heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	scanBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stakescan",
		Subsystem: "scanner",
		Name:      "scan_batch_size",
		Help:      "Number of heights processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"network"})

	fetchBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stakescan",
		Subsystem: "scanner",
		Name:      "fetch_block_duration_seconds",
		Help:      "Duration of fetching a single block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	insertDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stakescan",
		Subsystem: "scanner",
		Name:      "insert_duration_seconds",
		Help:      "Duration of bulk-persisting a batch of stake transactions.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	stakeTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stakescan",
		Subsystem: "scanner",
		Name:      "stake_transactions_total",
		Help:      "Count of persisted stake transactions by classification.",
	}, []string{"network", "classification"})

	phaseCompletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stakescan",
		Subsystem: "scanner",
		Name:      "phase_completed_total",
		Help:      "Count of phase completions by reason.",
	}, []string{"network", "phase", "reason"})
)

// Scanner tracks metrics for the block scan engine.
type Scanner struct {
	network model.Network
}

// NewScanner constructs a metrics collector for the scan engine.
func NewScanner(network model.Network) *Scanner {
	if network == "" {
		network = "unknown"
	}
	return &Scanner{network: network}
}

func (m Scanner) ObserveScanBatch(err error, heights int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	scanBatchTotal.WithLabelValues(string(m.network), status).Inc()
	scanBatchDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
	scanBatchSize.WithLabelValues(string(m.network)).Observe(float64(heights))
}

func (m Scanner) ObserveFetchBlock(err error, _ uint64, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	fetchBlockDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
}

func (m Scanner) ObserveInsert(err error, _ int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	insertDuration.WithLabelValues(string(m.network), status).Observe(time.Since(started).Seconds())
}

func (m Scanner) ObserveStakeTransaction(classification string) {
	stakeTransactionsTotal.WithLabelValues(string(m.network), classification).Inc()
}

func (m Scanner) ObservePhaseCompleted(phase uint32, reason string) {
	phaseCompletedTotal.WithLabelValues(string(m.network), strconv.FormatUint(uint64(phase), 10), reason).Inc()
}
