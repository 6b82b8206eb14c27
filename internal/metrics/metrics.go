package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Vault metrics
	VaultCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vaultengine_vault_count",
		Help: "Total number of registered vaults",
	})

	ShareSupply = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vaultengine_share_supply",
			Help: "Total share supply per vault (float approximation, dashboards only)",
		},
		[]string{"vault"},
	)

	// Operation metrics
	Operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultengine_operations_total",
			Help: "Total number of vault operations",
		},
		[]string{"op", "status"},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vaultengine_operation_duration_seconds",
			Help:    "Vault operation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"op"},
	)

	// Oracle metrics
	OracleReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultengine_oracle_reads_total",
			Help: "Total number of oracle reads by outcome",
		},
		[]string{"status"},
	)

	// Rebalance metrics
	RebalanceOrders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vaultengine_rebalance_orders_total",
		Help: "Total number of rebalance orders emitted",
	})

	RebalanceClamped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vaultengine_rebalance_clamped_total",
		Help: "Total number of rebalance cycles clamped by the epoch limit",
	})

	EpochResets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vaultengine_epoch_resets_total",
		Help: "Total number of epoch rate-limiter resets",
	})

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaultengine_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vaultengine_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
