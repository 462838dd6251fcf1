package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	TransactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_total",
			Help: "Ledger writes by transaction type and resulting status",
		},
		[]string{"type", "status"}, // Deposit|Withdraw|Investment, Pending|Success|Failed
	)
	TransactionsRefused = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_refused_total",
			Help: "Wallet operations refused before touching the ledger",
		},
		[]string{"op", "reason"},
	)
	Compensations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balance_compensations_total",
			Help: "Compensating writes after a failed second phase",
		},
		[]string{"op", "outcome"}, // outcome: applied|failed
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestLatency)
	prometheus.MustRegister(TransactionsTotal)
	prometheus.MustRegister(TransactionsRefused)
	prometheus.MustRegister(Compensations)
	prometheus.MustRegister(WorkerQueueDepth)
}
