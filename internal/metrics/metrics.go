package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Business Metrics
	SellersCreated          prometheus.Counter
	TransactionsCreated     *prometheus.CounterVec
	TransactionAmount       *prometheus.CounterVec
	MutationFailures        *prometheus.CounterVec
	MutationDuration        *prometheus.HistogramVec
	CreditRequestsTotal     *prometheus.CounterVec
	ReconciliationChecks    *prometheus.CounterVec
	ReconciliationDrifting  prometheus.Gauge
	ReconciliationSweepTime prometheus.Histogram
	EventsPublished         *prometheus.CounterVec

	// Database Metrics
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
	DBWaitCount        prometheus.Gauge
	DBQueryDuration    *prometheus.HistogramVec
	DBQueriesTotal     *prometheus.CounterVec
	DBConnectionErrors prometheus.Counter

	// System Metrics
	ServiceUptime    prometheus.Gauge
	ServiceVersion   *prometheus.GaugeVec
	Goroutines       prometheus.Gauge
	MemoryUsageBytes *prometheus.GaugeVec

	// Validation Metrics
	ValidationErrors *prometheus.CounterVec
}

// NewMetrics registers every collector on reg. Pass prometheus.NewRegistry()
// in tests to keep registrations isolated.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_http_requests_total",
				Help: "Total number of HTTP requests by API audience",
			},
			[]string{"audience", "method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "creditledger_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "creditledger_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		HTTPResponseSizeBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "creditledger_http_response_size_bytes",
				Help:    "Size of HTTP responses in bytes",
				Buckets: []float64{100, 1000, 10_000, 100_000, 1_000_000},
			},
			[]string{"method", "path", "status_code"},
		),

		// Business Metrics
		SellersCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "creditledger_sellers_created_total",
				Help: "Total number of sellers created",
			},
		),
		TransactionsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_transactions_created_total",
				Help: "Total number of ledger transactions committed",
			},
			[]string{"tx_type"},
		),
		TransactionAmount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_transaction_amount_total",
				Help: "Sum of committed transaction amounts",
			},
			[]string{"tx_type"},
		),
		MutationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_mutation_failures_total",
				Help: "Total number of failed balance mutations",
			},
			[]string{"operation", "code"},
		),
		MutationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "creditledger_mutation_duration_seconds",
				Help:    "Duration of balance mutations including lock wait",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"operation", "status"},
		),
		CreditRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_credit_requests_total",
				Help: "Credit requests by lifecycle event",
			},
			[]string{"status"},
		),
		ReconciliationChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_reconciliation_checks_total",
				Help: "Reconciliation checks by outcome",
			},
			[]string{"result"},
		),
		ReconciliationDrifting: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "creditledger_reconciliation_drifting_sellers",
				Help: "Sellers whose credit differed from the ledger in the last sweep",
			},
		),
		ReconciliationSweepTime: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "creditledger_reconciliation_sweep_duration_seconds",
				Help:    "Duration of full reconciliation sweeps",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
			},
		),
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_events_published_total",
				Help: "Ledger events handed to the broker",
			},
			[]string{"type", "status"},
		),

		// Database Metrics
		DBConnectionsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "creditledger_db_connections_open",
				Help: "Number of open database connections",
			},
		),
		DBConnectionsInUse: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "creditledger_db_connections_in_use",
				Help: "Number of database connections currently in use",
			},
		),
		DBConnectionsIdle: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "creditledger_db_connections_idle",
				Help: "Number of idle database connections",
			},
		),
		DBWaitCount: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "creditledger_db_connections_wait_count",
				Help: "Total number of connections waited for",
			},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "creditledger_db_query_duration_seconds",
				Help:    "Duration of database queries in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"operation", "table"},
		),
		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table", "status"},
		),
		DBConnectionErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "creditledger_db_connection_errors_total",
				Help: "Total number of database connection errors",
			},
		),

		// System Metrics
		ServiceUptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "creditledger_service_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
		ServiceVersion: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "creditledger_service_version_info",
				Help: "Service version information (labels: version, commit, build_date)",
			},
			[]string{"version", "commit", "build_date"},
		),
		Goroutines: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "creditledger_goroutines",
				Help: "Number of goroutines currently running",
			},
		),
		MemoryUsageBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "creditledger_memory_usage_bytes",
				Help: "Memory usage in bytes",
			},
			[]string{"type"},
		),

		// Validation Metrics
		ValidationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "creditledger_validation_errors_total",
				Help: "Total number of validation errors",
			},
			[]string{"field", "tag"},
		),
	}
}

// --- Recording Methods ---

func (m *Metrics) RecordHTTPRequest(audience, method, path, statusCode string, duration time.Duration, responseSize int) {
	m.HTTPRequestsTotal.WithLabelValues(audience, method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
	m.HTTPResponseSizeBytes.WithLabelValues(method, path, statusCode).Observe(float64(responseSize))
}

func (m *Metrics) RecordSellerCreated() {
	m.SellersCreated.Inc()
}

func (m *Metrics) RecordTransactionCreated(txType string, amount int64) {
	m.TransactionsCreated.WithLabelValues(txType).Inc()
	m.TransactionAmount.WithLabelValues(txType).Add(float64(amount))
}

func (m *Metrics) RecordMutation(operation string, duration time.Duration, errCode string) {
	status := "success"
	if errCode != "" {
		status = "error"
		m.MutationFailures.WithLabelValues(operation, errCode).Inc()
	}

	m.MutationDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

func (m *Metrics) RecordCreditRequest(status string) {
	m.CreditRequestsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordReconciliationCheck(equal bool) {
	result := "equal"
	if !equal {
		result = "drift"
	}
	m.ReconciliationChecks.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordReconciliationSweep(drifting int, duration time.Duration) {
	m.ReconciliationDrifting.Set(float64(drifting))
	m.ReconciliationSweepTime.Observe(duration.Seconds())
}

func (m *Metrics) RecordEventPublished(eventType string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.EventsPublished.WithLabelValues(eventType, status).Inc()
}

func (m *Metrics) RecordDBQuery(operation, table, status string, duration time.Duration) {
	m.DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func (m *Metrics) RecordDBConnectionError() {
	m.DBConnectionErrors.Inc()
}

func (m *Metrics) RecordValidationError(field, tag string) {
	m.ValidationErrors.WithLabelValues(field, tag).Inc()
}

// UpdateSystemMetrics updates system-level metrics (goroutines, uptime, memory).
func (m *Metrics) UpdateSystemMetrics(uptime time.Duration, memStats *runtime.MemStats) {
	m.ServiceUptime.Set(uptime.Seconds())
	m.Goroutines.Set(float64(runtime.NumGoroutine()))

	m.MemoryUsageBytes.WithLabelValues("alloc").Set(float64(memStats.Alloc))
	m.MemoryUsageBytes.WithLabelValues("sys").Set(float64(memStats.Sys))
	m.MemoryUsageBytes.WithLabelValues("heap_alloc").Set(float64(memStats.HeapAlloc))
	m.MemoryUsageBytes.WithLabelValues("heap_sys").Set(float64(memStats.HeapSys))
}

func (m *Metrics) SetServiceVersion(version, commit, buildDate string) {
	m.ServiceVersion.WithLabelValues(version, commit, buildDate).Set(1)
}
