package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Entry metrics
	EntriesRecorded *prometheus.CounterVec
	EntriesVoided   prometheus.Counter
	EntryAmount     prometheus.Histogram
	EntryErrors     *prometheus.CounterVec

	// Batch metrics
	BatchRuns        prometheus.Counter
	BatchCharges     prometheus.Counter
	BatchSkips       prometheus.Counter
	BatchFailures    prometheus.Counter
	BatchRunDuration prometheus.Histogram

	// Import metrics
	ImportRuns        prometheus.Counter
	ImportRowsDropped prometheus.Counter
	ImportSkipped     prometheus.Counter
	ImportEntries     prometheus.Counter
	ImportExpenses    prometheus.Counter
	ImportDuration    prometheus.Histogram

	// Expense metrics
	ExpensesRecorded prometheus.Counter
	ExpensesReviewed *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Entry metrics
		EntriesRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dormledger_entries_recorded_total",
				Help: "Total ledger entries recorded by ledger and type",
			},
			[]string{"ledger", "type"},
		),
		EntriesVoided: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dormledger_entries_voided_total",
			Help: "Total ledger entries voided",
		}),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dormledger_entry_amount",
			Help:    "Recorded entry amounts",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 100000},
		}),
		EntryErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dormledger_entry_errors_total",
				Help: "Total entry write errors by type",
			},
			[]string{"error_type"},
		),

		// Batch metrics
		BatchRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dormledger_batch_runs_total",
			Help: "Total contribution batch runs",
		}),
		BatchCharges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dormledger_batch_charges_total",
			Help: "Total charges created by batch runs",
		}),
		BatchSkips: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dormledger_batch_skips_total",
			Help: "Total occupants skipped by batch runs as already charged",
		}),
		BatchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dormledger_batch_failures_total",
			Help: "Total per-occupant failures during batch runs",
		}),
		BatchRunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dormledger_batch_run_duration_seconds",
			Help:    "Duration of contribution batch runs",
			Buckets: prometheus.DefBuckets,
		}),

		// Import metrics
		ImportRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dormledger_import_runs_total",
			Help: "Total import reconciler runs",
		}),
		ImportRowsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dormledger_import_rows_dropped_total",
			Help: "Total invalid rows dropped by import runs",
		}),
		ImportSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dormledger_import_skipped_total",
			Help: "Total duplicate groups skipped by import runs",
		}),
		ImportEntries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dormledger_import_entries_total",
			Help: "Total ledger entries created by import runs",
		}),
		ImportExpenses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dormledger_import_expenses_total",
			Help: "Total expenses created by import runs",
		}),
		ImportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dormledger_import_duration_seconds",
			Help:    "Duration of import reconciler runs",
			Buckets: prometheus.DefBuckets,
		}),

		// Expense metrics
		ExpensesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dormledger_expenses_recorded_total",
			Help: "Total expense records created",
		}),
		ExpensesReviewed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dormledger_expenses_reviewed_total",
				Help: "Total expense reviews by outcome",
			},
			[]string{"outcome"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dormledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dormledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dormledger_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dormledger_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "dormledger_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dormledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dormledger_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dormledger_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dormledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dormledger_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
