package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the dedicated registry served on /api/metrics. Using a custom
// registry keeps the default Go collectors out of the scrape output.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Custom histogram buckets for API response times ranging from
	// milliseconds to tens of seconds. The top bucket stays below 60s to
	// avoid histogram_quantile interpolation issues with low sample counts.
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database Client Metrics
	DBRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	DBRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database client operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	// Business Metrics
	UserRegistrations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_user_registrations_total",
			Help: "Total user registrations by role",
		},
		[]string{"role"},
	)

	UserLogins = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_user_logins_total",
			Help: "Total login attempts",
		},
		[]string{"status"},
	)

	ProfileUpdates = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "mentorhub_profile_updates_total",
			Help: "Total number of profile updates",
		},
	)

	MentorshipRequestsSent = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_mentorship_requests_sent_total",
			Help: "Total number of mentorship requests sent",
		},
		[]string{"status"},
	)

	MentorshipRequestResponses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_mentorship_request_responses_total",
			Help: "Total number of mentorship request responses",
		},
		[]string{"resolution"},
	)

	ConnectionCancellations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_connection_cancellations_total",
			Help: "Total number of mentorship connection cancellations",
		},
		[]string{"initiator"},
	)

	NotificationsCreated = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_notifications_created_total",
			Help: "Total number of notifications created",
		},
		[]string{"type"},
	)

	SearchQueries = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorhub_search_queries_total",
			Help: "Total number of user search queries",
		},
		[]string{"status"},
	)

	SearchResultsReturned = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mentorhub_search_results_returned",
			Help:    "Number of results returned per search page",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 200},
		},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)

	buildInfo = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mentorhub_build_info",
			Help: "Build information for the running service",
		},
		[]string{"service"},
	)
)

// Init records service identity metrics. Call once at startup.
func Init(serviceName string) {
	buildInfo.WithLabelValues(serviceName).Set(1)
}

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
