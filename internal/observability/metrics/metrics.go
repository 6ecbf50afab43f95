package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                      sync.Once
	metricsRouter             *chi.Mux
	ledgerClientLatency       *prometheus.HistogramVec
	operationOutcomeCounter   *prometheus.CounterVec
	refreshDurationHistogram  *prometheus.HistogramVec
	notificationPostedCounter prometheus.Counter
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	ledgerClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_client_latency_seconds",
			Help:    "Histogram of ledger client call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	operationOutcomeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "operation_outcome_count",
			Help: "The total number of submitted operations by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	refreshDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "refresh_duration_seconds",
			Help:    "Histogram of account state reconciliation durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"status"},
	)

	notificationPostedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_posted_count",
			Help: "The total number of posted user notifications.",
		},
	)

	prometheus.MustRegister(
		ledgerClientLatency,
		operationOutcomeCounter,
		refreshDurationHistogram,
		notificationPostedCounter,
	)
}

// ObserveLedgerClientLatency records the duration of a ledger client call.
func ObserveLedgerClientLatency(method string, duration time.Duration, failure bool) {
	if ledgerClientLatency == nil {
		return
	}
	status := Success
	if failure {
		status = Error
	}
	ledgerClientLatency.WithLabelValues(method, status.String()).Observe(duration.Seconds())
}

// RecordOperationOutcome counts a terminal state of one submitted operation.
func RecordOperationOutcome(kind, outcome string) {
	if operationOutcomeCounter == nil {
		return
	}
	operationOutcomeCounter.WithLabelValues(kind, outcome).Inc()
}

// ObserveRefreshDuration records one reconciliation round trip.
func ObserveRefreshDuration(duration time.Duration, failure bool) {
	if refreshDurationHistogram == nil {
		return
	}
	status := Success
	if failure {
		status = Error
	}
	refreshDurationHistogram.WithLabelValues(status.String()).Observe(duration.Seconds())
}

// RecordNotificationPosted counts one posted notification.
func RecordNotificationPosted() {
	if notificationPostedCounter == nil {
		return
	}
	notificationPostedCounter.Inc()
}
