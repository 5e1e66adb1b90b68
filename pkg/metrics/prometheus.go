// Package metrics provides Prometheus metrics for the Rostrum scheduling engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns all Prometheus instruments for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Scheduling metrics
	schedulingRuns   prometheus.Counter
	roomsAllocated   prometheus.Counter
	roomFailures     *prometheus.CounterVec
	unsafeFallbacks  prometheus.Counter
	integrityFailed  prometheus.Counter
	allocationMillis prometheus.Histogram

	// Rating metrics
	outcomesProcessed prometheus.Counter
	outcomesDuplicate prometheus.Counter
	ratingUpdates     prometheus.Counter
	ratingErrors      prometheus.Counter
	finalizeMillis    prometheus.Histogram

	// Queue metrics
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueues    prometheus.Counter
	queueDequeues    prometheus.Counter
	queueRejects     prometheus.Counter

	// Worker and standings metrics
	workerCount    prometheus.Gauge
	workerErrors   prometheus.Counter
	standingsSize  prometheus.Gauge
	standingsReads prometheus.Counter
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// init registers the global manager on a private registry so the default
// Go collectors never leak into the scrape output.
func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager()
}

// NewManager creates a metrics manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rostrum",
		subsystem:        "scheduler",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.schedulingRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scheduling_runs_total",
		Help:      "Total number of night scheduling runs",
	})

	m.roomsAllocated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rooms_allocated_total",
		Help:      "Total number of rooms allocated successfully",
	})

	m.roomFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "room_failures_total",
			Help:      "Total number of room allocation failures by reason",
		},
		[]string{"reason"},
	)

	m.unsafeFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unsafe_chair_fallbacks_total",
		Help:      "Total number of rooms filled with a relaxed chair rule",
	})

	m.integrityFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "integrity_violations_total",
		Help:      "Total number of rooms rejected by the integrity check",
	})

	m.allocationMillis = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "allocation_latency_milliseconds",
		Help:      "Histogram of full scheduling run latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.outcomesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outcomes_processed_total",
		Help:      "Total number of room outcomes rated",
	})

	m.outcomesDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outcomes_duplicate_total",
		Help:      "Total number of duplicate room outcomes dropped",
	})

	m.ratingUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rating_updates_total",
		Help:      "Total number of participant rating updates applied",
	})

	m.ratingErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rating_errors_total",
		Help:      "Total number of room outcomes that failed to rate",
	})

	m.finalizeMillis = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "finalize_latency_milliseconds",
		Help:      "Histogram of per-room finalize latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outcome_queue_size",
		Help:      "Current number of queued room outcomes",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outcome_queue_capacity",
		Help:      "Configured capacity of the outcome queue",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outcome_queue_utilization_ratio",
		Help:      "Outcome queue utilization (size / capacity)",
	})

	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outcome_queue_enqueues_total",
		Help:      "Total number of outcomes enqueued",
	})

	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outcome_queue_dequeues_total",
		Help:      "Total number of outcomes handed to workers",
	})

	m.queueRejects = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "outcome_queue_rejects_total",
		Help:      "Total number of enqueue attempts rejected (full or closed)",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "finalize_worker_count",
		Help:      "Number of running finalize workers",
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "finalize_worker_errors_total",
		Help:      "Total number of worker-level processing errors",
	})

	m.standingsSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "standings_participants",
		Help:      "Number of participants tracked in the standings store",
	})

	m.standingsReads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "standings_reads_total",
		Help:      "Total number of standings queries served",
	})
}

// Handler returns an HTTP handler exposing the manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Handler exposes the global registry for the /metrics endpoint.
func Handler() http.Handler { return globalManager.Handler() }

// Recording helpers operating on the global manager.

func RecordSchedulingRun()            { globalManager.schedulingRuns.Inc() }
func RecordRoomAllocated()            { globalManager.roomsAllocated.Inc() }
func RecordRoomFailure(reason string) { globalManager.roomFailures.WithLabelValues(reason).Inc() }
func RecordUnsafeFallback()           { globalManager.unsafeFallbacks.Inc() }
func RecordIntegrityViolation()       { globalManager.integrityFailed.Inc() }
func RecordAllocationLatency(ms float64) {
	globalManager.allocationMillis.Observe(ms)
}

func RecordOutcomeProcessed()         { globalManager.outcomesProcessed.Inc() }
func RecordOutcomeDuplicate()         { globalManager.outcomesDuplicate.Inc() }
func RecordRatingUpdates(n int)       { globalManager.ratingUpdates.Add(float64(n)) }
func RecordRatingError()              { globalManager.ratingErrors.Inc() }
func RecordFinalizeLatency(ms float64) { globalManager.finalizeMillis.Observe(ms) }

func UpdateQueueSize(size int)     { globalManager.queueSize.Set(float64(size)) }
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}
func UpdateQueueUtilization(r float64) {
	globalManager.queueUtilization.Set(r)
}
func RecordQueueEnqueue() { globalManager.queueEnqueues.Inc() }
func RecordQueueDequeue() { globalManager.queueDequeues.Inc() }
func RecordQueueReject()  { globalManager.queueRejects.Inc() }

func UpdateWorkerCount(n int)     { globalManager.workerCount.Set(float64(n)) }
func RecordWorkerError()          { globalManager.workerErrors.Inc() }
func UpdateStandingsSize(n int)   { globalManager.standingsSize.Set(float64(n)) }
func RecordStandingsRead()        { globalManager.standingsReads.Inc() }
