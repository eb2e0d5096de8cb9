package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	syncTotal     *prometheus.CounterVec
	syncDuration  *prometheus.HistogramVec
	syncInFlight  prometheus.Gauge
	indexedChunks *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	syncTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orga",
			Subsystem: "worker",
			Name:      "corpus_sync_total",
			Help:      "Total corpus sync operations by kind and status.",
		},
		[]string{"service", "kind", "status"},
	)
	syncDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "orga",
			Subsystem: "worker",
			Name:      "corpus_sync_duration_seconds",
			Help:      "Corpus sync duration in seconds by kind.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "kind"},
	)
	syncInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "orga",
			Subsystem: "worker",
			Name:      "corpus_sync_in_flight",
			Help:      "Number of in-flight corpus sync operations.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	indexedChunks := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "orga",
			Subsystem: "worker",
			Name:      "indexed_chunks",
			Help:      "Distribution of chunks indexed per sync operation.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 250},
		},
		[]string{"service", "kind"},
	)

	registry.MustRegister(syncTotal, syncDuration, syncInFlight, indexedChunks)

	return &WorkerMetrics{
		registry:      registry,
		syncTotal:     syncTotal,
		syncDuration:  syncDuration,
		syncInFlight:  syncInFlight,
		indexedChunks: indexedChunks,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartSync() {
	m.syncInFlight.Inc()
}

func (m *WorkerMetrics) FinishSync(service, kind string, duration time.Duration, err error) {
	m.syncInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.syncTotal.WithLabelValues(service, kind, status).Inc()
	m.syncDuration.WithLabelValues(service, kind).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveIndexedChunks(service, kind string, count int) {
	if count <= 0 {
		return
	}
	m.indexedChunks.WithLabelValues(service, kind).Observe(float64(count))
}
