package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"org-assistant/internal/core/domain"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	answersTotal     *prometheus.CounterVec
	degradedTotal    *prometheus.CounterVec
	answerCitations  *prometheus.HistogramVec
	answerDuration   *prometheus.HistogramVec
	structuredRoutes *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orga",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "orga",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "orga",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	answersTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orga",
			Subsystem: "answer",
			Name:      "total",
			Help:      "Total assembled answers by mode.",
		},
		[]string{"service", "mode"},
	)
	degradedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orga",
			Subsystem: "answer",
			Name:      "degraded_total",
			Help:      "Total answers produced without document retrieval.",
		},
		[]string{"service"},
	)
	answerCitations := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "orga",
			Subsystem: "answer",
			Name:      "citations",
			Help:      "Distribution of citations per answer.",
			Buckets:   []float64{0, 1, 2, 3, 4},
		},
		[]string{"service", "mode"},
	)
	answerDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "orga",
			Subsystem: "answer",
			Name:      "duration_seconds",
			Help:      "Answer assembly duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "mode"},
	)
	structuredRoutes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orga",
			Subsystem: "classifier",
			Name:      "routes_total",
			Help:      "Total classified queries by route.",
		},
		[]string{"service", "route"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		answersTotal,
		degradedTotal,
		answerCitations,
		answerDuration,
		structuredRoutes,
	)

	return &HTTPServerMetrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestInFlight:  requestInFlight,
		answersTotal:     answersTotal,
		degradedTotal:    degradedTotal,
		answerCitations:  answerCitations,
		answerDuration:   answerDuration,
		structuredRoutes: structuredRoutes,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *HTTPServerMetrics) RecordAnswer(service string, payload *domain.AnswerPayload, duration time.Duration) {
	if payload == nil {
		return
	}
	mode := string(payload.Mode)
	if mode == "" {
		mode = "unknown"
	}
	m.answersTotal.WithLabelValues(service, mode).Inc()
	m.answerCitations.WithLabelValues(service, mode).Observe(float64(len(payload.Citations)))
	m.answerDuration.WithLabelValues(service, mode).Observe(duration.Seconds())
	if payload.Degraded {
		m.degradedTotal.WithLabelValues(service).Inc()
	}
}

func (m *HTTPServerMetrics) RecordClassifierRoute(service string, structured bool) {
	route := "document"
	if structured {
		route = "structured"
	}
	m.structuredRoutes.WithLabelValues(service, route).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
