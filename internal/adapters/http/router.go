package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"org-assistant/internal/core/ports"
	"org-assistant/internal/observability/metrics"
)

const serviceName = "org-assistant-api"

type Router struct {
	answerer     ports.Answerer
	store        ports.ConversationStore
	queue        ports.MessageQueue
	metrics      *metrics.HTTPServerMetrics
	historyLimit int

	rateLimitRPS   float64
	rateLimitBurst int
}

type RouterOptions struct {
	HistoryLimit   int
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(
	answerer ports.Answerer,
	store ports.ConversationStore,
	queue ports.MessageQueue,
	serverMetrics *metrics.HTTPServerMetrics,
	options RouterOptions,
) *Router {
	historyLimit := options.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &Router{
		answerer:       answerer,
		store:          store,
		queue:          queue,
		metrics:        serverMetrics,
		historyLimit:   historyLimit,
		rateLimitRPS:   options.RateLimitRPS,
		rateLimitBurst: options.RateLimitBurst,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/chat", rt.chat)
	mux.HandleFunc("/v1/corpus/sync", rt.corpusSync)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	handler = backpressureMiddleware(handler, 64, 100*time.Millisecond)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) corpusSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.queue == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "corpus sync is not configured"})
		return
	}

	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	if err := rt.queue.PublishCorpusSync(r.Context(), req.Path); err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
