package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"org-assistant/internal/bootstrap"
	"org-assistant/internal/config"
	"org-assistant/internal/observability/logging"
	"org-assistant/internal/observability/metrics"
)

const service = "org-assistant-worker"

func main() {
	cfg := config.Load()
	logger := logging.Setup(service, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(service)
	go serveMetrics(cfg.WorkerMetricsPort, workerMetrics, logger)

	// Index the roster and any files already present in the corpus dir
	// before consuming incremental sync events.
	initialSync(ctx, app, workerMetrics, logger)

	logger.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeCorpusSync(ctx, func(handlerCtx context.Context, path string) error {
		syncCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		workerMetrics.StartSync()
		start := time.Now()
		var (
			indexed int
			syncErr error
		)
		kind := "file"
		if path == "" {
			kind = "roster"
			indexed, syncErr = app.SyncUC.SyncRoster(syncCtx)
		} else {
			indexed, syncErr = app.SyncUC.SyncPath(syncCtx, path)
		}
		workerMetrics.FinishSync(service, kind, time.Since(start), syncErr)
		workerMetrics.ObserveIndexedChunks(service, kind, indexed)
		return syncErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}

func initialSync(ctx context.Context, app *bootstrap.App, workerMetrics *metrics.WorkerMetrics, logger *slog.Logger) {
	workerMetrics.StartSync()
	start := time.Now()
	indexed, err := app.SyncUC.SyncRoster(ctx)
	workerMetrics.FinishSync(service, "roster", time.Since(start), err)
	workerMetrics.ObserveIndexedChunks(service, "roster", indexed)
	if err != nil {
		logger.Warn("initial_roster_sync_failed", "error", err)
	} else {
		logger.Info("initial_roster_sync_done", "documents", indexed)
	}

	paths, err := app.Corpus.ListFiles(ctx)
	if err != nil {
		logger.Warn("corpus_scan_failed", "error", err)
		return
	}
	for _, path := range paths {
		workerMetrics.StartSync()
		start := time.Now()
		indexed, err := app.SyncUC.SyncPath(ctx, path)
		workerMetrics.FinishSync(service, "file", time.Since(start), err)
		workerMetrics.ObserveIndexedChunks(service, "file", indexed)
		if err != nil {
			logger.Warn("initial_file_sync_failed", "path", path, "error", err)
		}
	}
	logger.Info("initial_corpus_sync_done", "files", len(paths))
}

func serveMetrics(port string, workerMetrics *metrics.WorkerMetrics, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", workerMetrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	logger.Info("worker_metrics_listening", "port", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logger.Error("worker_metrics_server_error", "error", err)
	}
}
