package bootstrap

import (
	"context"
	"fmt"

	"org-assistant/internal/config"
	"org-assistant/internal/core/ports"
	"org-assistant/internal/core/usecase"
	"org-assistant/internal/infrastructure/chunking"
	"org-assistant/internal/infrastructure/extractor"
	"org-assistant/internal/infrastructure/llm/ollama"
	"org-assistant/internal/infrastructure/queue/nats"
	"org-assistant/internal/infrastructure/repository/postgres"
	"org-assistant/internal/infrastructure/resilience"
	"org-assistant/internal/infrastructure/roster"
	"org-assistant/internal/infrastructure/storage/localfs"
	"org-assistant/internal/infrastructure/vector/qdrant"
)

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	Store     ports.ConversationStore
	AnswerSvc ports.Answerer
	SyncUC    ports.CorpusSyncer
	Corpus    *localfs.Corpus

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	store := postgres.NewConversationRepository(db)
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	corpus, err := localfs.NewCorpus(cfg.CorpusDir)
	if err != nil {
		return nil, fmt.Errorf("init corpus dir: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultPolicy())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel)
	completer := ollama.NewCompleter(ollamaClient, executor)
	embedder := ollama.NewEmbedder(ollamaClient, executor)

	vectorDB := qdrant.New(cfg.QdrantURL, cfg.QdrantCollection)
	chunker := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	sources := extractor.NewRouter()
	records := roster.NewStore(cfg.RosterPath)

	vocab, err := usecase.LoadVocabulary(cfg.VocabPath)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	classifier := usecase.NewClassifier(vocab)
	resolver := usecase.NewResolver(records, vocab)
	retriever := usecase.NewSemanticRetriever(embedder, vectorDB)
	answerSvc := usecase.NewAnswerService(classifier, resolver, retriever, completer, cfg.RAGTopK)
	syncUC := usecase.NewCorpusSyncUseCase(records, sources, chunker, embedder, vectorDB, cfg.RosterPath)

	return &App{
		Config: cfg,

		Queue:     queue,
		Store:     store,
		AnswerSvc: answerSvc,
		SyncUC:    syncUC,
		Corpus:    corpus,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
