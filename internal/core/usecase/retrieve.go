package usecase

import (
	"context"
	"log/slog"

	"org-assistant/internal/core/domain"
	"org-assistant/internal/core/ports"
)

// SemanticRetriever wraps the external vector index. Any embedding or search
// failure degrades to an empty result instead of propagating an error; the
// caller decides what a degraded answer looks like.
type SemanticRetriever struct {
	embedder ports.Embedder
	searcher ports.VectorSearcher
}

func NewSemanticRetriever(embedder ports.Embedder, searcher ports.VectorSearcher) *SemanticRetriever {
	return &SemanticRetriever{embedder: embedder, searcher: searcher}
}

// Retrieve returns at most k documents in the index's ranking order. The
// second return value reports degraded mode.
func (r *SemanticRetriever) Retrieve(ctx context.Context, question string, k int) ([]domain.IndexedDocument, bool) {
	if k <= 0 {
		k = 5
	}

	vector, err := r.embedder.EmbedQuery(ctx, question)
	if err != nil {
		slog.Warn("retrieval_degraded", "stage", "embed", "error", err)
		return nil, true
	}

	docs, err := r.searcher.Search(ctx, vector, k)
	if err != nil {
		slog.Warn("retrieval_degraded", "stage", "search", "error", err)
		return nil, true
	}
	return docs, false
}
