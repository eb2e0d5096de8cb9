package ports

import (
	"context"

	"org-assistant/internal/core/domain"
)

// RecordSource provides read-only access to the personnel roster.
type RecordSource interface {
	Records(ctx context.Context) ([]domain.Record, error)
}

// Embedder builds vectors for corpus segments and query text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorSearcher performs similarity search over the document index.
// Results preserve the index's ranking order.
type VectorSearcher interface {
	Search(ctx context.Context, queryVector []float32, limit int) ([]domain.IndexedDocument, error)
}

// VectorIndexer writes documents into the semantic index. Owned by the
// ingestion worker; the answering core never calls it.
type VectorIndexer interface {
	IndexDocuments(ctx context.Context, docs []domain.IndexedDocument, vectors [][]float32) error
}

// Completer is the external completion service: given a system prompt, prior
// turns and the user message, produce answer text.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, history []domain.ChatTurn, userMessage string) (string, error)
}

// Chunker splits extracted text into indexable segments.
type Chunker interface {
	Split(text string) []string
}

// SourceExtractor extracts text from a corpus file, one segment per page for
// paginated formats and a single zero-page segment otherwise.
type SourceExtractor interface {
	Extract(ctx context.Context, path string) ([]domain.SourceSegment, error)
}

// MessageQueue carries corpus-sync events between the shell and the worker.
type MessageQueue interface {
	PublishCorpusSync(ctx context.Context, path string) error
	SubscribeCorpusSync(ctx context.Context, handler func(context.Context, string) error) error
}

// ConversationStore persists chat transcripts for the shell. The answering
// core itself is stateless between calls.
type ConversationStore interface {
	AppendMessage(ctx context.Context, message domain.ConversationMessage) error
	ListRecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.ConversationMessage, error)
}
