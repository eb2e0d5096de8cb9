package ports

import (
	"context"

	"org-assistant/internal/core/domain"
)

// Answerer is the caller-facing contract of the answering core. It always
// yields a payload; stage failures surface as degraded answers, never errors.
type Answerer interface {
	Answer(ctx context.Context, question string, history []domain.ChatTurn, mode domain.AnswerMode) *domain.AnswerPayload
}

// CorpusSyncer is the inbound contract of the ingestion worker. Both
// operations report how many documents were indexed.
type CorpusSyncer interface {
	SyncPath(ctx context.Context, path string) (int, error)
	SyncRoster(ctx context.Context) (int, error)
}
