package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"org-assistant/internal/core/domain"
	"org-assistant/internal/core/ports"
)

const (
	maxContextDocuments = 5
	maxHistoryTurns     = 10

	degradedNotice = "Note: the document index is currently unavailable, so this answer was produced without access to internal documents."

	inquirySystemPrompt = `You answer questions about the organization using only the context below.
If the context is insufficient to answer, say so directly.`

	docSearchSystemPrompt = `You locate internal documents relevant to the user's request.
Using only the context below, name the files most likely to contain the requested information.
If nothing in the context matches, say that no relevant document was found.`
)

// AnswerService orchestrates classification, structured resolution, semantic
// retrieval, completion and citation formatting. It always returns a payload;
// every stage failure is converted into a degraded answer at that stage.
type AnswerService struct {
	classifier *Classifier
	resolver   *Resolver
	retriever  *SemanticRetriever
	completer  ports.Completer
	topK       int
}

func NewAnswerService(
	classifier *Classifier,
	resolver *Resolver,
	retriever *SemanticRetriever,
	completer ports.Completer,
	topK int,
) *AnswerService {
	if topK <= 0 {
		topK = 5
	}
	return &AnswerService{
		classifier: classifier,
		resolver:   resolver,
		retriever:  retriever,
		completer:  completer,
		topK:       topK,
	}
}

func (s *AnswerService) Answer(
	ctx context.Context,
	question string,
	history []domain.ChatTurn,
	mode domain.AnswerMode,
) (payload *domain.AnswerPayload) {
	// Nothing downstream of this boundary may take the process down.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("answer_panic", "panic", r)
			payload = errorPayload(mode, fmt.Sprintf("internal failure: %v", r))
		}
	}()

	if mode != domain.ModeDocumentSearch {
		mode = domain.ModeInquiry
	}

	classification := s.classifier.Classify(question)
	defer func() {
		if payload != nil {
			payload.Structured = classification.Structured
		}
	}()
	if classification.Structured {
		if resolved, ok := s.resolver.Resolve(ctx, question, classification.Department, classification.Role); ok {
			return resolved
		}
		// The resolver found no department to filter on. That disagreement is
		// recoverable: reroute through the semantic path.
	}

	docs, degraded := s.retriever.Retrieve(ctx, question, s.topK)
	if len(docs) == 0 && degraded {
		text, err := s.completer.Complete(ctx, systemPromptFor(mode), boundHistory(history), question)
		if err != nil {
			return errorPayload(mode, completionErrorMessage(err))
		}
		return &domain.AnswerPayload{
			Text:      text + "\n\n" + degradedNotice,
			Citations: []domain.Citation{},
			Mode:      mode,
			Degraded:  true,
		}
	}

	prompt := systemPromptFor(mode)
	if len(docs) > 0 {
		prompt += "\n\nContext:\n" + buildContext(docs)
	}

	text, err := s.completer.Complete(ctx, prompt, boundHistory(history), question)
	if err != nil {
		return errorPayload(mode, completionErrorMessage(err))
	}

	citations := make([]domain.Citation, 0, 1+maxSecondaryCitations)
	primary, secondary := FormatCitations(docs)
	if primary != nil {
		citations = append(citations, *primary)
	}
	citations = append(citations, secondary...)

	return &domain.AnswerPayload{
		Text:      text,
		Citations: citations,
		Mode:      mode,
	}
}

func systemPromptFor(mode domain.AnswerMode) string {
	if mode == domain.ModeDocumentSearch {
		return docSearchSystemPrompt
	}
	return inquirySystemPrompt
}

func buildContext(docs []domain.IndexedDocument) string {
	n := len(docs)
	if n > maxContextDocuments {
		n = maxContextDocuments
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "[%d] source=%s\n%s\n\n", i+1, docs[i].Source, docs[i].Content)
	}
	return strings.TrimRight(b.String(), "\n")
}

// boundHistory returns the most recent turns without mutating the caller's
// slice; history is caller-owned shared state.
func boundHistory(history []domain.ChatTurn) []domain.ChatTurn {
	if len(history) <= maxHistoryTurns {
		return history
	}
	return history[len(history)-maxHistoryTurns:]
}

func errorPayload(mode domain.AnswerMode, message string) *domain.AnswerPayload {
	return &domain.AnswerPayload{
		Text:      message,
		Citations: []domain.Citation{},
		Mode:      mode,
		Degraded:  true,
	}
}

// completionErrorMessage sorts completion-service failures into user-facing
// remediation text by message content; none of them reach the caller as errors.
func completionErrorMessage(err error) string {
	msg := strings.ToLower(err.Error())
	var remediation string
	switch {
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "429") || strings.Contains(msg, "too many requests"):
		remediation = "The language model is receiving too many requests right now. Please wait a moment and try again."
	case strings.Contains(msg, "unauthorized") || strings.Contains(msg, "401") || strings.Contains(msg, "api key") || strings.Contains(msg, "forbidden"):
		remediation = "The language model rejected the service credentials."
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "connection") || strings.Contains(msg, "no such host") || strings.Contains(msg, "refused"):
		remediation = "The language model could not be reached over the network."
	default:
		remediation = "The language model returned an unexpected error."
	}
	return remediation + " " + adminContactSuffix
}
