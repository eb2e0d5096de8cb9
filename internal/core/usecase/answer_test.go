package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"org-assistant/internal/core/domain"
)

type completerFake struct {
	calls    int
	system   string
	history  []domain.ChatTurn
	response string
	err      error
	panics   bool
}

func (f *completerFake) Complete(_ context.Context, systemPrompt string, history []domain.ChatTurn, _ string) (string, error) {
	f.calls++
	f.system = systemPrompt
	f.history = history
	if f.panics {
		panic("completer exploded")
	}
	if f.err != nil {
		return "", f.err
	}
	if f.response == "" {
		return "generated answer", nil
	}
	return f.response, nil
}

func newAnswerService(records []domain.Record, searcher *searcherFake, completer *completerFake) *AnswerService {
	vocab := DefaultVocabulary()
	return NewAnswerService(
		NewClassifier(vocab),
		NewResolver(&recordSourceFake{records: records}, vocab),
		NewSemanticRetriever(&embedderFake{}, searcher),
		completer,
		5,
	)
}

func TestAnswerStructuredRouteSkipsCompletion(t *testing.T) {
	completer := &completerFake{}
	svc := newAnswerService(testRoster(), &searcherFake{}, completer)

	payload := svc.Answer(context.Background(), "List employees in the HR department", nil, domain.ModeInquiry)
	if payload.Mode != domain.ModeStructured {
		t.Fatalf("mode = %s, want structured", payload.Mode)
	}
	if !strings.Contains(payload.Text, "9 employees found") {
		t.Fatalf("expected HR roster, got:\n%s", payload.Text)
	}
	if completer.calls != 0 {
		t.Fatalf("structured route must not call the completion service")
	}
}

func TestAnswerReportsClassifierRoute(t *testing.T) {
	completer := &completerFake{}
	searcher := &searcherFake{docs: []domain.IndexedDocument{fileDoc("a.txt", 0)}}
	svc := newAnswerService(testRoster(), searcher, completer)

	payload := svc.Answer(context.Background(), "List employees in the HR department", nil, domain.ModeInquiry)
	if !payload.Structured {
		t.Fatalf("roster listing must report a structured route")
	}

	payload = svc.Answer(context.Background(), "What is the vacation policy?", nil, domain.ModeInquiry)
	if payload.Structured {
		t.Fatalf("policy question must report a document route")
	}

	// Classified structured but rerouted by the resolver: the payload still
	// reports the classifier's decision.
	payload = svc.Answer(context.Background(), "Show me a list of all employees", nil, domain.ModeInquiry)
	if !payload.Structured {
		t.Fatalf("rerouted listing must still report the structured classification")
	}
}

func TestAnswerReroutesWhenResolverFindsNoDepartment(t *testing.T) {
	completer := &completerFake{}
	searcher := &searcherFake{docs: []domain.IndexedDocument{fileDoc("orgchart.txt", 0)}}
	svc := newAnswerService(testRoster(), searcher, completer)

	// Classified structured (noun+verb), but no department vocabulary match:
	// the assembler must fall back to the semantic path.
	payload := svc.Answer(context.Background(), "Show me a list of all employees", nil, domain.ModeInquiry)
	if payload.Mode != domain.ModeInquiry {
		t.Fatalf("mode = %s, want inquiry", payload.Mode)
	}
	if completer.calls != 1 {
		t.Fatalf("expected one completion call, got %d", completer.calls)
	}
	if len(payload.Citations) != 1 || payload.Citations[0].Source != "orgchart.txt" {
		t.Fatalf("expected citation from retrieval, got %+v", payload.Citations)
	}
}

func TestAnswerDegradedModeStillAnswers(t *testing.T) {
	completer := &completerFake{response: "best effort answer"}
	searcher := &searcherFake{err: errors.New("index unreachable")}
	svc := newAnswerService(testRoster(), searcher, completer)

	payload := svc.Answer(context.Background(), "What is the meeting-minutes policy?", nil, domain.ModeInquiry)
	if !payload.Degraded {
		t.Fatalf("expected degraded payload")
	}
	if !strings.Contains(payload.Text, "best effort answer") {
		t.Fatalf("expected completion text, got:\n%s", payload.Text)
	}
	if !strings.Contains(payload.Text, "document index is currently unavailable") {
		t.Fatalf("expected degraded notice, got:\n%s", payload.Text)
	}
	if len(payload.Citations) != 0 {
		t.Fatalf("degraded answers carry no citations, got %+v", payload.Citations)
	}
}

func TestAnswerCompletionRateLimitMessage(t *testing.T) {
	completer := &completerFake{err: errors.New("429 too many requests")}
	searcher := &searcherFake{docs: []domain.IndexedDocument{fileDoc("a.txt", 0)}}
	svc := newAnswerService(testRoster(), searcher, completer)

	payload := svc.Answer(context.Background(), "What is our travel reimbursement process?", nil, domain.ModeInquiry)
	if !strings.Contains(payload.Text, "too many requests right now") {
		t.Fatalf("expected rate-limit remediation, got:\n%s", payload.Text)
	}
	if !strings.Contains(payload.Text, "contact an administrator") {
		t.Fatalf("expected administrator suffix, got:\n%s", payload.Text)
	}
}

func TestAnswerCompletionAuthMessage(t *testing.T) {
	completer := &completerFake{err: errors.New("401 unauthorized: bad api key")}
	searcher := &searcherFake{docs: []domain.IndexedDocument{fileDoc("a.txt", 0)}}
	svc := newAnswerService(testRoster(), searcher, completer)

	payload := svc.Answer(context.Background(), "What benefits do we offer?", nil, domain.ModeInquiry)
	if !strings.Contains(payload.Text, "rejected the service credentials") {
		t.Fatalf("expected auth remediation, got:\n%s", payload.Text)
	}
}

func TestAnswerDocumentSearchModePrompt(t *testing.T) {
	completer := &completerFake{}
	searcher := &searcherFake{docs: []domain.IndexedDocument{fileDoc("minutes.pdf", 2)}}
	svc := newAnswerService(testRoster(), searcher, completer)

	payload := svc.Answer(context.Background(), "Where are the onboarding materials?", nil, domain.ModeDocumentSearch)
	if payload.Mode != domain.ModeDocumentSearch {
		t.Fatalf("mode = %s, want document-search", payload.Mode)
	}
	if !strings.Contains(completer.system, "locate internal documents") {
		t.Fatalf("expected document-search system prompt, got:\n%s", completer.system)
	}
	if !strings.Contains(completer.system, "source=minutes.pdf") {
		t.Fatalf("expected retrieved context in prompt, got:\n%s", completer.system)
	}
}

func TestAnswerHistoryIsBounded(t *testing.T) {
	completer := &completerFake{}
	searcher := &searcherFake{docs: []domain.IndexedDocument{fileDoc("a.txt", 0)}}
	svc := newAnswerService(testRoster(), searcher, completer)

	history := make([]domain.ChatTurn, 25)
	for i := range history {
		history[i] = domain.ChatTurn{Role: domain.RoleUser, Text: "turn"}
	}

	svc.Answer(context.Background(), "What holidays do we observe?", history, domain.ModeInquiry)
	if len(completer.history) != maxHistoryTurns {
		t.Fatalf("expected history bounded to %d turns, got %d", maxHistoryTurns, len(completer.history))
	}
	if len(history) != 25 {
		t.Fatalf("caller-owned history must not be mutated")
	}
}

func TestAnswerRecoversFromPanic(t *testing.T) {
	completer := &completerFake{panics: true}
	searcher := &searcherFake{docs: []domain.IndexedDocument{fileDoc("a.txt", 0)}}
	svc := newAnswerService(testRoster(), searcher, completer)

	payload := svc.Answer(context.Background(), "What is our mission?", nil, domain.ModeInquiry)
	if payload == nil {
		t.Fatalf("panics must not cross the assembler boundary")
	}
	if !strings.Contains(payload.Text, "internal failure") {
		t.Fatalf("expected failure message, got:\n%s", payload.Text)
	}
}

func TestAnswerStructuredPseudoDocumentsNeverCited(t *testing.T) {
	completer := &completerFake{}
	searcher := &searcherFake{docs: []domain.IndexedDocument{
		{Source: "roster.xlsx", Kind: domain.KindStructuredRecord, Content: "employee"},
		{Source: "roster.xlsx", Kind: domain.KindStructuredSummary, Content: "summary"},
		fileDoc("handbook.pdf", 4),
	}}
	svc := newAnswerService(testRoster(), searcher, completer)

	payload := svc.Answer(context.Background(), "What does the handbook say on parental leave?", nil, domain.ModeInquiry)
	if len(payload.Citations) != 1 {
		t.Fatalf("expected a single file citation, got %+v", payload.Citations)
	}
	if payload.Citations[0].Source != "handbook.pdf" || !payload.Citations[0].Primary {
		t.Fatalf("unexpected citation: %+v", payload.Citations[0])
	}
}
