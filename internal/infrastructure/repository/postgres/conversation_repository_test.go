package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"org-assistant/internal/core/domain"
)

func newRepoWithMock(t *testing.T) (*ConversationRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &ConversationRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestAppendMessageInsertsRow(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	created := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO conversation_messages").
		WithArgs("m1", "s1", "user", "who is in HR?", string(domain.ModeStructured), created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AppendMessage(context.Background(), domain.ConversationMessage{
		ID:        "m1",
		SessionID: "s1",
		Role:      domain.RoleUser,
		Content:   "who is in HR?",
		Mode:      domain.ModeStructured,
		CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAppendMessageStoresNullForEmptyMode(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO conversation_messages").
		WithArgs("m1", "s1", "assistant", "hello", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AppendMessage(context.Background(), domain.ConversationMessage{
		ID:        "m1",
		SessionID: "s1",
		Role:      domain.RoleAssistant,
		Content:   "hello",
	})
	if err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListRecentMessagesReversesToChronologicalOrder(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	newer := time.Date(2026, 8, 30, 10, 5, 0, 0, time.UTC)
	older := newer.Add(-5 * time.Minute)
	rows := sqlmock.NewRows([]string{"id", "session_id", "role", "content", "mode", "created_at"}).
		AddRow("m2", "s1", "assistant", "answer", "inquiry", newer).
		AddRow("m1", "s1", "user", "question", "", older)
	mock.ExpectQuery("SELECT id, session_id, role, content").
		WithArgs("s1", 10).
		WillReturnRows(rows)

	out, err := repo.ListRecentMessages(context.Background(), "s1", 10)
	if err != nil {
		t.Fatalf("ListRecentMessages() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(out))
	}
	if out[0].ID != "m1" || out[1].ID != "m2" {
		t.Fatalf("expected chronological order, got %v then %v", out[0].ID, out[1].ID)
	}
	if out[1].Mode != domain.ModeInquiry {
		t.Fatalf("unexpected mode: %q", out[1].Mode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListRecentMessagesZeroLimitSkipsQuery(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	out, err := repo.ListRecentMessages(context.Background(), "s1", 0)
	if err != nil {
		t.Fatalf("ListRecentMessages() error = %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil result, got %v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListRecentMessagesPropagatesQueryError(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	dbErr := errors.New("connection reset")
	mock.ExpectQuery("SELECT id, session_id, role, content").
		WithArgs("s1", 5).
		WillReturnError(dbErr)

	_, err := repo.ListRecentMessages(context.Background(), "s1", 5)
	if err == nil || !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped query error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
