package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"org-assistant/internal/core/domain"
)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
	Mode      string `json:"mode"`
}

type chatResponse struct {
	SessionID string            `json:"session_id"`
	Answer    string            `json:"answer"`
	Citations []domain.Citation `json:"citations"`
	Mode      domain.AnswerMode `json:"mode"`
	Degraded  bool              `json:"degraded"`
}

func (rt *Router) chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	history := rt.loadHistory(r, req.SessionID)

	start := time.Now()
	payload := rt.answerer.Answer(r.Context(), req.Question, history, domain.AnswerMode(req.Mode))
	if rt.metrics != nil {
		rt.metrics.RecordAnswer(serviceName, payload, time.Since(start))
		rt.metrics.RecordClassifierRoute(serviceName, payload.Structured)
	}

	rt.persistTurn(r, req, payload)

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: req.SessionID,
		Answer:    payload.Text,
		Citations: payload.Citations,
		Mode:      payload.Mode,
		Degraded:  payload.Degraded,
	})
}

func (rt *Router) loadHistory(r *http.Request, sessionID string) []domain.ChatTurn {
	if rt.store == nil {
		return nil
	}
	messages, err := rt.store.ListRecentMessages(r.Context(), sessionID, rt.historyLimit)
	if err != nil {
		slog.Warn("history_load_failed",
			"request_id", requestIDFromContext(r.Context()),
			"session_id", sessionID,
			"error", err,
		)
		return nil
	}
	turns := make([]domain.ChatTurn, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, domain.ChatTurn{Role: msg.Role, Text: msg.Content})
	}
	return turns
}

// persistTurn records both sides of the exchange. Persistence failures are
// logged and swallowed: the caller already has the answer in hand.
func (rt *Router) persistTurn(r *http.Request, req chatRequest, payload *domain.AnswerPayload) {
	if rt.store == nil {
		return
	}
	now := time.Now().UTC()
	entries := []domain.ConversationMessage{
		{
			ID:        uuid.NewString(),
			SessionID: req.SessionID,
			Role:      domain.RoleUser,
			Content:   req.Question,
			CreatedAt: now,
		},
		{
			ID:        uuid.NewString(),
			SessionID: req.SessionID,
			Role:      domain.RoleAssistant,
			Content:   payload.Text,
			Mode:      payload.Mode,
			CreatedAt: now.Add(time.Millisecond),
		},
	}
	for _, entry := range entries {
		if err := rt.store.AppendMessage(r.Context(), entry); err != nil {
			slog.Warn("transcript_persist_failed",
				"request_id", requestIDFromContext(r.Context()),
				"session_id", req.SessionID,
				"error", err,
			)
			return
		}
	}
}
