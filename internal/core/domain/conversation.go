package domain

import "time"

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatTurn is one entry of the caller-owned conversation history. The core
// reads history and returns new turns; it never mutates the slice it is given.
type ChatTurn struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// ConversationMessage is a persisted transcript entry, owned by the chat
// shell, not by the answering core.
type ConversationMessage struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Role      ChatRole   `json:"role"`
	Content   string     `json:"content"`
	Mode      AnswerMode `json:"mode,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
