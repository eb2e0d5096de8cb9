package ollama

import (
	"strings"

	"org-assistant/internal/core/domain"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func buildChatMessages(systemPrompt string, history []domain.ChatTurn, userMessage string) []chatMessage {
	messages := make([]chatMessage, 0, len(history)+2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	for _, turn := range history {
		messages = append(messages, chatMessage{Role: string(turn.Role), Content: turn.Text})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userMessage})
	return messages
}
