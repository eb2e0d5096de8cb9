package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"org-assistant/internal/core/domain"
	"org-assistant/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	genModel   string
	embedModel string
	httpClient *http.Client
}

func New(baseURL, genModel, embedModel string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		genModel:   genModel,
		embedModel: embedModel,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

type Completer struct {
	client   *Client
	executor *resilience.Executor
}

func NewCompleter(client *Client, executor *resilience.Executor) *Completer {
	return &Completer{client: client, executor: executor}
}

func (c *Completer) Complete(ctx context.Context, systemPrompt string, history []domain.ChatTurn, userMessage string) (string, error) {
	messages := buildChatMessages(systemPrompt, history, userMessage)
	request := map[string]any{
		"model":    c.client.genModel,
		"messages": messages,
		"stream":   false,
	}

	var response struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	err := c.execute(ctx, "ollama_chat", func(ctx context.Context) error {
		return c.client.postJSON(ctx, "/api/chat", request, &response, "chat")
	})
	if err != nil {
		return "", wrapTemporaryIfNeeded("ollama chat", err)
	}
	return strings.TrimSpace(response.Message.Content), nil
}

func (c *Completer) execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	if c.executor == nil {
		return fn(ctx)
	}
	return c.executor.Execute(ctx, operation, fn, classifyOllamaError)
}

type Embedder struct {
	client   *Client
	executor *resilience.Executor
}

func NewEmbedder(client *Client, executor *resilience.Executor) *Embedder {
	return &Embedder{client: client, executor: executor}
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	request := map[string]any{
		"model": e.client.embedModel,
		"input": texts,
	}

	var response struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	err := e.execute(ctx, "ollama_embed", func(ctx context.Context) error {
		return e.client.postJSON(ctx, "/api/embed", request, &response, "embed")
	})
	if err != nil {
		return nil, wrapTemporaryIfNeeded("ollama embed", err)
	}
	if len(response.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: %d texts, %d vectors", len(texts), len(response.Embeddings))
	}
	return response.Embeddings, nil
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}
	return vectors[0], nil
}

func (e *Embedder) execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	if e.executor == nil {
		return fn(ctx)
	}
	return e.executor.Execute(ctx, operation, fn, classifyOllamaError)
}
