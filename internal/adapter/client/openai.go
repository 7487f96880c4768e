// Package client holds the adapters for the generation and embedding
// backends. Each backend implements the narrow ChatModel / Embedder
// capabilities the orchestrator composes.
package client

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"sqlgate/internal/domain/entity"
)

// OpenAIConfig selects between a plain OpenAI endpoint and an Azure
// deployment. Azure is used whenever Endpoint is set.
type OpenAIConfig struct {
	APIKey     string
	Endpoint   string // Azure resource endpoint; empty for api.openai.com
	APIVersion string
	Model      string
}

// NewOpenAIAPIClient builds the shared low-level client the chat and
// embedding adapters are constructed from.
func NewOpenAIAPIClient(cfg OpenAIConfig) *openai.Client {
	if cfg.Endpoint != "" {
		azure := openai.DefaultAzureConfig(cfg.APIKey, strings.TrimSuffix(cfg.Endpoint, "/"))
		if cfg.APIVersion != "" {
			azure.APIVersion = cfg.APIVersion
		}
		return openai.NewClientWithConfig(azure)
	}
	return openai.NewClient(cfg.APIKey)
}

// OpenAIChat submits role-tagged prompts to a chat-completion endpoint
// with deterministic sampling (temperature zero) and a bounded output
// length, so identical prompts yield reproducible output for auditing.
type OpenAIChat struct {
	client    *openai.Client
	model     string
	maxTokens int
}

func NewOpenAIChat(c *openai.Client, model string, maxTokens int) *OpenAIChat {
	return &OpenAIChat{
		client:    c,
		model:     model,
		maxTokens: maxTokens,
	}
}

func (o *OpenAIChat) Generate(ctx context.Context, prompt entity.Prompt) (*entity.GenerationResult, error) {
	messages := make([]openai.ChatCompletionMessage, len(prompt))
	for i, m := range prompt {
		messages[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: 0,
		MaxTokens:   o.maxTokens,
	})
	if err != nil {
		return nil, &entity.GenerationError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &entity.GenerationError{Err: errNoChoices}
	}

	in := resp.Usage.PromptTokens
	out := resp.Usage.CompletionTokens
	return &entity.GenerationResult{
		Content:      resp.Choices[0].Message.Content,
		InputTokens:  &in,
		OutputTokens: &out,
	}, nil
}

// OpenAIEmbedder turns text into the vectors the knowledge store
// indexes.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string // e.g., "text-embedding-3-small"
}

func NewOpenAIEmbedder(c *openai.Client, model string) *OpenAIEmbedder {
	return &OpenAIEmbedder{
		client: c,
		model:  model,
	}
}

func (e *OpenAIEmbedder) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: []string{text},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errNoEmbedding
	}
	return resp.Data[0].Embedding, nil
}
