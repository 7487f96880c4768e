package client

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"sqlgate/internal/domain/entity"
)

var (
	errNoChoices   = errors.New("backend returned no choices")
	errNoEmbedding = errors.New("backend returned no embedding")
)

// GeminiChat is the alternate generation backend, selected with
// LLM_PROVIDER=gemini. System messages become the system instruction;
// assistant turns map to the "model" role.
type GeminiChat struct {
	client    *genai.Client
	model     string
	maxTokens int
}

func NewGeminiChat(c *genai.Client, model string, maxTokens int) *GeminiChat {
	return &GeminiChat{
		client:    c,
		model:     model,
		maxTokens: maxTokens,
	}
}

func (g *GeminiChat) Generate(ctx context.Context, prompt entity.Prompt) (*entity.GenerationResult, error) {
	var system []string
	var contents []*genai.Content
	for _, m := range prompt {
		switch m.Role {
		case entity.RoleSystem:
			system = append(system, m.Content)
		case entity.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(0)),
		MaxOutputTokens: int32(g.maxTokens),
	}
	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return nil, &entity.GenerationError{Err: err}
	}

	res := &entity.GenerationResult{Content: result.Text()}
	if result.UsageMetadata != nil {
		in := int(result.UsageMetadata.PromptTokenCount)
		out := int(result.UsageMetadata.CandidatesTokenCount)
		res.InputTokens = &in
		res.OutputTokens = &out
	}
	return res, nil
}

// GeminiEmbedder is the embedding counterpart used when the gemini
// provider is selected.
type GeminiEmbedder struct {
	client *genai.Client
	model  string // e.g., "text-embedding-004"
}

func NewGeminiEmbedder(c *genai.Client, model string) *GeminiEmbedder {
	return &GeminiEmbedder{
		client: c,
		model:  model,
	}
}

func (e *GeminiEmbedder) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	res, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), nil)
	if err != nil {
		return nil, err
	}
	if len(res.Embeddings) == 0 {
		return nil, errNoEmbedding
	}
	return res.Embeddings[0].Values, nil
}
