package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultModel          = "gemini-2.5-flash"
	defaultEmbeddingModel = "gemini-embedding-001"
)

// Client wraps the Google GenAI client to provide prompt-based generation and
// text embeddings from the same API key.
type Client struct {
	client         *genai.Client
	modelName      string
	embeddingModel string
}

// NewClient creates a new Client configured for the Gemini API backend.
func NewClient(ctx context.Context, apiKey, model, embeddingModel string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if embeddingModel = strings.TrimSpace(embeddingModel); embeddingModel == "" {
		embeddingModel = defaultEmbeddingModel
	}

	return &Client{client: client, modelName: model, embeddingModel: embeddingModel}, nil
}

// GenerateContent sends the prompt to Gemini and returns the joined textual response.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini client is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}

// Embedding returns an Embedder view of the client bound to its embedding model.
func (c *Client) Embedding() *Embedding {
	return &Embedding{client: c}
}

// Embedding exposes the Gemini embedding model behind the Embedder capability.
type Embedding struct {
	client *Client
}

// EmbedContent returns the embedding vector for the provided text.
func (e *Embedding) EmbedContent(ctx context.Context, text string) ([]float32, error) {
	if e == nil || e.client == nil || e.client.client == nil {
		return nil, errors.New("gemini client is not initialized")
	}

	if strings.TrimSpace(text) == "" {
		return nil, errors.New("text must not be empty")
	}

	resp, err := e.client.client.Models.EmbedContent(ctx, e.client.embeddingModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("gemini api returned empty embedding")
	}

	return resp.Embeddings[0].Values, nil
}

func (e *Embedding) Model() string {
	if e == nil || e.client == nil {
		return ""
	}
	return e.client.embeddingModel
}
