package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultModel          = "gpt-4o-mini"
	defaultEmbeddingModel = "text-embedding-3-small"
)

// Client provides generation and embeddings via the OpenAI API. It is the
// alternative provider to Gemini and satisfies the same capability interfaces.
type Client struct {
	client         *openai.Client
	modelName      string
	embeddingModel string
}

// NewClient creates a new Client for the OpenAI API.
func NewClient(apiKey, model, embeddingModel string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if embeddingModel = strings.TrimSpace(embeddingModel); embeddingModel == "" {
		embeddingModel = defaultEmbeddingModel
	}

	return &Client{
		client:         openai.NewClient(apiKey),
		modelName:      model,
		embeddingModel: embeddingModel,
	}, nil
}

// GenerateContent sends the prompt as a single user message and returns the completion.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("openai client is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai api returned no choices")
	}

	output := strings.TrimSpace(resp.Choices[0].Message.Content)
	if output == "" {
		return "", errors.New("openai api returned empty response")
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

// Embedding exposes the OpenAI embedding model behind the Embedder capability.
type Embedding struct {
	client *Client
}

// EmbedContent returns the L2-normalized embedding vector for the provided text.
func (e *Embedding) EmbedContent(ctx context.Context, text string) ([]float32, error) {
	if e == nil || e.client == nil || e.client.client == nil {
		return nil, errors.New("openai client is not initialized")
	}

	if strings.TrimSpace(text) == "" {
		return nil, errors.New("text must not be empty")
	}

	resp, err := e.client.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.client.embeddingModel),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("openai api returned no embedding data")
	}

	vec := make([]float32, len(resp.Data[0].Embedding))
	copy(vec, resp.Data[0].Embedding)
	l2normalize(vec)

	return vec, nil
}

func (e *Embedding) Model() string {
	if e == nil || e.client == nil {
		return ""
	}
	return e.client.embeddingModel
}

func l2normalize(v []float32) {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range v {
		v[i] *= inv
	}
}
