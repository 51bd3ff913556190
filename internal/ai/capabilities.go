package ai

import "context"

// Generator produces a single textual completion for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Embedder converts text into a vector representation. The metric implied by
// the vectors (cosine over normalized vectors) is fixed for the lifetime of
// an engine instance.
type Embedder interface {
	EmbedContent(ctx context.Context, text string) ([]float32, error)
	Model() string
}
