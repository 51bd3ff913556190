package engine

import (
	"fmt"
	"time"
)

// Defaults tuned for typical one-to-two page résumés.
const (
	DefaultChunkSize         = 600
	DefaultChunkOverlap      = 100
	DefaultRetrieverK        = 15
	DefaultMinDocuments      = 2
	DefaultMaxDocuments      = 5
	DefaultGenerationTimeout = 90 * time.Second
)

// Config is the immutable engine configuration, fixed at build time.
// There is no process-wide state: every engine carries its own copy.
type Config struct {
	// ChunkSize is the fragment window length in characters.
	ChunkSize int
	// ChunkOverlap is the number of characters shared by adjacent fragments.
	ChunkOverlap int
	// RetrieverK is the number of fragments retrieved per query.
	RetrieverK int
	// MinDocuments and MaxDocuments bound the accepted document count.
	MinDocuments int
	MaxDocuments int
	// GenerationTimeout bounds the single generation call per query.
	// Zero disables the engine-imposed deadline.
	GenerationTimeout time.Duration
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:         DefaultChunkSize,
		ChunkOverlap:      DefaultChunkOverlap,
		RetrieverK:        DefaultRetrieverK,
		MinDocuments:      DefaultMinDocuments,
		MaxDocuments:      DefaultMaxDocuments,
		GenerationTimeout: DefaultGenerationTimeout,
	}
}

// Validate rejects configurations the engine cannot operate with.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap must not be negative, got %d", ErrInvalidConfig, c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d", ErrInvalidConfig, c.ChunkOverlap, c.ChunkSize)
	}
	if c.RetrieverK <= 0 {
		return fmt.Errorf("%w: retriever k must be positive, got %d", ErrInvalidConfig, c.RetrieverK)
	}
	if c.MinDocuments <= 0 {
		return fmt.Errorf("%w: minimum document count must be positive, got %d", ErrInvalidConfig, c.MinDocuments)
	}
	if c.MaxDocuments < c.MinDocuments {
		return fmt.Errorf("%w: maximum document count %d is below minimum %d", ErrInvalidConfig, c.MaxDocuments, c.MinDocuments)
	}
	if c.GenerationTimeout < 0 {
		return fmt.Errorf("%w: generation timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}
