// Package index provides in-memory vector retrieval over résumé fragments.
// It is pure similarity search: candidate-level logic stays in the engine.
package index

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/coder/hnsw"

	"github.com/spigell/cv-matcher/internal/ai"
)

var (
	// ErrEmptyIndex is returned when Query is called before any fragments were added.
	ErrEmptyIndex = errors.New("index is empty")
	// ErrStaleIndex is returned when the active embedding model differs from
	// the one the stored vectors were computed with.
	ErrStaleIndex = errors.New("index is stale: embedding model changed")
)

// Fragment is a chunked slice of one candidate's document text, the unit of retrieval.
type Fragment struct {
	CandidateID string
	Sequence    int
	Text        string
}

// Retrieved is a fragment returned by a query, ranked by descending similarity.
type Retrieved struct {
	Fragment Fragment
	Rank     int
	Score    float32
}

// Index is a similarity index over fragment embeddings backed by an HNSW graph.
// Keys are assigned in insertion order, which gives stable tie-breaking.
type Index struct {
	mu        sync.RWMutex
	embedder  ai.Embedder
	graph     *hnsw.Graph[uint64]
	fragments map[uint64]Fragment
	nextKey   uint64
	model     string
}

// New creates an empty index using the provided embedding capability.
// Vectors are normalized, so cosine distance matches the embedding metric.
func New(embedder ai.Embedder) *Index {
	graph := hnsw.NewGraph[uint64]()
	graph.Distance = hnsw.CosineDistance

	return &Index{
		embedder:  embedder,
		graph:     graph,
		fragments: make(map[uint64]Fragment),
	}
}

// Add embeds the fragments and inserts them into the graph.
func (ix *Index) Add(ctx context.Context, fragments []Fragment) error {
	if len(fragments) == 0 {
		return nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.model == "" {
		ix.model = ix.embedder.Model()
	}

	for _, fragment := range fragments {
		vec, err := ix.embedder.EmbedContent(ctx, fragment.Text)
		if err != nil {
			return fmt.Errorf("embed fragment %s/%d: %w", fragment.CandidateID, fragment.Sequence, err)
		}

		normalized := make([]float32, len(vec))
		copy(normalized, vec)
		normalizeInPlace(normalized)

		key := ix.nextKey
		ix.nextKey++

		ix.graph.Add(hnsw.MakeNode(key, normalized))
		ix.fragments[key] = fragment
	}

	return nil
}

// Len returns the number of indexed fragments.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.fragments)
}

// Query returns up to k fragments sorted by descending similarity to the
// query text. Ties are broken by insertion order, stable across calls.
func (ix *Index) Query(ctx context.Context, text string, k int) ([]Retrieved, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.fragments) == 0 {
		return nil, ErrEmptyIndex
	}

	if model := ix.embedder.Model(); model != ix.model {
		return nil, fmt.Errorf("%w: indexed with %q, active is %q", ErrStaleIndex, ix.model, model)
	}

	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	vec, err := ix.embedder.EmbedContent(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	query := make([]float32, len(vec))
	copy(query, vec)
	normalizeInPlace(query)

	nodes := ix.graph.Search(query, k)

	type scored struct {
		key      uint64
		distance float32
	}

	candidates := make([]scored, 0, len(nodes))
	for _, node := range nodes {
		if _, ok := ix.fragments[node.Key]; !ok {
			continue
		}
		candidates = append(candidates, scored{
			key:      node.Key,
			distance: ix.graph.Distance(query, node.Value),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].key < candidates[j].key
	})

	results := make([]Retrieved, 0, len(candidates))
	for i, c := range candidates {
		results = append(results, Retrieved{
			Fragment: ix.fragments[c.key],
			Rank:     i + 1,
			Score:    1 - c.distance,
		})
	}

	return results, nil
}

func normalizeInPlace(v []float32) {
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
