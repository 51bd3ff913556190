package index

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// keywordEmbedder maps text onto deterministic term-count vectors.
type keywordEmbedder struct {
	model string
}

var vocabulary = []string{"python", "golang", "kubernetes", "management"}

func (e *keywordEmbedder) EmbedContent(_ context.Context, text string) ([]float32, error) {
	lower := strings.ToLower(text)
	vec := make([]float32, len(vocabulary)+1)
	for i, term := range vocabulary {
		vec[i] = float32(strings.Count(lower, term))
	}
	vec[len(vocabulary)] = 0.1
	return vec, nil
}

func (e *keywordEmbedder) Model() string { return e.model }

func newTestIndex(t *testing.T, fragments []Fragment) (*Index, *keywordEmbedder) {
	t.Helper()

	embedder := &keywordEmbedder{model: "keyword-v1"}
	ix := New(embedder)
	if err := ix.Add(context.Background(), fragments); err != nil {
		t.Fatalf("unexpected add error: %v", err)
	}

	return ix, embedder
}

func TestQueryEmptyIndex(t *testing.T) {
	ix := New(&keywordEmbedder{model: "keyword-v1"})

	if _, err := ix.Query(context.Background(), "python", 5); !errors.Is(err, ErrEmptyIndex) {
		t.Fatalf("expected ErrEmptyIndex, got %v", err)
	}
}

func TestQueryOrdering(t *testing.T) {
	ix, _ := newTestIndex(t, []Fragment{
		{CandidateID: "bob", Sequence: 0, Text: "management and budget planning"},
		{CandidateID: "alice", Sequence: 0, Text: "python python kubernetes"},
		{CandidateID: "alice", Sequence: 1, Text: "python scripting"},
	})

	results, err := ix.Query(context.Background(), "python experience", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// Both python fragments must outrank the management one.
	if results[0].Fragment.CandidateID != "alice" || results[1].Fragment.CandidateID != "alice" {
		t.Fatalf("expected alice fragments first, got %s then %s",
			results[0].Fragment.CandidateID, results[1].Fragment.CandidateID)
	}
	if results[2].Fragment.CandidateID != "bob" {
		t.Fatalf("expected bob fragment last, got %s", results[2].Fragment.CandidateID)
	}

	for i, result := range results {
		if result.Rank != i+1 {
			t.Fatalf("expected rank %d, got %d", i+1, result.Rank)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Fatalf("scores must be non-increasing: %v then %v", results[i-1].Score, results[i].Score)
		}
	}
}

func TestQueryTiesBreakByInsertionOrder(t *testing.T) {
	ix, _ := newTestIndex(t, []Fragment{
		{CandidateID: "second", Sequence: 0, Text: "golang services"},
		{CandidateID: "first", Sequence: 0, Text: "golang services"},
	})

	// Identical texts embed identically; insertion order decides.
	for range 3 {
		results, err := ix.Query(context.Background(), "golang services", 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[0].Fragment.CandidateID != "second" || results[1].Fragment.CandidateID != "first" {
			t.Fatalf("tie not broken by insertion order: %s then %s",
				results[0].Fragment.CandidateID, results[1].Fragment.CandidateID)
		}
	}
}

func TestQueryKLargerThanIndex(t *testing.T) {
	ix, _ := newTestIndex(t, []Fragment{
		{CandidateID: "alice", Sequence: 0, Text: "python"},
		{CandidateID: "bob", Sequence: 0, Text: "management"},
	})

	results, err := ix.Query(context.Background(), "python", 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected all fragments when k exceeds the index size, got %d", len(results))
	}
}

func TestQueryStaleIndex(t *testing.T) {
	ix, embedder := newTestIndex(t, []Fragment{
		{CandidateID: "alice", Sequence: 0, Text: "python"},
	})

	embedder.model = "keyword-v2"

	if _, err := ix.Query(context.Background(), "python", 1); !errors.Is(err, ErrStaleIndex) {
		t.Fatalf("expected ErrStaleIndex after model change, got %v", err)
	}
}

func TestLen(t *testing.T) {
	ix, _ := newTestIndex(t, []Fragment{
		{CandidateID: "alice", Sequence: 0, Text: "python"},
		{CandidateID: "alice", Sequence: 1, Text: "kubernetes"},
	})

	if ix.Len() != 2 {
		t.Fatalf("expected 2 fragments, got %d", ix.Len())
	}
}
