package openai

import (
	"math"
	"testing"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient("  ", "", ""); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient("test-key", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", client.Model())
	}
	if client.Embedding().Model() != defaultEmbeddingModel {
		t.Fatalf("expected default embedding model, got %q", client.Embedding().Model())
	}

	client, err = NewClient("test-key", "gpt-4o", "text-embedding-3-large")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != "gpt-4o" {
		t.Fatalf("expected configured model, got %q", client.Model())
	}
	if client.Embedding().Model() != "text-embedding-3-large" {
		t.Fatalf("expected configured embedding model, got %q", client.Embedding().Model())
	}
}

func TestL2Normalize(t *testing.T) {
	vec := []float32{3, 4}
	l2normalize(vec)

	var sum float64
	for _, x := range vec {
		sum += float64(x) * float64(x)
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Fatalf("expected unit vector, got squared norm %f", sum)
	}

	zero := []float32{0, 0}
	l2normalize(zero)
	if zero[0] != 0 || zero[1] != 0 {
		t.Fatalf("zero vector must stay zero, got %v", zero)
	}
}
