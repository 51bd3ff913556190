package gemini

import (
	"context"
	"testing"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(context.Background(), "   ", "", ""); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(context.Background(), "test-key", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", client.Model())
	}
	if client.Embedding().Model() != defaultEmbeddingModel {
		t.Fatalf("expected default embedding model, got %q", client.Embedding().Model())
	}
}

func TestNewClientOverrides(t *testing.T) {
	client, err := NewClient(context.Background(), "test-key", "gemini-2.5-pro", "text-embedding-004")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != "gemini-2.5-pro" {
		t.Fatalf("expected configured model, got %q", client.Model())
	}
	if client.Embedding().Model() != "text-embedding-004" {
		t.Fatalf("expected configured embedding model, got %q", client.Embedding().Model())
	}
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	client, err := NewClient(context.Background(), "test-key", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.GenerateContent(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}
