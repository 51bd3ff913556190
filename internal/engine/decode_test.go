package engine

import (
	"errors"
	"testing"
)

func TestDecodeRankingValid(t *testing.T) {
	raw := `{"candidates": [
		{"name": "Alice Smith", "tier": "HIGH", "quotes": ["built ML pipelines"]},
		{"name": "Bob Jones", "tier": "NONE", "quotes": []}
	]}`

	entries, err := decodeRanking(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Alice Smith" || entries[0].Tier != "HIGH" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
}

func TestDecodeRankingStripsFences(t *testing.T) {
	raw := "```json\n{\"candidates\": [{\"name\": \"Alice Smith\", \"tier\": \"MEDIUM\", \"quotes\": []}]}\n```"

	entries, err := decodeRanking(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Tier != "MEDIUM" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestDecodeRankingRejectsGarbage(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"freeform text", "Alice is clearly the best candidate."},
		{"unknown field", `{"candidates": [{"name": "A B", "tier": "HIGH", "quotes": [], "score": 1}]}`},
		{"unknown tier", `{"candidates": [{"name": "A B", "tier": "GREAT", "quotes": []}]}`},
		{"missing name", `{"candidates": [{"name": " ", "tier": "HIGH", "quotes": []}]}`},
		{"duplicate candidate", `{"candidates": [{"name": "A B", "tier": "HIGH", "quotes": []}, {"name": "A B", "tier": "LOW", "quotes": []}]}`},
		{"trailing data", `{"candidates": []} {"candidates": []}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decodeRanking(tc.raw); !errors.Is(err, ErrGenerationFormat) {
				t.Fatalf("expected ErrGenerationFormat, got %v", err)
			}
		})
	}
}

func TestParseTier(t *testing.T) {
	for input, want := range map[string]Tier{
		"HIGH":   TierHigh,
		"medium": TierMedium,
		" Low ":  TierLow,
		"NONE":   TierNone,
	} {
		tier, err := parseTier(input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", input, err)
		}
		if tier != want {
			t.Fatalf("parseTier(%q) = %v, want %v", input, tier, want)
		}
	}

	if _, err := parseTier("excellent"); err == nil {
		t.Fatal("expected error for unknown tier")
	}
}
