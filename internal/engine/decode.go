package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// rankedCandidate is the per-candidate element of the generation response schema.
type rankedCandidate struct {
	Name   string   `json:"name"`
	Tier   string   `json:"tier"`
	Quotes []string `json:"quotes"`
}

type rankedResponse struct {
	Candidates []rankedCandidate `json:"candidates"`
}

// decodeRanking parses the generation response into per-candidate entries.
// The decode is strict: markdown fences are stripped, but the remaining
// payload must fully match the expected schema or the whole response is
// rejected with ErrGenerationFormat. Freeform text is never trusted partially.
func decodeRanking(raw string) ([]rankedCandidate, error) {
	cleaned := extractJSON(raw)

	decoder := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
	decoder.DisallowUnknownFields()

	var response rankedResponse
	if err := decoder.Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFormat, err)
	}

	if decoder.More() {
		return nil, fmt.Errorf("%w: trailing data after ranking object", ErrGenerationFormat)
	}

	seen := make(map[string]bool, len(response.Candidates))
	for _, entry := range response.Candidates {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("%w: candidate entry without a name", ErrGenerationFormat)
		}
		if seen[entry.Name] {
			return nil, fmt.Errorf("%w: candidate %q ranked twice", ErrGenerationFormat, entry.Name)
		}
		seen[entry.Name] = true

		if _, err := parseTier(entry.Tier); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGenerationFormat, err)
		}
	}

	return response.Candidates, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
