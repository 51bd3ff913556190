package logger

import (
	"strings"
	"testing"
)

func TestTruncateForLog(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{"short string untouched", "hello", 10, "hello"},
		{"exact limit untouched", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 5, "hello..."},
		{"zero limit", "hello", 0, ""},
		{"whitespace trimmed", "  hello  ", 10, "hello"},
		{"unicode safe", strings.Repeat("é", 10), 4, "éééé..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateForLog(tc.input, tc.limit); got != tc.expected {
				t.Fatalf("TruncateForLog(%q, %d) = %q, want %q", tc.input, tc.limit, got, tc.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, json := range []bool{true, false} {
		logger, err := New(json, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if logger == nil {
			t.Fatal("expected a logger")
		}
	}
}
