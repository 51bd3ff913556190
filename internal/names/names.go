// Package names extracts a candidate's display name from résumé text, with a
// filename-derived fallback when no plausible person name is found.
package names

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrNoName signals that no plausible person name was found in the text.
var ErrNoName = errors.New("no plausible name found")

const (
	headScanLimit = 500
	maxScanLines  = 5
	minWordLen    = 2
	maxWordLen    = 15
	maxNameWords  = 4
	keptNameWords = 2
)

// Common résumé section headers that look like names but are not.
var sectionHeaders = []string{
	"professional summary", "work experience", "education", "skills",
	"technical skills", "certifications", "projects", "experience",
	"professional experience", "career objective", "objective",
	"qualifications", "summary", "contact", "contact information",
	"personal information", "languages", "interests", "hobbies",
	"references", "awards", "achievements", "publications",
	"volunteer experience", "core competencies", "expertise",
	"profile", "career summary", "about me", "personal details",
	"employment history", "work history", "academic background",
	"professional certifications", "training", "licenses",
}

var fileRelatedWords = []string{"cv", "resume", "curriculum", "vitae", "sample"}

// Extract returns the candidate display name from the résumé text, falling
// back to a sanitized form of the filename. The result is never empty for a
// non-empty filename.
func Extract(text, filename string) string {
	if name, err := FromText(text); err == nil {
		return name
	}
	return FromFilename(filename)
}

// FromText scans the first lines of the text for a 2-4 word capitalized line
// that passes the section-header and shape checks. Only the first two words
// are kept. Returns ErrNoName when nothing plausible is found.
func FromText(text string) (string, error) {
	head := text
	if len(head) > headScanLimit {
		head = head[:headScanLimit]
	}

	lines := strings.Split(head, "\n")
	if len(lines) > maxScanLines {
		lines = lines[:maxScanLines]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > maxNameWords {
			continue
		}
		if !allCapitalized(words) {
			continue
		}
		if strings.ContainsAny(line, "@:|/•") {
			continue
		}
		if !isValidName(line) {
			continue
		}
		return strings.Join(words[:keptNameWords], " "), nil
	}

	return "", ErrNoName
}

// FromFilename derives a display name from the document filename: extension
// stripped, separators replaced, résumé-related words removed, first two
// remaining words title-cased.
func FromFilename(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)

	words := strings.Fields(base)
	filtered := make([]string, 0, len(words))
	for _, word := range words {
		if !containsFold(fileRelatedWords, word) {
			filtered = append(filtered, word)
		}
	}
	if len(filtered) == 0 {
		filtered = words
	}
	if len(filtered) > keptNameWords {
		filtered = filtered[:keptNameWords]
	}

	for i, word := range filtered {
		filtered[i] = capitalize(word)
	}

	return strings.Join(filtered, " ")
}

func isValidName(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	for _, header := range sectionHeaders {
		if strings.Contains(lower, header) {
			return false
		}
	}

	words := strings.Fields(line)

	// Section headers tend to be fully uppercase.
	if line == strings.ToUpper(line) && len(words) > 2 {
		return false
	}

	if len(words) > maxNameWords {
		return false
	}

	for _, word := range words {
		if len(word) < minWordLen || len(word) > maxWordLen {
			return false
		}
		if strings.ContainsFunc(word, unicode.IsDigit) {
			return false
		}
	}

	return true
}

func allCapitalized(words []string) bool {
	for _, word := range words {
		runes := []rune(word)
		if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
			return false
		}
	}
	return true
}

func containsFold(list []string, word string) bool {
	for _, item := range list {
		if strings.EqualFold(item, word) {
			return true
		}
	}
	return false
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
