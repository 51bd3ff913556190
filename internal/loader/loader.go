// Package loader reads résumé text documents from a directory. PDF and other
// binary extraction happens outside this program: only already extracted
// .txt and .md files are picked up.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spigell/cv-matcher/internal/engine"
)

var allowedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// LoadDocuments reads all supported files from dir and returns them as engine
// documents, sorted by filename so repeated builds ingest in the same order.
func LoadDocuments(dir string) ([]engine.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading documents directory: %w", err)
	}

	var documents []engine.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !allowedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		documents = append(documents, engine.Document{
			Filename: entry.Name(),
			Text:     string(content),
		})
	}

	sort.Slice(documents, func(i, j int) bool {
		return documents[i].Filename < documents[j].Filename
	})

	return documents, nil
}
