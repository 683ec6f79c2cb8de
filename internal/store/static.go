package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/civicradar/issueradar/internal/issue"
)

// StaticSource serves issue documents from a JSON file: an array of
// documents in the collection's wire shape. Used for offline runs and
// tests where no Firestore project is available.
type StaticSource struct {
	docs []issue.Document
}

// NewStaticSource loads the documents from path once, up front.
func NewStaticSource(path string) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading issues file: %w", err)
	}

	var docs []issue.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing issues file %s: %w", path, err)
	}

	return &StaticSource{docs: docs}, nil
}

// NewStaticSourceFromDocs wraps an in-memory document list.
func NewStaticSourceFromDocs(docs []issue.Document) *StaticSource {
	return &StaticSource{docs: docs}
}

func (s *StaticSource) ListIssues(ctx context.Context) ([]issue.Document, error) {
	return s.docs, nil
}
