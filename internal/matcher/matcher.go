// Package matcher ranks open issues by semantic closeness to a newly
// submitted complaint, after narrowing to the same category and postal
// code.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/civicradar/issueradar/internal/corpus"
	"github.com/civicradar/issueradar/internal/embeddings"
	"github.com/civicradar/issueradar/internal/issue"
	"github.com/civicradar/issueradar/internal/normalize"
)

// DefaultTopK is the result cap when none is configured.
const DefaultTopK = 5

// Client-input errors. Both are the submitter's to fix, not a server
// fault, and no scoring happens when they fire.
var (
	ErrMissingFields = errors.New("missing one or more required fields")
	ErrNoPincode     = errors.New("no valid pincode found in the address")
)

// IsClientError reports whether err is a request-validation failure
// rather than an upstream fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingFields) || errors.Is(err, ErrNoPincode)
}

// Result is the outcome of one duplicate search. NoCandidates reports
// that no open issue shares the query's category and pincode; otherwise
// Matches holds the ranked candidates.
type Result struct {
	NoCandidates bool
	Matches      []issue.Match
}

// Matcher scores queries against corpus snapshots.
type Matcher struct {
	embedder embeddings.Embedder
	topK     int
}

// New creates a Matcher. topK <= 0 falls back to DefaultTopK.
func New(embedder embeddings.Embedder, topK int) *Matcher {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Matcher{embedder: embedder, topK: topK}
}

// FindSimilar validates the query, applies the structural filter, and
// ranks the surviving candidates by cosine similarity. The snapshot is
// only read, never written, so calls are safely repeatable and may run
// concurrently against the same snapshot. Two calls with the same query
// and snapshot return identical ordered results.
func (m *Matcher) FindSimilar(ctx context.Context, snap *corpus.Snapshot, q issue.Query) (*Result, error) {
	if q.Title == "" || len(q.Description) == 0 || q.Category == "" || q.Address == "" {
		return nil, ErrMissingFields
	}

	pincode, ok := normalize.ExtractPincode(q.Address)
	if !ok {
		return nil, ErrNoPincode
	}

	candidates := snap.Candidates(q.Category, pincode)
	if len(candidates) == 0 {
		return &Result{NoCandidates: true}, nil
	}

	// The query is embedded exactly once, no matter how many candidates
	// it scores against.
	vectors, err := m.embedder.Embed(ctx, []string{normalize.CombinedText(q.Title, q.Description)})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for the query", len(vectors))
	}

	n := m.topK
	if len(candidates) < n {
		n = len(candidates)
	}

	hits, err := snap.Search(ctx, vectors[0], n, q.Category, pincode)
	if err != nil {
		return nil, err
	}

	matches := make([]issue.Match, 0, len(hits))
	for _, hit := range hits {
		rec := snap.Records[hit.Index]
		matches = append(matches, issue.Match{
			IssueID:         rec.ID,
			Title:           rec.Title,
			Description:     rec.Description,
			Category:        rec.Category,
			Address:         rec.Address,
			Upvotes:         rec.Upvotes,
			Media:           rec.Media,
			SimilarityScore: roundScore(hit.Similarity),
			DateOfComplaint: rec.DateOfComplaint,
			Status:          rec.Status,
		})
	}

	return &Result{Matches: matches}, nil
}

// roundScore rounds for presentation only; ranking happens on the full
// precision values before this runs.
func roundScore(score float32) float64 {
	return math.Round(float64(score)*10000) / 10000
}
