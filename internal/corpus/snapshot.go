package corpus

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/civicradar/issueradar/internal/issue"
)

// Snapshot is one immutable view of the open-issue corpus: records,
// their embedding vectors (index-aligned), and a chromem collection for
// cosine search. Snapshots are built by the Loader and replaced
// wholesale on reload; nothing mutates them in place, so any number of
// concurrent searches may share one.
type Snapshot struct {
	Records  []issue.Record
	Vectors  [][]float32
	Model    string
	LoadedAt time.Time

	collection *chromem.Collection
}

// Hit is one scored corpus record. Index is the record's position in
// Records; ties in Similarity resolve by ascending Index so results are
// reproducible for a fixed snapshot.
type Hit struct {
	Index      int
	Similarity float32
}

// Len returns the number of corpus records.
func (s *Snapshot) Len() int {
	return len(s.Records)
}

// Dimensions returns the embedding vector length, or 0 for an empty
// corpus.
func (s *Snapshot) Dimensions() int {
	if len(s.Vectors) == 0 {
		return 0
	}
	return len(s.Vectors[0])
}

// Candidates returns the indices of records matching the structural
// filter: exact category and pincode equality.
func (s *Snapshot) Candidates(category, pincode string) []int {
	var indices []int
	for i, rec := range s.Records {
		if rec.Category == category && rec.Pincode == pincode {
			indices = append(indices, i)
		}
	}
	return indices
}

// Search ranks the structurally matching records by cosine similarity
// against queryVec and returns the top n hits, highest first. The
// category/pincode filter is applied inside the index via chromem
// metadata, so only compatible records are ever scored.
func (s *Snapshot) Search(ctx context.Context, queryVec []float32, n int, category, pincode string) ([]Hit, error) {
	if s.collection == nil || s.collection.Count() == 0 || n <= 0 {
		return nil, nil
	}

	where := map[string]string{
		"category": category,
		"pincode":  pincode,
	}

	results, err := s.collection.QueryEmbedding(ctx, queryVec, n, where, nil)
	if err != nil {
		return nil, fmt.Errorf("querying corpus index: %w", err)
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		pos, err := strconv.Atoi(r.Metadata["pos"])
		if err != nil {
			return nil, fmt.Errorf("corpus index returned bad position %q for %s", r.Metadata["pos"], r.ID)
		}
		hits = append(hits, Hit{Index: pos, Similarity: r.Similarity})
	}

	// chromem sorts by similarity but leaves tie order unspecified;
	// pin ties to corpus position.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].Index < hits[j].Index
	})

	return hits, nil
}
