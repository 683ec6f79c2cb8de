// Package embeddings wraps the sentence-embedding backends used for
// duplicate matching. One fixed model serves both corpus loading and
// query encoding, so every vector in the process has the same
// dimensionality.
package embeddings

import "context"

// Embedder turns text into fixed-dimension dense vectors.
//
// Embed accepts many texts at once; backends send them in as few model
// invocations as possible. Batch and single-item encoding of the same
// text produce equivalent vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the vector length produced by this model.
	Dimensions() int

	// Name identifies the backing model, for load reports.
	Name() string
}
