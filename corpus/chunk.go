// Package corpus loads the precomputed chunk corpus from disk.
package corpus

// Chunk is a stored passage of source text plus its precomputed embedding.
// Chunks are created once at load time and never mutated afterwards. All
// embeddings in one corpus share a single dimensionality; the similarity
// computation relies on this without validating it.
type Chunk struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Text      string    `json:"text"`
	Embedding []float64 `json:"embedding"`
}
