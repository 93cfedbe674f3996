// Package vector provides brute-force similarity search over a loaded corpus.
package vector

import (
	"errors"
	"sort"
	"sync"

	"github.com/adviserhq/adviser/core"
	"github.com/adviserhq/adviser/corpus"
)

// Match is a single search hit.
type Match struct {
	Chunk corpus.Chunk `json:"chunk"`
	Score float64      `json:"score"` // cosine similarity (-1..1)
}

// Index answers nearest-neighbor queries over an immutable chunk sequence.
//
// An Index has exactly two states: unloaded and loaded. Load publishes the
// chunk sequence once; after that the data is read-only and shared by all
// concurrent searches. There is no reload-in-place; a fresh load belongs to
// a fresh Index.
type Index struct {
	mu     sync.RWMutex
	chunks []corpus.Chunk
	loaded bool
}

// NewIndex creates an unloaded index.
func NewIndex() *Index {
	return &Index{}
}

// Load publishes the chunk sequence. It may be called exactly once; later
// calls are rejected so a request path can never re-trigger a load.
// Embeddings are normalized to unit length here, paying the sqrt per chunk
// once instead of on every search.
func (ix *Index) Load(chunks []corpus.Chunk) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.loaded {
		return &core.SearchError{Op: "index load", Err: errAlreadyLoaded}
	}

	normalized := make([]corpus.Chunk, len(chunks))
	for i, c := range chunks {
		c.Embedding = Normalize(c.Embedding)
		normalized[i] = c
	}
	ix.chunks = normalized
	ix.loaded = true
	return nil
}

// Ready reports whether the startup load has completed.
func (ix *Index) Ready() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.loaded
}

// Len returns the number of loaded chunks.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.chunks)
}

// Search scores every chunk against the query embedding and returns the
// top-k matches ordered by descending cosine similarity. Equal scores keep
// their original file order, so results are deterministic for identical
// inputs. Searching an unloaded index returns core.ErrIndexNotReady.
func (ix *Index) Search(embedding []float64, topK int) ([]Match, error) {
	ix.mu.RLock()
	chunks, loaded := ix.chunks, ix.loaded
	ix.mu.RUnlock()

	if !loaded {
		return nil, core.ErrIndexNotReady
	}

	query := Normalize(embedding)
	results := make([]Match, 0, len(chunks))
	for _, c := range chunks {
		results = append(results, Match{Chunk: c, Score: Dot(query, c.Embedding)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}

	return results, nil
}

var errAlreadyLoaded = errors.New("index already loaded")
