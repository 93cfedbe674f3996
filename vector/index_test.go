package vector

import (
	"errors"
	"math"
	"testing"

	"github.com/adviserhq/adviser/core"
	"github.com/adviserhq/adviser/corpus"
)

func TestNormalizeAndDot(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 0}, []float64{1, 0}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"diagonal", []float64{1, 0}, []float64{0.7, 0.7}, math.Sqrt2 / 2},
		{"magnitude ignored", []float64{5, 0}, []float64{0.7, 0.7}, math.Sqrt2 / 2},
		{"length mismatch", []float64{1, 0}, []float64{1}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dot(Normalize(tt.a), Normalize(tt.b))
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Dot(Normalize(%v), Normalize(%v)) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNormalize_UnitLength(t *testing.T) {
	unit := Normalize([]float64{3, 4})
	var sum float64
	for _, x := range unit {
		sum += x * x
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("|Normalize([3 4])|^2 = %v, want 1", sum)
	}

	// Zero vectors have no direction and pass through unchanged.
	zero := Normalize([]float64{0, 0})
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("Normalize zero vector = %v", zero)
	}
}

func loadedIndex(t *testing.T, chunks []corpus.Chunk) *Index {
	t.Helper()
	ix := NewIndex()
	if err := ix.Load(chunks); err != nil {
		t.Fatal(err)
	}
	return ix
}

func TestSearch_RanksByScore(t *testing.T) {
	ix := loadedIndex(t, []corpus.Chunk{
		{ID: "a", Text: "first", Embedding: []float64{1, 0}},
		{ID: "b", Text: "second", Embedding: []float64{0, 1}},
		{ID: "c", Text: "third", Embedding: []float64{0.7, 0.7}},
	})

	matches, err := ix.Search([]float64{1, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Chunk.ID != "a" {
		t.Errorf("expected best match 'a', got %q", matches[0].Chunk.ID)
	}
	if math.Abs(matches[0].Score-1.0) > 1e-9 {
		t.Errorf("expected score 1.0, got %v", matches[0].Score)
	}
	if matches[1].Chunk.ID != "c" {
		t.Errorf("expected second match 'c', got %q", matches[1].Chunk.ID)
	}
	if math.Abs(matches[1].Score-math.Sqrt2/2) > 1e-9 {
		t.Errorf("expected score %v, got %v", math.Sqrt2/2, matches[1].Score)
	}
}

func TestLoad_NormalizesEmbeddings(t *testing.T) {
	ix := loadedIndex(t, []corpus.Chunk{
		{ID: "big", Embedding: []float64{70, 70}},
		{ID: "small", Embedding: []float64{0.7, 0.7}},
	})

	// Same direction must score the same regardless of stored magnitude.
	matches, err := ix.Search([]float64{1, 0}, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range matches {
		if math.Abs(m.Score-math.Sqrt2/2) > 1e-9 {
			t.Errorf("chunk %q score = %v, want %v", m.Chunk.ID, m.Score, math.Sqrt2/2)
		}
	}
}

func TestSearch_TieBreakKeepsInsertionOrder(t *testing.T) {
	ix := loadedIndex(t, []corpus.Chunk{
		{ID: "dup-1", Text: "x", Embedding: []float64{2, 0}},
		{ID: "other", Text: "y", Embedding: []float64{0, 1}},
		{ID: "dup-2", Text: "z", Embedding: []float64{3, 0}},
	})

	// Both duplicates score exactly 1.0 against the query; the earlier file
	// position must come first.
	matches, err := ix.Search([]float64{1, 0}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if matches[0].Chunk.ID != "dup-1" || matches[1].Chunk.ID != "dup-2" {
		t.Errorf("tie-break broke insertion order: %q then %q", matches[0].Chunk.ID, matches[1].Chunk.ID)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	ix := loadedIndex(t, []corpus.Chunk{
		{ID: "a", Embedding: []float64{0.3, 0.4}},
		{ID: "b", Embedding: []float64{0.9, 0.1}},
		{ID: "c", Embedding: []float64{0.5, 0.5}},
	})

	first, err := ix.Search([]float64{0.6, 0.2}, 3)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ix.Search([]float64{0.6, 0.2}, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i].Chunk.ID != second[i].Chunk.ID || first[i].Score != second[i].Score {
			t.Fatalf("result %d differs between runs", i)
		}
	}
}

func TestSearch_NotReady(t *testing.T) {
	ix := NewIndex()
	_, err := ix.Search([]float64{1, 0}, 5)
	if !errors.Is(err, core.ErrIndexNotReady) {
		t.Fatalf("expected ErrIndexNotReady, got %v", err)
	}
}

func TestSearch_EmptyIndex(t *testing.T) {
	ix := loadedIndex(t, nil)
	matches, err := ix.Search([]float64{1, 0}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches from empty index, got %d", len(matches))
	}
}

func TestLoad_SecondLoadRejected(t *testing.T) {
	ix := loadedIndex(t, []corpus.Chunk{{ID: "a", Embedding: []float64{1}}})
	if err := ix.Load(nil); err == nil {
		t.Fatal("expected second load to be rejected")
	}
	if ix.Len() != 1 {
		t.Fatalf("second load must not clobber data, len = %d", ix.Len())
	}
}
