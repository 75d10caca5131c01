package library

import (
	"sync"
	"testing"

	"github.com/merybenavente/ragsearch-engine/chunk"
	"github.com/merybenavente/ragsearch-engine/ragerr"
)

func mustLibrary(t *testing.T, indexType IndexType) *Library {
	t.Helper()
	l, err := New("lib1", "test", indexType, IndexParams{LeafSize: 4, Seed: 1}, Metadata{}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return l
}

func TestEmptyLibrarySearch(t *testing.T) {
	l := mustLibrary(t, IndexTypeNaive)
	result, err := l.Search([]float32{1, 0, 0}, 5, 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result.Results) != 0 || result.TotalChunksSearched != 0 {
		t.Fatalf("Search on empty library = %+v, want empty", result)
	}
}

func TestAddAndSearchSingleChunk(t *testing.T) {
	l := mustLibrary(t, IndexTypeNaive)
	err := l.AddChunks([]chunk.Chunk{{ID: "c1", DocumentID: "d1", Text: "hi", Embedding: []float32{1, 0, 0}}})
	if err != nil {
		t.Fatalf("AddChunks failed: %v", err)
	}
	result, err := l.Search([]float32{1, 0, 0}, 1, 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result.Results) != 1 || result.Results[0].Chunk.ID != "c1" {
		t.Fatalf("Search = %+v, want one result c1", result)
	}
	if result.Results[0].Similarity < 1-1e-6 {
		t.Fatalf("Similarity = %v, want ~1", result.Results[0].Similarity)
	}
}

func TestDimensionGuardRollsBack(t *testing.T) {
	l := mustLibrary(t, IndexTypeNaive)
	if err := l.AddChunks([]chunk.Chunk{{ID: "a", Embedding: []float32{1, 0}}}); err != nil {
		t.Fatalf("AddChunks failed: %v", err)
	}
	err := l.AddChunks([]chunk.Chunk{
		{ID: "b", Embedding: []float32{1, 0}},
		{ID: "c", Embedding: []float32{1, 0, 0}}, // wrong dimension
	})
	if !ragerr.Is(err, ragerr.KindDimensionMismatch) {
		t.Fatalf("AddChunks error = %v, want DimensionMismatch", err)
	}
	// "b" must have been rolled back since the batch failed on "c".
	result, _ := l.Search([]float32{1, 0}, 10, -1)
	if len(result.Results) != 1 {
		t.Fatalf("library state after rollback has %d chunks, want 1", len(result.Results))
	}
}

func TestDimensionResetAfterFullyFailedBatch(t *testing.T) {
	l := mustLibrary(t, IndexTypeNaive)
	err := l.AddChunks([]chunk.Chunk{
		{ID: "a", Embedding: []float32{1, 0}},
		{ID: "b", Embedding: []float32{1, 0, 0}}, // wrong dimension, batch fails entirely
	})
	if !ragerr.Is(err, ragerr.KindDimensionMismatch) {
		t.Fatalf("AddChunks error = %v, want DimensionMismatch", err)
	}
	if d := l.Dimension(); d != 0 {
		t.Fatalf("Dimension() after fully-failed batch = %d, want 0", d)
	}
	// A later batch establishing a different dimension must succeed; the
	// failed batch above must not have pinned the library to dimension 2.
	if err := l.AddChunks([]chunk.Chunk{{ID: "c", Embedding: []float32{1, 0, 0}}}); err != nil {
		t.Fatalf("AddChunks after reset failed: %v", err)
	}
	if d := l.Dimension(); d != 3 {
		t.Fatalf("Dimension() = %d, want 3", d)
	}
}

func TestDegenerateVectorSearchRejected(t *testing.T) {
	l := mustLibrary(t, IndexTypeNaive)
	_, err := l.Search([]float32{0, 0, 0}, 1, 0)
	if !ragerr.Is(err, ragerr.KindDegenerateVector) {
		t.Fatalf("Search error = %v, want DegenerateVector", err)
	}
}

func TestReplaceDocumentChunksAtomic(t *testing.T) {
	l := mustLibrary(t, IndexTypeNaive)
	initial := []chunk.Chunk{
		{ID: "a", DocumentID: "doc1", Embedding: []float32{1, 0, 0}},
		{ID: "b", DocumentID: "doc1", Embedding: []float32{0, 1, 0}},
		{ID: "c", DocumentID: "doc1", Embedding: []float32{0, 0, 1}},
	}
	if err := l.AddChunks(initial); err != nil {
		t.Fatalf("AddChunks failed: %v", err)
	}

	var wg sync.WaitGroup
	observedMixed := false
	var mu sync.Mutex
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			result, err := l.Search([]float32{1, 1, 1}, 5, -1)
			if err != nil {
				continue
			}
			oldCount, newCount := 0, 0
			for _, r := range result.Results {
				switch r.Chunk.ID {
				case "a", "b", "c":
					oldCount++
				case "x", "y":
					newCount++
				}
			}
			if oldCount > 0 && newCount > 0 {
				mu.Lock()
				observedMixed = true
				mu.Unlock()
			}
		}
	}()

	replacement := []chunk.Chunk{
		{ID: "x", DocumentID: "doc1", Embedding: []float32{1, 1, 0}},
		{ID: "y", DocumentID: "doc1", Embedding: []float32{0, 1, 1}},
	}
	if err := l.ReplaceDocumentChunks("doc1", replacement); err != nil {
		t.Fatalf("ReplaceDocumentChunks failed: %v", err)
	}
	wg.Wait()

	if observedMixed {
		t.Fatalf("observed a search result mixing old and new chunk sets")
	}
	result, err := l.Search([]float32{1, 1, 1}, 5, -1)
	if err != nil {
		t.Fatalf("Search after replace failed: %v", err)
	}
	if len(result.Results) != 2 {
		t.Fatalf("Search after replace = %d results, want 2", len(result.Results))
	}
}

func TestRemoveDocument(t *testing.T) {
	l := mustLibrary(t, IndexTypeNaive)
	_ = l.AddChunks([]chunk.Chunk{
		{ID: "a", DocumentID: "doc1", Embedding: []float32{1, 0}},
		{ID: "b", DocumentID: "doc2", Embedding: []float32{0, 1}},
	})
	if err := l.RemoveDocument("doc1"); err != nil {
		t.Fatalf("RemoveDocument failed: %v", err)
	}
	result, _ := l.Search([]float32{1, 1}, 10, -1)
	if len(result.Results) != 1 || result.Results[0].Chunk.ID != "b" {
		t.Fatalf("Search after RemoveDocument = %+v, want only b", result)
	}
}

func TestUnknownIndexType(t *testing.T) {
	_, err := New("lib1", "x", IndexType("bogus"), IndexParams{}, Metadata{}, nil)
	if !ragerr.Is(err, ragerr.KindInvalidParameter) {
		t.Fatalf("New with bogus index type error = %v, want InvalidParameter", err)
	}
}
