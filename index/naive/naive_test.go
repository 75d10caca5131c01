package naive

import (
	"testing"

	"github.com/merybenavente/ragsearch-engine/kernel"
)

func unit(v []float32) []float32 {
	n, err := kernel.Normalize(v)
	if err != nil {
		panic(err)
	}
	return n
}

func TestEmptyQuery(t *testing.T) {
	ix := New()
	results, err := ix.Query(unit([]float32{1, 0, 0}), 5, 0)
	if err != nil {
		t.Fatalf("Query on empty index failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Query on empty index = %v, want empty", results)
	}
}

func TestSelfRetrieval(t *testing.T) {
	ix := New()
	v := unit([]float32{1, 0, 0})
	if err := ix.Add("a", v); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	results, err := ix.Query(v, 1, 0)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "a" || results[0].Similarity < 1-kernel.Epsilon {
		t.Fatalf("Query(v) = %v, want self match with similarity ~1", results)
	}
}

func TestTieBreakAscendingID(t *testing.T) {
	ix := New()
	a := unit([]float32{1, 0, 0})
	b := unit([]float32{0, 1, 0})
	_ = ix.Add("b", b)
	_ = ix.Add("a", a)
	q := unit([]float32{1, 1, 0})
	results, err := ix.Query(q, 2, 0)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Query returned %d results, want 2", len(results))
	}
	if results[0].ID != "a" || results[1].ID != "b" {
		t.Fatalf("Query tie-break = [%s, %s], want [a, b]", results[0].ID, results[1].ID)
	}
}

func TestRemove(t *testing.T) {
	ix := New()
	_ = ix.Add("a", unit([]float32{1, 0}))
	if !ix.Remove("a") {
		t.Fatalf("Remove(a) = false, want true")
	}
	if ix.Remove("a") {
		t.Fatalf("Remove(a) second time = true, want false")
	}
	if ix.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", ix.Len())
	}
}

func TestAddDuplicateRejected(t *testing.T) {
	ix := New()
	_ = ix.Add("a", unit([]float32{1, 0}))
	err := ix.Add("a", unit([]float32{0, 1}))
	if err == nil {
		t.Fatalf("Add(a) duplicate succeeded, want error")
	}
}
