package vptree

import (
	"math/rand"
	"testing"

	"github.com/merybenavente/ragsearch-engine/index"
	"github.com/merybenavente/ragsearch-engine/index/naive"
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
	ix := New(DefaultParams())
	results, err := ix.Query(unit([]float32{1, 0, 0}), 5, 0)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Query on empty index = %v, want empty", results)
	}
}

func TestSelfRetrieval(t *testing.T) {
	ix := New(DefaultParams())
	v := unit([]float32{1, 0, 0})
	if err := ix.Add("a", v); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	results, err := ix.Query(v, 1, 0)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "a" || results[0].Similarity < 1-kernel.Epsilon {
		t.Fatalf("Query(v) = %v, want self match", results)
	}
}

func TestExactnessVsNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const n = 150
	const dim = 16
	points := make([]index.Point, n)
	for i := 0; i < n; i++ {
		v := make([]float32, dim)
		for d := range v {
			v[d] = float32(rng.NormFloat64())
		}
		points[i] = index.Point{ID: idFor(i), Vector: unit(v)}
	}

	nv := naive.New()
	if err := nv.Build(points); err != nil {
		t.Fatalf("naive Build failed: %v", err)
	}
	vp := New(Params{LeafSize: 8, Seed: 5})
	if err := vp.Build(points); err != nil {
		t.Fatalf("vptree Build failed: %v", err)
	}

	query := unit([]float32{1, 2, 3, 4, 5, 6, 7, 8, -1, -2, -3, -4, -5, -6, -7, -8})
	wantResults, err := nv.Query(query, 10, 0)
	if err != nil {
		t.Fatalf("naive Query failed: %v", err)
	}
	gotResults, err := vp.Query(query, 10, 0)
	if err != nil {
		t.Fatalf("vptree Query failed: %v", err)
	}
	if len(wantResults) != len(gotResults) {
		t.Fatalf("result count = %d, want %d", len(gotResults), len(wantResults))
	}
	for i := range wantResults {
		if wantResults[i].ID != gotResults[i].ID {
			t.Fatalf("result[%d].ID = %s, want %s", i, gotResults[i].ID, wantResults[i].ID)
		}
	}
}

func idFor(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	return string(letters[i%26]) + string(rune('0'+i/26))
}

func TestRemoveAndRebuild(t *testing.T) {
	ix := New(Params{LeafSize: 4, Seed: 3})
	rng := rand.New(rand.NewSource(3))
	const n = 40
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		v := make([]float32, 8)
		for d := range v {
			v[d] = float32(rng.NormFloat64())
		}
		id := idFor(i)
		ids[i] = id
		if err := ix.Add(id, unit(v)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	removed := 0
	for i := 0; i < n/3; i++ {
		if ix.Remove(ids[i]) {
			removed++
		}
	}
	if ix.Len() != n-removed {
		t.Fatalf("Len() = %d, want %d", ix.Len(), n-removed)
	}
	if ix.Remove(ids[0]) {
		t.Fatalf("Remove on already-removed id = true, want false")
	}
}

func TestDimensionGuard(t *testing.T) {
	ix := New(DefaultParams())
	if err := ix.Add("a", unit([]float32{1, 0, 0})); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := ix.Add("b", []float32{1, 0}); err == nil {
		t.Fatalf("Add with mismatched dimension succeeded, want error")
	}
}
