package lsh

import (
	"math/rand"
	"testing"

	"github.com/merybenavente/ragsearch-engine/index"
	"github.com/merybenavente/ragsearch-engine/kernel"
)

func unit(v []float32) []float32 {
	n, err := kernel.Normalize(v)
	if err != nil {
		panic(err)
	}
	return n
}

func randomUnit(rng *rand.Rand, dim int) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = float32(rng.NormFloat64())
	}
	return unit(v)
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

func TestSelfRetrievalRecall(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ix := New(DefaultParams())
	const n = 100
	const dim = 32
	ids := make([]string, n)
	vecs := make([][]float32, n)
	for i := 0; i < n; i++ {
		ids[i] = string(rune('a' + i%26))
		vecs[i] = randomUnit(rng, dim)
	}
	points := make([]index.Point, n)
	seenIDs := make(map[string]bool)
	hits := 0
	for i := 0; i < n; i++ {
		id := idFor(i)
		points[i] = index.Point{ID: id, Vector: vecs[i]}
		seenIDs[id] = true
	}
	if err := ix.Build(points); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i := 0; i < n; i++ {
		results, err := ix.Query(vecs[i], 1, 0)
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(results) == 1 && results[0].ID == idFor(i) {
			hits++
		}
	}
	if hits < 95 {
		t.Fatalf("self-retrieval recall = %d/100, want >= 95", hits)
	}
}

func idFor(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	return string(letters[i%26]) + string(rune('0'+i/26))
}

func TestRemove(t *testing.T) {
	ix := New(DefaultParams())
	v := unit([]float32{1, 0, 0, 0})
	_ = ix.Add("a", v)
	if !ix.Remove("a") {
		t.Fatalf("Remove(a) = false, want true")
	}
	if ix.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", ix.Len())
	}
}

func TestDeterministicHyperplanes(t *testing.T) {
	v := unit([]float32{1, 0, 0, 0})
	a := New(Params{NumTables: 2, NumHyperplanes: 4, Seed: 99})
	b := New(Params{NumTables: 2, NumHyperplanes: 4, Seed: 99})
	_ = a.Add("x", v)
	_ = b.Add("x", v)
	if a.hashCode(0, v) != b.hashCode(0, v) {
		t.Fatalf("same seed produced different hash codes")
	}
}
