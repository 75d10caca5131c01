package lsh

import (
	"math"
	"math/rand"

	"github.com/merybenavente/ragsearch-engine/index"
	"github.com/merybenavente/ragsearch-engine/kernel"
	"github.com/merybenavente/ragsearch-engine/ragerr"
)

// Params configures the hash family. NumHyperplanes is capped at 64 since
// each table's code is packed into a uint64 bitmask.
type Params struct {
	NumTables      int
	NumHyperplanes int
	Seed           int64
}

// DefaultParams returns the documented defaults: 8 tables, 8 hyperplanes per
// table, and a fixed seed for reproducibility.
func DefaultParams() Params {
	return Params{NumTables: 8, NumHyperplanes: 8, Seed: 42}
}

func (p Params) normalized() Params {
	if p.NumTables <= 0 {
		p.NumTables = 8
	}
	if p.NumHyperplanes <= 0 {
		p.NumHyperplanes = 8
	}
	if p.NumHyperplanes > 64 {
		p.NumHyperplanes = 64
	}
	return p
}

// Index is a random-hyperplane LSH index. Hyperplanes are drawn from
// Params.Seed on the first Build or Add, once the vector dimension is known.
// Add and Remove never resample them; Build redraws them from the same seed.
type Index struct {
	params      Params
	dim         int
	hyperplanes [][][]float32 // [table][hyperplane][dim]
	buckets     []map[uint64][]string
	codes       map[string][]uint64 // id -> per-table code
	vecs        map[string][]float32
}

// New constructs an LSH index with the given parameters. Hyperplanes are
// sampled lazily on the first Build or Add once the vector dimension is
// known.
func New(params Params) *Index {
	p := params.normalized()
	return &Index{
		params:  p,
		buckets: make([]map[uint64][]string, p.NumTables),
		codes:   make(map[string][]uint64),
		vecs:    make(map[string][]float32),
	}
}

var _ index.Index = (*Index)(nil)

func (ix *Index) ensureHyperplanes(dim int) {
	if ix.hyperplanes != nil {
		return
	}
	ix.dim = dim
	rng := rand.New(rand.NewSource(ix.params.Seed))
	ix.hyperplanes = make([][][]float32, ix.params.NumTables)
	for t := 0; t < ix.params.NumTables; t++ {
		planes := make([][]float32, ix.params.NumHyperplanes)
		for h := 0; h < ix.params.NumHyperplanes; h++ {
			plane := make([]float32, dim)
			for d := 0; d < dim; d++ {
				plane[d] = float32(rng.NormFloat64())
			}
			planes[h] = plane
		}
		ix.hyperplanes[t] = planes
		ix.buckets[t] = make(map[uint64][]string)
	}
}

func (ix *Index) hashCode(table int, vector []float32) uint64 {
	var code uint64
	for h, plane := range ix.hyperplanes[table] {
		if kernel.Cosine(vector, plane) >= 0 {
			code |= 1 << uint(h)
		}
	}
	return code
}

// Build replaces any prior state with points.
func (ix *Index) Build(points []index.Point) error {
	ix.hyperplanes = nil
	ix.codes = make(map[string][]uint64)
	ix.vecs = make(map[string][]float32)
	for t := range ix.buckets {
		ix.buckets[t] = nil
	}
	if len(points) == 0 {
		return nil
	}
	dim := len(points[0].Vector)
	ix.ensureHyperplanes(dim)
	for _, p := range points {
		if len(p.Vector) != dim {
			return ragerr.New(ragerr.KindDimensionMismatch, "inconsistent vector dimension in Build")
		}
		if _, exists := ix.vecs[p.ID]; exists {
			return ragerr.New(ragerr.KindAlreadyExists, "duplicate id in Build: "+p.ID)
		}
		ix.insert(p.ID, p.Vector)
	}
	return nil
}

func (ix *Index) insert(id string, vector []float32) {
	codes := make([]uint64, ix.params.NumTables)
	for t := 0; t < ix.params.NumTables; t++ {
		c := ix.hashCode(t, vector)
		codes[t] = c
		ix.buckets[t][c] = append(ix.buckets[t][c], id)
	}
	ix.codes[id] = codes
	ix.vecs[id] = vector
}

// Add inserts a single point, recomputing its hash code per table.
func (ix *Index) Add(id string, vector []float32) error {
	if _, exists := ix.vecs[id]; exists {
		return ragerr.New(ragerr.KindAlreadyExists, "id already present: "+id)
	}
	if ix.dim != 0 && len(vector) != ix.dim {
		return ragerr.New(ragerr.KindDimensionMismatch, "vector dimension mismatch on Add")
	}
	ix.ensureHyperplanes(len(vector))
	ix.insert(id, vector)
	return nil
}

// Remove deletes id's entry from every table's bucket.
func (ix *Index) Remove(id string) bool {
	codes, ok := ix.codes[id]
	if !ok {
		return false
	}
	for t, c := range codes {
		bucket := ix.buckets[t][c]
		for i, bid := range bucket {
			if bid == id {
				bucket[i] = bucket[len(bucket)-1]
				ix.buckets[t][c] = bucket[:len(bucket)-1]
				break
			}
		}
	}
	delete(ix.codes, id)
	delete(ix.vecs, id)
	return true
}

// Len reports the number of indexed points.
func (ix *Index) Len() int {
	return len(ix.vecs)
}

// Query computes the query's hash code per table, unions the matching
// buckets into a candidate set, scores candidates exactly by cosine, and
// applies the common top-k/min_sim selection. An empty candidate union
// yields an empty result; this is the documented approximate behavior.
func (ix *Index) Query(vector []float32, k int, minSim float64) ([]index.Scored, error) {
	if len(ix.vecs) == 0 || ix.hyperplanes == nil {
		return nil, nil
	}
	seen := make(map[string]bool)
	candidates := make([]index.Scored, 0)
	for t := 0; t < ix.params.NumTables; t++ {
		c := ix.hashCode(t, vector)
		for _, id := range ix.buckets[t][c] {
			if seen[id] {
				continue
			}
			seen[id] = true
			sim := kernel.Cosine(vector, ix.vecs[id])
			if math.IsNaN(sim) {
				continue
			}
			candidates = append(candidates, index.Scored{ID: id, Similarity: sim})
		}
	}
	return index.SelectTopK(candidates, k, minSim), nil
}
