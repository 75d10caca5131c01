package naive

import (
	"math"

	"github.com/merybenavente/ragsearch-engine/index"
	"github.com/merybenavente/ragsearch-engine/kernel"
	"github.com/merybenavente/ragsearch-engine/ragerr"
)

// Index is a brute-force exact index. Query is O(n*d).
type Index struct {
	ids  []string
	vecs [][]float32
	pos  map[string]int
	dim  int
}

// New returns an empty naive index.
func New() *Index {
	return &Index{pos: make(map[string]int)}
}

var _ index.Index = (*Index)(nil)

// Build replaces any prior state with points.
func (ix *Index) Build(points []index.Point) error {
	ids := make([]string, 0, len(points))
	vecs := make([][]float32, 0, len(points))
	pos := make(map[string]int, len(points))
	dim := 0
	for _, p := range points {
		if dim == 0 {
			dim = len(p.Vector)
		} else if len(p.Vector) != dim {
			return ragerr.New(ragerr.KindDimensionMismatch, "inconsistent vector dimension in Build")
		}
		if _, exists := pos[p.ID]; exists {
			return ragerr.New(ragerr.KindAlreadyExists, "duplicate id in Build: "+p.ID)
		}
		pos[p.ID] = len(ids)
		ids = append(ids, p.ID)
		vecs = append(vecs, p.Vector)
	}
	ix.ids, ix.vecs, ix.pos, ix.dim = ids, vecs, pos, dim
	return nil
}

// Add inserts a single point.
func (ix *Index) Add(id string, vector []float32) error {
	if _, exists := ix.pos[id]; exists {
		return ragerr.New(ragerr.KindAlreadyExists, "id already present: "+id)
	}
	if ix.dim != 0 && len(vector) != ix.dim {
		return ragerr.New(ragerr.KindDimensionMismatch, "vector dimension mismatch on Add")
	}
	if ix.dim == 0 {
		ix.dim = len(vector)
	}
	if ix.pos == nil {
		ix.pos = make(map[string]int)
	}
	ix.pos[id] = len(ix.ids)
	ix.ids = append(ix.ids, id)
	ix.vecs = append(ix.vecs, vector)
	return nil
}

// Remove deletes id if present via swap-with-last, reporting prior presence.
func (ix *Index) Remove(id string) bool {
	i, ok := ix.pos[id]
	if !ok {
		return false
	}
	last := len(ix.ids) - 1
	ix.ids[i] = ix.ids[last]
	ix.vecs[i] = ix.vecs[last]
	ix.pos[ix.ids[i]] = i
	ix.ids = ix.ids[:last]
	ix.vecs = ix.vecs[:last]
	delete(ix.pos, id)
	return true
}

// Len reports the number of indexed points.
func (ix *Index) Len() int {
	return len(ix.ids)
}

// Query scores every point and applies the common top-k/min_sim selection.
func (ix *Index) Query(vector []float32, k int, minSim float64) ([]index.Scored, error) {
	if len(ix.ids) == 0 {
		return nil, nil
	}
	candidates := make([]index.Scored, 0, len(ix.ids))
	for i, id := range ix.ids {
		sim := kernel.Cosine(vector, ix.vecs[i])
		if math.IsNaN(sim) {
			continue
		}
		candidates = append(candidates, index.Scored{ID: id, Similarity: sim})
	}
	return index.SelectTopK(candidates, k, minSim), nil
}
