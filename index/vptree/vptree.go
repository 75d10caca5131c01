package vptree

import (
	"container/heap"
	"math"
	"math/rand"
	"sort"

	"github.com/merybenavente/ragsearch-engine/index"
	"github.com/merybenavente/ragsearch-engine/kernel"
	"github.com/merybenavente/ragsearch-engine/ragerr"
)

// rebuildDirtyFraction is the tombstone-to-size ratio that triggers a
// rebuild of the tree.
const rebuildDirtyFraction = 0.25

// Params configures the tree. LeafSize bounds the number of points a leaf
// holds before it splits; Seed drives vantage-point selection.
type Params struct {
	LeafSize int
	Seed     int64
}

// DefaultParams returns the documented defaults: leaf size 16, deterministic
// seed.
func DefaultParams() Params {
	return Params{LeafSize: 16, Seed: 42}
}

func (p Params) normalized() Params {
	if p.LeafSize <= 0 {
		p.LeafSize = 16
	}
	return p
}

type node struct {
	leaf    bool
	points  []string // populated only when leaf
	vantage string   // populated only when internal
	thr     float64
	left    *node
	right   *node
}

// Index is a vantage-point tree over 1-cosine distance.
type Index struct {
	params     Params
	dim        int
	root       *node
	vecs       map[string][]float32
	tombstones map[string]bool
	liveCount  int
	rng        *rand.Rand
}

var _ index.Index = (*Index)(nil)

// New constructs an empty VP-tree index.
func New(params Params) *Index {
	p := params.normalized()
	return &Index{
		params:     p,
		vecs:       make(map[string][]float32),
		tombstones: make(map[string]bool),
		rng:        rand.New(rand.NewSource(p.Seed)),
	}
}

// Build replaces any prior state with points, using a fresh RNG seeded from
// Params.Seed so the resulting tree shape is reproducible for a given seed
// and input order.
func (ix *Index) Build(points []index.Point) error {
	ix.vecs = make(map[string][]float32, len(points))
	ix.tombstones = make(map[string]bool)
	ix.rng = rand.New(rand.NewSource(ix.params.Seed))
	if len(points) == 0 {
		ix.root, ix.dim, ix.liveCount = nil, 0, 0
		return nil
	}
	dim := len(points[0].Vector)
	ids := make([]string, 0, len(points))
	for _, p := range points {
		if len(p.Vector) != dim {
			return ragerr.New(ragerr.KindDimensionMismatch, "inconsistent vector dimension in Build")
		}
		if _, exists := ix.vecs[p.ID]; exists {
			return ragerr.New(ragerr.KindAlreadyExists, "duplicate id in Build: "+p.ID)
		}
		ix.vecs[p.ID] = p.Vector
		ids = append(ids, p.ID)
	}
	ix.dim = dim
	ix.root = ix.buildNode(ids)
	ix.liveCount = len(ids)
	return nil
}

func (ix *Index) buildNode(ids []string) *node {
	if len(ids) <= ix.params.LeafSize {
		return &node{leaf: true, points: append([]string(nil), ids...)}
	}
	vpIdx := ix.rng.Intn(len(ids))
	vp := ids[vpIdx]
	rest := make([]string, 0, len(ids)-1)
	for i, id := range ids {
		if i != vpIdx {
			rest = append(rest, id)
		}
	}
	dists := make([]float64, len(rest))
	for i, id := range rest {
		dists[i] = kernel.CosineDistance(ix.vecs[vp], ix.vecs[id])
	}
	order := make([]int, len(rest))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })
	mid := len(order) / 2
	thr := dists[order[mid]]
	var leftIDs, rightIDs []string
	for rank, idx := range order {
		if rank <= mid {
			leftIDs = append(leftIDs, rest[idx])
		} else {
			rightIDs = append(rightIDs, rest[idx])
		}
	}
	return &node{vantage: vp, thr: thr, left: ix.buildNode(leftIDs), right: ix.buildNode(rightIDs)}
}

// Add inserts a single point, appending to the nearest leaf and splitting it
// via the same median rule if it overflows LeafSize. Re-adding a previously
// removed (tombstoned) id resurrects it in place rather than restructuring
// the tree.
func (ix *Index) Add(id string, vector []float32) error {
	if _, exists := ix.vecs[id]; exists {
		if ix.tombstones[id] {
			ix.vecs[id] = vector
			delete(ix.tombstones, id)
			ix.liveCount++
			return nil
		}
		return ragerr.New(ragerr.KindAlreadyExists, "id already present: "+id)
	}
	if ix.dim != 0 && len(vector) != ix.dim {
		return ragerr.New(ragerr.KindDimensionMismatch, "vector dimension mismatch on Add")
	}
	if ix.dim == 0 {
		ix.dim = len(vector)
	}
	ix.vecs[id] = vector
	ix.liveCount++
	if ix.root == nil {
		ix.root = &node{leaf: true, points: []string{id}}
		return nil
	}
	ix.root = ix.insert(ix.root, id)
	return nil
}

func (ix *Index) insert(n *node, id string) *node {
	if n.leaf {
		n.points = append(n.points, id)
		if len(n.points) > ix.params.LeafSize {
			return ix.buildNode(n.points)
		}
		return n
	}
	d := kernel.CosineDistance(ix.vecs[id], ix.vecs[n.vantage])
	if d <= n.thr {
		n.left = ix.insert(n.left, id)
	} else {
		n.right = ix.insert(n.right, id)
	}
	return n
}

// Remove marks id as tombstoned, reporting prior presence, and rebuilds the
// tree once tombstones exceed a quarter of its size.
func (ix *Index) Remove(id string) bool {
	if _, ok := ix.vecs[id]; !ok || ix.tombstones[id] {
		return false
	}
	ix.tombstones[id] = true
	ix.liveCount--
	if len(ix.vecs) > 0 && float64(len(ix.tombstones))/float64(len(ix.vecs)) > rebuildDirtyFraction {
		ix.rebuild()
	}
	return true
}

func (ix *Index) rebuild() {
	points := make([]index.Point, 0, ix.liveCount)
	for id, vec := range ix.vecs {
		if !ix.tombstones[id] {
			points = append(points, index.Point{ID: id, Vector: vec})
		}
	}
	sort.Slice(points, func(a, b int) bool { return points[a].ID < points[b].ID })
	_ = ix.Build(points)
}

// Len reports the number of live (non-tombstoned) points.
func (ix *Index) Len() int {
	return ix.liveCount
}

type cand struct {
	id   string
	dist float64
}

// candHeap is a max-heap by distance so the worst of the current k-best
// sits at the top for O(log k) eviction.
type candHeap []cand

func (h candHeap) Len() int            { return len(h) }
func (h candHeap) Less(i, j int) bool  { return h[i].dist > h[j].dist }
func (h candHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candHeap) Push(x interface{}) { *h = append(*h, x.(cand)) }
func (h *candHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func (ix *Index) pushCandidate(h *candHeap, k int, id string, d float64) {
	if h.Len() < k {
		heap.Push(h, cand{id: id, dist: d})
		return
	}
	if d < (*h)[0].dist {
		heap.Pop(h)
		heap.Push(h, cand{id: id, dist: d})
	}
}

func (ix *Index) currentBound(h *candHeap, k int) float64 {
	if h.Len() == k {
		return (*h)[0].dist
	}
	return math.Inf(1)
}

// Query performs a best-first search with a max-heap of the k best
// candidates so far, pruning subtrees the triangle inequality rules out.
func (ix *Index) Query(vector []float32, k int, minSim float64) ([]index.Scored, error) {
	if ix.liveCount == 0 || k <= 0 {
		return nil, nil
	}
	h := &candHeap{}
	heap.Init(h)
	ix.search(ix.root, vector, k, h)
	candidates := make([]index.Scored, 0, h.Len())
	for h.Len() > 0 {
		c := heap.Pop(h).(cand)
		candidates = append(candidates, index.Scored{ID: c.id, Similarity: 1 - c.dist})
	}
	return index.SelectTopK(candidates, k, minSim), nil
}

func (ix *Index) search(n *node, query []float32, k int, h *candHeap) {
	if n == nil {
		return
	}
	if n.leaf {
		for _, id := range n.points {
			if ix.tombstones[id] {
				continue
			}
			d := kernel.CosineDistance(query, ix.vecs[id])
			ix.pushCandidate(h, k, id, d)
		}
		return
	}
	d := kernel.CosineDistance(query, ix.vecs[n.vantage])
	if !ix.tombstones[n.vantage] {
		ix.pushCandidate(h, k, n.vantage, d)
	}
	if d < n.thr {
		ix.search(n.left, query, k, h)
		if d+ix.currentBound(h, k) >= n.thr {
			ix.search(n.right, query, k, h)
		}
	} else {
		ix.search(n.right, query, k, h)
		if d-ix.currentBound(h, k) <= n.thr {
			ix.search(n.left, query, k, h)
		}
	}
}
