package library

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/merybenavente/ragsearch-engine/chunk"
	"github.com/merybenavente/ragsearch-engine/index"
	"github.com/merybenavente/ragsearch-engine/index/lsh"
	"github.com/merybenavente/ragsearch-engine/index/naive"
	"github.com/merybenavente/ragsearch-engine/index/vptree"
	"github.com/merybenavente/ragsearch-engine/kernel"
	"github.com/merybenavente/ragsearch-engine/ragerr"
)

// Library groups one chunk store and one index under a reader-writer lock.
// It is the unit of indexing and the unit of concurrency: Search is a
// reader; every mutating operation is a writer.
type Library struct {
	ID          string
	Name        string
	IndexType   IndexType
	IndexParams IndexParams

	mu       sync.RWMutex
	metadata Metadata
	store    *chunk.Store
	idx      index.Index
	dim      int
	logger   *zap.Logger
}

// New constructs a library with a fresh chunk store and a newly-built index
// of the requested type.
func New(id, name string, indexType IndexType, params IndexParams, metadata Metadata, logger *zap.Logger) (*Library, error) {
	idx, err := newIndex(indexType, params)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Library{
		ID:          id,
		Name:        name,
		IndexType:   indexType,
		IndexParams: params,
		metadata:    metadata,
		store:       chunk.NewStore(),
		idx:         idx,
		logger:      logger,
	}, nil
}

func newIndex(indexType IndexType, params IndexParams) (index.Index, error) {
	switch indexType {
	case IndexTypeNaive:
		return naive.New(), nil
	case IndexTypeLSH:
		return lsh.New(lsh.Params{NumTables: params.NumTables, NumHyperplanes: params.NumHyperplanes, Seed: params.Seed}), nil
	case IndexTypeVPTree:
		return vptree.New(vptree.Params{LeafSize: params.LeafSize, Seed: params.Seed}), nil
	default:
		return nil, ragerr.New(ragerr.KindInvalidParameter, "unknown index_type: "+string(indexType))
	}
}

// Metadata returns a copy of the library's current metadata.
func (l *Library) Metadata() Metadata {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.metadata
}

// UpdateMetadata applies fn to the library's metadata under the write lock
// and refreshes UpdatedAt.
func (l *Library) UpdateMetadata(fn func(*Metadata)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(&l.metadata)
	l.metadata.UpdatedAt = time.Now()
}

// Dimension returns the embedding dimension established by the first chunk
// ever added, or 0 if the library has never held a chunk.
func (l *Library) Dimension() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dim
}

// AddChunks validates dimension consistency, normalizes embeddings, and
// installs chunks into the chunk store and index. On any failure the
// partial inserts made during this call are rolled back before the error is
// returned.
func (l *Library) AddChunks(chunks []chunk.Chunk) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.addChunksLocked(chunks)
}

func (l *Library) addChunksLocked(chunks []chunk.Chunk) error {
	installed := make([]string, 0, len(chunks))
	dimBefore := l.dim
	rollback := func() {
		for _, id := range installed {
			l.idx.Remove(id)
			l.store.Delete(id)
		}
		l.dim = dimBefore
		if dimBefore == 0 && l.store.Len() == 0 {
			if fresh, err := newIndex(l.IndexType, l.IndexParams); err == nil {
				l.idx = fresh
			}
		}
	}
	for _, c := range chunks {
		normalized, err := kernel.Normalize(c.Embedding)
		if err != nil {
			rollback()
			return err
		}
		if l.dim == 0 {
			l.dim = len(normalized)
		} else if len(normalized) != l.dim {
			rollback()
			return ragerr.New(ragerr.KindDimensionMismatch, "chunk embedding dimension does not match library dimension")
		}
		if _, exists := l.store.Get(c.ID); exists {
			rollback()
			return ragerr.New(ragerr.KindAlreadyExists, "chunk id already present: "+c.ID)
		}
		c.Embedding = normalized
		l.store.Put(c)
		if err := l.idx.Add(c.ID, normalized); err != nil {
			l.store.Delete(c.ID)
			rollback()
			return err
		}
		installed = append(installed, c.ID)
	}
	l.metadata.UpdatedAt = time.Now()
	return nil
}

// RemoveChunks removes ids from the index and chunk store.
func (l *Library) RemoveChunks(ids []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.removeChunksLocked(ids)
	return nil
}

func (l *Library) removeChunksLocked(ids []string) {
	for _, id := range ids {
		l.idx.Remove(id)
		l.store.Delete(id)
	}
	l.metadata.UpdatedAt = time.Now()
}

// RemoveDocument removes every chunk belonging to documentID.
func (l *Library) RemoveDocument(documentID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := l.store.IterByDocument(documentID)
	l.removeChunksLocked(ids)
	return nil
}

// ReplaceDocumentChunks atomically removes every existing chunk of
// documentID, if any, and installs newChunks in its place, all under one
// write-lock acquisition so readers never observe a mixed chunk set. This is
// the installation primitive the document processor uses.
func (l *Library) ReplaceDocumentChunks(documentID string, newChunks []chunk.Chunk) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	existing := l.store.IterByDocument(documentID)
	removed := make([]chunk.Chunk, 0, len(existing))
	for _, id := range existing {
		if c, ok := l.store.Get(id); ok {
			removed = append(removed, c)
		}
	}
	if len(existing) > 0 {
		l.removeChunksLocked(existing)
	}
	if len(newChunks) == 0 {
		return nil
	}
	if err := l.addChunksLocked(newChunks); err != nil {
		for _, c := range removed {
			l.store.Put(c)
			_ = l.idx.Add(c.ID, c.Embedding)
		}
		return err
	}
	return nil
}

// Search normalizes queryVector, delegates to the index, and hydrates
// returned ids to chunk records. An id the index returns but the chunk
// store no longer holds is dropped silently and logged as an internal
// inconsistency.
func (l *Library) Search(queryVector []float32, k int, minSim float64) (SearchResult, error) {
	if k < 1 {
		return SearchResult{}, ragerr.New(ragerr.KindInvalidParameter, "k must be >= 1")
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	start := time.Now()
	normalized, err := kernel.Normalize(queryVector)
	if err != nil {
		return SearchResult{}, err
	}
	scored, err := l.idx.Query(normalized, k, minSim)
	if err != nil {
		return SearchResult{}, err
	}
	results := make([]ResultItem, 0, len(scored))
	for _, s := range scored {
		c, ok := l.store.Get(s.ID)
		if !ok {
			l.logger.Warn("index returned id absent from chunk store",
				zap.String("library_id", l.ID), zap.String("chunk_id", s.ID))
			continue
		}
		results = append(results, ResultItem{Chunk: c, Similarity: s.Similarity})
	}
	return SearchResult{
		Results:             results,
		TotalChunksSearched: l.store.Len(),
		QueryTimeMS:         float64(time.Since(start).Microseconds()) / 1000.0,
	}, nil
}
