package library

import (
	"time"

	"github.com/merybenavente/ragsearch-engine/chunk"
)

// IndexType selects which nearest-neighbor implementation backs a library.
// It is fixed at library creation.
type IndexType string

const (
	IndexTypeNaive  IndexType = "naive"
	IndexTypeLSH    IndexType = "lsh"
	IndexTypeVPTree IndexType = "vptree"
)

// IndexParams is the small enumerated configuration accepted by the index
// family. Unused fields for a given IndexType are ignored.
type IndexParams struct {
	NumTables      int   `json:"num_tables,omitempty" yaml:"num_tables,omitempty"`
	NumHyperplanes int   `json:"num_hyperplanes,omitempty" yaml:"num_hyperplanes,omitempty"`
	LeafSize       int   `json:"leaf_size,omitempty" yaml:"leaf_size,omitempty"`
	Seed           int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Metadata is a library's descriptive state. CreatedAt is set once at
// construction; UpdatedAt is refreshed on every successful mutation.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string
	Tags      []string
}

// ResultItem pairs a hydrated chunk with its similarity to the query.
type ResultItem struct {
	Chunk      chunk.Chunk
	Similarity float64
}

// SearchResult is the outcome of a Search call.
type SearchResult struct {
	Results             []ResultItem
	TotalChunksSearched int
	QueryTimeMS         float64
}
