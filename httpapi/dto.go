package httpapi

import "github.com/merybenavente/ragsearch-engine/library"

type createLibraryRequest struct {
	Name        string               `json:"name"`
	IndexType   string               `json:"index_type"`
	IndexParams library.IndexParams  `json:"index_params"`
	Metadata    metadataRequest      `json:"metadata"`
}

type metadataRequest struct {
	Username string   `json:"username"`
	Tags     []string `json:"tags"`
}

type libraryResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	IndexType   string              `json:"index_type"`
	IndexParams library.IndexParams `json:"index_params"`
	Metadata    metadataResponse    `json:"metadata"`
}

type metadataResponse struct {
	CreatedAt string   `json:"creation_time"`
	UpdatedAt string   `json:"last_update"`
	Username  string   `json:"username"`
	Tags      []string `json:"tags"`
}

type updateMetadataRequest struct {
	Username string   `json:"username"`
	Tags     []string `json:"tags"`
}

type ingestDocumentRequest struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	ChunkSize int               `json:"chunk_size"`
	Metadata  map[string]string `json:"metadata"`
}

type searchRequest struct {
	QueryText     string  `json:"query_text"`
	K             int     `json:"k"`
	MinSimilarity float64 `json:"min_similarity"`
}

type chunkResponse struct {
	ID         string            `json:"id"`
	DocumentID string            `json:"document_id"`
	Text       string            `json:"text"`
	Metadata   map[string]string `json:"metadata"`
}

type searchResultItem struct {
	Chunk            chunkResponse `json:"chunk"`
	SimilarityScore  float64       `json:"similarity_score"`
}

type searchResponse struct {
	Results             []searchResultItem `json:"results"`
	TotalChunksSearched int                `json:"total_chunks_searched"`
	QueryTimeMS         float64            `json:"query_time_ms"`
}
