package chunk

// Chunk is a text fragment with its embedding, the unit of indexing and
// retrieval.
type Chunk struct {
	ID         string
	DocumentID string
	Text       string
	Embedding  []float32
	Metadata   map[string]string
}

// Document describes the text a document processor chunks and embeds.
// Updating a document's Text replaces its entire chunk set atomically.
type Document struct {
	ID        string
	LibraryID string
	Text      string
	ChunkSize int
	Metadata  map[string]string
}
