package docproc

import (
	"context"

	"github.com/google/uuid"

	"github.com/merybenavente/ragsearch-engine/chunk"
	"github.com/merybenavente/ragsearch-engine/embedding"
	"github.com/merybenavente/ragsearch-engine/library"
	"github.com/merybenavente/ragsearch-engine/ragerr"
)

// Processor turns document text into an installed chunk set via an
// embedding provider.
type Processor struct {
	Provider embedding.Provider
}

// New constructs a Processor backed by provider.
func New(provider embedding.Provider) *Processor {
	return &Processor{Provider: provider}
}

// Install splits doc.Text into chunks, embeds them in one batch, and
// installs them into lib under lib's write lock, replacing any existing
// chunks of doc.ID. The embedding-provider call happens before the write
// lock is acquired so its latency never stalls readers of lib.
func (p *Processor) Install(ctx context.Context, lib *library.Library, doc chunk.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	texts := SplitText(doc.Text, doc.ChunkSize)
	if len(texts) == 0 {
		return lib.ReplaceDocumentChunks(doc.ID, nil)
	}

	vectors, err := p.Provider.Embed(ctx, texts)
	if err != nil {
		if _, ok := err.(*ragerr.Error); ok {
			return err
		}
		return ragerr.Wrap(ragerr.KindEmbeddingProviderError, err, "embedding provider call failed")
	}
	if len(vectors) != len(texts) {
		return ragerr.New(ragerr.KindEmbeddingProviderError, "embedding provider returned mismatched vector count")
	}

	chunks := make([]chunk.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = chunk.Chunk{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			Text:       t,
			Embedding:  vectors[i],
			Metadata:   doc.Metadata,
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return lib.ReplaceDocumentChunks(doc.ID, chunks)
}
