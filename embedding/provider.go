package embedding

import "context"

// Provider embeds a batch of texts into vectors of a fixed dimension. The
// returned sequence has the same length and order as texts. The core
// assumes the provider is remote and may be slow, and surfaces any failure
// as an EmbeddingProviderError.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
