package mock

import (
	"context"
	"hash/fnv"
	"math/rand"

	"github.com/merybenavente/ragsearch-engine/kernel"
	"github.com/merybenavente/ragsearch-engine/ragerr"
)

// Provider produces a deterministic pseudo-embedding per text: the text is
// hashed to seed a generator that fills a fixed-dimension vector, which is
// then unit-normalized. Identical texts always yield identical vectors;
// distinct texts yield (with overwhelming probability) distinct vectors.
type Provider struct {
	Dimension int
}

// New constructs a mock provider with the given embedding dimension.
// dimension defaults to 32 if non-positive.
func New(dimension int) *Provider {
	if dimension <= 0 {
		dimension = 32
	}
	return &Provider{Dimension: dimension}
}

// Embed returns one deterministic unit vector per input text.
func (p *Provider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		h := fnv.New64a()
		_, _ = h.Write([]byte(text))
		rng := rand.New(rand.NewSource(int64(h.Sum64())))
		v := make([]float32, p.Dimension)
		for d := range v {
			v[d] = float32(rng.NormFloat64())
		}
		normalized, err := kernel.Normalize(v)
		if err != nil {
			return nil, ragerr.Wrap(ragerr.KindEmbeddingProviderError, err, "mock: degenerate hash vector")
		}
		out[i] = normalized
	}
	return out, nil
}
