package kernel

import (
	"math"

	"github.com/merybenavente/ragsearch-engine/ragerr"
)

// Epsilon bounds the tolerance used for unit-norm and similarity checks
// throughout the index family.
const Epsilon = 1e-6

// Normalize returns v scaled to unit L2 length. A zero (or numerically
// degenerate) vector cannot be normalized and yields a DegenerateVector error.
func Normalize(v []float32) ([]float32, error) {
	mag := Magnitude(v)
	if mag < Epsilon {
		return nil, ragerr.New(ragerr.KindDegenerateVector, "vector has zero or near-zero magnitude")
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / mag)
	}
	return out, nil
}

// Magnitude returns the L2 norm of v.
func Magnitude(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Cosine returns the dot product of a and b. Callers must ensure both are
// already unit-normalized; on unit vectors the dot product equals cosine
// similarity. Dimension mismatch panics are never produced here — callers
// are expected to have validated dimensions against a library's fixed
// dimension before reaching the kernel.
func Cosine(a, b []float32) float64 {
	var dot float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

// CosineDistance returns 1 - Cosine(a, b), the pseudometric used by VPTREE
// for triangle-inequality pruning. Only the relative ordering of this
// quantity matters for top-k selection, so the 1-cos surrogate is valid even
// though it is not itself a geodesic distance on the unit sphere.
func CosineDistance(a, b []float32) float64 {
	return 1 - Cosine(a, b)
}

// IsUnit reports whether v's magnitude lies within Epsilon of 1.
func IsUnit(v []float32) bool {
	m := Magnitude(v)
	return m >= 1-Epsilon && m <= 1+Epsilon
}
