// Package kernel provides the similarity primitives shared by every index
// implementation: vector normalization and cosine similarity on unit vectors.
package kernel
