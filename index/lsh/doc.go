// Package lsh provides an approximate nearest-neighbor index using
// random-hyperplane locality-sensitive hashing over unit vectors. It may miss
// true neighbors; the candidates it does return are scored exactly by
// cosine similarity.
package lsh
