// Package index defines the common nearest-neighbor index contract shared by
// the naive, LSH, and VPTREE implementations: build, add, remove, query. Each
// implementation owns its internal structure; none owns the chunk records a
// library associates with an id.
package index
