// Package library implements the library container: one chunk store and
// one nearest-neighbor index guarded by a single reader-writer lock, plus
// the chunk-level mutation and search operations built on top of them.
package library
