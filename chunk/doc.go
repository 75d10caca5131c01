// Package chunk defines the chunk and document data types and an ordered,
// in-memory chunk store. The store is a pure record store: it never touches
// an index.
package chunk
