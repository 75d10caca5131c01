// Package docproc splits document text into chunks, requests embeddings in
// batch from an embedding provider, and atomically installs the resulting
// chunk set into a library.
package docproc
