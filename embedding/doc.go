// Package embedding defines the embedding provider collaborator contract
// used by the document processor and the search handler.
package embedding
