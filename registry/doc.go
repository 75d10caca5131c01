// Package registry implements the process-wide library registry: a mapping
// from library id to library container, protected by a short-lived mutex
// that is never held while library-level work executes.
package registry
