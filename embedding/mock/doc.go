// Package mock provides a deterministic, offline embedding.Provider for
// tests and demos, so the service is runnable with zero external
// credentials.
package mock
