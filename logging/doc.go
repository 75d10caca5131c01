// Package logging constructs the zap.Logger used across every layer above
// the kernel.
package logging
