// Package ragerr defines the typed error kinds surfaced across the core and
// its collaborators, so HTTP handlers and callers can branch on Kind rather
// than matching error strings.
package ragerr
