// Package config loads process configuration from a YAML file with a
// defaulting pass and an environment-variable overlay, mirroring the
// original service's COHERE_API_KEY and CORS_ORIGINS collaborator options.
package config
