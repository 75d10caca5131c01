// Package cohere implements embedding.Provider against Cohere's REST embed
// endpoint. No official Cohere Go client exists among this module's
// dependencies, so this is a minimal hand-written JSON client rather than a
// wrapped SDK.
package cohere
