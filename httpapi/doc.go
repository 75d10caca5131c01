// Package httpapi exposes the registry and library operations as a JSON
// HTTP surface built on go-chi/chi, mapping the core's CRUD and search
// operations 1:1 onto routes.
package httpapi
