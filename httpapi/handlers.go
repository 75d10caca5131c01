package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/merybenavente/ragsearch-engine/chunk"
	"github.com/merybenavente/ragsearch-engine/library"
	"github.com/merybenavente/ragsearch-engine/ragerr"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "ragsearch-engine",
		"status":  "ok",
		"endpoints": map[string]string{
			"libraries": "/api/v1/libraries",
			"documents": "/api/v1/libraries/{id}/documents",
			"search":    "/api/v1/libraries/{id}/search",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateLibrary(w http.ResponseWriter, r *http.Request) {
	var req createLibraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lib, err := s.registry.Create(req.Name, library.IndexType(req.IndexType), req.IndexParams, library.Metadata{
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Username:  req.Metadata.Username,
		Tags:      req.Metadata.Tags,
	})
	if err != nil {
		s.respondRagerr(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, toLibraryResponse(lib))
}

func (s *Server) handleListLibraries(w http.ResponseWriter, r *http.Request) {
	libs := s.registry.List()
	out := make([]libraryResponse, 0, len(libs))
	for _, lib := range libs {
		out = append(out, toLibraryResponse(lib))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetLibrary(w http.ResponseWriter, r *http.Request) {
	lib, err := s.registry.Get(chi.URLParam(r, "libraryID"))
	if err != nil {
		s.respondRagerr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toLibraryResponse(lib))
}

func (s *Server) handleUpdateLibraryMetadata(w http.ResponseWriter, r *http.Request) {
	var req updateMetadataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id := chi.URLParam(r, "libraryID")
	err := s.registry.UpdateMetadata(id, func(m *library.Metadata) {
		m.Username = req.Username
		m.Tags = req.Tags
	})
	if err != nil {
		s.respondRagerr(w, err)
		return
	}
	lib, err := s.registry.Get(id)
	if err != nil {
		s.respondRagerr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toLibraryResponse(lib))
}

func (s *Server) handleDeleteLibrary(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Delete(chi.URLParam(r, "libraryID")); err != nil {
		s.respondRagerr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleIngestDocument(w http.ResponseWriter, r *http.Request) {
	lib, err := s.registry.Get(chi.URLParam(r, "libraryID"))
	if err != nil {
		s.respondRagerr(w, err)
		return
	}
	var req ingestDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		s.respondError(w, http.StatusBadRequest, "document id is required")
		return
	}
	doc := chunk.Document{
		ID:        req.ID,
		LibraryID: lib.ID,
		Text:      req.Text,
		ChunkSize: req.ChunkSize,
		Metadata:  req.Metadata,
	}
	if err := s.processor.Install(r.Context(), lib, doc); err != nil {
		s.respondRagerr(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": req.ID, "status": "indexed"})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	lib, err := s.registry.Get(chi.URLParam(r, "libraryID"))
	if err != nil {
		s.respondRagerr(w, err)
		return
	}
	if err := lib.RemoveDocument(chi.URLParam(r, "documentID")); err != nil {
		s.respondRagerr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	lib, err := s.registry.Get(chi.URLParam(r, "libraryID"))
	if err != nil {
		s.respondRagerr(w, err)
		return
	}
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.K < 1 {
		s.respondError(w, http.StatusBadRequest, "k must be >= 1")
		return
	}
	vectors, err := s.provider.Embed(r.Context(), []string{req.QueryText})
	if err != nil {
		s.logger.Error("query embedding failed", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, "embedding provider error")
		return
	}
	result, err := lib.Search(vectors[0], req.K, req.MinSimilarity)
	if err != nil {
		s.respondRagerr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toSearchResponse(result))
}

func toLibraryResponse(lib *library.Library) libraryResponse {
	md := lib.Metadata()
	return libraryResponse{
		ID:          lib.ID,
		Name:        lib.Name,
		IndexType:   string(lib.IndexType),
		IndexParams: lib.IndexParams,
		Metadata: metadataResponse{
			CreatedAt: md.CreatedAt.Format(time.RFC3339),
			UpdatedAt: md.UpdatedAt.Format(time.RFC3339),
			Username:  md.Username,
			Tags:      md.Tags,
		},
	}
}

func toSearchResponse(result library.SearchResult) searchResponse {
	items := make([]searchResultItem, 0, len(result.Results))
	for _, r := range result.Results {
		items = append(items, searchResultItem{
			Chunk: chunkResponse{
				ID:         r.Chunk.ID,
				DocumentID: r.Chunk.DocumentID,
				Text:       r.Chunk.Text,
				Metadata:   r.Chunk.Metadata,
			},
			SimilarityScore: r.Similarity,
		})
	}
	return searchResponse{
		Results:             items,
		TotalChunksSearched: result.TotalChunksSearched,
		QueryTimeMS:         result.QueryTimeMS,
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) respondRagerr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if rerr, ok := err.(*ragerr.Error); ok {
		switch rerr.Kind {
		case ragerr.KindNotFound:
			status = http.StatusNotFound
		case ragerr.KindAlreadyExists:
			status = http.StatusConflict
		case ragerr.KindDimensionMismatch, ragerr.KindDegenerateVector, ragerr.KindInvalidParameter:
			status = http.StatusBadRequest
		case ragerr.KindEmbeddingProviderError:
			status = http.StatusBadGateway
		case ragerr.KindInternalInconsistency:
			s.logger.Warn("internal inconsistency", zap.Error(err))
			status = http.StatusOK
		}
	}
	s.respondError(w, status, err.Error())
}
