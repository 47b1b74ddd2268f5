package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/models"
	"github.com/hyperjump/omoide/internal/search"
	"github.com/hyperjump/omoide/internal/store"
)

// searchRequest carries the search query and filters. A top-level query takes
// precedence over filters.query so older clients that send only the flat
// query keep working.
type searchRequest struct {
	Query   string                `json:"query"`
	Filters *models.SearchFilters `json:"filters"`
}

func (s *Server) snapshot(r *http.Request) (search.Snapshot, error) {
	memories, version, err := s.store.ListMemories(r.Context())
	if err != nil {
		return search.Snapshot{}, err
	}
	return search.Snapshot{Memories: memories, Version: version}, nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	filters := models.SearchFilters{}
	if req.Filters != nil {
		filters = *req.Filters
	}
	if req.Query != "" {
		filters.Query = req.Query
	}
	s.logger.Debug("search request",
		zap.String("query", filters.Query), zap.String("sort", string(filters.SortBy)))

	snap, err := s.snapshot(r)
	if err != nil {
		s.logger.Error("search: list memories failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, s.engine.Search(snap, &filters))
}

func (s *Server) handleCreateMemory(w http.ResponseWriter, r *http.Request) {
	var input models.MemoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Content == "" {
		s.respondError(w, http.StatusBadRequest, "content is required")
		return
	}
	m := &models.Memory{
		ID:       input.ID,
		Title:    input.Title,
		Content:  input.Content,
		Tags:     input.Tags,
		Type:     input.Type,
		Date:     input.Date,
		Metadata: input.Metadata,
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	s.logger.Debug("create memory request", zap.String("id", m.ID), zap.String("title", m.Title))
	if err := s.store.CreateMemory(r.Context(), m); err != nil {
		s.logger.Error("create memory failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": m.ID, "status": "created"})
}

func (s *Server) handleGetMemory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, err := s.store.GetMemory(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "memory not found")
		return
	}
	s.respondJSON(w, http.StatusOK, m)
}

func (s *Server) handleUpdateMemory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var input models.MemoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Content == "" {
		s.respondError(w, http.StatusBadRequest, "content is required")
		return
	}
	m := &models.Memory{
		ID:       id,
		Title:    input.Title,
		Content:  input.Content,
		Tags:     input.Tags,
		Type:     input.Type,
		Date:     input.Date,
		Metadata: input.Metadata,
	}
	s.logger.Debug("update memory request", zap.String("id", id))
	if err := s.store.UpdateMemory(r.Context(), m); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"id": id, "status": "updated"})
}

func (s *Server) handleDeleteMemory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete memory request", zap.String("id", id))
	if err := s.store.DeleteMemory(r.Context(), id); err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	target, err := s.store.GetMemory(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "memory not found")
		return
	}
	snap, err := s.snapshot(r)
	if err != nil {
		s.logger.Error("related: list memories failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	related := s.engine.Related(target, snap, limit)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"related": related,
	})
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"tags": search.AvailableTags(snap.Memories),
	})
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"types": search.AvailableTypes(snap.Memories),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountMemories(r.Context())
	if err != nil {
		s.logger.Error("status: count memories failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{
		"memories": count,
	}
	if diskBytes, err := store.DiskUsageBytes(s.config.Storage.DatabasePath); err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	resp["config"] = map[string]interface{}{
		"database_path":  s.config.Storage.DatabasePath,
		"import_dir":     s.config.Storage.ImportDir,
		"related_limit":  s.config.Search.RelatedLimit,
		"snippet_length": s.config.Search.SnippetLength,
		"suggestions":    s.config.Search.SuggestionsOrDefault(),
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
