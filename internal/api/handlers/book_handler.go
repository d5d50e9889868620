package handlers

import (
	"net/http"

	"github.com/booknest/booknest-be/internal/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// BookHandler proxies book lookups to the external catalog.
type BookHandler struct {
	catalog catalog.LookupProvider
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(c catalog.LookupProvider) *BookHandler {
	return &BookHandler{catalog: c}
}

// Ping confirms the books route is mounted.
func (h *BookHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Books route is working")
}

// Search proxies a free-text query to the catalog and returns its raw
// response shape.
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeMessage(w, http.StatusBadRequest, "Query is required")
		return
	}

	body, err := h.catalog.Search(r.Context(), query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Catalog search failed")
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// GetVolume returns the typed metadata for a single catalog volume.
func (h *BookHandler) GetVolume(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "volumeId")
	vol, err := h.catalog.GetVolume(r.Context(), id)
	if err != nil {
		log.Warn().Err(err).Str("volume_id", id).Msg("Catalog volume lookup failed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vol)
}
