package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/booknest/booknest-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ChallengeHandler handles HTTP requests for shelves and reading
// challenges. The routes live together under /readingChallenge.
type ChallengeHandler struct {
	shelfSvc     services.ShelfServiceProvider
	challengeSvc services.ChallengeServiceProvider
}

// NewChallengeHandler creates a new ChallengeHandler.
func NewChallengeHandler(shelfSvc services.ShelfServiceProvider, challengeSvc services.ChallengeServiceProvider) *ChallengeHandler {
	return &ChallengeHandler{shelfSvc: shelfSvc, challengeSvc: challengeSvc}
}

// UpdateBookStatus upserts a book's shelf status.
func (h *ChallengeHandler) UpdateBookStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"userId"`
		BookID string `json:"bookId"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.shelfSvc.SetStatus(payload.UserID, payload.BookID, payload.Status); err != nil {
		log.Warn().Err(err).Str("user_id", payload.UserID).Str("book_id", payload.BookID).Msg("Failed to update book status")
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Book status updated or added successfully")
}

// RemoveBook deletes a book from a user's shelf.
func (h *ChallengeHandler) RemoveBook(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"userId"`
		BookID string `json:"bookId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.shelfSvc.RemoveBook(payload.UserID, payload.BookID); err != nil {
		log.Warn().Err(err).Str("user_id", payload.UserID).Str("book_id", payload.BookID).Msg("Failed to remove book")
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Book successfully removed from the list.")
}

// ListShelf returns a user's shelf in insertion order.
func (h *ChallengeHandler) ListShelf(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	entries, err := h.shelfSvc.ListShelf(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"books": entries})
}

// GetChallenge returns the current-year goal for the authenticated owner,
// null when the challenge has not been started.
func (h *ChallengeHandler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	year := time.Now().Format("2006")

	goal, err := h.challengeSvc.GetGoal(userID, year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"goal": goal})
}

// SetChallenge stores the goal for the year in the path.
func (h *ChallengeHandler) SetChallenge(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	year := chi.URLParam(r, "year")

	var payload struct {
		Goal int `json:"goal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Goal must be a positive number")
		return
	}

	if err := h.challengeSvc.SetGoal(userID, year, payload.Goal); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, fmt.Sprintf("Goal for %s set to %d books", year, payload.Goal))
}

// GetProgress returns the derived current-year progress payload.
func (h *ChallengeHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	progress, err := h.challengeSvc.GetProgress(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
