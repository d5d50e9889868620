package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/booknest/booknest-be/internal/apperror"
	"github.com/booknest/booknest-be/internal/models"
)

// ShelfServiceProvider defines the interface for shelf services.
type ShelfServiceProvider interface {
	SetStatus(userID, bookID, status string) error
	RemoveBook(userID, bookID string) error
	ListShelf(userID string) ([]models.ShelfEntry, error)
}

// ShelfService provides business logic for a user's personal reading shelf.
type ShelfService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewShelfService creates a new ShelfService.
func NewShelfService(db *sql.DB, eventSvc EventServiceProvider) *ShelfService {
	return &ShelfService{db: db, eventSvc: eventSvc}
}

// SetStatus upserts a book on the user's shelf. An existing entry gets its
// status and timestamp refreshed; a new entry is appended. The primary key
// on (user_id, book_id) guarantees at most one entry per book.
func (s *ShelfService) SetStatus(userID, bookID, status string) error {
	if userID == "" || bookID == "" {
		return apperror.NewValidation("User ID and Book ID are required.")
	}
	if !models.ValidStatus(status) {
		return apperror.NewValidation(fmt.Sprintf("Invalid status %q: must be one of reading, will_read, read", status))
	}
	if err := s.userExists(userID); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO shelf_entries (user_id, book_id, status, timestamp) VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, book_id) DO UPDATE SET status = excluded.status, timestamp = excluded.timestamp`,
		userID, bookID, status, time.Now().Unix(),
	)
	if err != nil {
		return apperror.NewInternal("failed to update book status", err)
	}

	s.eventSvc.CreateEvent("shelf.status.update", "info", fmt.Sprintf("Book %s marked as %s", bookID, status), &userID)
	return nil
}

// RemoveBook deletes an entry from the user's shelf. A missing user and a
// missing entry are distinct not-found failures; removing the same book
// twice fails on the second call.
func (s *ShelfService) RemoveBook(userID, bookID string) error {
	if userID == "" || bookID == "" {
		return apperror.NewValidation("User ID and Book ID are required.")
	}
	if err := s.userExists(userID); err != nil {
		return err
	}

	res, err := s.db.Exec("DELETE FROM shelf_entries WHERE user_id = ? AND book_id = ?", userID, bookID)
	if err != nil {
		return apperror.NewInternal("failed to remove book", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("Book not found in the user's list.")
	}

	s.eventSvc.CreateEvent("shelf.book.remove", "info", fmt.Sprintf("Book %s removed from shelf", bookID), &userID)
	return nil
}

// ListShelf returns the user's shelf in insertion order.
func (s *ShelfService) ListShelf(userID string) ([]models.ShelfEntry, error) {
	if err := s.userExists(userID); err != nil {
		return nil, err
	}
	return listShelf(s.db, userID)
}

func (s *ShelfService) userExists(userID string) error {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM users WHERE id = ?", userID).Scan(&one)
	if err == sql.ErrNoRows {
		return apperror.NewNotFound("User not found")
	}
	if err != nil {
		return apperror.NewInternal("failed to look up user", err)
	}
	return nil
}

// listShelf loads a user's shelf entries in insertion order. Shared with
// the challenge progress derivation.
func listShelf(db *sql.DB, userID string) ([]models.ShelfEntry, error) {
	rows, err := db.Query("SELECT book_id, status, timestamp FROM shelf_entries WHERE user_id = ? ORDER BY rowid", userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list shelf", err)
	}
	defer rows.Close()

	entries := []models.ShelfEntry{}
	for rows.Next() {
		var entry models.ShelfEntry
		var ts int64
		if err := rows.Scan(&entry.BookID, &entry.Status, &ts); err != nil {
			return nil, apperror.NewInternal("failed to scan shelf entry", err)
		}
		entry.Timestamp = time.Unix(ts, 0)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("failed to list shelf", err)
	}
	return entries, nil
}
