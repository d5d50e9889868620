package models

import "time"

// Shelf statuses a book can have.
const (
	StatusReading  = "reading"
	StatusWillRead = "will_read"
	StatusRead     = "read"
)

// ValidStatus reports whether s is one of the allowed shelf statuses.
func ValidStatus(s string) bool {
	return s == StatusReading || s == StatusWillRead || s == StatusRead
}

// ShelfEntry is a single book on a user's shelf. Timestamp doubles as
// "added at" and "status changed at"; the challenge progress derivation
// relies on that.
type ShelfEntry struct {
	BookID    string    `json:"bookId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
