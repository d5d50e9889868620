package models

// ChallengeProgress is the derived yearly progress payload. It is computed
// on every read, never stored.
type ChallengeProgress struct {
	User                   User         `json:"user"`
	Books                  []ShelfEntry `json:"books"`
	BooksReadThisYearCount int          `json:"booksReadThisYearCount"`
	ChallengeGoal          int          `json:"challengeGoal"`
}
