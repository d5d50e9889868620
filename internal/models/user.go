package models

import "time"

// User represents a registered account in the system.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"` // Never expose this to the client
	FavoriteGenres []string  `json:"favoriteGenres"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ProfileView is the UI-friendly profile payload. Absent data is rendered
// as placeholder text rather than null, which is what the pages expect.
type ProfileView struct {
	Username       string           `json:"username"`
	FavoriteGenres interface{}      `json:"favoriteGenres"` // []string, or "Not yet selected"
	Challenge      ChallengeSummary `json:"readingChallenge"`
}

// ChallengeSummary is the reading-challenge portion of a profile view.
type ChallengeSummary struct {
	Year     string `json:"year"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}
