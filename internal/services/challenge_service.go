package services

import (
	"database/sql"
	"fmt"

	"github.com/booknest/booknest-be/internal/apperror"
	"github.com/booknest/booknest-be/internal/models"
)

// ChallengeServiceProvider defines the interface for reading-challenge
// services.
type ChallengeServiceProvider interface {
	GetGoal(userID, year string) (*int, error)
	SetGoal(userID, year string, goal int) error
	GetProgress(userID string) (models.ChallengeProgress, error)
}

// ChallengeService provides business logic for per-year reading goals and
// the derived yearly progress.
type ChallengeService struct {
	db       *sql.DB
	userSvc  UserServiceProvider
	eventSvc EventServiceProvider
}

// NewChallengeService creates a new ChallengeService.
func NewChallengeService(db *sql.DB, userSvc UserServiceProvider, eventSvc EventServiceProvider) *ChallengeService {
	return &ChallengeService{db: db, userSvc: userSvc, eventSvc: eventSvc}
}

// GetGoal returns the goal for a year, or nil when the challenge has not
// been started for that year.
func (s *ChallengeService) GetGoal(userID, year string) (*int, error) {
	if _, err := s.userSvc.GetUserByID(userID); err != nil {
		return nil, err
	}

	var goal int
	err := s.db.QueryRow("SELECT goal FROM challenge_goals WHERE user_id = ? AND year = ?", userID, year).Scan(&goal)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewInternal("failed to get challenge goal", err)
	}
	return &goal, nil
}

// SetGoal stores or overwrites the goal for a year. A non-positive goal is
// rejected and leaves any stored goal untouched. No history is kept.
func (s *ChallengeService) SetGoal(userID, year string, goal int) error {
	if goal <= 0 {
		return apperror.NewValidation("Goal must be a positive number")
	}
	if _, err := s.userSvc.GetUserByID(userID); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO challenge_goals (user_id, year, goal) VALUES (?, ?, ?)
		ON CONFLICT (user_id, year) DO UPDATE SET goal = excluded.goal`,
		userID, year, goal,
	)
	if err != nil {
		return apperror.NewInternal("failed to set challenge goal", err)
	}

	s.eventSvc.CreateEvent("challenge.goal.set", "info", fmt.Sprintf("Goal for %s set to %d books", year, goal), &userID)
	return nil
}

// GetProgress derives the current-year progress: the goal (0 when unset)
// and the shelf entries marked read with a timestamp in the current
// calendar year. Recomputed on every read; shelf mutations have no
// invalidation hook, so nothing here may be cached.
func (s *ChallengeService) GetProgress(userID string) (models.ChallengeProgress, error) {
	user, err := s.userSvc.GetUserByID(userID)
	if err != nil {
		return models.ChallengeProgress{}, err
	}

	year := currentYear()
	goal, err := s.GetGoal(userID, year)
	if err != nil {
		return models.ChallengeProgress{}, err
	}

	books, err := listShelf(s.db, userID)
	if err != nil {
		return models.ChallengeProgress{}, err
	}

	readCount := 0
	for _, entry := range books {
		if entry.Status == models.StatusRead && yearOf(entry.Timestamp) == year {
			readCount++
		}
	}

	progress := models.ChallengeProgress{
		User:                   user,
		Books:                  books,
		BooksReadThisYearCount: readCount,
	}
	if goal != nil {
		progress.ChallengeGoal = *goal
	}
	return progress, nil
}
