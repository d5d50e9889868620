package services

import (
	"database/sql"
	"testing"

	"github.com/booknest/booknest-be/internal/database"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a migrated in-memory database. Max one connection so the
// pool doesn't hand out a second, empty, in-memory database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestServices(t *testing.T) (*sql.DB, *UserService, *ShelfService, *ChallengeService) {
	t.Helper()
	db := newTestDB(t)
	eventSvc := NewEventService(db, nil)
	userSvc := NewUserService(db, eventSvc)
	shelfSvc := NewShelfService(db, eventSvc)
	challengeSvc := NewChallengeService(db, userSvc, eventSvc)
	return db, userSvc, shelfSvc, challengeSvc
}

// registerUser creates a valid account and returns its id.
func registerUser(t *testing.T, userSvc *UserService, username, email string) string {
	t.Helper()
	require.NoError(t, userSvc.Register(username, email, "Passw0rd!", "Passw0rd!"))
	user, err := userSvc.Authenticate(username, "Passw0rd!")
	require.NoError(t, err)
	return user.ID
}
