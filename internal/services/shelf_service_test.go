package services

import (
	"testing"

	"github.com/booknest/booknest-be/internal/apperror"
	"github.com/booknest/booknest-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStatusUpsert(t *testing.T) {
	_, userSvc, shelfSvc, _ := newTestServices(t)
	id := registerUser(t, userSvc, "alice", "alice@example.com")

	require.NoError(t, shelfSvc.SetStatus(id, "b1", "read"))
	require.NoError(t, shelfSvc.SetStatus(id, "b1", "reading"))

	entries, err := shelfSvc.ListShelf(id)
	require.NoError(t, err)
	require.Len(t, entries, 1, "upsert must not duplicate rows")
	assert.Equal(t, "b1", entries[0].BookID)
	assert.Equal(t, models.StatusReading, entries[0].Status)
}

func TestSetStatusValidation(t *testing.T) {
	_, userSvc, shelfSvc, _ := newTestServices(t)
	id := registerUser(t, userSvc, "alice", "alice@example.com")

	err := shelfSvc.SetStatus(id, "b1", "owned")
	assert.True(t, apperror.IsKind(err, apperror.Validation), "got %v", err)

	err = shelfSvc.SetStatus(id, "", "read")
	assert.True(t, apperror.IsKind(err, apperror.Validation), "got %v", err)

	err = shelfSvc.SetStatus("missing-user", "b1", "read")
	assert.True(t, apperror.IsKind(err, apperror.NotFound), "got %v", err)
}

func TestRemoveBook(t *testing.T) {
	_, userSvc, shelfSvc, _ := newTestServices(t)
	id := registerUser(t, userSvc, "alice", "alice@example.com")

	// Never added.
	err := shelfSvc.RemoveBook(id, "b1")
	assert.True(t, apperror.IsKind(err, apperror.NotFound))

	// Missing user is a distinct failure.
	err = shelfSvc.RemoveBook("missing-user", "b1")
	assert.True(t, apperror.IsKind(err, apperror.NotFound))

	require.NoError(t, shelfSvc.SetStatus(id, "b1", "will_read"))
	require.NoError(t, shelfSvc.RemoveBook(id, "b1"))

	entries, err := shelfSvc.ListShelf(id)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Second removal fails rather than silently succeeding.
	err = shelfSvc.RemoveBook(id, "b1")
	assert.True(t, apperror.IsKind(err, apperror.NotFound))
}

func TestListShelfOrder(t *testing.T) {
	_, userSvc, shelfSvc, _ := newTestServices(t)
	id := registerUser(t, userSvc, "alice", "alice@example.com")

	require.NoError(t, shelfSvc.SetStatus(id, "b1", "reading"))
	require.NoError(t, shelfSvc.SetStatus(id, "b2", "will_read"))
	require.NoError(t, shelfSvc.SetStatus(id, "b3", "read"))

	// Updating an early entry keeps its position.
	require.NoError(t, shelfSvc.SetStatus(id, "b1", "read"))

	entries, err := shelfSvc.ListShelf(id)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "b1", entries[0].BookID)
	assert.Equal(t, "b2", entries[1].BookID)
	assert.Equal(t, "b3", entries[2].BookID)
	assert.Equal(t, models.StatusRead, entries[0].Status)
}

func TestListShelfUnknownUser(t *testing.T) {
	_, _, shelfSvc, _ := newTestServices(t)
	_, err := shelfSvc.ListShelf("missing-user")
	assert.True(t, apperror.IsKind(err, apperror.NotFound))
}
