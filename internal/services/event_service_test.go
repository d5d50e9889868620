package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLifecycle(t *testing.T) {
	db := newTestDB(t)
	eventSvc := NewEventService(db, nil)

	userID := "u1"
	require.NoError(t, eventSvc.CreateEvent("shelf.status.update", "info", "Book b1 marked as read", &userID))
	require.NoError(t, eventSvc.CreateEvent("system.startup", "info", "Service started", nil))

	events, err := eventSvc.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.NotEmpty(t, e.ID)
		assert.NotEmpty(t, e.Message)
	}

	// Limit is honored.
	events, err = eventSvc.GetRecentEvents(1)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestGetRecentEventsSameSecondOrder(t *testing.T) {
	db := newTestDB(t)
	eventSvc := NewEventService(db, nil)

	// Three events in the same second; newest insertion must come first.
	now := time.Now().Unix()
	for _, id := range []string{"e1", "e2", "e3"} {
		_, err := db.Exec(
			"INSERT INTO events (id, type, level, message, user_id, created_at) VALUES (?, ?, ?, ?, NULL, ?)",
			id, "system.startup", "info", "msg "+id, now,
		)
		require.NoError(t, err)
	}

	events, err := eventSvc.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "e3", events[0].ID)
	assert.Equal(t, "e2", events[1].ID)
	assert.Equal(t, "e1", events[2].ID)
}

func TestPruneOlderThan(t *testing.T) {
	db := newTestDB(t)
	eventSvc := NewEventService(db, nil)

	old := time.Now().Add(-72 * time.Hour)
	_, err := db.Exec(
		"INSERT INTO events (id, type, level, message, user_id, created_at) VALUES (?, ?, ?, ?, NULL, ?)",
		"e-old", "system.startup", "info", "stale", old.Unix(),
	)
	require.NoError(t, err)
	require.NoError(t, eventSvc.CreateEvent("system.startup", "info", "fresh", nil))

	removed, err := eventSvc.PruneOlderThan(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	events, err := eventSvc.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "fresh", events[0].Message)
}
