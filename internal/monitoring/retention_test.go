package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/booknest/booknest-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventService struct {
	cutoffs  []time.Time
	pruneErr error
}

func (f *fakeEventService) CreateEvent(eventType, level, message string, userID *string) error {
	return nil
}

func (f *fakeEventService) GetRecentEvents(limit int) ([]models.Event, error) {
	return nil, nil
}

func (f *fakeEventService) PruneOlderThan(cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return 1, f.pruneErr
}

func TestPruneUsesConfiguredMaxAge(t *testing.T) {
	svc := &fakeEventService{}
	retention := NewRetention(svc, 7*24*time.Hour)

	retention.prune()

	require.Len(t, svc.cutoffs, 1)
	want := time.Now().Add(-7 * 24 * time.Hour)
	assert.WithinDuration(t, want, svc.cutoffs[0], time.Minute)
}

func TestPruneSurvivesStoreError(t *testing.T) {
	svc := &fakeEventService{pruneErr: errors.New("store down")}
	retention := NewRetention(svc, 24*time.Hour)

	// Must not panic; the next scheduled run will try again.
	retention.prune()
	assert.Len(t, svc.cutoffs, 1)
}
