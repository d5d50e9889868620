package monitoring

import (
	"time"

	"github.com/booknest/booknest-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Retention prunes old activity events on a daily schedule.
type Retention struct {
	eventSvc services.EventServiceProvider
	maxAge   time.Duration
	cron     *cron.Cron
}

// NewRetention creates a retention job keeping events for maxAge.
func NewRetention(eventSvc services.EventServiceProvider, maxAge time.Duration) *Retention {
	return &Retention{
		eventSvc: eventSvc,
		maxAge:   maxAge,
		cron:     cron.New(),
	}
}

// Run registers the daily prune and starts the cron scheduler. The prune
// also runs once immediately so a long-stopped instance catches up on
// start.
func (r *Retention) Run() {
	log.Info().Dur("max_age", r.maxAge).Msg("Starting event retention job")
	r.prune()
	r.cron.AddFunc("@daily", r.prune)
	r.cron.Start()
}

// Stop halts the scheduler, waiting for a running prune to finish.
func (r *Retention) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Stopped event retention job")
}

func (r *Retention) prune() {
	cutoff := time.Now().Add(-r.maxAge)
	removed, err := r.eventSvc.PruneOlderThan(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Retention: failed to prune events")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("Retention: pruned old events")
	}
}
