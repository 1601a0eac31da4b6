package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/sessions"

	"github.com/robfig/cron/v3"
)

// SessionExpiryJob periodically removes admin dialog sessions whose owner
// walked away without finishing or cancelling the flow.
type SessionExpiryJob struct {
	store  *sessions.Store
	cron   *cron.Cron
	logger *slog.Logger
}

// NewSessionExpiryJob creates a job that purges expired dialog sessions once
// a minute.
func NewSessionExpiryJob(store *sessions.Store, logger *slog.Logger) *SessionExpiryJob {
	return &SessionExpiryJob{
		store:  store,
		cron:   cron.New(),
		logger: logger.With("component", "session_expiry_job"),
	}
}

// Start schedules the purge to run every minute.
func (j *SessionExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		if purged := j.store.PurgeExpired(); purged > 0 {
			j.logger.InfoContext(ctx, "Expired dialog sessions purged", "count", purged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session expiry job started (running every minute)")
	return nil
}

// Stop stops the session expiry job.
func (j *SessionExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session expiry job stopped")
}
