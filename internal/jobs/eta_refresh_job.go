package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EtaRefreshJob manages the scheduled re-estimation of delivery ETAs.
// Runs every minute to re-plan active shipments from their current position.
type EtaRefreshJob struct {
	handler commands.RefreshEtasCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewEtaRefreshJob creates a new job for refreshing delivery ETAs.
// Uses RefreshEtasCommandHandler to re-estimate every active tracking.
func NewEtaRefreshJob(handler commands.RefreshEtasCommandHandler, logger *slog.Logger) *EtaRefreshJob {
	return &EtaRefreshJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "eta_refresh_job"),
	}
}

// Start begins the ETA refresh job to run every minute.
func (j *EtaRefreshJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewRefreshEtasCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "ETA refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "ETA refresh job started (running every minute)")
	return nil
}

// Stop stops the ETA refresh job.
func (j *EtaRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "ETA refresh job stopped")
}
