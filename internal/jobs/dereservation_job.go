package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DereservationJob releases stock held by orders whose reservation window has
// run out. Runs every minute.
type DereservationJob struct {
	handler commands.ReleaseExpiredReservationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDereservationJob creates a job releasing expired reservations.
func NewDereservationJob(
	handler commands.ReleaseExpiredReservationsCommandHandler,
	logger *slog.Logger,
) *DereservationJob {
	return &DereservationJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "dereservation_job"),
	}
}

// Start begins the dereservation job to run every minute.
func (j *DereservationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewReleaseExpiredReservationsCommand(time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build dereservation command", "error", err)
			return
		}

		if err = j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Dereservation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dereservation job started (running every minute)")
	return nil
}

// Stop stops the dereservation job.
func (j *DereservationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dereservation job stopped")
}
