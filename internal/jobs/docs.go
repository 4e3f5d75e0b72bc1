// Package jobs provides scheduled background tasks for the ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the ordering service.
//
// # Available Jobs
//
// 1. DereservationJob - Runs every minute to release stock held by orders
// whose reservation window has expired
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(releaseHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The dereservation job uses the cron expression "* * * * *" which means it
// runs every minute. The reservation window is an hour, so minute granularity
// keeps the release delay negligible against the window itself.
//
// # Error Handling
//
// The dereservation job logs every error: a failed sweep means reserved stock
// stays locked longer than promised. Individual order failures inside a sweep
// are handled by the command handler and do not abort the sweep.
package jobs
