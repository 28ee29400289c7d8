// Package jobs provides scheduled background tasks for the fulfillment
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. EtaRefreshJob - Runs every minute to re-estimate delivery ETAs for
// active shipments from their last reported position
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(refreshEtasHandler, logger)
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
// The ETA refresh job uses the cron expression "0 * * * * *" which means it
// runs at the top of every minute. Route estimates are cheap and the planner
// degrades to a geometric fallback, so a failed routing service never stalls
// the schedule.
//
// # Error Handling
//
// - Refresh errors are logged and the job waits for the next tick
// - Failed job starts will stop any already running jobs
package jobs
