// Package jobs provides scheduled background tasks for the order
// orchestrator.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the request path cannot drive.
//
// # Available Jobs
//
// 1. TrackingPollJob - Polls the carrier for every active shipment on a
// configurable schedule and records reported milestones on the shipment
// tracking state machine. When a carrier reports delivery, the order itself
// is advanced to DELIVERED through the regular transition path.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	pollJob := jobs.NewTrackingPollJob(shipments, carrier, recorder, schedule, logger)
//	jobManager := jobs.NewJobManager(pollJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed poll of one shipment is logged and skipped; the next scheduled
// sweep retries it. Carriers re-send the current status on every poll, so
// duplicate milestones are dropped by the tracking command handler.
package jobs
