// Package jobs provides scheduled background tasks for the bookstore service.
//
// Jobs use github.com/robfig/cron/v3 with six-field expressions (seconds
// first) and run outside the dialog core.
//
// # Available Jobs
//
// 1. SessionExpiryJob - Deletes chat sessions idle longer than SESSION_IDLE_TTL
//
// # Usage
//
//	expiry := jobs.NewSessionExpiryJob(store, metrics, 24*time.Hour, "", logger)
//	jobManager := jobs.NewJobManager(expiry)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick.
package jobs
