// Package jobs provides scheduled background tasks for the food delivery service.
//
// Jobs are built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// StaleDeliveryJob scans for deliveries in on_route whose courier has not reported a
// position for longer than the configured window and logs a warning for each. It
// never changes delivery state.
//
// # Usage
//
//	staleJob := jobs.NewStaleDeliveryJob(deliveryRepo, 10*time.Minute, "", logger)
//	jobManager := jobs.NewJobManager(staleJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed scan is logged and retried on the next tick. A failed job start stops
// every job started before it.
package jobs
