// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are built on github.com/robfig/cron/v3. Every job is wrapped with
// cron.Recover, so a panicking run is logged and the process keeps serving, and
// with cron.SkipIfStillRunning, so a slow run is never overlapped by the next tick
// of the same process.
//
// # Available Jobs
//
// OrderExpiryJob cancels orders that stayed pending longer than the configured
// threshold. It runs on a fixed interval ("@every <interval>"). When a
// ports.Locker is configured, each run first takes a shared lease so that only
// one replica sweeps at a time.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(expiryJob)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll(ctx)
//
// # Error Handling
//
// A failed run is logged and recorded in metrics. There is no immediate retry:
// the cutoff is derived from the current time, so the next run picks up anything
// the failed one missed.
package jobs
