// Package jobs runs the service's scheduled background tasks on
// github.com/robfig/cron/v3.
//
// CacheWarmupJob re-populates the pending-routes cache entry on a configurable
// schedule ("@every 1m" by default) so that it survives invalidations between
// reads. Jobs sit outside the core: they call query handlers like any other
// adapter and never change domain state.
//
//	jobManager := jobs.NewJobManager(pendingRoutesHandler, cfg.CacheWarmupSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
