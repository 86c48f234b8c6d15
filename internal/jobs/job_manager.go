package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager starts and stops every scheduled job of the service.
type JobManager struct {
	cacheWarmupJob *CacheWarmupJob
}

func NewJobManager(refresher PendingRoutesRefresher, warmupSchedule string, logger *zap.Logger) *JobManager {
	return &JobManager{
		cacheWarmupJob: NewCacheWarmupJob(refresher, warmupSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.cacheWarmupJob.Start(); err != nil {
		return fmt.Errorf("failed to start cache warm-up job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs, waiting for running ones to return.
func (jm *JobManager) StopAll() {
	jm.cacheWarmupJob.Stop()
}
