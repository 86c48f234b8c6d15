package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultWarmupSchedule = "@every 1m"

// PendingRoutesRefresher reloads the pending-routes listing into the cache
// and reports how many routes it holds.
type PendingRoutesRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// CacheWarmupJob keeps the pending-routes cache entry populated so that
// dispatchers polling it rarely hit the database.
type CacheWarmupJob struct {
	refresher PendingRoutesRefresher
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewCacheWarmupJob accepts any schedule robfig/cron understands, including
// descriptors such as "@every 30s". An empty schedule means
// DefaultWarmupSchedule.
func NewCacheWarmupJob(refresher PendingRoutesRefresher, schedule string, logger *zap.Logger) *CacheWarmupJob {
	if schedule == "" {
		schedule = DefaultWarmupSchedule
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "cache_warmup_job"))
	return &CacheWarmupJob{
		refresher: refresher,
		schedule:  schedule,
		timeout:   30 * time.Second,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger}))),
		logger:    logger,
	}
}

func (j *CacheWarmupJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("cache warm-up job started", zap.String("schedule", j.schedule))
	return nil
}

// Run refreshes the cache once. Failures are logged; the next tick retries.
func (j *CacheWarmupJob) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	n, err := j.refresher.Refresh(ctx)
	if err != nil {
		j.logger.Error("cache warm-up failed", zap.Error(err))
		return
	}
	j.logger.Debug("pending routes cached", zap.Int("routes", n))
}

// Stop waits for a running refresh to finish.
func (j *CacheWarmupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("cache warm-up job stopped")
}

// cronLogger routes robfig/cron's own messages to zap.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
