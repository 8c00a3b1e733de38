package worker

import (
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// StartScheduler registers the daily expiry scans and starts the
// scheduler in the background. The returned stop function shuts it down.
func StartScheduler(redisAddr string, logger *zap.Logger) (stop func(), err error) {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			Logger:   newAsynqLogger(logger.Named("asynq.scheduler")),
		},
	)

	tasks := []string{TaskContractExpiryScan, TaskCredentialExpiryScan}
	for _, taskType := range tasks {
		task := asynq.NewTask(
			taskType,
			nil,
			asynq.MaxRetry(3),
			asynq.Timeout(5*time.Minute),
			// A second scheduler instance must not double-enqueue the scan.
			asynq.Unique(time.Hour),
		)

		entryID, err := scheduler.Register(DefaultScanSchedule, task)
		if err != nil {
			return nil, err
		}

		logger.Info("scan scheduled",
			zap.String("task", taskType),
			zap.String("schedule", DefaultScanSchedule),
			zap.String("entry_id", entryID),
		)
	}

	if err := scheduler.Start(); err != nil {
		return nil, err
	}

	return func() { scheduler.Shutdown() }, nil
}
