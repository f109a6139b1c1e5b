package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"academy-backend/internal/shared"
	"academy-backend/pkg/logger"
)

// JobConfig tunes the periodic jobs
type JobConfig struct {
	NotificationRetentionDays int
}

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig JobConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerCleanupReadNotificationsJob()
}

// ================================================
// Cleanup Read Notifications (Daily at 3 AM)
// ================================================
func (s *Scheduler) registerCleanupReadNotificationsJob() error {
	payload, err := json.Marshal(shared.CleanupReadNotificationsPayload{
		OlderThanDays: s.jobConfig.NotificationRetentionDays,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupReadNotifications, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *",
		task,
		asynq.Queue(shared.QueueNotification),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CleanupReadNotifications job", err)
		return err
	}

	logger.Info("Registered CleanupReadNotifications: daily at 3 AM", map[string]interface{}{
		"older_than_days": s.jobConfig.NotificationRetentionDays,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
