package main

import (
	"log"

	"academy-backend/internal/infrastructure/queue"
)

// asynqScheduler wraps queue.Scheduler with startup and shutdown logging
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler registers the periodic jobs and starts the scheduler
func setupScheduler(cfg *Config) *asynqScheduler {
	scheduler := queue.NewScheduler(cfg.RedisOpt, queue.JobConfig{
		NotificationRetentionDays: cfg.NotificationRetentionDays,
	})

	if err := scheduler.RegisterCleanupJobs(); err != nil {
		log.Fatalf("[Scheduler] Failed to register: %v", err)
	}

	go func() {
		log.Println("[Scheduler] Starting...")
		if err := scheduler.Start(); err != nil {
			log.Fatalf("[Scheduler] Failed: %v", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Println("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Println("[Scheduler] Stopped")
}
