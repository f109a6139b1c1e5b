package main

import (
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"academy-backend/internal/config"
)

// Config holds the worker settings derived from the shared app config
type Config struct {
	RedisOpt                  asynq.RedisClientOpt
	Concurrency               int
	NotificationRetentionDays int
	HealthAddr                string
}

// loadConfig builds the worker settings from the app config
func loadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		RedisOpt: asynq.RedisClientOpt{
			Addr:     appCfg.Redis.Host,
			Password: appCfg.Redis.Password,
			DB:       appCfg.Redis.DB,
		},
		Concurrency:               appCfg.Queue.Concurrency,
		NotificationRetentionDays: appCfg.Queue.NotificationRetentionDays,
		HealthAddr:                fmt.Sprintf(":%s", getEnv("WORKER_HEALTH_PORT", "9999")),
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 10
	}

	log.Printf("[Config] Redis: %s, Concurrency: %d, Retention: %d days",
		cfg.RedisOpt.Addr, cfg.Concurrency, cfg.NotificationRetentionDays)

	return cfg
}
