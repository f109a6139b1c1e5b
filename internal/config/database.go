package config

import (
	"fmt"
	"time"

	"academy-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig turns the Database section into a pool config.
// Pool lifetime and retry settings come straight from the environment.
func LoadDatabaseConfig(db DatabaseConfig) (*database.DBConfig, error) {
	if db.MaxConns < db.MinConns {
		return nil, fmt.Errorf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)", db.MaxConns, db.MinConns)
	}

	durations := map[string]time.Duration{
		"DB_MAX_CONN_LIFETIME":   5 * time.Minute,
		"DB_MAX_CONN_IDLE_TIME":  time.Minute,
		"DB_HEALTH_CHECK_PERIOD": time.Minute,
		"DB_RETRY_DELAY":         time.Second,
		"DB_CONNECT_TIMEOUT":     10 * time.Second,
	}
	for key := range durations {
		raw := getEnv(key, "")
		if raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		durations[key] = d
	}

	return &database.DBConfig{
		Host:              db.Host,
		Port:              db.Port,
		Username:          db.User,
		Password:          db.Password,
		DBName:            db.Database,
		SSLMode:           db.SSLMode,
		MaxConns:          int32(db.MaxConns),
		MinConns:          int32(db.MinConns),
		MaxConnLifetime:   durations["DB_MAX_CONN_LIFETIME"],
		MaxConnIdleTime:   durations["DB_MAX_CONN_IDLE_TIME"],
		HealthCheckPeriod: durations["DB_HEALTH_CHECK_PERIOD"],
		MaxRetries:        getEnvInt("DB_MAX_RETRIES", 5),
		RetryDelay:        durations["DB_RETRY_DELAY"],
		ConnectTimeout:    durations["DB_CONNECT_TIMEOUT"],
	}, nil
}
