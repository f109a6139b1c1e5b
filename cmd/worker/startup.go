package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"academy-backend/pkg/container"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	c *container.Container
}

// startServices performs health checks and starts the probe endpoint
func startServices(c *container.Container, cfg *Config) error {
	log.Println("============================================")
	log.Println("Academy Worker Starting...")
	log.Println("============================================")

	checker := &HealthChecker{c: c}
	if err := checker.checkAll(); err != nil {
		log.Printf("Health check failed: %v\n", err)
		return err
	}

	go startHealthCheckServer(cfg.HealthAddr)

	return nil
}

// checkAll runs all health checks
func (h *HealthChecker) checkAll() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"Redis Connection", h.checkRedis},
		{"Database", h.checkDatabase},
	}

	for _, check := range checks {
		log.Printf("Checking %s...\n", check.name)
		if err := check.fn(); err != nil {
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Printf("%s: OK\n", check.name)
	}

	return nil
}

// checkRedis is fatal for the worker: asynq cannot run without it
func (h *HealthChecker) checkRedis() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return h.c.RedisClient.Ping(ctx).Err()
}

func (h *HealthChecker) checkDatabase() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return h.c.DB.HealthCheck(ctx)
}

// startHealthCheckServer serves /health and /ready for probes
func startHealthCheckServer(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthCheckHandler)
	mux.HandleFunc("/ready", readyCheckHandler)

	log.Printf("[Health] Starting health check server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("[Health] Failed to start: %v\n", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"UP","service":"academy-worker"}`))
}

// readyCheckHandler handles /ready (Kubernetes readiness probe)
func readyCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"READY"}`))
}
