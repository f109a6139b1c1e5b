package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Enqueuer is the subset of *asynq.Client used by producers
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewClient connects an asynq producer to Redis
func NewClient(redisAddr, password string, db int) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})
}

// EnqueueJSON marshals payload and enqueues it as taskType
func EnqueueJSON(ctx context.Context, e Enqueuer, taskType string, payload interface{}, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", taskType, err)
	}

	info, err := e.EnqueueContext(ctx, asynq.NewTask(taskType, data), opts...)
	if err != nil {
		return nil, fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return info, nil
}
