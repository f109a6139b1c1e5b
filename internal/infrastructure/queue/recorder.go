package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/hibiken/asynq"
)

// RecordingEnqueuer keeps enqueued tasks in memory instead of sending them to Redis
type RecordingEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	// Err, when set, is returned by every EnqueueContext call
	Err error
}

func NewRecordingEnqueuer() *RecordingEnqueuer {
	return &RecordingEnqueuer{}
}

func (r *RecordingEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	if task == nil {
		return nil, errors.New("nil task")
	}
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{Type: task.Type(), Payload: task.Payload()}, nil
}

// Tasks returns the enqueued tasks of the given type
func (r *RecordingEnqueuer) Tasks(taskType string) []*asynq.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*asynq.Task
	for _, t := range r.tasks {
		if t.Type() == taskType {
			out = append(out, t)
		}
	}
	return out
}
