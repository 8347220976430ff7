package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"staybook/models"

	"github.com/hibiken/asynq"
)

const (
	TypeListingPurgeImages = "listing:purge-images"
	TypeUserPurgePhoto     = "user:purge-photo"
)

// NewPurgeTask builds a storage purge task of the given type.
func NewPurgeTask(taskType string, payload models.PurgePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(taskType, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(2 * time.Minute),
	}
	return task, opts, nil
}

// ParsePurgePayload decodes a purge task payload.
func ParsePurgePayload(task *asynq.Task) (models.PurgePayload, error) {
	var p models.PurgePayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid purge payload: %w", err)
	}
	return p, nil
}

// Enqueuer schedules background purges.
type Enqueuer interface {
	EnqueuePurge(ctx context.Context, taskType string, payload models.PurgePayload) error
}

// AsynqEnqueuer enqueues tasks on the Redis-backed asynq queue.
type AsynqEnqueuer struct {
	Client *asynq.Client
}

func NewAsynqEnqueuer(opt asynq.RedisClientOpt) *AsynqEnqueuer {
	return &AsynqEnqueuer{Client: asynq.NewClient(opt)}
}

func (e *AsynqEnqueuer) EnqueuePurge(ctx context.Context, taskType string, payload models.PurgePayload) error {
	if len(payload.PublicIDs) == 0 {
		return nil
	}
	task, opts, err := NewPurgeTask(taskType, payload)
	if err != nil {
		return err
	}
	if _, err := e.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", taskType, err)
	}
	return nil
}

func (e *AsynqEnqueuer) Close() error {
	return e.Client.Close()
}
