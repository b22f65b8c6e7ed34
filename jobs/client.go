package jobs

import (
	"context"

	"github.com/hibiken/asynq"
)

// Enqueuer is the subset of *asynq.Client used by Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Client submits retention tasks on demand.
type Client struct {
	q Enqueuer
}

// NewClient wraps an asynq client for redisOpts.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{q: asynq.NewClient(redisOpts)}
}

// EnqueueAuditPurge queues a purge that runs as soon as a worker is free.
// Only one manual purge may be pending at a time.
func (c *Client) EnqueueAuditPurge(ctx context.Context, payload AuditPurgePayload) (*asynq.TaskInfo, error) {
	task, err := NewAuditPurgeTask(payload)
	if err != nil {
		return nil, err
	}
	return c.q.EnqueueContext(ctx, task, asynq.Queue(QueueDefault), asynq.TaskID(manualPurgeID), asynq.MaxRetry(1))
}

// Close releases the redis connection.
func (c *Client) Close() error {
	return c.q.Close()
}

const manualPurgeID = "audit-purge-manual"
