package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/odyssey-erp/odyssey-admin/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// Purger deletes audit records older than retention.
type Purger interface {
	Purge(ctx context.Context, retention time.Duration) (int64, error)
}

// AuditPurgeJob enforces audit log retention.
type AuditPurgeJob struct {
	Purger    Purger
	Retention time.Duration
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
}

// NewAuditPurgeJob wires dependencies for the purge handler.
func NewAuditPurgeJob(purger Purger, retention time.Duration, logger *slog.Logger, metrics *jobmetrics.Metrics) *AuditPurgeJob {
	return &AuditPurgeJob{Purger: purger, Retention: retention, Logger: logger, Metrics: metrics}
}

// Handle processes audit purge tasks.
func (j *AuditPurgeJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Purger == nil {
		return errors.New("audit purge: handler not configured")
	}
	var payload AuditPurgePayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	retention := j.Retention
	if payload.RetentionDays > 0 {
		retention = time.Duration(payload.RetentionDays) * 24 * time.Hour
	}
	if retention <= 0 {
		j.logger().Info("audit retention disabled")
		return nil
	}

	tracker := j.metrics().Track(TaskAuditPurge)
	removed, err := j.Purger.Purge(ctx, retention)
	if err = tracker.End(err); err != nil {
		j.logger().Error("purge audit logs", slog.Any("error", err))
		return err
	}
	j.metrics().AddPurged(removed)
	j.logger().Info("purged audit logs", slog.Int64("removed", removed), slog.Duration("retention", retention))
	return nil
}

func (j *AuditPurgeJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskAuditPurge))
	}
	return slog.Default().With(slog.String("job", TaskAuditPurge))
}

func (j *AuditPurgeJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
