package jobs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/odyssey-erp/odyssey-admin/internal/jobs"
)

type stubPurger struct {
	retention time.Duration
	removed   int64
	err       error
	calls     int
}

func (s *stubPurger) Purge(_ context.Context, retention time.Duration) (int64, error) {
	s.calls++
	s.retention = retention
	return s.removed, s.err
}

func newTestJob(p Purger, retention time.Duration) (*AuditPurgeJob, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewAuditPurgeJob(p, retention, nil, jobmetrics.NewMetrics(reg)), reg
}

func purgedTotal(t *testing.T, reg *prometheus.Registry) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "odyssey_audit_purged_total" {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("odyssey_audit_purged_total not registered")
	return 0
}

func TestAuditPurgeUsesConfiguredRetention(t *testing.T) {
	purger := &stubPurger{removed: 12}
	job, reg := newTestJob(purger, 90*24*time.Hour)

	task, err := NewAuditPurgeTask(AuditPurgePayload{})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, 90*24*time.Hour, purger.retention)

	assert.Equal(t, float64(12), purgedTotal(t, reg))
}

func TestAuditPurgePayloadOverridesRetention(t *testing.T) {
	purger := &stubPurger{}
	job, _ := newTestJob(purger, 90*24*time.Hour)

	task, err := NewAuditPurgeTask(AuditPurgePayload{RetentionDays: 7})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, 7*24*time.Hour, purger.retention)
}

func TestAuditPurgeBadPayloadSkipsRetry(t *testing.T) {
	purger := &stubPurger{}
	job, _ := newTestJob(purger, time.Hour)

	err := job.Handle(context.Background(), asynq.NewTask(TaskAuditPurge, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Zero(t, purger.calls)
}

func TestAuditPurgeDisabledRetention(t *testing.T) {
	purger := &stubPurger{}
	job, _ := newTestJob(purger, 0)

	require.NoError(t, job.Handle(context.Background(), asynq.NewTask(TaskAuditPurge, nil)))
	assert.Zero(t, purger.calls)
}

func TestAuditPurgeFailureIsReturned(t *testing.T) {
	purger := &stubPurger{err: errors.New("db down")}
	job, _ := newTestJob(purger, time.Hour)

	err := job.Handle(context.Background(), asynq.NewTask(TaskAuditPurge, nil))
	assert.EqualError(t, err, "db down")
}

func TestJobsHealthWithoutInspector(t *testing.T) {
	r := chi.NewRouter()
	r.Route("/jobs", NewHandler(nil, nil).MountRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"code":200,"data":{"queue":"default","pending":0,"failed":0}}`, rec.Body.String())
}

type stubInspector struct {
	info *asynq.QueueInfo
	err  error
}

func (s stubInspector) GetQueueInfo(string) (*asynq.QueueInfo, error) { return s.info, s.err }

func TestJobsHealthReportsQueueDepth(t *testing.T) {
	r := chi.NewRouter()
	r.Route("/jobs", NewHandler(stubInspector{info: &asynq.QueueInfo{Queue: QueueDefault, Pending: 3, Failed: 1}}, nil).MountRoutes)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	assert.JSONEq(t, `{"code":200,"data":{"queue":"default","pending":3,"failed":1}}`, rec.Body.String())

	r = chi.NewRouter()
	r.Route("/jobs", NewHandler(stubInspector{err: errors.New("redis down")}, nil).MountRoutes)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":503`)
}

type stubEnqueuer struct {
	task *asynq.Task
	opts []asynq.Option
}

func (s *stubEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	s.task, s.opts = task, opts
	return &asynq.TaskInfo{Type: task.Type(), Queue: QueueDefault}, nil
}

func (s *stubEnqueuer) Close() error { return nil }

func TestClientEnqueuesManualPurge(t *testing.T) {
	q := &stubEnqueuer{}
	c := &Client{q: q}

	info, err := c.EnqueueAuditPurge(context.Background(), AuditPurgePayload{RetentionDays: 30})
	require.NoError(t, err)
	assert.Equal(t, TaskAuditPurge, info.Type)
	assert.JSONEq(t, `{"retention_days":30}`, string(q.task.Payload()))
	assert.Len(t, q.opts, 3)
	require.NoError(t, c.Close())
}

func TestNewWorkerRequiresPurgeJob(t *testing.T) {
	_, err := NewWorker(WorkerConfig{})
	assert.Error(t, err)
}
