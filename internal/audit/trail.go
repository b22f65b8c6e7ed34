package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// Sink receives every audit record written through a Trail.
type Sink interface {
	Write(ctx context.Context, log shared.AuditLog) error
}

// Trail fans audit records out to the operational log and the configured sinks.
type Trail struct {
	logger *slog.Logger
	sinks  []Sink
	now    func() time.Time
}

var _ shared.Auditor = (*Trail)(nil)

// NewTrail builds a Trail. Nil sinks are skipped.
func NewTrail(logger *slog.Logger, sinks ...Sink) *Trail {
	if logger == nil {
		logger = slog.Default()
	}
	active := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}
	return &Trail{logger: logger, sinks: active, now: time.Now}
}

// Info records a successful action.
func (t *Trail) Info(ctx context.Context, actor, location, procType string, detail any) {
	t.record(ctx, shared.AuditInfo, actor, location, procType, detail)
}

// Error records a failed action with the error message as detail.
func (t *Trail) Error(ctx context.Context, actor, location, procType string, err error) {
	t.record(ctx, shared.AuditError, actor, location, procType, errorDetail(err))
}

func (t *Trail) record(ctx context.Context, level, actor, location, procType string, detail any) {
	if t == nil {
		return
	}
	entry := shared.AuditLog{
		EventID:  uuid.New(),
		Level:    level,
		Email:    actor,
		Location: location,
		ProcType: procType,
		Log:      detail,
		At:       t.now().UTC(),
	}
	attrs := []any{
		slog.String("event_id", entry.EventID.String()),
		slog.String("email", actor),
		slog.String("location", location),
		slog.String("proc_type", procType),
	}
	if level == shared.AuditError {
		t.logger.Info("audit", append(attrs, slog.String("level", level), slog.Any("log", detail))...)
	} else {
		t.logger.Debug("audit", append(attrs, slog.String("level", level))...)
	}

	// Audit writes outlive a cancelled request.
	ctx = context.WithoutCancel(ctx)
	for _, sink := range t.sinks {
		if err := sink.Write(ctx, entry); err != nil {
			t.logger.Warn("audit sink write", slog.String("event_id", entry.EventID.String()), slog.Any("error", err))
		}
	}
}

type failure struct {
	Error       string `json:"error"`
	Msg         string `json:"msg,omitempty"`
	Description string `json:"description,omitempty"`
}

func errorDetail(err error) failure {
	if err == nil {
		return failure{}
	}
	out := failure{Error: err.Error()}
	var se *shared.Error
	if errors.As(err, &se) {
		out.Msg = se.Msg
		out.Description = se.Description
	}
	return out
}
