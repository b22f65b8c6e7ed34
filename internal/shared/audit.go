package shared

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Audit levels.
const (
	AuditInfo  = "info"
	AuditError = "error"
)

// Auditor records actions against the audit trail.
type Auditor interface {
	Info(ctx context.Context, actor, location, procType string, detail any)
	Error(ctx context.Context, actor, location, procType string, err error)
}

// AuditLog represents a record stored in audit_logs.
type AuditLog struct {
	EventID  uuid.UUID `json:"event_id"`
	Level    string    `json:"level"`
	Email    string    `json:"email"`
	Location string    `json:"location"`
	ProcType string    `json:"proc_type"`
	Log      any       `json:"log"`
	At       time.Time `json:"created_at"`
}

// AuditLogger writes records into audit_logs.
type AuditLogger struct {
	pool *pgxpool.Pool
}

// NewAuditLogger returns a new AuditLogger.
func NewAuditLogger(pool *pgxpool.Pool) *AuditLogger {
	return &AuditLogger{pool: pool}
}

// Write persists the log entry. A repeated event id is ignored.
func (l *AuditLogger) Write(ctx context.Context, log AuditLog) error {
	if l == nil || l.pool == nil {
		return errors.New("audit logger not initialised")
	}
	if log.Location == "" || log.ProcType == "" {
		return errors.New("audit log requires location/proc_type")
	}
	payload, err := json.Marshal(log.Log)
	if err != nil {
		return err
	}
	var at *time.Time
	if !log.At.IsZero() {
		at = &log.At
	}
	_, err = l.pool.Exec(ctx, `INSERT INTO audit_logs (event_id, level, email, location, proc_type, log, created_at)
VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))
ON CONFLICT (event_id) DO NOTHING`, log.EventID, log.Level, log.Email, log.Location, log.ProcType, payload, at)
	return err
}
