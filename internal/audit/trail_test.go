package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

type memorySink struct {
	logs []shared.AuditLog
	err  error
}

func (m *memorySink) Write(_ context.Context, log shared.AuditLog) error {
	m.logs = append(m.logs, log)
	return m.err
}

func TestTrailFansOutToSinks(t *testing.T) {
	first, second := &memorySink{}, &memorySink{}
	trail := NewTrail(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), first, nil, second)

	trail.Info(context.Background(), "admin@example.com", "Users", "Add", map[string]string{"email": "x@example.com"})

	require.Len(t, first.logs, 1)
	require.Len(t, second.logs, 1)
	got := first.logs[0]
	assert.Equal(t, shared.AuditInfo, got.Level)
	assert.Equal(t, "admin@example.com", got.Email)
	assert.Equal(t, "Users", got.Location)
	assert.Equal(t, "Add", got.ProcType)
	assert.Equal(t, got.EventID, second.logs[0].EventID)
	assert.False(t, got.At.IsZero())
}

func TestTrailErrorCarriesDescription(t *testing.T) {
	sink := &memorySink{}
	trail := NewTrail(nil, sink)

	trail.Error(context.Background(), "", "Roles", "Update", shared.RequiredField("_id"))

	require.Len(t, sink.logs, 1)
	detail, ok := sink.logs[0].Log.(failure)
	require.True(t, ok)
	assert.Equal(t, shared.AuditError, sink.logs[0].Level)
	assert.Equal(t, shared.MsgValidationTitle, detail.Msg)
	assert.Equal(t, shared.MsgFieldRequired, detail.Description)
}

func TestTrailSinkFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	sink := &memorySink{err: errors.New("broker down")}
	trail := NewTrail(slog.New(slog.NewTextHandler(&buf, nil)), sink)

	trail.Info(context.Background(), "a@example.com", "Categories", "Get", "Retrieved all categories")

	assert.Contains(t, buf.String(), "audit sink write")
	assert.Contains(t, buf.String(), "broker down")
}

func TestTrailEventIDsAreUnique(t *testing.T) {
	sink := &memorySink{}
	trail := NewTrail(nil, sink)
	for i := 0; i < 5; i++ {
		trail.Info(context.Background(), "a@example.com", "Users", "Get", nil)
	}
	seen := map[string]struct{}{}
	for _, l := range sink.logs {
		seen[l.EventID.String()] = struct{}{}
	}
	assert.Len(t, seen, 5)
}
