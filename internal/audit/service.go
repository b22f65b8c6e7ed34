package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// Query is the caller-facing audit log request. Nil fields take defaults.
type Query struct {
	Begin *time.Time
	End   *time.Time
	Skip  *int
	Limit *int
}

// Service coordinates audit log reads and retention.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates an audit log service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns audit records newest first. Without both dates the window runs
// from the start of yesterday until now.
func (s *Service) List(ctx context.Context, q Query) ([]Entry, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("audit: repository not configured")
	}
	filters, err := s.resolve(q)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filters)
}

// Purge removes records older than retention.
func (s *Service) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, shared.ValidationError(shared.MsgFieldType, "retention", "positive duration")
	}
	return s.repo.DeleteBefore(ctx, s.now().Add(-retention))
}

func (s *Service) resolve(q Query) (Filters, error) {
	var skip, limit int
	if q.Skip != nil {
		skip = *q.Skip
	}
	if q.Limit != nil {
		limit = *q.Limit
	}
	window := shared.NewWindow(skip, limit, MaxLimit)
	f := Filters{Skip: window.Skip, Limit: window.Limit}

	if q.Begin != nil && q.End != nil {
		if q.Begin.After(*q.End) {
			return Filters{}, shared.ValidationError(shared.MsgFieldType, "begin_date", "date before end_date")
		}
		f.From, f.To = *q.Begin, *q.End
		return f, nil
	}
	now := s.now()
	y, m, d := now.AddDate(0, 0, -1).Date()
	f.From = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	f.To = now
	return f, nil
}
