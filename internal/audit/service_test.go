package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

type stubRepo struct {
	last   Filters
	cutoff time.Time
	rows   []Entry
}

func (s *stubRepo) List(_ context.Context, filters Filters) ([]Entry, error) {
	s.last = filters
	return s.rows, nil
}

func (s *stubRepo) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.cutoff = cutoff
	return 3, nil
}

func fixedService(repo Repository, now time.Time) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc
}

func intPtr(v int) *int { return &v }

func TestListDefaultsToYesterdayWindow(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	repo := &stubRepo{}
	svc := fixedService(repo, now)

	_, err := svc.List(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), repo.last.From)
	assert.Equal(t, now, repo.last.To)
	assert.Equal(t, 0, repo.last.Skip)
	assert.Equal(t, MaxLimit, repo.last.Limit)
}

func TestListSingleDateFallsBackToDefaultWindow(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	repo := &stubRepo{}
	svc := fixedService(repo, now)
	begin := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), Query{Begin: &begin})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), repo.last.From)
}

func TestListExplicitWindowAndLimits(t *testing.T) {
	repo := &stubRepo{}
	svc := fixedService(repo, time.Now())
	begin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), Query{Begin: &begin, End: &end, Skip: intPtr(20), Limit: intPtr(5000)})
	require.NoError(t, err)
	assert.Equal(t, begin, repo.last.From)
	assert.Equal(t, end, repo.last.To)
	assert.Equal(t, 20, repo.last.Skip)
	assert.Equal(t, MaxLimit, repo.last.Limit)

	_, err = svc.List(context.Background(), Query{Begin: &begin, End: &end, Skip: intPtr(-4), Limit: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.last.Skip)
	assert.Equal(t, 10, repo.last.Limit)
}

func TestListRejectsInvertedWindow(t *testing.T) {
	svc := fixedService(&stubRepo{}, time.Now())
	begin := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), Query{Begin: &begin, End: &end})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestPurgeUsesRetentionCutoff(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := &stubRepo{}
	svc := fixedService(repo, now)

	n, err := svc.Purge(context.Background(), 30*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.Equal(t, time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC), repo.cutoff)

	_, err = svc.Purge(context.Background(), 0)
	assert.ErrorIs(t, err, shared.ErrValidation)
}
