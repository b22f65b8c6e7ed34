package categories

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

type stubRepo struct {
	items   map[int64]Category
	next    int64
	created int
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: map[int64]Category{}}
}

func (s *stubRepo) List(_ context.Context, _ ListFilters) ([]Category, error) {
	var out []Category
	for _, c := range s.items {
		out = append(out, c)
	}
	return out, nil
}

func (s *stubRepo) Create(_ context.Context, name string, createdBy int64) (Category, error) {
	s.next++
	s.created++
	c := Category{ID: s.next, Name: name, IsActive: true, CreatedBy: &createdBy}
	s.items[c.ID] = c
	return c, nil
}

func (s *stubRepo) Update(_ context.Context, id int64, name *string, isActive *bool) error {
	c, ok := s.items[id]
	if !ok {
		return shared.NotFoundError("category", id)
	}
	if name != nil {
		c.Name = *name
	}
	if isActive != nil {
		c.IsActive = *isActive
	}
	s.items[id] = c
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.items[id]; !ok {
		return shared.NotFoundError("category", id)
	}
	delete(s.items, id)
	return nil
}

type bumps struct{ n int }

func (b *bumps) Bump(context.Context) error { b.n++; return nil }

func TestCategoryLifecycle(t *testing.T) {
	repo := newStubRepo()
	cache := &bumps{}
	svc := NewService(repo, cache)
	ctx := context.Background()
	actor := shared.Principal{ID: 4}

	c, err := svc.Create(ctx, actor, AddInput{Name: "  Books "})
	require.NoError(t, err)
	assert.Equal(t, "Books", c.Name)
	assert.True(t, c.IsActive)

	off := false
	require.NoError(t, svc.Update(ctx, UpdateInput{ID: c.ID, IsActive: &off}))
	assert.False(t, repo.items[c.ID].IsActive)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.ErrorIs(t, svc.Delete(ctx, c.ID), shared.ErrNotFound)
	assert.Equal(t, 3, cache.n)

	list, err := svc.List(ctx, ListFilters{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCategoryValidation(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, shared.Principal{ID: 1}, AddInput{Name: " "})
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Zero(t, repo.created)

	blank := ""
	assert.ErrorIs(t, svc.Update(ctx, UpdateInput{ID: 1, Name: &blank}), shared.ErrValidation)
	assert.ErrorIs(t, svc.Update(ctx, UpdateInput{}), shared.ErrValidation)
	assert.ErrorIs(t, svc.Update(ctx, UpdateInput{ID: 9, IsActive: new(bool)}), shared.ErrNotFound)
}

type failingBump struct{}

func (failingBump) Bump(context.Context) error { return errors.New("redis: connection refused") }

func TestCategoryMutationLogsInvalidationFailure(t *testing.T) {
	var logs bytes.Buffer
	svc := NewService(newStubRepo(), failingBump{}).WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	_, err := svc.Create(context.Background(), shared.Principal{ID: 1}, AddInput{Name: "Books"})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "stats cache invalidation failed")
	assert.Contains(t, logs.String(), "connection refused")
}
