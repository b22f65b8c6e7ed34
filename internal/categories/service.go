package categories

import (
	"context"
	"log/slog"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// CacheInvalidator drops derived data after a mutation.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

type Service struct {
	repo   Repository
	cache  CacheInvalidator
	logger *slog.Logger
}

func NewService(repo Repository, cache CacheInvalidator) *Service {
	return &Service{repo: repo, cache: cache, logger: slog.Default()}
}

func (s *Service) WithLogger(l *slog.Logger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Category, error) {
	categories, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

func (s *Service) Create(ctx context.Context, actor shared.Principal, in AddInput) (Category, error) {
	name, err := validateName(in.Name)
	if err != nil {
		return Category{}, err
	}
	c, err := s.repo.Create(ctx, name, actor.ID)
	if err != nil {
		return Category{}, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	if err := validateID(in.ID); err != nil {
		return err
	}
	var name *string
	if in.Name != nil {
		n, err := validateName(*in.Name)
		if err != nil {
			return err
		}
		name = &n
	}
	if err := s.repo.Update(ctx, in.ID, name, in.IsActive); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("stats cache invalidation failed", slog.String("domain", "categories"), slog.Any("error", err))
	}
}
