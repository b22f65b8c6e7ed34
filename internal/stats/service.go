package stats

import (
	"context"
	"log/slog"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/odyssey-erp/odyssey-admin/internal/platform/cache"
)

// Service serves cached aggregate statistics.
type Service struct {
	repo   Repository
	cache  *cache.JSONCache
	group  singleflight.Group
	logger *slog.Logger
}

// NewService builds a stats service. A nil cache queries the repository every time.
func NewService(repo Repository, cache *cache.JSONCache) *Service {
	return &Service{repo: repo, cache: cache, logger: slog.Default()}
}

// WithLogger sets the logger used when the cache is degraded.
func (s *Service) WithLogger(l *slog.Logger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

// ActivityCounts counts audit records per (email, proc_type), largest first.
func (s *Service) ActivityCounts(ctx context.Context, location *string) ([]ActivityCount, error) {
	return fetch(ctx, s, func(ctx context.Context) ([]ActivityCount, error) {
		return s.repo.ActivityCounts(ctx, location)
	}, "auditlogs", optionalString(location))
}

// UniqueCategories lists distinct category names.
func (s *Service) UniqueCategories(ctx context.Context, isActive *bool) (UniqueNames, error) {
	return fetch(ctx, s, func(ctx context.Context) (UniqueNames, error) {
		names, err := s.repo.DistinctCategoryNames(ctx, isActive)
		if err != nil {
			return UniqueNames{}, err
		}
		return UniqueNames{Result: names, Count: len(names)}, nil
	}, "categories", optionalBool(isActive))
}

// UserCount counts users, optionally by active flag.
func (s *Service) UserCount(ctx context.Context, isActive *bool) (int64, error) {
	return fetch(ctx, s, func(ctx context.Context) (int64, error) {
		return s.repo.CountUsers(ctx, isActive)
	}, "users", optionalBool(isActive))
}

// Invalidate drops every cached statistic.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func fetch[T any](ctx context.Context, s *Service, loader func(context.Context) (T, error), parts ...string) (T, error) {
	var zero T
	key, err := s.cache.BuildKey(ctx, parts...)
	if err != nil {
		s.logger.Warn("stats cache unavailable, serving uncached", slog.Any("error", err))
		return loader(ctx)
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		var out T
		err := s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
			return loader(ctx)
		})
		return out, err
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

func optionalString(v *string) string {
	if v == nil {
		return "*"
	}
	return "=" + *v
}

func optionalBool(v *bool) string {
	if v == nil {
		return "*"
	}
	return strconv.FormatBool(*v)
}
