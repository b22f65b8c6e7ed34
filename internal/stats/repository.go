package stats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the aggregate queries.
type Repository interface {
	ActivityCounts(ctx context.Context, location *string) ([]ActivityCount, error)
	DistinctCategoryNames(ctx context.Context, isActive *bool) ([]string, error)
	CountUsers(ctx context.Context, isActive *bool) (int64, error)
}

// PGRepository implements Repository using pgx.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

var _ Repository = (*PGRepository)(nil)

func (r *PGRepository) ActivityCounts(ctx context.Context, location *string) ([]ActivityCount, error) {
	rows, err := r.pool.Query(ctx, `SELECT email, proc_type, COUNT(*)
FROM audit_logs
WHERE ($1::text IS NULL OR location = $1)
GROUP BY email, proc_type
ORDER BY COUNT(*) DESC, email, proc_type`, location)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ActivityCount, 0)
	for rows.Next() {
		var c ActivityCount
		if err := rows.Scan(&c.ID.Email, &c.ID.ProcType, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepository) DistinctCategoryNames(ctx context.Context, isActive *bool) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT name FROM categories
WHERE ($1::boolean IS NULL OR is_active = $1)
ORDER BY name`, isActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *PGRepository) CountUsers(ctx context.Context, isActive *bool) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE ($1::boolean IS NULL OR is_active = $1)`, isActive).Scan(&n)
	return n, err
}
