package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads and prunes audit_logs.
type Repository interface {
	List(ctx context.Context, filters Filters) ([]Entry, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
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

func (r *PGRepository) List(ctx context.Context, filters Filters) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, event_id, level, email, location, proc_type, log, created_at
FROM audit_logs
WHERE created_at >= $1 AND created_at <= $2
ORDER BY created_at DESC, id DESC
OFFSET $3 LIMIT $4`, filters.From, filters.To, filters.Skip, filters.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.EventID, &e.Level, &e.Email, &e.Location, &e.ProcType, &e.Log, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *PGRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
