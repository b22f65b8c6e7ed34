package categories

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Category, error)
	Create(ctx context.Context, name string, createdBy int64) (Category, error)
	Update(ctx context.Context, id int64, name *string, isActive *bool) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const categoryColumns = `id, name, is_active, created_by, created_at, updated_at`

// List uses a dynamic query for the optional search filter.
func (r *repository) List(ctx context.Context, filters ListFilters) ([]Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE 1=1`
	args := []any{}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		query += ` AND name ILIKE $` + strconv.Itoa(len(args))
	}
	query += " ORDER BY " + sortOrder(filters.SortBy, filters.SortDir)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *repository) Create(ctx context.Context, name string, createdBy int64) (Category, error) {
	var creator *int64
	if createdBy > 0 {
		creator = &createdBy
	}
	var c Category
	err := r.pool.QueryRow(ctx, `INSERT INTO categories (name, is_active, created_by) VALUES ($1, TRUE, $2) RETURNING `+categoryColumns, name, creator).
		Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Category{}, shared.StoreError(err)
	}
	return c, nil
}

func (r *repository) Update(ctx context.Context, id int64, name *string, isActive *bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE categories SET
	name = COALESCE($2, name),
	is_active = COALESCE($3, is_active),
	updated_at = NOW()
WHERE id = $1`, id, name, isActive)
	if err != nil {
		return shared.StoreError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFoundError("category", id)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFoundError("category", id)
	}
	return nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "name":
		return "name " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "id " + dir
	}
}
