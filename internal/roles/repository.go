package roles

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/odyssey-admin/internal/platform/db"
	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// Repository exposes persistence for roles and their grants.
type Repository interface {
	List(ctx context.Context) ([]Role, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes operations that must run inside a transaction.
type TxRepository interface {
	Create(ctx context.Context, name string, createdBy int64) (Role, error)
	Update(ctx context.Context, id int64, patch Patch) error
	// Delete removes the role together with its grants and memberships.
	Delete(ctx context.Context, id int64) error
	Permissions(ctx context.Context, roleID int64) ([]string, error)
	AddPermissions(ctx context.Context, roleID int64, keys []string, createdBy int64) error
	RemovePermissions(ctx context.Context, roleID int64, keys []string) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// List returns roles with their permission keys.
func (r *PGRepository) List(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT r.id, r.role_name, r.is_active, r.created_by, r.created_at, r.updated_at,
	COALESCE(array_agg(p.permission ORDER BY p.permission) FILTER (WHERE p.permission IS NOT NULL), '{}')
FROM roles r
LEFT JOIN role_privileges p ON p.role_id = r.id
GROUP BY r.id
ORDER BY r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.IsActive, &role.CreatedBy, &role.CreatedAt, &role.UpdatedAt, &role.Permissions); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

// WithTx runs fn in a transaction. Partial reconciliation failures are
// reported by their cause since the rollback discards the removals.
func (r *PGRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &pgTx{q: tx})
	})
	return rbac.RolledBack(err)
}

type pgTx struct {
	q db.Querier
}

func (t *pgTx) Create(ctx context.Context, name string, createdBy int64) (Role, error) {
	var role Role
	err := t.q.QueryRow(ctx, `INSERT INTO roles (role_name, is_active, created_by) VALUES ($1, TRUE, $2)
RETURNING id, role_name, is_active, created_by, created_at, updated_at`, name, nullableID(createdBy)).
		Scan(&role.ID, &role.Name, &role.IsActive, &role.CreatedBy, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return Role{}, shared.StoreError(err)
	}
	return role, nil
}

func (t *pgTx) Update(ctx context.Context, id int64, p Patch) error {
	tag, err := t.q.Exec(ctx, `UPDATE roles SET
	role_name = COALESCE($2, role_name),
	is_active = COALESCE($3, is_active),
	updated_at = NOW()
WHERE id = $1`, id, p.Name, p.IsActive)
	if err != nil {
		return shared.StoreError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFoundError("role", id)
	}
	return nil
}

func (t *pgTx) Delete(ctx context.Context, id int64) error {
	if _, err := t.q.Exec(ctx, `DELETE FROM role_privileges WHERE role_id = $1`, id); err != nil {
		return err
	}
	if _, err := t.q.Exec(ctx, `DELETE FROM user_roles WHERE role_id = $1`, id); err != nil {
		return err
	}
	tag, err := t.q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFoundError("role", id)
	}
	return nil
}

func (t *pgTx) Permissions(ctx context.Context, roleID int64) ([]string, error) {
	rows, err := t.q.Query(ctx, `SELECT permission FROM role_privileges WHERE role_id = $1 ORDER BY permission`, roleID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (t *pgTx) AddPermissions(ctx context.Context, roleID int64, keys []string, createdBy int64) error {
	_, err := t.q.Exec(ctx, `INSERT INTO role_privileges (role_id, permission, created_by)
SELECT $1, unnest($2::text[]), $3`, roleID, keys, nullableID(createdBy))
	return shared.StoreError(err)
}

func (t *pgTx) RemovePermissions(ctx context.Context, roleID int64, keys []string) error {
	_, err := t.q.Exec(ctx, `DELETE FROM role_privileges WHERE role_id = $1 AND permission = ANY($2)`, roleID, keys)
	return err
}

func nullableID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

var _ Repository = (*PGRepository)(nil)
