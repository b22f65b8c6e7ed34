package rbac

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// Repository reads accounts, memberships and grants from postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository backed by the provided pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// AccountByID loads the account used to build a principal.
func (r *Repository) AccountByID(ctx context.Context, id int64) (Account, error) {
	var a Account
	err := r.pool.QueryRow(ctx, `SELECT id, email, language, is_active FROM users WHERE id = $1`, id).
		Scan(&a.ID, &a.Email, &a.Language, &a.IsActive)
	if err != nil {
		return Account{}, shared.StoreError(err)
	}
	return a, nil
}

// RoleIDsForUser lists the roles a user belongs to.
func (r *Repository) RoleIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT role_id FROM user_roles WHERE user_id = $1 ORDER BY role_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RolesByIDs loads roles; unknown ids are skipped.
func (r *Repository) RolesByIDs(ctx context.Context, ids []int64) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, role_name, is_active FROM roles WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.IsActive); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// PermissionsForRoles lists grants held by any of the roles.
func (r *Repository) PermissionsForRoles(ctx context.Context, roleIDs []int64) ([]Grant, error) {
	rows, err := r.pool.Query(ctx, `SELECT role_id, permission FROM role_privileges WHERE role_id = ANY($1) ORDER BY role_id, permission`, roleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var grants []Grant
	for rows.Next() {
		var g Grant
		if err := rows.Scan(&g.RoleID, &g.Permission); err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}
