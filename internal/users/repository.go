package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/odyssey-admin/internal/platform/db"
	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// Repository exposes persistence for users and their memberships.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	ExistingRoleIDs(ctx context.Context, ids []int64) ([]int64, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes operations that must run inside a transaction.
type TxRepository interface {
	// CountForRegistration counts users while holding the registration lock.
	CountForRegistration(ctx context.Context) (int, error)
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, id int64, patch Patch) error
	Delete(ctx context.Context, id int64) error
	RoleIDs(ctx context.Context, userID int64) ([]int64, error)
	AddRoles(ctx context.Context, userID int64, roleIDs []int64) error
	RemoveRoles(ctx context.Context, userID int64, roleIDs []int64) error
	// EnsureRole creates the named role or reactivates the existing one, and
	// leaves it granting exactly permissions.
	EnsureRole(ctx context.Context, name string, createdBy int64, permissions []string) (int64, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const userColumns = `id, email, password_hash, is_active, first_name, last_name, phone_number, language, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsActive, &u.FirstName, &u.LastName,
		&u.PhoneNumber, &u.Language, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// List returns all users ordered by id.
func (r *PGRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ExistingRoleIDs filters ids down to roles that exist.
func (r *PGRepository) ExistingRoleIDs(ctx context.Context, ids []int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM roles WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
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

func (t *pgTx) CountForRegistration(ctx context.Context) (int, error) {
	if _, err := t.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('users.register'))`); err != nil {
		return 0, fmt.Errorf("users: registration lock: %w", err)
	}
	var n int
	err := t.q.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

func (t *pgTx) Create(ctx context.Context, u User) (User, error) {
	created, err := scanUser(t.q.QueryRow(ctx, `INSERT INTO users (email, password_hash, is_active, first_name, last_name, phone_number, language)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING `+userColumns, u.Email, u.PasswordHash, u.IsActive, u.FirstName, u.LastName, u.PhoneNumber, u.Language))
	if err != nil {
		return User{}, shared.StoreError(err)
	}
	return created, nil
}

func (t *pgTx) Update(ctx context.Context, id int64, p Patch) error {
	tag, err := t.q.Exec(ctx, `UPDATE users SET
	email = COALESCE($2, email),
	password_hash = COALESCE($3, password_hash),
	phone_number = COALESCE($4, phone_number),
	first_name = COALESCE($5, first_name),
	last_name = COALESCE($6, last_name),
	language = COALESCE($7, language),
	is_active = COALESCE($8, is_active),
	updated_at = NOW()
WHERE id = $1`, id, p.Email, p.PasswordHash, p.PhoneNumber, p.FirstName, p.LastName, p.Language, p.IsActive)
	if err != nil {
		return shared.StoreError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFoundError("user", id)
	}
	return nil
}

func (t *pgTx) Delete(ctx context.Context, id int64) error {
	if _, err := t.q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, id); err != nil {
		return err
	}
	tag, err := t.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFoundError("user", id)
	}
	return nil
}

func (t *pgTx) RoleIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := t.q.Query(ctx, `SELECT role_id FROM user_roles WHERE user_id = $1 ORDER BY role_id`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func (t *pgTx) AddRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	_, err := t.q.Exec(ctx, `INSERT INTO user_roles (user_id, role_id)
SELECT $1, unnest($2::bigint[])`, userID, roleIDs)
	return shared.StoreError(err)
}

func (t *pgTx) RemoveRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	_, err := t.q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND role_id = ANY($2)`, userID, roleIDs)
	return err
}

func (t *pgTx) EnsureRole(ctx context.Context, name string, createdBy int64, permissions []string) (int64, error) {
	var id int64
	err := t.q.QueryRow(ctx, `INSERT INTO roles (role_name, is_active, created_by) VALUES ($1, TRUE, $2)
ON CONFLICT (role_name) DO UPDATE SET is_active = TRUE, updated_at = NOW()
RETURNING id`, name, createdBy).Scan(&id)
	if err != nil {
		return 0, shared.StoreError(err)
	}
	if _, err := t.q.Exec(ctx, `DELETE FROM role_privileges WHERE role_id = $1 AND permission <> ALL($2::text[])`, id, permissions); err != nil {
		return 0, err
	}
	_, err = t.q.Exec(ctx, `INSERT INTO role_privileges (role_id, permission, created_by)
SELECT $1, unnest($2::text[]), $3
ON CONFLICT (role_id, permission) DO NOTHING`, id, permissions, createdBy)
	if err != nil {
		return 0, shared.StoreError(err)
	}
	return id, nil
}

var _ Repository = (*PGRepository)(nil)
