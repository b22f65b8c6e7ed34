package rbac

import "context"

// Account is the slice of a user record the authorizer needs.
type Account struct {
	ID       int64
	Email    string
	Language string
	IsActive bool
}

// Role is the slice of a role record the authorizer needs.
type Role struct {
	ID       int64
	Name     string
	IsActive bool
}

// Grant ties a permission key to a role.
type Grant struct {
	RoleID     int64
	Permission string
}

// AccountStore resolves accounts. Missing ids yield shared.ErrNotFound.
type AccountStore interface {
	AccountByID(ctx context.Context, id int64) (Account, error)
}

// MembershipStore resolves the roles a user holds.
type MembershipStore interface {
	RoleIDsForUser(ctx context.Context, userID int64) ([]int64, error)
}

// RoleStore resolves roles and their grants.
type RoleStore interface {
	RolesByIDs(ctx context.Context, ids []int64) ([]Role, error)
	PermissionsForRoles(ctx context.Context, roleIDs []int64) ([]Grant, error)
}

// Store bundles every read the authorizer performs.
type Store interface {
	AccountStore
	MembershipStore
	RoleStore
}
