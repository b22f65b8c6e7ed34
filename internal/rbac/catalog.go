package rbac

import (
	"fmt"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// Group labels a set of permissions.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Permission is a catalog entry.
type Permission struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Group       string `json:"group"`
	Description string `json:"desc"`
}

// Catalog is the immutable set of permission keys a role may hold.
type Catalog struct {
	groups      []Group
	permissions []Permission
	index       map[string]struct{}
}

// NewCatalog validates and freezes a catalog. Keys must be unique and
// reference a declared group.
func NewCatalog(groups []Group, permissions []Permission) (*Catalog, error) {
	known := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		if _, dup := known[g.ID]; dup {
			return nil, fmt.Errorf("rbac: duplicate group %q", g.ID)
		}
		known[g.ID] = struct{}{}
	}
	index := make(map[string]struct{}, len(permissions))
	for _, p := range permissions {
		if p.Key == "" {
			return nil, fmt.Errorf("rbac: empty permission key")
		}
		if _, ok := known[p.Group]; !ok {
			return nil, fmt.Errorf("rbac: permission %q references unknown group %q", p.Key, p.Group)
		}
		if _, dup := index[p.Key]; dup {
			return nil, fmt.Errorf("rbac: duplicate permission %q", p.Key)
		}
		index[p.Key] = struct{}{}
	}
	return &Catalog{
		groups:      append([]Group(nil), groups...),
		permissions: append([]Permission(nil), permissions...),
		index:       index,
	}, nil
}

// DefaultCatalog returns the built-in permission catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		[]Group{
			{ID: shared.GroupUsers, Name: "User Permissions"},
			{ID: shared.GroupRoles, Name: "Role Permissions"},
			{ID: shared.GroupCategories, Name: "Category Permissions"},
			{ID: shared.GroupAuditLogs, Name: "AuditLog Permissions"},
		},
		[]Permission{
			{Key: shared.PermUserView, Name: "User View", Group: shared.GroupUsers, Description: "View user details"},
			{Key: shared.PermUserAdd, Name: "User Add", Group: shared.GroupUsers, Description: "Add new user"},
			{Key: shared.PermUserUpdate, Name: "User Update", Group: shared.GroupUsers, Description: "Update user details"},
			{Key: shared.PermUserDelete, Name: "User Delete", Group: shared.GroupUsers, Description: "Delete user"},

			{Key: shared.PermRoleView, Name: "Role View", Group: shared.GroupRoles, Description: "View roles"},
			{Key: shared.PermRoleAdd, Name: "Role Add", Group: shared.GroupRoles, Description: "Add new role"},
			{Key: shared.PermRoleUpdate, Name: "Role Update", Group: shared.GroupRoles, Description: "Update role details"},
			{Key: shared.PermRoleDelete, Name: "Role Delete", Group: shared.GroupRoles, Description: "Delete role"},

			{Key: shared.PermCategoryView, Name: "Category View", Group: shared.GroupCategories, Description: "View categories"},
			{Key: shared.PermCategoryAdd, Name: "Category Add", Group: shared.GroupCategories, Description: "Add new category"},
			{Key: shared.PermCategoryUpdate, Name: "Category Update", Group: shared.GroupCategories, Description: "Update category details"},
			{Key: shared.PermCategoryDelete, Name: "Category Delete", Group: shared.GroupCategories, Description: "Delete category"},

			{Key: shared.PermAuditLogsView, Name: "AuditLog View", Group: shared.GroupAuditLogs, Description: "View audit logs"},
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Groups returns a copy of the group list.
func (c *Catalog) Groups() []Group {
	return append([]Group(nil), c.groups...)
}

// Permissions returns a copy of the permission list.
func (c *Catalog) Permissions() []Permission {
	return append([]Permission(nil), c.permissions...)
}

// Keys returns every permission key in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.permissions))
	for i, p := range c.permissions {
		keys[i] = p.Key
	}
	return keys
}

// IsValidKey reports catalog membership.
func (c *Catalog) IsValidKey(key string) bool {
	_, ok := c.index[key]
	return ok
}

// GroupOf returns the group id of key, or "" when unknown.
func (c *Catalog) GroupOf(key string) string {
	for _, p := range c.permissions {
		if p.Key == key {
			return p.Group
		}
	}
	return ""
}

// Validate rejects the first key outside the catalog.
func (c *Catalog) Validate(keys []string) error {
	for _, k := range keys {
		if !c.IsValidKey(k) {
			return shared.ValidationError(shared.MsgUnknownPermission, k)
		}
	}
	return nil
}
