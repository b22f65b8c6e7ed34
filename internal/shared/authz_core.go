package shared

// Permission groups.
const (
	GroupUsers      = "USERS"
	GroupRoles      = "ROLES"
	GroupCategories = "CATEGORIES"
	GroupAuditLogs  = "AUDITLOGS"
)

// Permission keys.
const (
	PermUserView   = "user_view"
	PermUserAdd    = "user_add"
	PermUserUpdate = "user_update"
	PermUserDelete = "user_delete"

	PermRoleView   = "role_view"
	PermRoleAdd    = "role_add"
	PermRoleUpdate = "role_update"
	PermRoleDelete = "role_delete"

	PermCategoryView   = "category_view"
	PermCategoryAdd    = "category_add"
	PermCategoryUpdate = "category_update"
	PermCategoryDelete = "category_delete"

	PermAuditLogsView = "auditlogs_view"
)

// CoreScopes lists every permission key in catalog order.
func CoreScopes() []string {
	return []string{
		PermUserView,
		PermUserAdd,
		PermUserUpdate,
		PermUserDelete,
		PermRoleView,
		PermRoleAdd,
		PermRoleUpdate,
		PermRoleDelete,
		PermCategoryView,
		PermCategoryAdd,
		PermCategoryUpdate,
		PermCategoryDelete,
		PermAuditLogsView,
	}
}
