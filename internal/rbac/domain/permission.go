package domain

import "strings"

// Base permissions seeded on startup.
const (
	PermUsersView         = "users.view"
	PermUsersCreate       = "users.create"
	PermUsersEdit         = "users.edit"
	PermUsersDelete       = "users.delete"
	PermRolesManage       = "roles.manage"
	PermPermissionsManage = "permissions.manage"
	PermModulesView       = "modules.view"
	PermModulesManage     = "modules.manage"
	PermRoutesManage      = "routes.manage"
)

// BasePermissions lists every permission the seeder guarantees.
var BasePermissions = []string{
	PermUsersView,
	PermUsersCreate,
	PermUsersEdit,
	PermUsersDelete,
	PermRolesManage,
	PermPermissionsManage,
	PermModulesView,
	PermModulesManage,
	PermRoutesManage,
}

const protectedPermissionPrefix = "users."

type Permission struct {
	ID          string
	Name        string // dotted, e.g. "users.view"
	Description string
	Audit
}

// IsProtectedPermission reports permissions that can be neither deleted nor renamed.
func IsProtectedPermission(name string) bool {
	return strings.HasPrefix(name, protectedPermissionPrefix)
}
