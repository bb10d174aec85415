package domain

// Relation names one of the many-to-many join tables.
type Relation string

const (
	RelUserRole         Relation = "user_role"
	RelRolePermission   Relation = "role_permission"
	RelRoleRoute        Relation = "role_route"
	RelPermissionModule Relation = "permission_module"
	RelPermissionRoute  Relation = "permission_route"
)

// Assignment is a row of any join table. OwnerID is the left side of the relation name (the user
// for user_role, the role for role_permission) and TargetID the right side.
type Assignment struct {
	ID       string
	Relation Relation
	OwnerID  string
	TargetID string
	Audit
}
