package domain

// UserAccess is everything a user can reach, resolved through active links only.
type UserAccess struct {
	User        User
	Roles       []Role
	Permissions []Permission
	Modules     []ModuleNode
}

func (a UserAccess) RoleNames() []string {
	out := make([]string, 0, len(a.Roles))
	for _, r := range a.Roles {
		out = append(out, r.Name)
	}
	return out
}

func (a UserAccess) PermissionNames() []string {
	out := make([]string, 0, len(a.Permissions))
	for _, p := range a.Permissions {
		out = append(out, p.Name)
	}
	return out
}
