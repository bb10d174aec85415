package domain

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type Role struct {
	ID          string
	Name        string
	Description string
	Audit
}

// IsProtectedRole reports roles that can never be deleted.
func IsProtectedRole(name string) bool {
	return name == RoleAdmin || name == RoleUser
}
