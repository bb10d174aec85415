package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/stretchr/testify/require"
)

func TestProtectedNames(t *testing.T) {
	require.True(t, domain.IsProtectedRole("Admin"))
	require.True(t, domain.IsProtectedRole("User"))
	require.False(t, domain.IsProtectedRole("admin"))
	require.False(t, domain.IsProtectedRole("Editor"))

	require.True(t, domain.IsProtectedPermission("users.view"))
	require.True(t, domain.IsProtectedPermission("users.anything"))
	require.False(t, domain.IsProtectedPermission("modules.view"))
	require.False(t, domain.IsProtectedPermission("usersview"))
}

func TestUserLockedAt(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	end := now.Add(time.Minute)

	require.False(t, domain.User{}.LockedAt(now))
	require.True(t, domain.User{LockoutEnd: &end}.LockedAt(now))
	require.False(t, domain.User{LockoutEnd: &end}.LockedAt(end))
}

func TestSessionAndCodeExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	s := domain.UserSession{ExpiresAt: now.Add(time.Hour), Audit: domain.Audit{IsActive: true}}
	require.True(t, s.Usable(now))
	require.False(t, s.Usable(now.Add(time.Hour)))
	s.IsActive = false
	require.False(t, s.Usable(now))

	c := domain.ActivationCode{ExpiresAt: now.Add(24 * time.Hour)}
	require.False(t, c.ExpiredAt(now.Add(23*time.Hour)))
	require.True(t, c.ExpiredAt(now.Add(25*time.Hour)))
}

func TestAccessNames(t *testing.T) {
	a := domain.UserAccess{
		Roles:       []domain.Role{{Name: "Admin"}, {Name: "User"}},
		Permissions: []domain.Permission{{Name: "users.view"}},
	}
	require.Equal(t, []string{"Admin", "User"}, a.RoleNames())
	require.Equal(t, []string{"users.view"}, a.PermissionNames())
}
