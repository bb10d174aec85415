package service

import (
	"testing"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/stretchr/testify/require"
)

func TestBootstrapSeed(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	svc := &BootstrapService{Store: e.store, Hasher: plainHasher{}, Now: e.now}

	admin := AdminSeed{Username: "root", Email: "root@example.com", Password: "root-pass1"}
	res, err := svc.Seed(ctx, admin)
	require.NoError(t, err)
	require.Equal(t, 2, res.Roles)
	require.Equal(t, len(domain.BasePermissions), res.Permissions)
	require.Equal(t, len(domain.BasePermissions)+2, res.Links) // Admin has all, User has one, root is Admin
	require.NotEmpty(t, res.AdminUserID)

	again, err := svc.Seed(ctx, admin)
	require.NoError(t, err)
	require.Equal(t, SeedResult{}, again)

	adminRole, err := e.store.Roles().GetByName(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	perms, err := e.resolver.GetPermissionsForRole(ctx, adminRole.ID)
	require.NoError(t, err)
	require.Len(t, perms, len(domain.BasePermissions))

	userRole, err := e.store.Roles().GetByName(ctx, domain.RoleUser)
	require.NoError(t, err)
	perms, err = e.resolver.GetPermissionsForRole(ctx, userRole.ID)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	require.Equal(t, domain.PermModulesView, perms[0].Name)

	pair, err := e.login("root", "root-pass1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)

	t.Run("revoked grants stay revoked", func(t *testing.T) {
		view, err := e.store.Permissions().GetByName(ctx, domain.PermModulesView)
		require.NoError(t, err)
		require.NoError(t, e.resolver.Revoke(ctx, "root", domain.RelRolePermission, userRole.ID, view.ID))

		_, err = svc.Seed(ctx, AdminSeed{})
		require.NoError(t, err)

		perms, err := e.resolver.GetPermissionsForRole(ctx, userRole.ID)
		require.NoError(t, err)
		require.Empty(t, perms)
	})
}
