package service

import (
	"testing"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store/storetest"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func names(nodes []domain.ModuleNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestBuildModuleTree(t *testing.T) {
	t.Parallel()

	t.Run("orders siblings and nests children", func(t *testing.T) {
		mods := []domain.Module{
			{ID: "c", Name: "Reports", DisplayOrder: 2},
			{ID: "a", Name: "Admin", DisplayOrder: 1},
			{ID: "b", Name: "Users", DisplayOrder: 1, ParentID: ptr("a")},
			{ID: "d", Name: "Audit", DisplayOrder: 1, ParentID: ptr("a")},
			{ID: "e", Name: "Billing", DisplayOrder: 1},
		}
		tree := BuildModuleTree(mods)
		require.Equal(t, []string{"Admin", "Billing", "Reports"}, names(tree))
		require.Equal(t, []string{"Audit", "Users"}, names(tree[0].Children))
		require.NotNil(t, tree[1].Children)
		require.Empty(t, tree[1].Children)
	})

	t.Run("drops orphans", func(t *testing.T) {
		mods := []domain.Module{
			{ID: "a", Name: "Root"},
			{ID: "x", Name: "Lost", ParentID: ptr("gone")},
			{ID: "y", Name: "LostChild", ParentID: ptr("x")},
		}
		tree := BuildModuleTree(mods)
		require.Equal(t, []string{"Root"}, names(tree))
		require.Empty(t, tree[0].Children)
	})

	t.Run("terminates on corrupt cycles", func(t *testing.T) {
		mods := []domain.Module{
			{ID: "r", Name: "Root"},
			{ID: "a", Name: "A", ParentID: ptr("b")},
			{ID: "b", Name: "B", ParentID: ptr("a")},
		}
		require.Equal(t, []string{"Root"}, names(BuildModuleTree(mods)))
	})

	t.Run("empty", func(t *testing.T) {
		require.Empty(t, BuildModuleTree(nil))
	})
}

func TestHasCycle(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()

	// A -> B -> C, where B's parent is A and C's parent is B.
	a := storetest.Module(t, e.store, "A", 0, nil)
	b := storetest.Module(t, e.store, "B", 0, &a.ID)
	c := storetest.Module(t, e.store, "C", 0, &b.ID)
	other := storetest.Module(t, e.store, "Other", 1, nil)

	tests := []struct {
		name           string
		module, parent string
		want           bool
	}{
		{"A under C closes the loop", a.ID, c.ID, true},
		{"A under B closes the loop", a.ID, b.ID, true},
		{"self parent", b.ID, b.ID, true},
		{"C under A is fine", c.ID, a.ID, false},
		{"A under unrelated root", a.ID, other.ID, false},
		{"no parent", c.ID, "", false},
		{"unknown parent", a.ID, "missing", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.resolver.HasCycle(ctx, tt.module, tt.parent)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("bounded on corrupt parents", func(t *testing.T) {
		parents := map[string]*string{"x": ptr("y"), "y": ptr("x")}
		require.True(t, hasCycle(parents, "z", "x"))
	})
}

func TestResolver_AssignRevoke(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	alice := storetest.User(t, e.store, "alice")
	editor := storetest.Role(t, e.store, "Editor")

	a, err := e.resolver.Assign(ctx, "admin", domain.RelUserRole, alice.ID, editor.ID)
	require.NoError(t, err)
	require.True(t, a.IsActive)
	require.Equal(t, "admin", a.CreatedBy)

	_, err = e.resolver.Assign(ctx, "admin", domain.RelUserRole, alice.ID, editor.ID)
	require.ErrorIs(t, err, ErrAlreadyAssigned)
	require.Equal(t, KindConflict, KindOf(err))

	roles, err := e.resolver.GetRolesForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)

	require.NoError(t, e.resolver.Revoke(ctx, "admin", domain.RelUserRole, alice.ID, editor.ID))
	require.ErrorIs(t, e.resolver.Revoke(ctx, "admin", domain.RelUserRole, alice.ID, editor.ID), ErrAssignmentNotFound)

	roles, err = e.resolver.GetRolesForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, roles)

	t.Run("reassign reactivates", func(t *testing.T) {
		again, err := e.resolver.Assign(ctx, "admin", domain.RelUserRole, alice.ID, editor.ID)
		require.NoError(t, err)
		require.Equal(t, a.ID, again.ID)
	})

	t.Run("missing endpoints", func(t *testing.T) {
		_, err := e.resolver.Assign(ctx, "admin", domain.RelUserRole, "nobody", editor.ID)
		require.ErrorIs(t, err, ErrUserNotFound)

		_, err = e.resolver.Assign(ctx, "admin", domain.RelRolePermission, editor.ID, "nothing")
		require.ErrorIs(t, err, ErrPermissionNotFound)

		require.ErrorIs(t, e.resolver.Revoke(ctx, "admin", domain.RelRoleRoute, editor.ID, "nothing"), ErrAssignmentNotFound)
	})

	t.Run("inactive endpoint", func(t *testing.T) {
		temp := storetest.Role(t, e.store, "Temp")
		require.NoError(t, e.store.Roles().SoftDelete(ctx, temp.ID, "admin", storetest.Now))

		_, err := e.resolver.Assign(ctx, "admin", domain.RelUserRole, alice.ID, temp.ID)
		require.ErrorIs(t, err, ErrRoleNotFound)
	})

	t.Run("unknown relation", func(t *testing.T) {
		_, err := e.resolver.Assign(ctx, "admin", domain.Relation("bogus"), alice.ID, editor.ID)
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestResolver_RoleHasModuleAccess(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()

	viewer := storetest.Role(t, e.store, "Viewer")
	view := storetest.Permission(t, e.store, domain.PermModulesView)
	reports := storetest.Permission(t, e.store, "reports.read")
	mod := storetest.Module(t, e.store, "Reports", 0, nil)

	check := func() bool {
		ok, err := e.resolver.RoleHasModuleAccess(ctx, viewer.ID, mod.ID)
		require.NoError(t, err)
		return ok
	}

	require.False(t, check(), "nothing granted")

	storetest.Link(t, e.store, domain.RelPermissionModule, reports.ID, mod.ID)
	storetest.Link(t, e.store, domain.RelRolePermission, viewer.ID, reports.ID)
	require.False(t, check(), "module grant without modules.view")

	storetest.Link(t, e.store, domain.RelRolePermission, viewer.ID, view.ID)
	require.True(t, check())

	require.NoError(t, e.resolver.Revoke(ctx, "admin", domain.RelPermissionModule, reports.ID, mod.ID))
	require.False(t, check(), "modules.view without module grant")

	_, err := e.resolver.RoleHasModuleAccess(ctx, "missing", mod.ID)
	require.ErrorIs(t, err, ErrRoleNotFound)
}

func TestResolver_UserAccess(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()

	alice := storetest.User(t, e.store, "alice")
	role := storetest.Role(t, e.store, "Staff")
	perm := storetest.Permission(t, e.store, "staff.read")
	parent := storetest.Module(t, e.store, "Staff", 0, nil)
	child := storetest.Module(t, e.store, "Rosters", 0, &parent.ID)
	route := storetest.Route(t, e.store, "rosters", "GET", "/rosters", child.ID)

	storetest.Link(t, e.store, domain.RelUserRole, alice.ID, role.ID)
	storetest.Link(t, e.store, domain.RelRolePermission, role.ID, perm.ID)
	storetest.Link(t, e.store, domain.RelPermissionModule, perm.ID, parent.ID)
	storetest.Link(t, e.store, domain.RelPermissionModule, perm.ID, child.ID)
	storetest.Link(t, e.store, domain.RelPermissionRoute, perm.ID, route.ID)

	access, err := e.resolver.UserAccess(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Staff"}, access.RoleNames())
	require.Equal(t, []string{"staff.read"}, access.PermissionNames())
	require.Empty(t, access.Modules, "module grants need modules.view")

	tree, err := e.resolver.GetModulesForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, tree)

	view := storetest.Permission(t, e.store, domain.PermModulesView)
	storetest.Link(t, e.store, domain.RelRolePermission, role.ID, view.ID)

	access, err = e.resolver.UserAccess(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"modules.view", "staff.read"}, access.PermissionNames())
	require.Len(t, access.Modules, 1)
	require.Equal(t, []string{"Rosters"}, names(access.Modules[0].Children))

	routes, err := e.resolver.GetRoutesForRole(ctx, role.ID)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	require.Equal(t, "/rosters", routes[0].Path)

	_, err = e.resolver.UserAccess(ctx, "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}
