package sqlite_test

import (
	"testing"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/internal/rbac/store/storetest"
	"github.com/stretchr/testify/require"
)

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, name(it))
	}
	return out
}

func TestAccessFollowsActiveLinksOnly(t *testing.T) {
	s := storetest.New(t)
	ctx := t.Context()

	alice := storetest.User(t, s, "alice")
	editor := storetest.Role(t, s, "Editor")
	viewer := storetest.Role(t, s, "Viewer")
	view := storetest.Permission(t, s, "modules.view")
	edit := storetest.Permission(t, s, "articles.edit")
	dash := storetest.Module(t, s, "dashboard", 1, nil)
	reports := storetest.Module(t, s, "reports", 2, nil)
	listRoute := storetest.Route(t, s, "list-articles", "GET", "/articles", dash.ID)
	editRoute := storetest.Route(t, s, "edit-article", "PUT", "/articles/{id}", dash.ID)

	storetest.Link(t, s, domain.RelUserRole, alice.ID, editor.ID)
	viewerLink := storetest.Link(t, s, domain.RelUserRole, alice.ID, viewer.ID)
	storetest.Link(t, s, domain.RelRolePermission, editor.ID, view.ID)
	storetest.Link(t, s, domain.RelRolePermission, editor.ID, edit.ID)
	storetest.Link(t, s, domain.RelRolePermission, viewer.ID, view.ID)
	storetest.Link(t, s, domain.RelPermissionModule, view.ID, dash.ID)
	storetest.Link(t, s, domain.RelPermissionModule, edit.ID, dash.ID)
	storetest.Link(t, s, domain.RelPermissionModule, edit.ID, reports.ID)
	storetest.Link(t, s, domain.RelRoleRoute, editor.ID, listRoute.ID)
	storetest.Link(t, s, domain.RelPermissionRoute, edit.ID, editRoute.ID)
	storetest.Link(t, s, domain.RelPermissionRoute, view.ID, listRoute.ID)

	roleName := func(r domain.Role) string { return r.Name }
	permName := func(p domain.Permission) string { return p.Name }
	modName := func(m domain.Module) string { return m.Name }
	routeName := func(r domain.Route) string { return r.Name }

	roles, err := s.Access().RolesForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Editor", "Viewer"}, names(roles, roleName))

	perms, err := s.Access().PermissionsForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"articles.edit", "modules.view"}, names(perms, permName))

	mods, err := s.Access().ModulesForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"dashboard", "reports"}, names(mods, modName))

	routes, err := s.Access().RoutesForRole(ctx, editor.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"list-articles", "edit-article"}, names(routes, routeName))

	ok, err := s.Access().RoleHasPermission(ctx, viewer.ID, "modules.view")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Access().RoleGrantsModule(ctx, viewer.ID, reports.ID)
	require.NoError(t, err)
	require.False(t, ok)

	t.Run("revoked assignment drops out", func(t *testing.T) {
		require.NoError(t, s.Assignments(domain.RelUserRole).SetActive(ctx, viewerLink.ID, false, "admin", storetest.Now))

		roles, err := s.Access().RolesForUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"Editor"}, names(roles, roleName))
	})

	t.Run("soft deleted entity drops out", func(t *testing.T) {
		require.NoError(t, s.Permissions().SoftDelete(ctx, edit.ID, "admin", storetest.Now))

		perms, err := s.Access().PermissionsForRole(ctx, editor.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"modules.view"}, names(perms, permName))

		mods, err := s.Access().ModulesForRole(ctx, editor.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"dashboard"}, names(mods, modName))

		routes, err := s.Access().RoutesForRole(ctx, editor.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"list-articles"}, names(routes, routeName))
	})

	t.Run("deactivated user sees nothing", func(t *testing.T) {
		require.NoError(t, s.Users().SoftDelete(ctx, alice.ID, "admin", storetest.Now))

		roles, err := s.Access().RolesForUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Empty(t, roles)
	})
}

func TestModulesForUserRequireModulesView(t *testing.T) {
	s := storetest.New(t)
	ctx := t.Context()
	modName := func(m domain.Module) string { return m.Name }

	erin := storetest.User(t, s, "erin")
	reporter := storetest.Role(t, s, "Reporter")
	auditor := storetest.Role(t, s, "Auditor")
	view := storetest.Permission(t, s, domain.PermModulesView)
	read := storetest.Permission(t, s, "reports.read")
	audit := storetest.Permission(t, s, "audit.read")
	reports := storetest.Module(t, s, "reports", 1, nil)
	ledger := storetest.Module(t, s, "ledger", 2, nil)

	storetest.Link(t, s, domain.RelUserRole, erin.ID, reporter.ID)
	storetest.Link(t, s, domain.RelRolePermission, reporter.ID, read.ID)
	storetest.Link(t, s, domain.RelPermissionModule, read.ID, reports.ID)

	mods, err := s.Access().ModulesForUser(ctx, erin.ID)
	require.NoError(t, err)
	require.Empty(t, mods, "module grant without modules.view")

	viewLink := storetest.Link(t, s, domain.RelRolePermission, reporter.ID, view.ID)
	mods, err = s.Access().ModulesForUser(ctx, erin.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"reports"}, names(mods, modName))

	t.Run("modules.view on another role does not lend its grants", func(t *testing.T) {
		storetest.Link(t, s, domain.RelUserRole, erin.ID, auditor.ID)
		storetest.Link(t, s, domain.RelRolePermission, auditor.ID, audit.ID)
		storetest.Link(t, s, domain.RelPermissionModule, audit.ID, ledger.ID)

		mods, err := s.Access().ModulesForUser(ctx, erin.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"reports"}, names(mods, modName))
	})

	t.Run("revoked modules.view hides everything", func(t *testing.T) {
		require.NoError(t, s.Assignments(domain.RelRolePermission).SetActive(ctx, viewLink.ID, false, "admin", storetest.Now))

		mods, err := s.Access().ModulesForUser(ctx, erin.ID)
		require.NoError(t, err)
		require.Empty(t, mods)
	})
}

func TestAssignmentsReactivate(t *testing.T) {
	s := storetest.New(t)
	ctx := t.Context()

	r := storetest.Role(t, s, "Editor")
	p := storetest.Permission(t, s, "articles.edit")
	a := storetest.Link(t, s, domain.RelRolePermission, r.ID, p.ID)
	repo := s.Assignments(domain.RelRolePermission)

	dup := a
	dup.ID = "another"
	require.ErrorIs(t, repo.Create(ctx, dup), store.ErrAlreadyExists)

	require.NoError(t, repo.SetActive(ctx, a.ID, false, "admin", storetest.Now))
	got, err := repo.Get(ctx, r.ID, p.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)
	require.Equal(t, domain.RelRolePermission, got.Relation)

	require.NoError(t, repo.SetActive(ctx, a.ID, true, "admin", storetest.Now))
	got, err = repo.Get(ctx, r.ID, p.ID)
	require.NoError(t, err)
	require.True(t, got.IsActive)

	_, err = repo.Get(ctx, r.ID, "nope")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestModulesParentMap(t *testing.T) {
	s := storetest.New(t)
	ctx := t.Context()

	root := storetest.Module(t, s, "root", 0, nil)
	child := storetest.Module(t, s, "child", 0, &root.ID)
	gone := storetest.Module(t, s, "gone", 1, &root.ID)
	require.NoError(t, s.Modules().SoftDelete(ctx, gone.ID, "admin", storetest.Now))

	parents, err := s.Modules().ParentMap(ctx)
	require.NoError(t, err)
	require.Len(t, parents, 2)
	require.Nil(t, parents[root.ID])
	require.Equal(t, root.ID, *parents[child.ID])

	n, err := s.Modules().CountActiveChildren(ctx, root.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestRoutesUniqueness(t *testing.T) {
	s := storetest.New(t)
	ctx := t.Context()

	m := storetest.Module(t, s, "m", 0, nil)
	r := storetest.Route(t, s, "list", "GET", "/things", m.ID)

	clash := r
	clash.ID = "x1"
	clash.Name = "other"
	require.ErrorIs(t, s.Routes().Create(ctx, clash), store.ErrAlreadyExists)

	sameName := r
	sameName.ID = "x2"
	sameName.Path = "/elsewhere"
	require.ErrorIs(t, s.Routes().Create(ctx, sameName), store.ErrAlreadyExists)

	// same path under another method is a different endpoint
	storetest.Route(t, s, "create", "POST", "/things", m.ID)
}
