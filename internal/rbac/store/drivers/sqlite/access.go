package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
)

// activeLinks is the one predicate every resolver query uses: each aliased row
// on the path must still be active.
func activeLinks(aliases ...string) string {
	parts := make([]string, len(aliases))
	for i, a := range aliases {
		parts[i] = a + ".is_active = 1"
	}
	return strings.Join(parts, " AND ")
}

// roleHolds requires the role under roleAlias to carry the permission named
// by the next bind parameter.
func roleHolds(roleAlias string) string {
	return `EXISTS (SELECT 1 FROM role_permissions hrp
		JOIN permissions hp ON hp.id = hrp.permission_id
		WHERE hrp.role_id = ` + roleAlias + `.id AND hp.name = ? AND ` + activeLinks("hrp", "hp") + `)`
}

const (
	joinUserRoles = ` JOIN user_roles ur ON ur.role_id = r.id
		JOIN users u ON u.id = ur.user_id`
	joinRolePermissions = ` JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN roles r ON r.id = rp.role_id`
	joinPermissionModules = ` JOIN permission_modules pm ON pm.module_id = m.id
		JOIN permissions p ON p.id = pm.permission_id`
)

var (
	qRolesForUser = `SELECT ` + qualify("r", roleColumns) + ` FROM roles r` + joinUserRoles + `
		WHERE u.id = ? AND ` + activeLinks("u", "ur", "r") + `
		ORDER BY r.name`

	qPermissionsForUser = `SELECT DISTINCT ` + qualify("p", permissionColumns) + ` FROM permissions p` +
		joinRolePermissions + joinUserRoles + `
		WHERE u.id = ? AND ` + activeLinks("u", "ur", "r", "rp", "p") + `
		ORDER BY p.name`

	qPermissionsForRole = `SELECT ` + qualify("p", permissionColumns) + ` FROM permissions p` +
		joinRolePermissions + `
		WHERE r.id = ? AND ` + activeLinks("r", "rp", "p") + `
		ORDER BY p.name`

	qModulesForRole = `SELECT DISTINCT ` + qualify("m", moduleColumns) + ` FROM modules m` +
		joinPermissionModules + joinRolePermissions + `
		WHERE r.id = ? AND ` + activeLinks("r", "rp", "p", "pm", "m") + `
		ORDER BY m.display_order, m.name`

	qModulesForUser = `SELECT DISTINCT ` + qualify("m", moduleColumns) + ` FROM modules m` +
		joinPermissionModules + joinRolePermissions + joinUserRoles + `
		WHERE u.id = ? AND ` + activeLinks("u", "ur", "r", "rp", "p", "pm", "m") + `
		AND ` + roleHolds("r") + `
		ORDER BY m.display_order, m.name`

	qRoutesForRole = `SELECT ` + qualify("rt", routeColumns) + ` FROM routes rt
		JOIN role_routes rr ON rr.route_id = rt.id
		JOIN roles r ON r.id = rr.role_id
		WHERE r.id = ?1 AND ` + activeLinks("r", "rr", "rt") + `
		UNION
		SELECT ` + qualify("rt", routeColumns) + ` FROM routes rt
		JOIN permission_routes pr ON pr.route_id = rt.id
		JOIN permissions p ON p.id = pr.permission_id` + joinRolePermissions + `
		WHERE r.id = ?1 AND ` + activeLinks("r", "rp", "p", "pr", "rt") + `
		ORDER BY 3, 4`

	qRoleHasPermission = `SELECT EXISTS (SELECT 1 FROM permissions p` + joinRolePermissions + `
		WHERE r.id = ? AND p.name = ? AND ` + activeLinks("r", "rp", "p") + `)`

	qRoleGrantsModule = `SELECT EXISTS (SELECT 1 FROM modules m` + joinPermissionModules + joinRolePermissions + `
		WHERE r.id = ? AND m.id = ? AND ` + activeLinks("r", "rp", "p", "pm", "m") + `)`
)

type accessRepo struct {
	q dbtx
}

func (r *accessRepo) RolesForUser(ctx context.Context, userID string) ([]domain.Role, error) {
	rows, err := r.q.QueryContext(ctx, qRolesForUser, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanRole)
}

func (r *accessRepo) PermissionsForUser(ctx context.Context, userID string) ([]domain.Permission, error) {
	rows, err := r.q.QueryContext(ctx, qPermissionsForUser, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPermission)
}

func (r *accessRepo) PermissionsForRole(ctx context.Context, roleID string) ([]domain.Permission, error) {
	rows, err := r.q.QueryContext(ctx, qPermissionsForRole, roleID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPermission)
}

func (r *accessRepo) ModulesForRole(ctx context.Context, roleID string) ([]domain.Module, error) {
	rows, err := r.q.QueryContext(ctx, qModulesForRole, roleID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanModule)
}

func (r *accessRepo) ModulesForUser(ctx context.Context, userID string) ([]domain.Module, error) {
	rows, err := r.q.QueryContext(ctx, qModulesForUser, userID, domain.PermModulesView)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanModule)
}

func (r *accessRepo) RoutesForRole(ctx context.Context, roleID string) ([]domain.Route, error) {
	rows, err := r.q.QueryContext(ctx, qRoutesForRole, roleID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanRoute)
}

func (r *accessRepo) RoleHasPermission(ctx context.Context, roleID, permissionName string) (bool, error) {
	var ok bool
	err := r.q.QueryRowContext(ctx, qRoleHasPermission, roleID, permissionName).Scan(&ok)
	return ok, err
}

func (r *accessRepo) RoleGrantsModule(ctx context.Context, roleID, moduleID string) (bool, error) {
	var ok bool
	err := r.q.QueryRowContext(ctx, qRoleGrantsModule, roleID, moduleID).Scan(&ok)
	return ok, err
}
