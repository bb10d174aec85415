package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
)

// path and http_method stay third and fourth, the access UNION orders by position.
const routeColumns = `id, name, path, http_method, module_id, requires_auth, is_enabled, ` + auditColumns

type routesRepo struct {
	q dbtx
}

func scanRoute(sc scanner) (domain.Route, error) {
	var (
		rt    domain.Route
		audit auditScan
	)
	dest := append([]any{&rt.ID, &rt.Name, &rt.Path, &rt.HTTPMethod, &rt.ModuleID, &rt.RequiresAuth, &rt.IsEnabled},
		audit.dest(&rt.Audit)...)
	if err := sc.Scan(dest...); err != nil {
		return domain.Route{}, mapNotFound(err)
	}
	audit.apply(&rt.Audit)
	return rt, nil
}

func (r *routesRepo) GetByID(ctx context.Context, id string) (domain.Route, error) {
	return scanRoute(r.q.QueryRowContext(ctx, `SELECT `+routeColumns+` FROM routes WHERE id = ?`, id))
}

func (r *routesRepo) List(ctx context.Context, opts store.ListOptions) ([]domain.Route, int, error) {
	return list(ctx, r.q, "routes", routeColumns, "name", "path, http_method, id", opts, scanRoute)
}

func (r *routesRepo) Create(ctx context.Context, rt domain.Route) error {
	args := append([]any{rt.ID, rt.Name, rt.Path, rt.HTTPMethod, rt.ModuleID, rt.RequiresAuth, rt.IsEnabled},
		auditArgs(rt.Audit)...)
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO routes (`+routeColumns+`) VALUES (`+placeholders(len(args))+`)`, args...)
	return mapWriteErr(err)
}

func (r *routesRepo) Update(ctx context.Context, rt domain.Route) error {
	return expectOne(r.q.ExecContext(ctx,
		`UPDATE routes SET name = ?, path = ?, http_method = ?, module_id = ?, requires_auth = ?,
			is_enabled = ?, last_modified_at = ?, last_modified_by = ?
		 WHERE id = ? AND is_active = 1`,
		rt.Name, rt.Path, rt.HTTPMethod, rt.ModuleID, rt.RequiresAuth, rt.IsEnabled,
		toMS(rt.LastModifiedAt), rt.LastModifiedBy, rt.ID,
	))
}

func (r *routesRepo) SoftDelete(ctx context.Context, id, actor string, now time.Time) error {
	return softDelete(ctx, r.q, "routes", id, actor, now)
}
