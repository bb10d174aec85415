package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
)

const moduleColumns = `id, name, route, icon, display_order, parent_id, ` + auditColumns

type modulesRepo struct {
	q dbtx
}

func scanModule(sc scanner) (domain.Module, error) {
	var (
		m      domain.Module
		parent sql.NullString
		audit  auditScan
	)
	dest := append([]any{&m.ID, &m.Name, &m.Route, &m.Icon, &m.DisplayOrder, &parent}, audit.dest(&m.Audit)...)
	if err := sc.Scan(dest...); err != nil {
		return domain.Module{}, mapNotFound(err)
	}
	m.ParentID = mapNullStringPtr(parent)
	audit.apply(&m.Audit)
	return m, nil
}

func (r *modulesRepo) GetByID(ctx context.Context, id string) (domain.Module, error) {
	return scanModule(r.q.QueryRowContext(ctx, `SELECT `+moduleColumns+` FROM modules WHERE id = ?`, id))
}

func (r *modulesRepo) GetByName(ctx context.Context, name string) (domain.Module, error) {
	return scanModule(r.q.QueryRowContext(ctx,
		`SELECT `+moduleColumns+` FROM modules WHERE name = ? AND is_active = 1`, name))
}

func (r *modulesRepo) List(ctx context.Context, opts store.ListOptions) ([]domain.Module, int, error) {
	return list(ctx, r.q, "modules", moduleColumns, "name", "display_order, name, id", opts, scanModule)
}

func (r *modulesRepo) ListActive(ctx context.Context) ([]domain.Module, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+moduleColumns+` FROM modules WHERE is_active = 1 ORDER BY display_order, name`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanModule)
}

func (r *modulesRepo) ParentMap(ctx context.Context) (map[string]*string, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, parent_id FROM modules WHERE is_active = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]*string)
	for rows.Next() {
		var (
			id     string
			parent sql.NullString
		)
		if err := rows.Scan(&id, &parent); err != nil {
			return nil, err
		}
		out[id] = mapNullStringPtr(parent)
	}
	return out, rows.Err()
}

func (r *modulesRepo) CountActiveChildren(ctx context.Context, id string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM modules WHERE parent_id = ? AND is_active = 1`, id).Scan(&n)
	return n, err
}

func (r *modulesRepo) Create(ctx context.Context, m domain.Module) error {
	args := append([]any{m.ID, m.Name, m.Route, m.Icon, m.DisplayOrder, mapOptionalString(m.ParentID)},
		auditArgs(m.Audit)...)
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO modules (`+moduleColumns+`) VALUES (`+placeholders(len(args))+`)`, args...)
	return mapWriteErr(err)
}

func (r *modulesRepo) Update(ctx context.Context, m domain.Module) error {
	return expectOne(r.q.ExecContext(ctx,
		`UPDATE modules SET name = ?, route = ?, icon = ?, display_order = ?, parent_id = ?,
			last_modified_at = ?, last_modified_by = ?
		 WHERE id = ? AND is_active = 1`,
		m.Name, m.Route, m.Icon, m.DisplayOrder, mapOptionalString(m.ParentID),
		toMS(m.LastModifiedAt), m.LastModifiedBy, m.ID,
	))
}

func (r *modulesRepo) SoftDelete(ctx context.Context, id, actor string, now time.Time) error {
	return softDelete(ctx, r.q, "modules", id, actor, now)
}
