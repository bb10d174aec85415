package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
)

const permissionColumns = `id, name, description, ` + auditColumns

type permissionsRepo struct {
	q dbtx
}

func scanPermission(sc scanner) (domain.Permission, error) {
	var (
		p     domain.Permission
		audit auditScan
	)
	if err := sc.Scan(append([]any{&p.ID, &p.Name, &p.Description}, audit.dest(&p.Audit)...)...); err != nil {
		return domain.Permission{}, mapNotFound(err)
	}
	audit.apply(&p.Audit)
	return p, nil
}

func (r *permissionsRepo) GetByID(ctx context.Context, id string) (domain.Permission, error) {
	return scanPermission(r.q.QueryRowContext(ctx,
		`SELECT `+permissionColumns+` FROM permissions WHERE id = ?`, id))
}

func (r *permissionsRepo) GetByName(ctx context.Context, name string) (domain.Permission, error) {
	return scanPermission(r.q.QueryRowContext(ctx,
		`SELECT `+permissionColumns+` FROM permissions WHERE name = ? AND is_active = 1`, name))
}

func (r *permissionsRepo) List(ctx context.Context, opts store.ListOptions) ([]domain.Permission, int, error) {
	return list(ctx, r.q, "permissions", permissionColumns, "name", "name, id", opts, scanPermission)
}

func (r *permissionsRepo) Create(ctx context.Context, p domain.Permission) error {
	args := append([]any{p.ID, p.Name, p.Description}, auditArgs(p.Audit)...)
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO permissions (`+permissionColumns+`) VALUES (`+placeholders(len(args))+`)`, args...)
	return mapWriteErr(err)
}

func (r *permissionsRepo) Update(ctx context.Context, p domain.Permission) error {
	return expectOne(r.q.ExecContext(ctx,
		`UPDATE permissions SET name = ?, description = ?, last_modified_at = ?, last_modified_by = ?
		 WHERE id = ? AND is_active = 1`,
		p.Name, p.Description, toMS(p.LastModifiedAt), p.LastModifiedBy, p.ID,
	))
}

func (r *permissionsRepo) SoftDelete(ctx context.Context, id, actor string, now time.Time) error {
	return softDelete(ctx, r.q, "permissions", id, actor, now)
}
