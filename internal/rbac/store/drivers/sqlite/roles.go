package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
)

const roleColumns = `id, name, description, ` + auditColumns

type rolesRepo struct {
	q dbtx
}

func scanRole(sc scanner) (domain.Role, error) {
	var (
		r     domain.Role
		audit auditScan
	)
	if err := sc.Scan(append([]any{&r.ID, &r.Name, &r.Description}, audit.dest(&r.Audit)...)...); err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	audit.apply(&r.Audit)
	return r, nil
}

func (r *rolesRepo) GetByID(ctx context.Context, id string) (domain.Role, error) {
	return scanRole(r.q.QueryRowContext(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = ?`, id))
}

func (r *rolesRepo) GetByName(ctx context.Context, name string) (domain.Role, error) {
	return scanRole(r.q.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE name = ? AND is_active = 1`, name))
}

func (r *rolesRepo) List(ctx context.Context, opts store.ListOptions) ([]domain.Role, int, error) {
	return list(ctx, r.q, "roles", roleColumns, "name", "name, id", opts, scanRole)
}

func (r *rolesRepo) Create(ctx context.Context, role domain.Role) error {
	args := append([]any{role.ID, role.Name, role.Description}, auditArgs(role.Audit)...)
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO roles (`+roleColumns+`) VALUES (`+placeholders(len(args))+`)`, args...)
	return mapWriteErr(err)
}

func (r *rolesRepo) Update(ctx context.Context, role domain.Role) error {
	return expectOne(r.q.ExecContext(ctx,
		`UPDATE roles SET name = ?, description = ?, last_modified_at = ?, last_modified_by = ?
		 WHERE id = ? AND is_active = 1`,
		role.Name, role.Description, toMS(role.LastModifiedAt), role.LastModifiedBy, role.ID,
	))
}

func (r *rolesRepo) SoftDelete(ctx context.Context, id, actor string, now time.Time) error {
	return softDelete(ctx, r.q, "roles", id, actor, now)
}
