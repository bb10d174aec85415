package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
)

type relationTable struct {
	table  string
	owner  string
	target string
}

var relationTables = map[domain.Relation]relationTable{
	domain.RelUserRole:         {"user_roles", "user_id", "role_id"},
	domain.RelRolePermission:   {"role_permissions", "role_id", "permission_id"},
	domain.RelRoleRoute:        {"role_routes", "role_id", "route_id"},
	domain.RelPermissionModule: {"permission_modules", "permission_id", "module_id"},
	domain.RelPermissionRoute:  {"permission_routes", "permission_id", "route_id"},
}

// relationRepo serves every join table, they only differ in names.
type relationRepo struct {
	q   dbtx
	rel domain.Relation
	t   relationTable
}

func newRelationRepo(q dbtx, rel domain.Relation) *relationRepo {
	t, ok := relationTables[rel]
	if !ok {
		panic(fmt.Sprintf("sqlite: unknown relation %q", rel))
	}
	return &relationRepo{q: q, rel: rel, t: t}
}

func (r *relationRepo) columns() string {
	return `id, ` + r.t.owner + `, ` + r.t.target + `, ` + auditColumns
}

func (r *relationRepo) Get(ctx context.Context, ownerID, targetID string) (domain.Assignment, error) {
	var (
		a     = domain.Assignment{Relation: r.rel}
		audit auditScan
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT `+r.columns()+` FROM `+r.t.table+` WHERE `+r.t.owner+` = ? AND `+r.t.target+` = ?`,
		ownerID, targetID,
	).Scan(append([]any{&a.ID, &a.OwnerID, &a.TargetID}, audit.dest(&a.Audit)...)...)
	if err != nil {
		return domain.Assignment{}, mapNotFound(err)
	}
	audit.apply(&a.Audit)
	return a, nil
}

func (r *relationRepo) Create(ctx context.Context, a domain.Assignment) error {
	args := append([]any{a.ID, a.OwnerID, a.TargetID}, auditArgs(a.Audit)...)
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO `+r.t.table+` (`+r.columns()+`) VALUES (`+placeholders(len(args))+`)`, args...)
	return mapWriteErr(err)
}

func (r *relationRepo) SetActive(ctx context.Context, id string, active bool, actor string, now time.Time) error {
	return expectOne(r.q.ExecContext(ctx,
		`UPDATE `+r.t.table+` SET is_active = ?, last_modified_at = ?, last_modified_by = ? WHERE id = ?`,
		active, toMS(now), actor, id,
	))
}

var _ store.Assignments = (*relationRepo)(nil)
