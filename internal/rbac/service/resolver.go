package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/pkg/idx"
	"github.com/aussiebroadwan/warden/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

// ResolverService answers who can reach what, and owns every relation
// mutation between users, roles, permissions, modules and routes.
type ResolverService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *ResolverService) GetRolesForUser(ctx context.Context, userID string) ([]domain.Role, error) {
	if err := activeUser(ctx, s.Store, userID); err != nil {
		return nil, err
	}
	return s.Store.Access().RolesForUser(ctx, userID)
}

func (s *ResolverService) GetPermissionsForUser(ctx context.Context, userID string) ([]domain.Permission, error) {
	if err := activeUser(ctx, s.Store, userID); err != nil {
		return nil, err
	}
	return s.Store.Access().PermissionsForUser(ctx, userID)
}

// GetModulesForUser returns the user's module forest.
func (s *ResolverService) GetModulesForUser(ctx context.Context, userID string) ([]domain.ModuleNode, error) {
	if err := activeUser(ctx, s.Store, userID); err != nil {
		return nil, err
	}
	mods, err := s.Store.Access().ModulesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildModuleTree(mods), nil
}

func (s *ResolverService) GetPermissionsForRole(ctx context.Context, roleID string) ([]domain.Permission, error) {
	if err := activeRole(ctx, s.Store, roleID); err != nil {
		return nil, err
	}
	return s.Store.Access().PermissionsForRole(ctx, roleID)
}

func (s *ResolverService) GetModulesForRole(ctx context.Context, roleID string) ([]domain.Module, error) {
	if err := activeRole(ctx, s.Store, roleID); err != nil {
		return nil, err
	}
	return s.Store.Access().ModulesForRole(ctx, roleID)
}

func (s *ResolverService) GetRoutesForRole(ctx context.Context, roleID string) ([]domain.Route, error) {
	if err := activeRole(ctx, s.Store, roleID); err != nil {
		return nil, err
	}
	return s.Store.Access().RoutesForRole(ctx, roleID)
}

// UserAccess resolves roles, permissions and the module forest concurrently.
func (s *ResolverService) UserAccess(ctx context.Context, userID string) (domain.UserAccess, error) {
	u, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return domain.UserAccess{}, notFoundAs(err, ErrUserNotFound)
	}
	if !u.IsActive {
		return domain.UserAccess{}, ErrUserNotFound
	}

	access := domain.UserAccess{User: u}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		access.Roles, err = s.Store.Access().RolesForUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		access.Permissions, err = s.Store.Access().PermissionsForUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		mods, err := s.Store.Access().ModulesForUser(gctx, userID)
		if err != nil {
			return err
		}
		access.Modules = BuildModuleTree(mods)
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.UserAccess{}, err
	}
	return access, nil
}

// HasCycle reports whether making proposedParentID the parent of moduleID
// would close a loop, including a module parenting itself.
func (s *ResolverService) HasCycle(ctx context.Context, moduleID, proposedParentID string) (bool, error) {
	return detectCycle(ctx, s.Store, moduleID, proposedParentID)
}

func detectCycle(ctx context.Context, q store.Store, moduleID, proposedParentID string) (bool, error) {
	if proposedParentID == "" {
		return false, nil
	}
	if proposedParentID == moduleID {
		return true, nil
	}
	parents, err := q.Modules().ParentMap(ctx)
	if err != nil {
		return false, err
	}
	return hasCycle(parents, moduleID, proposedParentID), nil
}

// RoleHasModuleAccess needs both the modules.view capability and an explicit
// grant of the module through one of the role's permissions.
func (s *ResolverService) RoleHasModuleAccess(ctx context.Context, roleID, moduleID string) (bool, error) {
	if err := activeRole(ctx, s.Store, roleID); err != nil {
		return false, err
	}
	if err := activeModule(ctx, s.Store, moduleID); err != nil {
		return false, err
	}

	canView, err := s.Store.Access().RoleHasPermission(ctx, roleID, domain.PermModulesView)
	if err != nil || !canView {
		return false, err
	}
	return s.Store.Access().RoleGrantsModule(ctx, roleID, moduleID)
}

// Assign links ownerID to targetID in rel. A revoked pair is reactivated.
func (s *ResolverService) Assign(
	ctx context.Context,
	actor string,
	rel domain.Relation,
	ownerID, targetID string,
) (domain.Assignment, error) {
	ends, ok := relationEnds[rel]
	if !ok {
		return domain.Assignment{}, fieldError("relation", "unknown relation")
	}

	var out domain.Assignment
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := ends.owner(ctx, tx, ownerID); err != nil {
			return err
		}
		if err := ends.target(ctx, tx, targetID); err != nil {
			return err
		}

		now := clock(s.Now)
		repo := tx.Assignments(rel)
		existing, err := repo.Get(ctx, ownerID, targetID)
		switch {
		case err == nil && existing.IsActive:
			return ErrAlreadyAssigned
		case err == nil:
			if err := repo.SetActive(ctx, existing.ID, true, actor, now); err != nil {
				return err
			}
			existing.IsActive = true
			existing.Touch(actor, now)
			out = existing
			return nil
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		out = domain.Assignment{
			ID:       idx.New().String(),
			Relation: rel,
			OwnerID:  ownerID,
			TargetID: targetID,
			Audit:    domain.NewAudit(actor, now),
		}
		return conflictAs(repo.Create(ctx, out), ErrAlreadyAssigned)
	})
	if err != nil {
		return domain.Assignment{}, err
	}

	slogx.FromContext(ctx).Info("relation assigned",
		slog.String("relation", string(rel)),
		slog.String("owner_id", ownerID),
		slog.String("target_id", targetID),
		slog.String("actor", actor),
	)
	return out, nil
}

// Revoke deactivates an active link. Revoking nothing is an error.
func (s *ResolverService) Revoke(ctx context.Context, actor string, rel domain.Relation, ownerID, targetID string) error {
	if _, ok := relationEnds[rel]; !ok {
		return fieldError("relation", "unknown relation")
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		repo := tx.Assignments(rel)
		existing, err := repo.Get(ctx, ownerID, targetID)
		if err != nil {
			return notFoundAs(err, ErrAssignmentNotFound)
		}
		if !existing.IsActive {
			return ErrAssignmentNotFound
		}
		return repo.SetActive(ctx, existing.ID, false, actor, clock(s.Now))
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("relation revoked",
		slog.String("relation", string(rel)),
		slog.String("owner_id", ownerID),
		slog.String("target_id", targetID),
		slog.String("actor", actor),
	)
	return nil
}

type existsFunc func(ctx context.Context, q store.Store, id string) error

var relationEnds = map[domain.Relation]struct{ owner, target existsFunc }{
	domain.RelUserRole:         {activeUser, activeRole},
	domain.RelRolePermission:   {activeRole, activePermission},
	domain.RelRoleRoute:        {activeRole, activeRoute},
	domain.RelPermissionModule: {activePermission, activeModule},
	domain.RelPermissionRoute:  {activePermission, activeRoute},
}

func activeUser(ctx context.Context, q store.Store, id string) error {
	u, err := q.Users().GetByID(ctx, id)
	if err != nil {
		return notFoundAs(err, ErrUserNotFound)
	}
	if !u.IsActive {
		return ErrUserNotFound
	}
	return nil
}

func activeRole(ctx context.Context, q store.Store, id string) error {
	r, err := q.Roles().GetByID(ctx, id)
	if err != nil {
		return notFoundAs(err, ErrRoleNotFound)
	}
	if !r.IsActive {
		return ErrRoleNotFound
	}
	return nil
}

func activePermission(ctx context.Context, q store.Store, id string) error {
	p, err := q.Permissions().GetByID(ctx, id)
	if err != nil {
		return notFoundAs(err, ErrPermissionNotFound)
	}
	if !p.IsActive {
		return ErrPermissionNotFound
	}
	return nil
}

func activeModule(ctx context.Context, q store.Store, id string) error {
	m, err := q.Modules().GetByID(ctx, id)
	if err != nil {
		return notFoundAs(err, ErrModuleNotFound)
	}
	if !m.IsActive {
		return ErrModuleNotFound
	}
	return nil
}

func activeRoute(ctx context.Context, q store.Store, id string) error {
	r, err := q.Routes().GetByID(ctx, id)
	if err != nil {
		return notFoundAs(err, ErrRouteNotFound)
	}
	if !r.IsActive {
		return ErrRouteNotFound
	}
	return nil
}
