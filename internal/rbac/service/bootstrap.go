package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/pkg/idx"
	"github.com/aussiebroadwan/warden/pkg/slogx"
	"github.com/google/uuid"
)

// AdminSeed describes the optional first administrator. Empty fields skip it.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

func (a AdminSeed) enabled() bool {
	return a.Username != "" && a.Email != "" && a.Password != ""
}

// BootstrapService seeds the built-in roles, permissions and grants. Running
// it again is a no-op. Grants an administrator revoked stay revoked.
type BootstrapService struct {
	Store  store.Store
	Hasher PasswordHasher
	Now    func() time.Time
}

// SeedResult reports what a Seed call created.
type SeedResult struct {
	Roles       int
	Permissions int
	Links       int
	AdminUserID string
}

func (s *BootstrapService) Seed(ctx context.Context, admin AdminSeed) (SeedResult, error) {
	var (
		res  SeedResult
		hash string
	)
	if admin.enabled() {
		h, err := s.Hasher.Hash(admin.Password)
		if err != nil {
			return SeedResult{}, err
		}
		hash = h
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		res = SeedResult{}
		sd := seeder{ctx: ctx, tx: tx, now: clock(s.Now), res: &res}

		adminRole, err := sd.role(domain.RoleAdmin, "Full administrative access")
		if err != nil {
			return err
		}
		userRole, err := sd.role(domain.RoleUser, "Default role for registered users")
		if err != nil {
			return err
		}

		for _, name := range domain.BasePermissions {
			p, err := sd.permission(name)
			if err != nil {
				return err
			}
			if err := sd.link(domain.RelRolePermission, adminRole.ID, p.ID); err != nil {
				return err
			}
			if name == domain.PermModulesView {
				if err := sd.link(domain.RelRolePermission, userRole.ID, p.ID); err != nil {
					return err
				}
			}
		}

		if admin.enabled() {
			return sd.admin(admin, hash, adminRole.ID)
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	slogx.FromContext(ctx).Info("seed completed",
		slog.Int("roles_created", res.Roles),
		slog.Int("permissions_created", res.Permissions),
		slog.Int("links_created", res.Links),
		slog.String("admin_user_id", res.AdminUserID),
	)
	return res, nil
}

type seeder struct {
	ctx context.Context
	tx  store.Tx
	now time.Time
	res *SeedResult
}

func (sd seeder) role(name, desc string) (domain.Role, error) {
	r, err := sd.tx.Roles().GetByName(sd.ctx, name)
	if !errors.Is(err, store.ErrNotFound) {
		return r, err
	}
	r = domain.Role{
		ID:          idx.NewAt(sd.now).String(),
		Name:        name,
		Description: desc,
		Audit:       domain.NewAudit(domain.ActorSystem, sd.now),
	}
	if err := sd.tx.Roles().Create(sd.ctx, r); err != nil {
		return domain.Role{}, err
	}
	sd.res.Roles++
	return r, nil
}

func (sd seeder) permission(name string) (domain.Permission, error) {
	p, err := sd.tx.Permissions().GetByName(sd.ctx, name)
	if !errors.Is(err, store.ErrNotFound) {
		return p, err
	}
	p = domain.Permission{
		ID:    idx.NewAt(sd.now).String(),
		Name:  name,
		Audit: domain.NewAudit(domain.ActorSystem, sd.now),
	}
	if err := sd.tx.Permissions().Create(sd.ctx, p); err != nil {
		return domain.Permission{}, err
	}
	sd.res.Permissions++
	return p, nil
}

// link creates the pair only when no row exists at all.
func (sd seeder) link(rel domain.Relation, owner, target string) error {
	repo := sd.tx.Assignments(rel)
	_, err := repo.Get(sd.ctx, owner, target)
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	err = repo.Create(sd.ctx, domain.Assignment{
		ID:       idx.NewAt(sd.now).String(),
		Relation: rel,
		OwnerID:  owner,
		TargetID: target,
		Audit:    domain.NewAudit(domain.ActorSystem, sd.now),
	})
	if err != nil {
		return err
	}
	sd.res.Links++
	return nil
}

func (sd seeder) admin(a AdminSeed, hash, adminRoleID string) error {
	username := strings.TrimSpace(a.Username)
	_, err := sd.tx.Users().GetByUsername(sd.ctx, username)
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	u := domain.User{
		ID:             idx.NewAt(sd.now).String(),
		Username:       username,
		Email:          normalizeEmail(a.Email),
		PasswordHash:   &hash,
		UserType:       domain.UserTypeLocal,
		EmailConfirmed: true,
		LockoutEnabled: true,
		SecurityStamp:  uuid.NewString(),
		UserStatus:     domain.UserStatusActive,
		Version:        1,
		Audit:          domain.NewAudit(domain.ActorSystem, sd.now),
	}
	if err := sd.tx.Users().Create(sd.ctx, u); err != nil {
		return err
	}
	sd.res.AdminUserID = u.ID
	return sd.link(domain.RelUserRole, u.ID, adminRoleID)
}
