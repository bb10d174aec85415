package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/pkg/idx"
	"github.com/aussiebroadwan/warden/pkg/slogx"
)

type RoleService struct {
	Store store.Store
	Now   func() time.Time
}

type RoleInput struct {
	Name        string `json:"name" validate:"required,min=2,max=64"`
	Description string `json:"description" validate:"max=256"`
}

func (s *RoleService) List(ctx context.Context, opts store.ListOptions) (Page[domain.Role], error) {
	opts = pageOptions(opts)
	roles, total, err := s.Store.Roles().List(ctx, opts)
	if err != nil {
		return Page[domain.Role]{}, err
	}
	return page(roles, total, opts), nil
}

func (s *RoleService) Get(ctx context.Context, id string) (domain.Role, error) {
	r, err := s.Store.Roles().GetByID(ctx, id)
	if err != nil {
		return domain.Role{}, notFoundAs(err, ErrRoleNotFound)
	}
	if !r.IsActive {
		return domain.Role{}, ErrRoleNotFound
	}
	return r, nil
}

func (s *RoleService) Create(ctx context.Context, actor string, in RoleInput) (domain.Role, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return domain.Role{}, err
	}

	now := clock(s.Now)
	r := domain.Role{
		ID:          idx.NewAt(now).String(),
		Name:        in.Name,
		Description: in.Description,
		Audit:       domain.NewAudit(actor, now),
	}
	if err := s.Store.Roles().Create(ctx, r); err != nil {
		return domain.Role{}, conflictAs(err, ErrNameTaken)
	}

	slogx.FromContext(ctx).Info("role created", slog.String("role_id", r.ID), slog.String("actor", actor))
	return r, nil
}

// Update renames or re-describes a role. Protected roles keep their name.
func (s *RoleService) Update(ctx context.Context, actor, id string, in RoleInput) (domain.Role, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return domain.Role{}, err
	}

	r, err := s.Get(ctx, id)
	if err != nil {
		return domain.Role{}, err
	}
	if domain.IsProtectedRole(r.Name) && r.Name != in.Name {
		return domain.Role{}, ErrProtectedRole
	}

	r.Name, r.Description = in.Name, in.Description
	r.Touch(actor, clock(s.Now))
	if err := s.Store.Roles().Update(ctx, r); err != nil {
		return domain.Role{}, notFoundAs(conflictAs(err, ErrNameTaken), ErrRoleNotFound)
	}

	slogx.FromContext(ctx).Info("role updated", slog.String("role_id", id), slog.String("actor", actor))
	return r, nil
}

func (s *RoleService) Delete(ctx context.Context, actor, id string) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if domain.IsProtectedRole(r.Name) {
		return ErrProtectedRole
	}
	if err := s.Store.Roles().SoftDelete(ctx, id, actor, clock(s.Now)); err != nil {
		return notFoundAs(err, ErrRoleNotFound)
	}

	slogx.FromContext(ctx).Info("role deleted", slog.String("role_id", id), slog.String("actor", actor))
	return nil
}
