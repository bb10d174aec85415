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

type PermissionService struct {
	Store store.Store
	Now   func() time.Time
}

type PermissionInput struct {
	Name        string `json:"name" validate:"required,max=128,permname"`
	Description string `json:"description" validate:"max=256"`
}

func (s *PermissionService) List(ctx context.Context, opts store.ListOptions) (Page[domain.Permission], error) {
	opts = pageOptions(opts)
	perms, total, err := s.Store.Permissions().List(ctx, opts)
	if err != nil {
		return Page[domain.Permission]{}, err
	}
	return page(perms, total, opts), nil
}

func (s *PermissionService) Get(ctx context.Context, id string) (domain.Permission, error) {
	p, err := s.Store.Permissions().GetByID(ctx, id)
	if err != nil {
		return domain.Permission{}, notFoundAs(err, ErrPermissionNotFound)
	}
	if !p.IsActive {
		return domain.Permission{}, ErrPermissionNotFound
	}
	return p, nil
}

func (s *PermissionService) Create(ctx context.Context, actor string, in PermissionInput) (domain.Permission, error) {
	in.Name = strings.ToLower(strings.TrimSpace(in.Name))
	if err := validateInput(in); err != nil {
		return domain.Permission{}, err
	}

	now := clock(s.Now)
	p := domain.Permission{
		ID:          idx.NewAt(now).String(),
		Name:        in.Name,
		Description: in.Description,
		Audit:       domain.NewAudit(actor, now),
	}
	if err := s.Store.Permissions().Create(ctx, p); err != nil {
		return domain.Permission{}, conflictAs(err, ErrNameTaken)
	}

	slogx.FromContext(ctx).Info("permission created", slog.String("permission", p.Name), slog.String("actor", actor))
	return p, nil
}

// Update changes the description, and the name unless the permission is
// protected.
func (s *PermissionService) Update(ctx context.Context, actor, id string, in PermissionInput) (domain.Permission, error) {
	in.Name = strings.ToLower(strings.TrimSpace(in.Name))
	if err := validateInput(in); err != nil {
		return domain.Permission{}, err
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return domain.Permission{}, err
	}
	if p.Name != in.Name && (domain.IsProtectedPermission(p.Name) || domain.IsProtectedPermission(in.Name)) {
		return domain.Permission{}, ErrProtectedPermission
	}

	p.Name, p.Description = in.Name, in.Description
	p.Touch(actor, clock(s.Now))
	if err := s.Store.Permissions().Update(ctx, p); err != nil {
		return domain.Permission{}, notFoundAs(conflictAs(err, ErrNameTaken), ErrPermissionNotFound)
	}

	slogx.FromContext(ctx).Info("permission updated", slog.String("permission", p.Name), slog.String("actor", actor))
	return p, nil
}

func (s *PermissionService) Delete(ctx context.Context, actor, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if domain.IsProtectedPermission(p.Name) {
		return ErrProtectedPermission
	}
	if err := s.Store.Permissions().SoftDelete(ctx, id, actor, clock(s.Now)); err != nil {
		return notFoundAs(err, ErrPermissionNotFound)
	}

	slogx.FromContext(ctx).Info("permission deleted", slog.String("permission", p.Name), slog.String("actor", actor))
	return nil
}
