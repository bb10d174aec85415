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

// UserService is the administrative view of accounts.
type UserService struct {
	Store  store.Store
	Hasher PasswordHasher
	Tokens *TokenService
	Now    func() time.Time
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64,alphanum"`
	Email    string `json:"email" validate:"required,email,max=256"`
	Password string `json:"password" validate:"required,min=8,max=1024"`

	// RoleIDs are assigned in the same transaction.
	RoleIDs []string `json:"role_ids" validate:"omitempty,max=32,dive,required"`
}

// UpdateUserRequest patches the fields that are set. Version must match the
// stored row.
type UpdateUserRequest struct {
	Username       *string `json:"username" validate:"omitempty,min=3,max=64,alphanum"`
	Email          *string `json:"email" validate:"omitempty,email,max=256"`
	UserStatus     *string `json:"user_status" validate:"omitempty,oneof=pending active suspended"`
	LockoutEnabled *bool   `json:"lockout_enabled"`
	Version        int64   `json:"version" validate:"required,gte=1"`
}

func (s *UserService) List(ctx context.Context, opts store.ListOptions) (Page[domain.User], error) {
	opts = pageOptions(opts)
	users, total, err := s.Store.Users().List(ctx, opts)
	if err != nil {
		return Page[domain.User]{}, err
	}
	return page(users, total, opts), nil
}

func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetByID(ctx, id)
	if err != nil {
		return domain.User{}, notFoundAs(err, ErrUserNotFound)
	}
	if !u.IsActive {
		return domain.User{}, ErrUserNotFound
	}
	return u, nil
}

// Create adds an activated local account.
func (s *UserService) Create(ctx context.Context, actor string, req CreateUserRequest) (domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = normalizeEmail(req.Email)
	if err := validateInput(req); err != nil {
		return domain.User{}, err
	}
	if err := checkPasswordStrength(req.Password); err != nil {
		return domain.User{}, err
	}

	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := clock(s.Now)
	u := domain.User{
		ID:             idx.NewAt(now).String(),
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   &hash,
		UserType:       domain.UserTypeLocal,
		EmailConfirmed: true,
		LockoutEnabled: true,
		SecurityStamp:  uuid.NewString(),
		UserStatus:     domain.UserStatusActive,
		Version:        1,
		Audit:          domain.NewAudit(actor, now),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := ensureLoginFree(ctx, tx, u.Username, u.Email, ""); err != nil {
			return err
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			return loginConflict(err)
		}
		for _, roleID := range req.RoleIDs {
			if err := activeRole(ctx, tx, roleID); err != nil {
				return err
			}
			link := domain.Assignment{
				ID:       idx.NewAt(now).String(),
				Relation: domain.RelUserRole,
				OwnerID:  u.ID,
				TargetID: roleID,
				Audit:    domain.NewAudit(actor, now),
			}
			if err := tx.Assignments(domain.RelUserRole).Create(ctx, link); err != nil {
				return conflictAs(err, ErrAlreadyAssigned)
			}
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created", slog.String("user_id", u.ID), slog.String("actor", actor))
	return u, nil
}

// Update applies req. Suspending a user ends their sessions.
func (s *UserService) Update(ctx context.Context, actor, id string, req UpdateUserRequest) (domain.User, error) {
	if req.Username != nil {
		*req.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		*req.Email = normalizeEmail(*req.Email)
	}
	if err := validateInput(req); err != nil {
		return domain.User{}, err
	}

	var out domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}
		if !u.IsActive {
			return ErrUserNotFound
		}

		var username, email string
		if req.Username != nil && *req.Username != u.Username {
			username, u.Username = *req.Username, *req.Username
		}
		if req.Email != nil && *req.Email != u.Email {
			email, u.Email = *req.Email, *req.Email
		}
		if err := ensureLoginFree(ctx, tx, username, email, u.ID); err != nil {
			return err
		}

		suspended := false
		if req.UserStatus != nil {
			next := domain.UserStatus(*req.UserStatus)
			suspended = next == domain.UserStatusSuspended && u.UserStatus != next
			u.UserStatus = next
		}
		if req.LockoutEnabled != nil {
			u.LockoutEnabled = *req.LockoutEnabled
		}
		u.Version = req.Version
		u.Touch(actor, clock(s.Now))

		out, err = tx.Users().Update(ctx, u)
		switch {
		case errors.Is(err, store.ErrStaleVersion):
			return ErrStaleVersion
		case errors.Is(err, store.ErrAlreadyExists):
			return loginConflict(err)
		case err != nil:
			return notFoundAs(err, ErrUserNotFound)
		}

		if suspended && s.Tokens != nil {
			_, err = s.Tokens.revokeAll(ctx, tx, u.ID)
		}
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user updated", slog.String("user_id", id), slog.String("actor", actor))
	return out, nil
}

// Delete soft-deletes the account and ends its sessions.
func (s *UserService) Delete(ctx context.Context, actor, id string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().SoftDelete(ctx, id, actor, clock(s.Now)); err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}
		if s.Tokens == nil {
			return nil
		}
		_, err := s.Tokens.revokeAll(ctx, tx, id)
		return err
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user deleted", slog.String("user_id", id), slog.String("actor", actor))
	return nil
}
