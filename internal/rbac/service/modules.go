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

type ModuleService struct {
	Store store.Store
	Now   func() time.Time
}

type ModuleInput struct {
	Name         string  `json:"name" validate:"required,max=64"`
	Route        string  `json:"route" validate:"max=256"`
	Icon         string  `json:"icon" validate:"max=64"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
	ParentID     *string `json:"parent_id" validate:"omitempty,min=1"`
}

func (s *ModuleService) List(ctx context.Context, opts store.ListOptions) (Page[domain.Module], error) {
	opts = pageOptions(opts)
	mods, total, err := s.Store.Modules().List(ctx, opts)
	if err != nil {
		return Page[domain.Module]{}, err
	}
	return page(mods, total, opts), nil
}

func (s *ModuleService) Get(ctx context.Context, id string) (domain.Module, error) {
	m, err := s.Store.Modules().GetByID(ctx, id)
	if err != nil {
		return domain.Module{}, notFoundAs(err, ErrModuleNotFound)
	}
	if !m.IsActive {
		return domain.Module{}, ErrModuleNotFound
	}
	return m, nil
}

// Tree returns every active module as a forest.
func (s *ModuleService) Tree(ctx context.Context) ([]domain.ModuleNode, error) {
	mods, err := s.Store.Modules().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return BuildModuleTree(mods), nil
}

func (s *ModuleService) Create(ctx context.Context, actor string, in ModuleInput) (domain.Module, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return domain.Module{}, err
	}

	now := clock(s.Now)
	m := domain.Module{
		ID:           idx.NewAt(now).String(),
		Name:         in.Name,
		Route:        in.Route,
		Icon:         in.Icon,
		DisplayOrder: in.DisplayOrder,
		ParentID:     in.ParentID,
		Audit:        domain.NewAudit(actor, now),
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if m.ParentID != nil {
			if err := activeModule(ctx, tx, *m.ParentID); err != nil {
				return fieldError("parent_id", "no such module")
			}
		}
		return conflictAs(tx.Modules().Create(ctx, m), ErrNameTaken)
	})
	if err != nil {
		return domain.Module{}, err
	}

	slogx.FromContext(ctx).Info("module created", slog.String("module_id", m.ID), slog.String("actor", actor))
	return m, nil
}

// Update rewrites a module. Re-parenting under itself or a descendant fails
// with ErrModuleCycle.
func (s *ModuleService) Update(ctx context.Context, actor, id string, in ModuleInput) (domain.Module, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return domain.Module{}, err
	}

	var m domain.Module
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if m, err = tx.Modules().GetByID(ctx, id); err != nil {
			return notFoundAs(err, ErrModuleNotFound)
		}
		if !m.IsActive {
			return ErrModuleNotFound
		}

		if in.ParentID != nil {
			if *in.ParentID != id {
				if err := activeModule(ctx, tx, *in.ParentID); err != nil {
					return fieldError("parent_id", "no such module")
				}
			}
			cycle, err := detectCycle(ctx, tx, id, *in.ParentID)
			if err != nil {
				return err
			}
			if cycle {
				return ErrModuleCycle
			}
		}

		m.Name, m.Route, m.Icon = in.Name, in.Route, in.Icon
		m.DisplayOrder, m.ParentID = in.DisplayOrder, in.ParentID
		m.Touch(actor, clock(s.Now))
		return notFoundAs(conflictAs(tx.Modules().Update(ctx, m), ErrNameTaken), ErrModuleNotFound)
	})
	if err != nil {
		return domain.Module{}, err
	}

	slogx.FromContext(ctx).Info("module updated", slog.String("module_id", id), slog.String("actor", actor))
	return m, nil
}

// Delete refuses while active children remain.
func (s *ModuleService) Delete(ctx context.Context, actor, id string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Modules().CountActiveChildren(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrModuleHasChildren
		}
		return notFoundAs(tx.Modules().SoftDelete(ctx, id, actor, clock(s.Now)), ErrModuleNotFound)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("module deleted", slog.String("module_id", id), slog.String("actor", actor))
	return nil
}
