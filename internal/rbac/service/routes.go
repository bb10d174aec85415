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

type RouteService struct {
	Store store.Store
	Now   func() time.Time
}

type RouteInput struct {
	Name         string `json:"name" validate:"required,max=128"`
	Path         string `json:"path" validate:"required,max=256,startswith=/"`
	HTTPMethod   string `json:"http_method" validate:"required,httpmethod"`
	ModuleID     string `json:"module_id" validate:"required"`
	RequiresAuth *bool  `json:"requires_auth"`
	IsEnabled    *bool  `json:"is_enabled"`
}

func (in *RouteInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Path = strings.TrimSpace(in.Path)
	in.HTTPMethod = strings.ToUpper(strings.TrimSpace(in.HTTPMethod))
}

func (s *RouteService) List(ctx context.Context, opts store.ListOptions) (Page[domain.Route], error) {
	opts = pageOptions(opts)
	routes, total, err := s.Store.Routes().List(ctx, opts)
	if err != nil {
		return Page[domain.Route]{}, err
	}
	return page(routes, total, opts), nil
}

func (s *RouteService) Get(ctx context.Context, id string) (domain.Route, error) {
	r, err := s.Store.Routes().GetByID(ctx, id)
	if err != nil {
		return domain.Route{}, notFoundAs(err, ErrRouteNotFound)
	}
	if !r.IsActive {
		return domain.Route{}, ErrRouteNotFound
	}
	return r, nil
}

// Create registers a route. RequiresAuth and IsEnabled default to true.
func (s *RouteService) Create(ctx context.Context, actor string, in RouteInput) (domain.Route, error) {
	in.normalize()
	if err := validateInput(in); err != nil {
		return domain.Route{}, err
	}

	now := clock(s.Now)
	r := domain.Route{
		ID:           idx.NewAt(now).String(),
		Name:         in.Name,
		Path:         in.Path,
		HTTPMethod:   in.HTTPMethod,
		ModuleID:     in.ModuleID,
		RequiresAuth: boolOr(in.RequiresAuth, true),
		IsEnabled:    boolOr(in.IsEnabled, true),
		Audit:        domain.NewAudit(actor, now),
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := activeModule(ctx, tx, r.ModuleID); err != nil {
			return fieldError("module_id", "no such module")
		}
		return conflictAs(tx.Routes().Create(ctx, r), ErrNameTaken)
	})
	if err != nil {
		return domain.Route{}, err
	}

	slogx.FromContext(ctx).Info("route created",
		slog.String("route_id", r.ID),
		slog.String("method", r.HTTPMethod),
		slog.String("path", r.Path),
		slog.String("actor", actor),
	)
	return r, nil
}

func (s *RouteService) Update(ctx context.Context, actor, id string, in RouteInput) (domain.Route, error) {
	in.normalize()
	if err := validateInput(in); err != nil {
		return domain.Route{}, err
	}

	var r domain.Route
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if r, err = tx.Routes().GetByID(ctx, id); err != nil {
			return notFoundAs(err, ErrRouteNotFound)
		}
		if !r.IsActive {
			return ErrRouteNotFound
		}
		if err := activeModule(ctx, tx, in.ModuleID); err != nil {
			return fieldError("module_id", "no such module")
		}

		r.Name, r.Path, r.HTTPMethod, r.ModuleID = in.Name, in.Path, in.HTTPMethod, in.ModuleID
		r.RequiresAuth = boolOr(in.RequiresAuth, r.RequiresAuth)
		r.IsEnabled = boolOr(in.IsEnabled, r.IsEnabled)
		r.Touch(actor, clock(s.Now))
		return notFoundAs(conflictAs(tx.Routes().Update(ctx, r), ErrNameTaken), ErrRouteNotFound)
	})
	if err != nil {
		return domain.Route{}, err
	}

	slogx.FromContext(ctx).Info("route updated", slog.String("route_id", id), slog.String("actor", actor))
	return r, nil
}

func (s *RouteService) Delete(ctx context.Context, actor, id string) error {
	if err := s.Store.Routes().SoftDelete(ctx, id, actor, clock(s.Now)); err != nil {
		return notFoundAs(err, ErrRouteNotFound)
	}
	slogx.FromContext(ctx).Info("route deleted", slog.String("route_id", id), slog.String("actor", actor))
	return nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
