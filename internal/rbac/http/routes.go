package http

import (
	"net/http"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/service"
	"github.com/aussiebroadwan/warden/pkg/httpx"
	"github.com/aussiebroadwan/warden/pkg/wardensdk"
)

// RoutesHandler serves /routes, the API endpoints warden tracks grants for.
type RoutesHandler struct {
	Routes   *service.RouteService
	Resolver *service.ResolverService
}

func routeInput(req wardensdk.RouteRequest) service.RouteInput {
	return service.RouteInput{
		Name:         req.Name,
		Path:         req.Path,
		HTTPMethod:   req.HTTPMethod,
		ModuleID:     req.ModuleID,
		RequiresAuth: req.RequiresAuth,
		IsEnabled:    req.IsEnabled,
	}
}

// HandleList godoc
//
//	@Summary		List routes
//	@Tags			Routes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit				query		int		false	"Page size (max 200)"
//	@Param			offset				query		int		false	"Rows to skip"
//	@Param			search				query		string	false	"Substring of the name"
//	@Param			include_inactive	query		bool	false	"Include deleted routes"
//	@Success		200					{object}	wardensdk.Page[wardensdk.Route]
//	@Router			/routes [get].
func (h *RoutesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := h.Routes.List(r.Context(), listOptions(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPage(p, toRoute))
}

// HandleGet godoc
//
//	@Summary		Get a route
//	@Tags			Routes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Route ID"
//	@Success		200	{object}	wardensdk.Route
//	@Failure		404	{object}	wardensdk.ErrorResponse	"route_not_found"
//	@Router			/routes/{id} [get].
func (h *RoutesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rt, err := h.Routes.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoute(rt))
}

// HandleCreate godoc
//
//	@Summary		Create a route
//	@Description	requires_auth and is_enabled default to true.
//	@Tags			Routes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		wardensdk.RouteRequest	true	"Route"
//	@Success		201		{object}	wardensdk.Route
//	@Failure		400		{object}	wardensdk.ErrorResponse	"validation_failed"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"name_taken"
//	@Router			/routes [post].
func (h *RoutesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.RouteRequest
	if !decode(w, r, &req) {
		return
	}

	rt, err := h.Routes.Create(r.Context(), actor(r), routeInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toRoute(rt))
}

// HandleUpdate godoc
//
//	@Summary		Update a route
//	@Tags			Routes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Route ID"
//	@Param			request	body		wardensdk.RouteRequest	true	"Route"
//	@Success		200		{object}	wardensdk.Route
//	@Failure		404		{object}	wardensdk.ErrorResponse	"route_not_found"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"name_taken"
//	@Router			/routes/{id} [put].
func (h *RoutesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.RouteRequest
	if !decode(w, r, &req) {
		return
	}

	rt, err := h.Routes.Update(r.Context(), actor(r), r.PathValue("id"), routeInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRoute(rt))
}

// HandleDelete godoc
//
//	@Summary		Delete a route
//	@Tags			Routes
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Route ID"
//	@Success		204	"Deleted"
//	@Failure		404	{object}	wardensdk.ErrorResponse	"route_not_found"
//	@Router			/routes/{id} [delete].
func (h *RoutesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Routes.Delete(r.Context(), actor(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAssign godoc
//
//	@Summary		Grant a route to a role
//	@Tags			Routes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		wardensdk.RoleRouteRequest	true	"Role and route"
//	@Success		201		{object}	wardensdk.Assignment
//	@Failure		404		{object}	wardensdk.ErrorResponse	"role_not_found, route_not_found"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"already_assigned"
//	@Router			/routes/assign [post].
func (h *RoutesHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.RoleRouteRequest
	if !decode(w, r, &req) {
		return
	}

	a, err := h.Resolver.Assign(r.Context(), actor(r), domain.RelRoleRoute, req.RoleID, req.RouteID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAssignment(a))
}

// HandleRevoke godoc
//
//	@Summary		Revoke a route from a role
//	@Tags			Routes
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	wardensdk.RoleRouteRequest	true	"Role and route"
//	@Success		204		"Revoked"
//	@Failure		404		{object}	wardensdk.ErrorResponse	"assignment_not_found"
//	@Router			/routes/revoke [post].
func (h *RoutesHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.RoleRouteRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.Resolver.Revoke(r.Context(), actor(r), domain.RelRoleRoute, req.RoleID, req.RouteID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
