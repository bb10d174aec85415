package http

import (
	"net/http"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/service"
	"github.com/aussiebroadwan/warden/pkg/httpx"
	"github.com/aussiebroadwan/warden/pkg/wardensdk"
)

// PermissionsHandler serves /permissions and the permission relation endpoints.
type PermissionsHandler struct {
	Permissions *service.PermissionService
	Resolver    *service.ResolverService
}

// HandleList godoc
//
//	@Summary		List permissions
//	@Tags			Permissions
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit				query		int		false	"Page size (max 200)"
//	@Param			offset				query		int		false	"Rows to skip"
//	@Param			search				query		string	false	"Substring of the name"
//	@Param			include_inactive	query		bool	false	"Include deleted permissions"
//	@Success		200					{object}	wardensdk.Page[wardensdk.Permission]
//	@Router			/permissions [get].
func (h *PermissionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := h.Permissions.List(r.Context(), listOptions(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPage(p, toPermission))
}

// HandleGet godoc
//
//	@Summary		Get a permission
//	@Tags			Permissions
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Permission ID"
//	@Success		200	{object}	wardensdk.Permission
//	@Failure		404	{object}	wardensdk.ErrorResponse	"permission_not_found"
//	@Router			/permissions/{id} [get].
func (h *PermissionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.Permissions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPermission(p))
}

// HandleCreate godoc
//
//	@Summary		Create a permission
//	@Description	Names are lowercase dotted words such as reports.view.
//	@Tags			Permissions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		wardensdk.PermissionRequest	true	"Permission"
//	@Success		201		{object}	wardensdk.Permission
//	@Failure		400		{object}	wardensdk.ErrorResponse	"validation_failed"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"name_taken"
//	@Router			/permissions [post].
func (h *PermissionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.PermissionRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.Permissions.Create(r.Context(), actor(r), service.PermissionInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toPermission(p))
}

// HandleUpdate godoc
//
//	@Summary		Update a permission
//	@Description	Permissions named users.* cannot be renamed.
//	@Tags			Permissions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Permission ID"
//	@Param			request	body		wardensdk.PermissionRequest	true	"Permission"
//	@Success		200		{object}	wardensdk.Permission
//	@Failure		403		{object}	wardensdk.ErrorResponse	"protected_permission"
//	@Failure		404		{object}	wardensdk.ErrorResponse	"permission_not_found"
//	@Router			/permissions/{id} [put].
func (h *PermissionsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.PermissionRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.Permissions.Update(r.Context(), actor(r), r.PathValue("id"), service.PermissionInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPermission(p))
}

// HandleDelete godoc
//
//	@Summary		Delete a permission
//	@Tags			Permissions
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Permission ID"
//	@Success		204	"Deleted"
//	@Failure		403	{object}	wardensdk.ErrorResponse	"protected_permission"
//	@Failure		404	{object}	wardensdk.ErrorResponse	"permission_not_found"
//	@Router			/permissions/{id} [delete].
func (h *PermissionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Permissions.Delete(r.Context(), actor(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// relate runs an assign or revoke of (owner, target) in rel.
func (h *PermissionsHandler) relate(w http.ResponseWriter, r *http.Request, rel domain.Relation, owner, target string, assign bool) {
	if !assign {
		if err := h.Resolver.Revoke(r.Context(), actor(r), rel, owner, target); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	a, err := h.Resolver.Assign(r.Context(), actor(r), rel, owner, target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAssignment(a))
}

// HandleAssignToRole godoc
//
//	@Summary		Grant a permission to a role
//	@Tags			Permissions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		wardensdk.RolePermissionRequest	true	"Role and permission"
//	@Success		201		{object}	wardensdk.Assignment
//	@Failure		404		{object}	wardensdk.ErrorResponse	"role_not_found, permission_not_found"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"already_assigned"
//	@Router			/permissions/assign-to-role [post].
func (h *PermissionsHandler) HandleAssignToRole(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.RolePermissionRequest
	if decode(w, r, &req) {
		h.relate(w, r, domain.RelRolePermission, req.RoleID, req.PermissionID, true)
	}
}

// HandleRevokeFromRole godoc
//
//	@Summary		Revoke a permission from a role
//	@Tags			Permissions
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	wardensdk.RolePermissionRequest	true	"Role and permission"
//	@Success		204		"Revoked"
//	@Failure		404		{object}	wardensdk.ErrorResponse	"assignment_not_found"
//	@Router			/permissions/revoke-from-role [post].
func (h *PermissionsHandler) HandleRevokeFromRole(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.RolePermissionRequest
	if decode(w, r, &req) {
		h.relate(w, r, domain.RelRolePermission, req.RoleID, req.PermissionID, false)
	}
}

// HandleAssignModule godoc
//
//	@Summary		Let a permission grant a module
//	@Tags			Permissions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		wardensdk.PermissionModuleRequest	true	"Permission and module"
//	@Success		201		{object}	wardensdk.Assignment
//	@Failure		404		{object}	wardensdk.ErrorResponse	"permission_not_found, module_not_found"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"already_assigned"
//	@Router			/permissions/modules/assign [post].
func (h *PermissionsHandler) HandleAssignModule(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.PermissionModuleRequest
	if decode(w, r, &req) {
		h.relate(w, r, domain.RelPermissionModule, req.PermissionID, req.ModuleID, true)
	}
}

// HandleRevokeModule godoc
//
//	@Summary		Stop a permission granting a module
//	@Tags			Permissions
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	wardensdk.PermissionModuleRequest	true	"Permission and module"
//	@Success		204		"Revoked"
//	@Failure		404		{object}	wardensdk.ErrorResponse	"assignment_not_found"
//	@Router			/permissions/modules/revoke [post].
func (h *PermissionsHandler) HandleRevokeModule(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.PermissionModuleRequest
	if decode(w, r, &req) {
		h.relate(w, r, domain.RelPermissionModule, req.PermissionID, req.ModuleID, false)
	}
}

// HandleAssignRoute godoc
//
//	@Summary		Let a permission grant a route
//	@Tags			Permissions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		wardensdk.PermissionRouteRequest	true	"Permission and route"
//	@Success		201		{object}	wardensdk.Assignment
//	@Failure		404		{object}	wardensdk.ErrorResponse	"permission_not_found, route_not_found"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"already_assigned"
//	@Router			/permissions/routes/assign [post].
func (h *PermissionsHandler) HandleAssignRoute(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.PermissionRouteRequest
	if decode(w, r, &req) {
		h.relate(w, r, domain.RelPermissionRoute, req.PermissionID, req.RouteID, true)
	}
}

// HandleRevokeRoute godoc
//
//	@Summary		Stop a permission granting a route
//	@Tags			Permissions
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	wardensdk.PermissionRouteRequest	true	"Permission and route"
//	@Success		204		"Revoked"
//	@Failure		404		{object}	wardensdk.ErrorResponse	"assignment_not_found"
//	@Router			/permissions/routes/revoke [post].
func (h *PermissionsHandler) HandleRevokeRoute(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.PermissionRouteRequest
	if decode(w, r, &req) {
		h.relate(w, r, domain.RelPermissionRoute, req.PermissionID, req.RouteID, false)
	}
}
