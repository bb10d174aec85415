package http

import (
	"net/http"

	"github.com/aussiebroadwan/warden/internal/rbac/service"
	"github.com/aussiebroadwan/warden/pkg/httpx"
	"github.com/aussiebroadwan/warden/pkg/wardensdk"
)

// RolesHandler serves /roles.
type RolesHandler struct {
	Roles    *service.RoleService
	Resolver *service.ResolverService
}

// HandleList godoc
//
//	@Summary		List roles
//	@Tags			Roles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit				query		int		false	"Page size (max 200)"
//	@Param			offset				query		int		false	"Rows to skip"
//	@Param			search				query		string	false	"Substring of the name"
//	@Param			include_inactive	query		bool	false	"Include deleted roles"
//	@Success		200					{object}	wardensdk.Page[wardensdk.Role]
//	@Router			/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := h.Roles.List(r.Context(), listOptions(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPage(p, toRole))
}

// HandleGet godoc
//
//	@Summary		Get a role
//	@Tags			Roles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Role ID"
//	@Success		200	{object}	wardensdk.Role
//	@Failure		404	{object}	wardensdk.ErrorResponse	"role_not_found"
//	@Router			/roles/{id} [get].
func (h *RolesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	role, err := h.Roles.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRole(role))
}

// HandleCreate godoc
//
//	@Summary		Create a role
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		wardensdk.RoleRequest	true	"Role"
//	@Success		201		{object}	wardensdk.Role
//	@Failure		400		{object}	wardensdk.ErrorResponse	"validation_failed"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"name_taken"
//	@Router			/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.RoleRequest
	if !decode(w, r, &req) {
		return
	}

	role, err := h.Roles.Create(r.Context(), actor(r), service.RoleInput{Name: req.Name, Description: req.Description})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toRole(role))
}

// HandleUpdate godoc
//
//	@Summary		Update a role
//	@Description	Admin and User keep their names.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Role ID"
//	@Param			request	body		wardensdk.RoleRequest	true	"Role"
//	@Success		200		{object}	wardensdk.Role
//	@Failure		403		{object}	wardensdk.ErrorResponse	"protected_role"
//	@Failure		404		{object}	wardensdk.ErrorResponse	"role_not_found"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"name_taken"
//	@Router			/roles/{id} [put].
func (h *RolesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.RoleRequest
	if !decode(w, r, &req) {
		return
	}

	role, err := h.Roles.Update(r.Context(), actor(r), r.PathValue("id"), service.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toRole(role))
}

// HandleDelete godoc
//
//	@Summary		Delete a role
//	@Tags			Roles
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Role ID"
//	@Success		204	"Deleted"
//	@Failure		403	{object}	wardensdk.ErrorResponse	"protected_role"
//	@Failure		404	{object}	wardensdk.ErrorResponse	"role_not_found"
//	@Router			/roles/{id} [delete].
func (h *RolesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Roles.Delete(r.Context(), actor(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePermissions godoc
//
//	@Summary		Permissions granted to a role
//	@Tags			Roles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Role ID"
//	@Success		200	{array}		wardensdk.Permission
//	@Failure		404	{object}	wardensdk.ErrorResponse	"role_not_found"
//	@Router			/roles/{id}/permissions [get].
func (h *RolesHandler) HandlePermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.Resolver.GetPermissionsForRole(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(perms, toPermission))
}

// HandleModules godoc
//
//	@Summary		Modules reachable through a role's permissions
//	@Tags			Roles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Role ID"
//	@Success		200	{array}		wardensdk.Module
//	@Failure		404	{object}	wardensdk.ErrorResponse	"role_not_found"
//	@Router			/roles/{id}/modules [get].
func (h *RolesHandler) HandleModules(w http.ResponseWriter, r *http.Request) {
	mods, err := h.Resolver.GetModulesForRole(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(mods, toModule))
}

// HandleRoutes godoc
//
//	@Summary		Routes granted to a role
//	@Tags			Roles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Role ID"
//	@Success		200	{array}		wardensdk.Route
//	@Failure		404	{object}	wardensdk.ErrorResponse	"role_not_found"
//	@Router			/roles/{id}/routes [get].
func (h *RolesHandler) HandleRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.Resolver.GetRoutesForRole(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(routes, toRoute))
}

// HandleModuleAccess godoc
//
//	@Summary		Check module access of a role
//	@Description	True when the role holds modules.view and one of its permissions grants the module.
//	@Tags			Roles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path		string	true	"Role ID"
//	@Param			moduleId	path		string	true	"Module ID"
//	@Success		200			{object}	wardensdk.ModuleAccessResponse
//	@Failure		404			{object}	wardensdk.ErrorResponse	"role_not_found, module_not_found"
//	@Router			/roles/{id}/modules/{moduleId}/access [get].
func (h *RolesHandler) HandleModuleAccess(w http.ResponseWriter, r *http.Request) {
	roleID, moduleID := r.PathValue("id"), r.PathValue("moduleId")

	ok, err := h.Resolver.RoleHasModuleAccess(r.Context(), roleID, moduleID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wardensdk.ModuleAccessResponse{
		RoleID:    roleID,
		ModuleID:  moduleID,
		HasAccess: ok,
	})
}
