package http

import (
	"net/http"

	"github.com/aussiebroadwan/warden/internal/rbac/service"
	"github.com/aussiebroadwan/warden/pkg/httpx"
	"github.com/aussiebroadwan/warden/pkg/wardensdk"
)

// ModulesHandler serves /modules.
type ModulesHandler struct {
	Modules  *service.ModuleService
	Resolver *service.ResolverService
}

func moduleInput(req wardensdk.ModuleRequest) service.ModuleInput {
	return service.ModuleInput{
		Name:         req.Name,
		Route:        req.Route,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
		ParentID:     req.ParentID,
	}
}

// HandleTree godoc
//
//	@Summary		Navigation tree of the caller
//	@Description	Modules granted to the caller's roles, nested by parent and ordered by display_order then name.
//	@Tags			Modules
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		wardensdk.ModuleNode
//	@Failure		401	{object}	wardensdk.ErrorResponse
//	@Failure		403	{object}	wardensdk.ErrorResponse	"insufficient_permission"
//	@Router			/modules/tree [get].
func (h *ModulesHandler) HandleTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.Resolver.GetModulesForUser(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toModuleTree(tree))
}

// HandleList godoc
//
//	@Summary		List modules
//	@Tags			Modules
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit				query		int		false	"Page size (max 200)"
//	@Param			offset				query		int		false	"Rows to skip"
//	@Param			search				query		string	false	"Substring of the name"
//	@Param			include_inactive	query		bool	false	"Include deleted modules"
//	@Success		200					{object}	wardensdk.Page[wardensdk.Module]
//	@Router			/modules [get].
func (h *ModulesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := h.Modules.List(r.Context(), listOptions(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPage(p, toModule))
}

// HandleGet godoc
//
//	@Summary		Get a module
//	@Tags			Modules
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Module ID"
//	@Success		200	{object}	wardensdk.Module
//	@Failure		404	{object}	wardensdk.ErrorResponse	"module_not_found"
//	@Router			/modules/{id} [get].
func (h *ModulesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	m, err := h.Modules.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toModule(m))
}

// HandleCreate godoc
//
//	@Summary		Create a module
//	@Tags			Modules
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		wardensdk.ModuleRequest	true	"Module"
//	@Success		201		{object}	wardensdk.Module
//	@Failure		400		{object}	wardensdk.ErrorResponse	"validation_failed"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"name_taken"
//	@Router			/modules [post].
func (h *ModulesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.ModuleRequest
	if !decode(w, r, &req) {
		return
	}

	m, err := h.Modules.Create(r.Context(), actor(r), moduleInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toModule(m))
}

// HandleUpdate godoc
//
//	@Summary		Update a module
//	@Description	Moving a module under itself or one of its descendants is rejected.
//	@Tags			Modules
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Module ID"
//	@Param			request	body		wardensdk.ModuleRequest	true	"Module"
//	@Success		200		{object}	wardensdk.Module
//	@Failure		404		{object}	wardensdk.ErrorResponse	"module_not_found"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"module_cycle, name_taken"
//	@Router			/modules/{id} [put].
func (h *ModulesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.ModuleRequest
	if !decode(w, r, &req) {
		return
	}

	m, err := h.Modules.Update(r.Context(), actor(r), r.PathValue("id"), moduleInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toModule(m))
}

// HandleDelete godoc
//
//	@Summary		Delete a module
//	@Tags			Modules
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Module ID"
//	@Success		204	"Deleted"
//	@Failure		404	{object}	wardensdk.ErrorResponse	"module_not_found"
//	@Failure		409	{object}	wardensdk.ErrorResponse	"module_has_children"
//	@Router			/modules/{id} [delete].
func (h *ModulesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Modules.Delete(r.Context(), actor(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
