package http

import (
	"net/http"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/service"
	"github.com/aussiebroadwan/warden/pkg/httpx"
	"github.com/aussiebroadwan/warden/pkg/wardensdk"
)

// UsersHandler serves /users. Every endpoint requires the Admin role.
type UsersHandler struct {
	Users    *service.UserService
	Lockout  *service.LockoutService
	Resolver *service.ResolverService
	Tokens   *service.TokenService
}

// HandleList godoc
//
//	@Summary		List users
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit				query		int		false	"Page size (max 200)"
//	@Param			offset				query		int		false	"Rows to skip"
//	@Param			search				query		string	false	"Substring of username or e-mail"
//	@Param			include_inactive	query		bool	false	"Include soft deleted users"
//	@Success		200					{object}	wardensdk.Page[wardensdk.User]
//	@Failure		401					{object}	wardensdk.ErrorResponse
//	@Failure		403					{object}	wardensdk.ErrorResponse
//	@Router			/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := h.Users.List(r.Context(), listOptions(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPage(p, toUser))
}

// HandleGet godoc
//
//	@Summary		Get a user
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	wardensdk.User
//	@Failure		404	{object}	wardensdk.ErrorResponse	"user_not_found"
//	@Router			/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleCreate godoc
//
//	@Summary		Create a user
//	@Description	Creates an active, confirmed local account, optionally with roles.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		wardensdk.CreateUserRequest	true	"User"
//	@Success		201		{object}	wardensdk.User
//	@Failure		400		{object}	wardensdk.ErrorResponse	"validation_failed, weak_password"
//	@Failure		404		{object}	wardensdk.ErrorResponse	"role_not_found"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"username_taken, email_taken"
//	@Router			/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.CreateUserRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.Users.Create(r.Context(), actor(r), service.CreateUserRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		RoleIDs:  req.RoleIDs,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUser(u))
}

// HandleUpdate godoc
//
//	@Summary		Update a user
//	@Description	Partial update guarded by the row version. Suspending a user ends their sessions.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"User ID"
//	@Param			request	body		wardensdk.UpdateUserRequest	true	"Changes and current version"
//	@Success		200		{object}	wardensdk.User
//	@Failure		404		{object}	wardensdk.ErrorResponse	"user_not_found"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"stale_version, username_taken, email_taken"
//	@Router			/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.UpdateUserRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.Users.Update(r.Context(), actor(r), r.PathValue("id"), service.UpdateUserRequest{
		Username:       req.Username,
		Email:          req.Email,
		UserStatus:     req.UserStatus,
		LockoutEnabled: req.LockoutEnabled,
		Version:        req.Version,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleDelete godoc
//
//	@Summary		Delete a user
//	@Description	Soft deletes the user and ends all their sessions.
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User ID"
//	@Success		204	"Deleted"
//	@Failure		404	{object}	wardensdk.ErrorResponse	"user_not_found"
//	@Router			/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.Delete(r.Context(), actor(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUnlock godoc
//
//	@Summary		Unlock a user
//	@Description	Clears the lockout and the failed attempt counter.
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User ID"
//	@Success		204	"Unlocked"
//	@Failure		404	{object}	wardensdk.ErrorResponse	"user_not_found"
//	@Router			/users/{id}/unlock [post].
func (h *UsersHandler) HandleUnlock(w http.ResponseWriter, r *http.Request) {
	if err := h.Lockout.UnlockAccount(r.Context(), r.PathValue("id"), actor(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLockout godoc
//
//	@Summary		Lockout state of a user
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	wardensdk.LockoutResponse
//	@Failure		404	{object}	wardensdk.ErrorResponse	"user_not_found"
//	@Router			/users/{id}/lockout [get].
func (h *UsersHandler) HandleLockout(w http.ResponseWriter, r *http.Request) {
	st, err := h.Lockout.Status(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wardensdk.LockoutResponse{
		Locked:            st.Locked,
		AccessFailedCount: st.AccessFailedCount,
		LockoutEnd:        st.LockoutEnd,
		RemainingSeconds:  st.RemainingSeconds,
	})
}

// HandleSessions godoc
//
//	@Summary		Active sessions of a user
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{array}		wardensdk.UserSession
//	@Failure		404	{object}	wardensdk.ErrorResponse	"user_not_found"
//	@Router			/users/{id}/sessions [get].
func (h *UsersHandler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.Tokens.ListSessions(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(sessions, toSession))
}

// HandleRevokeSessions godoc
//
//	@Summary		End all sessions of a user
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	wardensdk.RevokedSessionsResponse
//	@Router			/users/{id}/sessions [delete].
func (h *UsersHandler) HandleRevokeSessions(w http.ResponseWriter, r *http.Request) {
	n, err := h.Tokens.RevokeAllSessions(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wardensdk.RevokedSessionsResponse{Revoked: n})
}

// HandleRoles godoc
//
//	@Summary		Roles of a user
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{array}		wardensdk.Role
//	@Failure		404	{object}	wardensdk.ErrorResponse	"user_not_found"
//	@Router			/users/{id}/roles [get].
func (h *UsersHandler) HandleRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Resolver.GetRolesForUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(roles, toRole))
}

// HandleAssignRole godoc
//
//	@Summary		Give a user a role
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string	true	"User ID"
//	@Param			roleId	path		string	true	"Role ID"
//	@Success		201		{object}	wardensdk.Assignment
//	@Failure		404		{object}	wardensdk.ErrorResponse	"user_not_found, role_not_found"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"already_assigned"
//	@Router			/users/{id}/roles/{roleId} [post].
func (h *UsersHandler) HandleAssignRole(w http.ResponseWriter, r *http.Request) {
	a, err := h.Resolver.Assign(r.Context(), actor(r), domain.RelUserRole, r.PathValue("id"), r.PathValue("roleId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAssignment(a))
}

// HandleRevokeRole godoc
//
//	@Summary		Take a role from a user
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id		path	string	true	"User ID"
//	@Param			roleId	path	string	true	"Role ID"
//	@Success		204		"Revoked"
//	@Failure		404		{object}	wardensdk.ErrorResponse	"assignment_not_found"
//	@Router			/users/{id}/roles/{roleId} [delete].
func (h *UsersHandler) HandleRevokeRole(w http.ResponseWriter, r *http.Request) {
	err := h.Resolver.Revoke(r.Context(), actor(r), domain.RelUserRole, r.PathValue("id"), r.PathValue("roleId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePermissions godoc
//
//	@Summary		Effective permissions of a user
//	@Description	Union over all active roles of the user, without duplicates.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{array}		wardensdk.Permission
//	@Failure		404	{object}	wardensdk.ErrorResponse	"user_not_found"
//	@Router			/users/{id}/permissions [get].
func (h *UsersHandler) HandlePermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.Resolver.GetPermissionsForUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(perms, toPermission))
}

// HandleModules godoc
//
//	@Summary		Module tree of a user
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{array}		wardensdk.ModuleNode
//	@Failure		404	{object}	wardensdk.ErrorResponse	"user_not_found"
//	@Router			/users/{id}/modules [get].
func (h *UsersHandler) HandleModules(w http.ResponseWriter, r *http.Request) {
	tree, err := h.Resolver.GetModulesForUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toModuleTree(tree))
}
