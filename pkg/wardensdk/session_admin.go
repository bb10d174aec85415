package wardensdk

import (
	"context"
	"net/http"
)

// Everything here requires the Admin role.

func (s *Session) ListUsers(ctx context.Context, opts ListOptions) (*Page[User], error) {
	var out Page[User]
	if err := s.do(ctx, http.MethodGet, "/users"+opts.query(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var out User
	if err := s.do(ctx, http.MethodPost, "/users", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	var out User
	if err := s.do(ctx, http.MethodPut, "/users/"+id, req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UnlockUser(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodPost, "/users/"+id+"/unlock", nil, nil, http.StatusNoContent)
}

func (s *Session) UserLockout(ctx context.Context, id string) (*LockoutResponse, error) {
	var out LockoutResponse
	if err := s.do(ctx, http.MethodGet, "/users/"+id+"/lockout", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UserSessions(ctx context.Context, id string) ([]UserSession, error) {
	var out []UserSession
	if err := s.do(ctx, http.MethodGet, "/users/"+id+"/sessions", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) AssignUserRole(ctx context.Context, userID, roleID string) (*Assignment, error) {
	var out Assignment
	if err := s.do(ctx, http.MethodPost, "/users/"+userID+"/roles/"+roleID, nil, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListRoles(ctx context.Context, opts ListOptions) (*Page[Role], error) {
	var out Page[Role]
	if err := s.do(ctx, http.MethodGet, "/roles"+opts.query(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateRole(ctx context.Context, req RoleRequest) (*Role, error) {
	var out Role
	if err := s.do(ctx, http.MethodPost, "/roles", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListPermissions(ctx context.Context, opts ListOptions) (*Page[Permission], error) {
	var out Page[Permission]
	if err := s.do(ctx, http.MethodGet, "/permissions"+opts.query(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreatePermission(ctx context.Context, req PermissionRequest) (*Permission, error) {
	var out Permission
	if err := s.do(ctx, http.MethodPost, "/permissions", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) AssignPermissionToRole(ctx context.Context, roleID, permissionID string) (*Assignment, error) {
	var out Assignment
	req := RolePermissionRequest{RoleID: roleID, PermissionID: permissionID}
	if err := s.do(ctx, http.MethodPost, "/permissions/assign-to-role", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) AssignPermissionToModule(ctx context.Context, permissionID, moduleID string) (*Assignment, error) {
	var out Assignment
	req := PermissionModuleRequest{PermissionID: permissionID, ModuleID: moduleID}
	if err := s.do(ctx, http.MethodPost, "/permissions/modules/assign", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateModule(ctx context.Context, req ModuleRequest) (*Module, error) {
	var out Module
	if err := s.do(ctx, http.MethodPost, "/modules", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateModule(ctx context.Context, id string, req ModuleRequest) (*Module, error) {
	var out Module
	if err := s.do(ctx, http.MethodPut, "/modules/"+id, req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateRoute(ctx context.Context, req RouteRequest) (*Route, error) {
	var out Route
	if err := s.do(ctx, http.MethodPost, "/routes", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) AssignRouteToRole(ctx context.Context, roleID, routeID string) (*Assignment, error) {
	var out Assignment
	req := RoleRouteRequest{RoleID: roleID, RouteID: routeID}
	if err := s.do(ctx, http.MethodPost, "/routes/assign", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RoleRoutes(ctx context.Context, roleID string) ([]Route, error) {
	var out []Route
	if err := s.do(ctx, http.MethodGet, "/roles/"+roleID+"/routes", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) RoleModuleAccess(ctx context.Context, roleID, moduleID string) (*ModuleAccessResponse, error) {
	var out ModuleAccessResponse
	path := "/roles/" + roleID + "/modules/" + moduleID + "/access"
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
