package http

import (
	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/service"
	"github.com/aussiebroadwan/warden/pkg/wardensdk"
)

func toUser(u domain.User) wardensdk.User {
	return wardensdk.User{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		UserType:          string(u.UserType),
		UserStatus:        string(u.UserStatus),
		EmailConfirmed:    u.EmailConfirmed,
		LockoutEnabled:    u.LockoutEnabled,
		LockoutEnd:        u.LockoutEnd,
		AccessFailedCount: u.AccessFailedCount,
		Version:           u.Version,
		IsActive:          u.IsActive,
		CreatedAt:         u.CreatedAt,
		LastModifiedAt:    u.LastModifiedAt,
	}
}

func toRole(r domain.Role) wardensdk.Role {
	return wardensdk.Role{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Protected:   domain.IsProtectedRole(r.Name),
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
	}
}

func toPermission(p domain.Permission) wardensdk.Permission {
	return wardensdk.Permission{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Protected:   domain.IsProtectedPermission(p.Name),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

func toModule(m domain.Module) wardensdk.Module {
	return wardensdk.Module{
		ID:           m.ID,
		Name:         m.Name,
		Route:        m.Route,
		Icon:         m.Icon,
		DisplayOrder: m.DisplayOrder,
		ParentID:     m.ParentID,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
	}
}

func toModuleTree(nodes []domain.ModuleNode) []wardensdk.ModuleNode {
	out := make([]wardensdk.ModuleNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, wardensdk.ModuleNode{
			Module:   toModule(n.Module),
			Children: toModuleTree(n.Children),
		})
	}
	return out
}

func toRoute(r domain.Route) wardensdk.Route {
	return wardensdk.Route{
		ID:           r.ID,
		Name:         r.Name,
		Path:         r.Path,
		HTTPMethod:   r.HTTPMethod,
		ModuleID:     r.ModuleID,
		RequiresAuth: r.RequiresAuth,
		IsEnabled:    r.IsEnabled,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
	}
}

func toAssignment(a domain.Assignment) wardensdk.Assignment {
	return wardensdk.Assignment{
		ID:        a.ID,
		Relation:  string(a.Relation),
		OwnerID:   a.OwnerID,
		TargetID:  a.TargetID,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

func toTokens(p domain.TokenPair) wardensdk.TokenResponse {
	return wardensdk.TokenResponse{
		AccessToken:      p.AccessToken,
		RefreshToken:     p.RefreshToken,
		TokenType:        p.TokenType,
		ExpiresAt:        p.ExpiresAt,
		RefreshExpiresAt: p.RefreshExpiresAt,
	}
}

func toMe(a domain.UserAccess) wardensdk.MeResponse {
	return wardensdk.MeResponse{
		User:        toUser(a.User),
		Roles:       mapSlice(a.Roles, toRole),
		Permissions: mapSlice(a.Permissions, toPermission),
		Modules:     toModuleTree(a.Modules),
	}
}

func toPage[T, U any](p service.Page[T], conv func(T) U) wardensdk.Page[U] {
	return wardensdk.Page[U]{
		Items:  mapSlice(p.Items, conv),
		Total:  p.Total,
		Limit:  p.Limit,
		Offset: p.Offset,
	}
}

// mapSlice never returns nil so empty lists encode as [].
func mapSlice[T, U any](in []T, conv func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, conv(v))
	}
	return out
}

func toSession(s domain.UserSession) wardensdk.UserSession {
	return wardensdk.UserSession{
		ID:           s.ID,
		IPAddress:    s.IPAddress,
		DeviceInfo:   s.DeviceInfo,
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
		ExpiresAt:    s.ExpiresAt,
	}
}
