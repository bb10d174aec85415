package wardensdk

import (
	"time"

	"github.com/aussiebroadwan/warden/pkg/jwtx"
)

// ============================================================================
// Errors
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_credentials"`
	Message string `json:"message,omitempty" example:"invalid login or password"`

	// Details maps request fields to what is wrong with them.
	Details map[string]string `json:"details,omitempty"`

	// RemainingLockoutSeconds is set on account_locked responses.
	RemainingLockoutSeconds int64 `json:"remaining_lockout_seconds,omitempty"`
}

// ============================================================================
// Auth
// ============================================================================

type LoginRequest struct {
	Login    string `json:"login" example:"alice"`
	Password string `json:"password" example:"s3cret-pass1"`
}

type LoginWithCaptchaRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`

	// CaptchaToken is "<challenge id>:<answer>".
	CaptchaToken string `json:"captcha_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type" example:"Bearer"`
	ExpiresAt        time.Time `json:"expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type CaptchaResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question" example:"7 + 4"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password"`
}

type ActivateRequest struct {
	Email string `json:"email"`
	Code  string `json:"code" example:"ABC123"`
}

type ResendActivationRequest struct {
	Email string `json:"email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// MeResponse is the caller's profile plus everything their roles grant.
type MeResponse struct {
	User        User         `json:"user"`
	Roles       []Role       `json:"roles"`
	Permissions []Permission `json:"permissions"`
	Modules     []ModuleNode `json:"modules"`
}

// ============================================================================
// Entities
// ============================================================================

type User struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	UserType          string     `json:"user_type" example:"local"`
	UserStatus        string     `json:"user_status" example:"active"`
	EmailConfirmed    bool       `json:"email_confirmed"`
	LockoutEnabled    bool       `json:"lockout_enabled"`
	LockoutEnd        *time.Time `json:"lockout_end,omitempty"`
	AccessFailedCount int        `json:"access_failed_count"`
	Version           int64      `json:"version"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	LastModifiedAt    time.Time  `json:"last_modified_at"`
}

type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" example:"Admin"`
	Description string    `json:"description,omitempty"`
	Protected   bool      `json:"protected"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Permission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" example:"users.view"`
	Description string    `json:"description,omitempty"`
	Protected   bool      `json:"protected"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Module struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" example:"Settings"`
	Route        string    `json:"route,omitempty" example:"/settings"`
	Icon         string    `json:"icon,omitempty"`
	DisplayOrder int       `json:"display_order"`
	ParentID     *string   `json:"parent_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type ModuleNode struct {
	Module
	Children []ModuleNode `json:"children"`
}

type Route struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path" example:"/users"`
	HTTPMethod   string    `json:"http_method" example:"GET"`
	ModuleID     string    `json:"module_id"`
	RequiresAuth bool      `json:"requires_auth"`
	IsEnabled    bool      `json:"is_enabled"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Assignment struct {
	ID        string    `json:"id"`
	Relation  string    `json:"relation" example:"role_permission"`
	OwnerID   string    `json:"owner_id"`
	TargetID  string    `json:"target_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Page wraps a listing. Total ignores Limit and Offset.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ============================================================================
// Admin requests
// ============================================================================

type CreateUserRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	RoleIDs  []string `json:"role_ids,omitempty"`
}

type UpdateUserRequest struct {
	Username       *string `json:"username,omitempty"`
	Email          *string `json:"email,omitempty"`
	UserStatus     *string `json:"user_status,omitempty" enums:"pending,active,suspended"`
	LockoutEnabled *bool   `json:"lockout_enabled,omitempty"`
	Version        int64   `json:"version"`
}

type LockoutResponse struct {
	Locked            bool       `json:"locked"`
	AccessFailedCount int        `json:"access_failed_count"`
	LockoutEnd        *time.Time `json:"lockout_end,omitempty"`
	RemainingSeconds  int64      `json:"remaining_seconds"`
}

type RoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type PermissionRequest struct {
	Name        string `json:"name" example:"reports.view"`
	Description string `json:"description,omitempty"`
}

type ModuleRequest struct {
	Name         string  `json:"name"`
	Route        string  `json:"route,omitempty"`
	Icon         string  `json:"icon,omitempty"`
	DisplayOrder int     `json:"display_order"`
	ParentID     *string `json:"parent_id,omitempty"`
}

type RouteRequest struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	HTTPMethod   string `json:"http_method"`
	ModuleID     string `json:"module_id"`
	RequiresAuth *bool  `json:"requires_auth,omitempty"`
	IsEnabled    *bool  `json:"is_enabled,omitempty"`
}

// RolePermissionRequest drives /permissions/assign-to-role and /permissions/revoke-from-role.
type RolePermissionRequest struct {
	RoleID       string `json:"role_id"`
	PermissionID string `json:"permission_id"`
}

// PermissionModuleRequest drives /permissions/modules/assign and /permissions/modules/revoke.
type PermissionModuleRequest struct {
	PermissionID string `json:"permission_id"`
	ModuleID     string `json:"module_id"`
}

// PermissionRouteRequest drives /permissions/routes/assign and /permissions/routes/revoke.
type PermissionRouteRequest struct {
	PermissionID string `json:"permission_id"`
	RouteID      string `json:"route_id"`
}

// RoleRouteRequest drives /routes/assign and /routes/revoke.
type RoleRouteRequest struct {
	RoleID  string `json:"role_id"`
	RouteID string `json:"route_id"`
}

type ModuleAccessResponse struct {
	RoleID    string `json:"role_id"`
	ModuleID  string `json:"module_id"`
	HasAccess bool   `json:"has_access"`
}

// UserSession is an active refresh session as listed by GET /users/{id}/sessions.
type UserSession struct {
	ID           string    `json:"id"`
	IPAddress    string    `json:"ip_address,omitempty"`
	DeviceInfo   string    `json:"device_info,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type RevokedSessionsResponse struct {
	Revoked int64 `json:"revoked"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse is the public key set access tokens verify against.
type JWKSResponse jwtx.JWKS
