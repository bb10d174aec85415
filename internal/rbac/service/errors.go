package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/store"
)

// Kind classifies a failure so transports can map it without knowing every
// sentinel.
type Kind uint8

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// Error is a typed domain failure. Code is stable and safe to show callers.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

var (
	ErrUserNotFound       = newError(KindNotFound, "user_not_found", "user not found")
	ErrRoleNotFound       = newError(KindNotFound, "role_not_found", "role not found")
	ErrPermissionNotFound = newError(KindNotFound, "permission_not_found", "permission not found")
	ErrModuleNotFound     = newError(KindNotFound, "module_not_found", "module not found")
	ErrRouteNotFound      = newError(KindNotFound, "route_not_found", "route not found")
	ErrAssignmentNotFound = newError(KindNotFound, "assignment_not_found", "no active assignment for that pair")
	ErrSessionNotFound    = newError(KindNotFound, "session_not_found", "session not found")

	ErrAlreadyAssigned   = newError(KindConflict, "already_assigned", "relation is already assigned")
	ErrUsernameTaken     = newError(KindConflict, "username_taken", "username is already in use")
	ErrEmailTaken        = newError(KindConflict, "email_taken", "email is already in use")
	ErrNameTaken         = newError(KindConflict, "name_taken", "name is already in use")
	ErrStaleVersion      = newError(KindConflict, "stale_version", "the record was modified by someone else")
	ErrModuleCycle       = newError(KindConflict, "module_cycle", "parent would create a cycle")
	ErrModuleHasChildren = newError(KindConflict, "module_has_children", "module still has active children")
	ErrAlreadyActivated  = newError(KindConflict, "already_activated", "account is already activated")

	ErrInvalidCredentials  = newError(KindUnauthorized, "invalid_credentials", "invalid login or password")
	ErrInvalidRefreshToken = newError(KindUnauthorized, "invalid_refresh_token", "refresh token is invalid or expired")

	ErrAccountLocked          = newError(KindForbidden, "account_locked", "account is temporarily locked")
	ErrAccountNotActivated    = newError(KindForbidden, "account_not_activated", "account is not activated")
	ErrAccountSuspended       = newError(KindForbidden, "account_suspended", "account is suspended")
	ErrSessionOwnership       = newError(KindForbidden, "session_ownership", "session belongs to another user")
	ErrProtectedRole          = newError(KindForbidden, "protected_role", "role is protected")
	ErrProtectedPermission    = newError(KindForbidden, "protected_permission", "permission is protected")
	ErrActivationCodeMismatch = newError(KindForbidden, "activation_code_mismatch", "code belongs to another account")
	ErrResendLimitReached     = newError(KindForbidden, "resend_limit_reached", "too many activation codes today")

	ErrValidation            = newError(KindValidation, "validation_failed", "request is invalid")
	ErrInvalidActivationCode = newError(KindValidation, "invalid_activation_code", "activation code is invalid")
	ErrActivationCodeExpired = newError(KindValidation, "activation_code_expired", "activation code has expired")
	ErrActivationCodeUsed    = newError(KindValidation, "activation_code_used", "activation code was already used")
	ErrInvalidCaptcha        = newError(KindValidation, "invalid_captcha", "captcha answer is wrong or expired")
	ErrWeakPassword          = newError(KindValidation, "weak_password", "password does not meet the policy")
)

// LockedOutError is returned while an account is locked out.
type LockedOutError struct {
	Remaining time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("%s (%ds remaining)", ErrAccountLocked.Error(), e.RemainingSeconds())
}

func (e *LockedOutError) Unwrap() error { return ErrAccountLocked }

// RemainingSeconds rounds up so callers never retry a moment too early.
func (e *LockedOutError) RemainingSeconds() int64 {
	secs := int64(e.Remaining / time.Second)
	if e.Remaining%time.Second > 0 {
		secs++
	}
	return secs
}

// ValidationError carries every field failure of a request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// KindOf reports the Kind of err, KindInternal when it is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// notFoundAs swaps store.ErrNotFound for a domain sentinel and leaves other
// errors alone.
func notFoundAs(err, domainErr error) error {
	if errors.Is(err, store.ErrNotFound) {
		return domainErr
	}
	return err
}

// conflictAs swaps store.ErrAlreadyExists for a domain sentinel.
func conflictAs(err, domainErr error) error {
	if errors.Is(err, store.ErrAlreadyExists) {
		return domainErr
	}
	return err
}
