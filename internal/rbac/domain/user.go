package domain

import "time"

type UserType string

const (
	UserTypeLocal    UserType = "local"
	UserTypeExternal UserType = "external"
)

type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusPending, UserStatusActive, UserStatusSuspended:
		return true
	}
	return false
}

type User struct {
	ID                string
	Username          string
	Email             string
	PasswordHash      *string // argon2 encoded, nil for external accounts
	UserType          UserType
	EmailConfirmed    bool
	LockoutEnabled    bool
	LockoutEnd        *time.Time
	AccessFailedCount int
	SecurityStamp     string
	UserStatus        UserStatus
	Version           int64
	Audit
}

// LockedAt reports whether the lockout window is still open at now.
func (u User) LockedAt(now time.Time) bool {
	return u.LockoutEnd != nil && u.LockoutEnd.After(now)
}
