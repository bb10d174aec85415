package domain

import "time"

// UserSession is a refresh token record. Only the fingerprint of the opaque token is stored.
type UserSession struct {
	ID               string
	UserID           string
	RefreshTokenHash string
	ExpiresAt        time.Time
	IPAddress        string
	DeviceInfo       string
	LastActivity     time.Time
	Audit
}

// Usable reports whether the session can still be exchanged at now.
func (s UserSession) Usable(now time.Time) bool {
	return s.IsActive && now.Before(s.ExpiresAt)
}

// TokenPair is what login and refresh hand back to the caller.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type"`
	ExpiresAt        time.Time `json:"expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}
