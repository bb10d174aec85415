package domain

import "time"

type ActivationCode struct {
	ID        string
	UserID    string
	Code      string
	ExpiresAt time.Time
	IsUsed    bool
	IsResend  bool
	Audit
}

func (c ActivationCode) ExpiredAt(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
