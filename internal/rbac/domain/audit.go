package domain

import "time"

// ActorSystem is recorded as CreatedBy/LastModifiedBy for anonymous flows (login, register,
// activation) and background jobs.
const ActorSystem = "system"

// Audit is embedded in every persisted entity.
type Audit struct {
	CreatedAt      time.Time
	CreatedBy      string
	LastModifiedAt time.Time
	LastModifiedBy string
	IsActive       bool // false once soft deleted or revoked
}

// NewAudit returns an active audit block stamped by actor at now.
func NewAudit(actor string, now time.Time) Audit {
	return Audit{
		CreatedAt:      now,
		CreatedBy:      actor,
		LastModifiedAt: now,
		LastModifiedBy: actor,
		IsActive:       true,
	}
}

// Touch records a modification.
func (a *Audit) Touch(actor string, now time.Time) {
	a.LastModifiedAt = now
	a.LastModifiedBy = actor
}
