package service

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// PasswordHasher hashes and checks credentials.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// EmailSender delivers templated mail. Implementations may queue.
type EmailSender interface {
	Send(ctx context.Context, template, to string, vars map[string]string) error
}

// CaptchaValidator checks a challenge answer token once.
type CaptchaValidator interface {
	Validate(ctx context.Context, token string) (bool, error)
}

// Mail templates.
const (
	TemplateActivation = "activation"
	TemplateWelcome    = "welcome"
)

var permissionName = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)+$`)

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now().UTC()
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
