package service

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store/storetest"
	"github.com/aussiebroadwan/warden/pkg/idx"
	"github.com/stretchr/testify/require"
)

// pendingUser inserts an unconfirmed account.
func (e *env) pendingUser(t *testing.T, username string) domain.User {
	t.Helper()
	u := storetest.User(t, e.store, username)
	u.EmailConfirmed = false
	u.UserStatus = domain.UserStatusPending
	u, err := e.store.Users().Update(t.Context(), u)
	require.NoError(t, err)
	return u
}

func (e *env) code(t *testing.T, userID, code string, issuedAt time.Time) domain.ActivationCode {
	t.Helper()
	c := domain.ActivationCode{
		ID:        idx.New().String(),
		UserID:    userID,
		Code:      code,
		ExpiresAt: issuedAt.Add(DefaultActivationCodeTTL),
		Audit:     domain.NewAudit(domain.ActorSystem, issuedAt),
	}
	require.NoError(t, e.store.ActivationCodes().Create(t.Context(), c))
	return c
}

func TestActivation_Generate(t *testing.T) {
	e := newEnv(t)
	shape := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	for range 50 {
		code, err := e.activation.Generate()
		require.NoError(t, err)
		require.Regexp(t, shape, code)
	}
}

func TestActivation_ExpiredScenario(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	u := e.pendingUser(t, "erin")
	e.code(t, u.ID, "ABC123", storetest.Now)

	e.advance(23 * time.Hour)
	_, err := e.activation.Validate(ctx, u.Email, "ABC123")
	require.NoError(t, err)

	e.advance(2 * time.Hour) // T+25h
	_, err = e.activation.Validate(ctx, u.Email, "ABC123")
	require.ErrorIs(t, err, ErrActivationCodeExpired)
	require.Equal(t, KindValidation, KindOf(err))
}

func TestActivation_ValidateOrder(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	frank := e.pendingUser(t, "frank")
	grace := e.pendingUser(t, "grace")
	done := storetest.User(t, e.store, "done")

	e.code(t, grace.ID, "GRACE1", storetest.Now)

	tests := []struct {
		name  string
		email string
		code  string
		want  error
	}{
		{"unknown email", "nobody@example.com", "GRACE1", ErrUserNotFound},
		{"already confirmed", done.Email, "GRACE1", ErrAlreadyActivated},
		{"no such code", frank.Email, "ZZZZZZ", ErrInvalidActivationCode},
		{"someone else's code", frank.Email, "GRACE1", ErrActivationCodeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.activation.Validate(ctx, tt.email, tt.code)
			require.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("codes are case insensitive", func(t *testing.T) {
		c, err := e.activation.Validate(ctx, "GRACE@example.com", " grace1 ")
		require.NoError(t, err)
		require.Equal(t, grace.ID, c.UserID)
	})
}

func TestActivation_MarkUsedOnce(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	u := e.pendingUser(t, "henry")
	c := e.code(t, u.ID, "HENRY1", storetest.Now)

	require.NoError(t, e.activation.MarkUsed(ctx, c.ID))
	require.ErrorIs(t, e.activation.MarkUsed(ctx, c.ID), ErrActivationCodeUsed)

	_, err := e.activation.Validate(ctx, u.Email, "HENRY1")
	require.ErrorIs(t, err, ErrInvalidActivationCode)
}

func TestActivation_Activate(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	u := e.pendingUser(t, "iris")
	e.code(t, u.ID, "IRIS01", storetest.Now)

	got, err := e.activation.Activate(ctx, u.Email, "IRIS01")
	require.NoError(t, err)
	require.True(t, got.EmailConfirmed)

	stored := e.reload(t, u.ID)
	require.True(t, stored.EmailConfirmed)
	require.Equal(t, domain.UserStatusActive, stored.UserStatus)
	require.Equal(t, TemplateWelcome, e.mail.last(t).Template)

	_, err = e.activation.Activate(ctx, u.Email, "IRIS01")
	require.ErrorIs(t, err, ErrAlreadyActivated)
}

func TestActivation_Resend(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	u := e.pendingUser(t, "jack")
	first := e.code(t, u.ID, "FIRST1", storetest.Now)

	require.NoError(t, e.activation.Resend(ctx, u.Email))

	live, err := e.store.ActivationCodes().ListActiveForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, live, 1, "exactly one valid code after resend")
	require.NotEqual(t, first.ID, live[0].ID)
	require.True(t, live[0].IsResend)

	mail := e.mail.last(t)
	require.Equal(t, TemplateActivation, mail.Template)
	require.Equal(t, u.Email, mail.To)
	require.Equal(t, live[0].Code, mail.Vars["code"])

	_, err = e.activation.Validate(ctx, u.Email, "FIRST1")
	require.ErrorIs(t, err, ErrInvalidActivationCode)

	t.Run("daily limit", func(t *testing.T) {
		for range DefaultMaxResendsPerDay - 1 {
			require.NoError(t, e.activation.Resend(ctx, u.Email))
		}
		err := e.activation.Resend(ctx, u.Email)
		require.ErrorIs(t, err, ErrResendLimitReached)
		require.Equal(t, KindForbidden, KindOf(err))

		// 09:00 plus 15h is the next UTC day.
		e.advance(15 * time.Hour)
		require.NoError(t, e.activation.Resend(ctx, u.Email))
	})

	t.Run("send failure rolls back", func(t *testing.T) {
		before, err := e.store.ActivationCodes().ListActiveForUser(ctx, u.ID)
		require.NoError(t, err)

		e.mail.err = errors.New("queue down")
		t.Cleanup(func() { e.mail.err = nil })
		require.Error(t, e.activation.Resend(ctx, u.Email))

		after, err := e.store.ActivationCodes().ListActiveForUser(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("confirmed accounts", func(t *testing.T) {
		done := storetest.User(t, e.store, "kate")
		require.ErrorIs(t, e.activation.Resend(ctx, done.Email), ErrAlreadyActivated)
	})
}
