package http

import (
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/pkg/wardensdk"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.user(t, "alice", "correct-horse-1")

	t.Run("success", func(t *testing.T) {
		tok := s.login(t, "alice", "correct-horse-1")
		require.NotEmpty(t, tok.AccessToken)
		require.NotEmpty(t, tok.RefreshToken)
		require.Equal(t, "Bearer", tok.TokenType)
	})

	t.Run("email works as login", func(t *testing.T) {
		s.login(t, "alice@example.com", "correct-horse-1")
	})

	t.Run("validation details", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/auth/login", "", wardensdk.LoginRequest{})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeAs[wardensdk.ErrorResponse](t, rec)
		require.Equal(t, "validation_failed", body.Error)
		require.Contains(t, body.Details, "login")
		require.Contains(t, body.Details, "password")
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/auth/login", "", map[string]any{"login": "alice", "extra": 1})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid_json", errorCode(t, rec))
	})
}

func TestLoginLockout(t *testing.T) {
	s := newTestServer(t)
	s.user(t, "bob", "correct-horse-1")

	for i := 1; i <= 4; i++ {
		rec := s.do(t, http.MethodPost, "/auth/login", "", wardensdk.LoginRequest{Login: "bob", Password: "wrong"})
		require.Equal(t, http.StatusUnauthorized, rec.Code, "attempt %d", i)
		require.Equal(t, "invalid_credentials", errorCode(t, rec))
	}

	rec := s.do(t, http.MethodPost, "/auth/login", "", wardensdk.LoginRequest{Login: "bob", Password: "wrong"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeAs[wardensdk.ErrorResponse](t, rec)
	require.Equal(t, "account_locked", body.Error)
	require.InDelta(t, 900, body.RemainingLockoutSeconds, 2)

	retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	require.InDelta(t, 900, retry, 2)
}

func TestRefreshAndLogout(t *testing.T) {
	s := newTestServer(t)
	s.user(t, "carol", "correct-horse-1")
	first := s.login(t, "carol", "correct-horse-1")

	rec := s.do(t, http.MethodPost, "/auth/refresh-token", "", wardensdk.RefreshRequest{RefreshToken: first.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	second := decodeAs[wardensdk.TokenResponse](t, rec)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	t.Run("old token is spent", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/auth/refresh-token", "", wardensdk.RefreshRequest{RefreshToken: first.RefreshToken})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "invalid_refresh_token", errorCode(t, rec))
	})

	t.Run("logout needs a bearer", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/auth/logout", "", wardensdk.LogoutRequest{RefreshToken: second.RefreshToken})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
	})

	t.Run("logout of another user's session", func(t *testing.T) {
		s.user(t, "mallory", "correct-horse-1")
		other := s.login(t, "mallory", "correct-horse-1")

		rec := s.do(t, http.MethodPost, "/auth/logout", other.AccessToken, wardensdk.LogoutRequest{RefreshToken: second.RefreshToken})
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, "session_ownership", errorCode(t, rec))
	})

	t.Run("logout", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/auth/logout", second.AccessToken, wardensdk.LogoutRequest{RefreshToken: second.RefreshToken})
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		rec = s.do(t, http.MethodPost, "/auth/refresh-token", "", wardensdk.RefreshRequest{RefreshToken: second.RefreshToken})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRegisterActivateLogin(t *testing.T) {
	s := newTestServer(t)
	s.user(t, "seed", "correct-horse-1", domain.RoleUser)

	rec := s.do(t, http.MethodPost, "/auth/register", "", wardensdk.RegisterRequest{
		Username: "dave",
		Email:    "Dave@Example.com",
		Password: "correct-horse-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	u := decodeAs[wardensdk.User](t, rec)
	require.Equal(t, "pending", u.UserStatus)
	require.False(t, u.EmailConfirmed)

	rec = s.do(t, http.MethodPost, "/auth/login", "", wardensdk.LoginRequest{Login: "dave", Password: "correct-horse-1"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "account_not_activated", errorCode(t, rec))

	t.Run("duplicate username", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/auth/register", "", wardensdk.RegisterRequest{
			Username: "dave",
			Email:    "other@example.com",
			Password: "correct-horse-1",
		})
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, "username_taken", errorCode(t, rec))
	})

	code := s.mail.code("dave@example.com")
	require.Len(t, code, 6)

	rec = s.do(t, http.MethodPost, "/auth/activate", "", wardensdk.ActivateRequest{Email: "dave@example.com", Code: code})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, decodeAs[wardensdk.User](t, rec).EmailConfirmed)

	tok := s.login(t, "dave", "correct-horse-1")

	rec = s.do(t, http.MethodGet, "/auth/me", tok.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeAs[wardensdk.MeResponse](t, rec)
	require.Equal(t, "dave", me.User.Username)
	require.Len(t, me.Roles, 1)
	require.Equal(t, domain.RoleUser, me.Roles[0].Name)

	t.Run("activating twice", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/auth/activate", "", wardensdk.ActivateRequest{Email: "dave@example.com", Code: code})
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, "already_activated", errorCode(t, rec))
	})

	t.Run("resend for active account", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/auth/resend-activation", "", wardensdk.ResendActivationRequest{Email: "dave@example.com"})
		require.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestChangePassword(t *testing.T) {
	s := newTestServer(t)
	s.user(t, "erin", "correct-horse-1")
	tok := s.login(t, "erin", "correct-horse-1")

	rec := s.do(t, http.MethodPost, "/auth/change-password", tok.AccessToken, wardensdk.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "battery-staple-2",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/auth/change-password", tok.AccessToken, wardensdk.ChangePasswordRequest{
		CurrentPassword: "correct-horse-1",
		NewPassword:     "battery-staple-2",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/auth/refresh-token", "", wardensdk.RefreshRequest{RefreshToken: tok.RefreshToken})
	require.Equal(t, http.StatusUnauthorized, rec.Code, "sessions end with the password change")

	s.login(t, "erin", "battery-staple-2")
}

func TestLoginWithCaptcha(t *testing.T) {
	s := newTestServer(t)
	s.user(t, "frank", "correct-horse-1")

	rec := s.do(t, http.MethodGet, "/auth/captcha", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	c := decodeAs[wardensdk.CaptchaResponse](t, rec)
	require.NotEmpty(t, c.ID)

	var a, b int
	var op string
	_, err := fmt.Sscanf(c.Question, "%d %s %d", &a, &op, &b)
	require.NoError(t, err)
	answer := a + b
	if op == "-" {
		answer = a - b
	}

	t.Run("wrong answer", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/auth/captcha", "", nil)
		other := decodeAs[wardensdk.CaptchaResponse](t, rec)

		rec = s.do(t, http.MethodPost, "/auth/login-with-captcha", "", wardensdk.LoginWithCaptchaRequest{
			Login:        "frank",
			Password:     "correct-horse-1",
			CaptchaToken: other.ID + ":-1",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid_captcha", errorCode(t, rec))
	})

	rec = s.do(t, http.MethodPost, "/auth/login-with-captcha", "", wardensdk.LoginWithCaptchaRequest{
		Login:        "frank",
		Password:     "correct-horse-1",
		CaptchaToken: fmt.Sprintf("%s:%d", c.ID, answer),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
