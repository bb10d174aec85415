package http

import (
	"net/http"

	"github.com/aussiebroadwan/warden/internal/rbac/captcha"
	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/service"
	"github.com/aussiebroadwan/warden/pkg/httpx"
	"github.com/aussiebroadwan/warden/pkg/wardensdk"
)

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	Auth       *service.AuthService
	Tokens     *service.TokenService
	Activation *service.ActivationService
	Captcha    *captcha.Service
}

func loginRequest(r *http.Request, login, password string) service.LoginRequest {
	return service.LoginRequest{
		Login:    login,
		Password: password,
		IP:       httpx.IPKeyExtractor(r),
		Device:   deviceInfo(r),
	}
}

func writeTokens(w http.ResponseWriter, pair domain.TokenPair) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toTokens(pair))
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Verifies a username or e-mail with its password and returns an access and refresh token.
//	@Description	Repeated failures lock the account; locked responses carry remaining_lockout_seconds and Retry-After.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		wardensdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	wardensdk.TokenResponse
//	@Failure		400		{object}	wardensdk.ErrorResponse	"validation_failed"
//	@Failure		401		{object}	wardensdk.ErrorResponse	"invalid_credentials"
//	@Failure		403		{object}	wardensdk.ErrorResponse	"account_locked, account_not_activated, account_suspended"
//	@Failure		429		{object}	wardensdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	pair, err := h.Auth.Login(r.Context(), loginRequest(r, req.Login, req.Password))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeTokens(w, pair)
}

// HandleLoginWithCaptcha godoc
//
//	@Summary		Log in with a CAPTCHA answer
//	@Description	Same as /auth/login after checking a challenge from GET /auth/captcha. Each challenge allows one answer.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		wardensdk.LoginWithCaptchaRequest	true	"Credentials and captcha_token (id:answer)"
//	@Success		200		{object}	wardensdk.TokenResponse
//	@Failure		400		{object}	wardensdk.ErrorResponse	"invalid_captcha, validation_failed"
//	@Failure		401		{object}	wardensdk.ErrorResponse	"invalid_credentials"
//	@Failure		403		{object}	wardensdk.ErrorResponse	"account_locked, account_not_activated, account_suspended"
//	@Router			/auth/login-with-captcha [post].
func (h *AuthHandler) HandleLoginWithCaptcha(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.LoginWithCaptchaRequest
	if !decode(w, r, &req) {
		return
	}

	pair, err := h.Auth.LoginWithCaptcha(r.Context(), loginRequest(r, req.Login, req.Password), req.CaptchaToken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeTokens(w, pair)
}

// HandleCaptcha godoc
//
//	@Summary		Issue a CAPTCHA challenge
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	wardensdk.CaptchaResponse
//	@Failure		500	{object}	wardensdk.ErrorResponse
//	@Router			/auth/captcha [get].
func (h *AuthHandler) HandleCaptcha(w http.ResponseWriter, r *http.Request) {
	c, err := h.Captcha.Issue(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, wardensdk.CaptchaResponse{
		ID:        c.ID,
		Question:  c.Question,
		ExpiresAt: c.ExpiresAt,
	})
}

// HandleRefresh godoc
//
//	@Summary		Rotate tokens
//	@Description	Exchanges a refresh token for a new pair. The presented refresh token is revoked.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		wardensdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	wardensdk.TokenResponse
//	@Failure		401		{object}	wardensdk.ErrorResponse	"invalid_refresh_token"
//	@Failure		403		{object}	wardensdk.ErrorResponse	"account_locked, account_suspended"
//	@Router			/auth/refresh-token [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.RefreshRequest
	if !decode(w, r, &req) {
		return
	}

	pair, err := h.Tokens.Refresh(r.Context(), req.RefreshToken, httpx.IPKeyExtractor(r), deviceInfo(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeTokens(w, pair)
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Ends the session identified by the refresh token. It must belong to the caller.
//	@Tags			Auth
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	wardensdk.LogoutRequest	true	"Refresh token of the session to end"
//	@Success		204		"Session ended"
//	@Failure		401		{object}	wardensdk.ErrorResponse
//	@Failure		403		{object}	wardensdk.ErrorResponse	"session_ownership"
//	@Failure		404		{object}	wardensdk.ErrorResponse	"session_not_found"
//	@Router			/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.LogoutRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.Tokens.Logout(r.Context(), actor(r), req.RefreshToken); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRegister godoc
//
//	@Summary		Register an account
//	@Description	Creates a pending account and e-mails an activation code.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		wardensdk.RegisterRequest	true	"Account"
//	@Success		201		{object}	wardensdk.User
//	@Failure		400		{object}	wardensdk.ErrorResponse	"validation_failed, weak_password"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"username_taken, email_taken"
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.Auth.Register(r.Context(), domain.ActorSystem, service.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUser(u))
}

// HandleActivate godoc
//
//	@Summary		Activate an account
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		wardensdk.ActivateRequest	true	"E-mail and code"
//	@Success		200		{object}	wardensdk.User
//	@Failure		400		{object}	wardensdk.ErrorResponse	"invalid_activation_code, activation_code_expired, activation_code_used"
//	@Failure		403		{object}	wardensdk.ErrorResponse	"activation_code_mismatch"
//	@Failure		404		{object}	wardensdk.ErrorResponse	"user_not_found"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"already_activated"
//	@Router			/auth/activate [post].
func (h *AuthHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.ActivateRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.Activation.Activate(r.Context(), req.Email, req.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleResendActivation godoc
//
//	@Summary		Send a new activation code
//	@Description	Invalidates outstanding codes and sends a fresh one. Limited per account per UTC day.
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	wardensdk.ResendActivationRequest	true	"E-mail"
//	@Success		202		"Code queued"
//	@Failure		403		{object}	wardensdk.ErrorResponse	"resend_limit_reached"
//	@Failure		404		{object}	wardensdk.ErrorResponse	"user_not_found"
//	@Failure		409		{object}	wardensdk.ErrorResponse	"already_activated"
//	@Router			/auth/resend-activation [post].
func (h *AuthHandler) HandleResendActivation(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.ResendActivationRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.Activation.Resend(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// HandleMe godoc
//
//	@Summary		Current user
//	@Description	Profile of the caller with their roles, permissions and module tree.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	wardensdk.MeResponse
//	@Failure		401	{object}	wardensdk.ErrorResponse
//	@Failure		404	{object}	wardensdk.ErrorResponse	"user_not_found"
//	@Router			/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	access, err := h.Auth.Me(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toMe(access))
}

// HandleChangePassword godoc
//
//	@Summary		Change password
//	@Description	Rotates the security stamp and ends every session of the caller.
//	@Tags			Auth
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	wardensdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		204		"Password changed"
//	@Failure		400		{object}	wardensdk.ErrorResponse	"validation_failed, weak_password"
//	@Failure		401		{object}	wardensdk.ErrorResponse	"invalid_credentials"
//	@Router			/auth/change-password [post].
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req wardensdk.ChangePasswordRequest
	if !decode(w, r, &req) {
		return
	}

	err := h.Auth.ChangePassword(r.Context(), actor(r), service.ChangePasswordRequest{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
