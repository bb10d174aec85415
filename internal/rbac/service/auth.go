package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/metrics"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/pkg/idx"
	"github.com/aussiebroadwan/warden/pkg/slogx"
	"github.com/google/uuid"
)

// AuthService runs the login, registration and password flows on top of
// the other services.
type AuthService struct {
	Store      store.Store
	Hasher     PasswordHasher
	Captcha    CaptchaValidator
	Lockout    *LockoutService
	Tokens     *TokenService
	Resolver   *ResolverService
	Activation *ActivationService
	Metrics    *metrics.Metrics
	Now        func() time.Time
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required,max=256"`
	Password string `json:"password" validate:"required,max=1024"`

	// Filled by the transport.
	IP     string `json:"-"`
	Device string `json:"-"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64,alphanum"`
	Email    string `json:"email" validate:"required,email,max=256"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,max=1024"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=1024"`
}

// Login exchanges credentials for a token pair.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (domain.TokenPair, error) {
	if err := validateInput(req); err != nil {
		return domain.TokenPair{}, err
	}
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetByLogin(ctx, strings.TrimSpace(req.Login))
	if errors.Is(err, store.ErrNotFound) {
		s.Metrics.Login(metrics.LoginFailed)
		return domain.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.TokenPair{}, err
	}

	now := clock(s.Now)
	if u.LockedAt(now) {
		s.Metrics.Login(metrics.LoginLocked)
		return domain.TokenPair{}, &LockedOutError{Remaining: u.LockoutEnd.Sub(now)}
	}
	if u.PasswordHash == nil || !s.Hasher.Verify(req.Password, *u.PasswordHash) {
		s.Metrics.Login(metrics.LoginFailed)
		if u.PasswordHash == nil {
			return domain.TokenPair{}, ErrInvalidCredentials
		}

		locked, err := s.Lockout.RecordFailedLoginAttempt(ctx, u.ID, u.ID)
		if err != nil {
			return domain.TokenPair{}, err
		}
		log.Info("login failed", slog.String("user_id", u.ID), slog.Bool("locked", locked))
		if locked {
			return domain.TokenPair{}, &LockedOutError{Remaining: s.Lockout.duration()}
		}
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	// Account state is only revealed to callers that know the password
	if err := canHoldSession(u, now); err != nil {
		switch {
		case errors.Is(err, ErrAccountSuspended):
			s.Metrics.Login(metrics.LoginSuspended)
		case errors.Is(err, ErrAccountNotActivated):
			s.Metrics.Login(metrics.LoginNotActivated)
		}
		return domain.TokenPair{}, err
	}

	var pair domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.Lockout.reset(ctx, tx, u.ID, u.ID); err != nil {
			return err
		}
		var err error
		pair, err = s.Tokens.issuePair(ctx, tx, u, req.IP, req.Device)
		return err
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	s.Metrics.Login(metrics.LoginSuccess)
	s.Metrics.TokenIssued(GrantPassword)
	log.Info("login succeeded", slog.String("user_id", u.ID))
	return pair, nil
}

// LoginWithCaptcha checks the challenge answer before attempting Login.
func (s *AuthService) LoginWithCaptcha(ctx context.Context, req LoginRequest, captchaToken string) (domain.TokenPair, error) {
	if s.Captcha == nil {
		return domain.TokenPair{}, errors.New("auth: captcha is not configured")
	}
	ok, err := s.Captcha.Validate(ctx, captchaToken)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if !ok {
		s.Metrics.Login(metrics.LoginCaptcha)
		return domain.TokenPair{}, ErrInvalidCaptcha
	}
	return s.Login(ctx, req)
}

// Register creates a pending local account holding the User role and mails
// an activation code.
func (s *AuthService) Register(ctx context.Context, actor string, req RegisterRequest) (domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = normalizeEmail(req.Email)
	if err := validateInput(req); err != nil {
		return domain.User{}, err
	}
	if err := checkPasswordStrength(req.Password); err != nil {
		return domain.User{}, err
	}

	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := clock(s.Now)
	u := domain.User{
		ID:             idx.NewAt(now).String(),
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   &hash,
		UserType:       domain.UserTypeLocal,
		LockoutEnabled: true,
		SecurityStamp:  uuid.NewString(),
		UserStatus:     domain.UserStatusPending,
		Version:        1,
		Audit:          domain.NewAudit(actor, now),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := ensureLoginFree(ctx, tx, u.Username, u.Email, ""); err != nil {
			return err
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			return loginConflict(err)
		}

		role, err := tx.Roles().GetByName(ctx, domain.RoleUser)
		switch {
		case errors.Is(err, store.ErrNotFound):
			slogx.FromContext(ctx).Warn("default role missing", slog.String("role", domain.RoleUser))
		case err != nil:
			return err
		case role.IsActive:
			link := domain.Assignment{
				ID:       idx.NewAt(now).String(),
				Relation: domain.RelUserRole,
				OwnerID:  u.ID,
				TargetID: role.ID,
				Audit:    domain.NewAudit(actor, now),
			}
			if err := tx.Assignments(domain.RelUserRole).Create(ctx, link); err != nil {
				return err
			}
		}

		code, err := s.Activation.issue(ctx, tx, u.ID, false)
		if err != nil {
			return err
		}
		return s.Activation.send(ctx, u, code)
	})
	if err != nil {
		return domain.User{}, err
	}

	s.Metrics.Activation(ActivationIssued)
	slogx.FromContext(ctx).Info("user registered",
		slog.String("user_id", u.ID),
		slog.String("username", u.Username),
		slog.String("actor", actor),
	)
	return u, nil
}

// ChangePassword swaps the credential, rotates the security stamp and ends
// every session of the user.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if err := validateInput(req); err != nil {
		return err
	}

	u, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return notFoundAs(err, ErrUserNotFound)
	}
	if !u.IsActive {
		return ErrUserNotFound
	}
	if u.PasswordHash == nil || !s.Hasher.Verify(req.CurrentPassword, *u.PasswordHash) {
		return ErrInvalidCredentials
	}
	if req.CurrentPassword == req.NewPassword {
		return fieldError("new_password", "must differ from the current password")
	}
	if err := checkPasswordStrength(req.NewPassword); err != nil {
		return err
	}

	hash, err := s.Hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	var revoked int64
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		err := tx.Users().UpdateCredentials(ctx, userID, hash, uuid.NewString(), userID, clock(s.Now))
		if err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}
		revoked, err = s.Tokens.revokeAll(ctx, tx, userID)
		return err
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password changed", slog.String("user_id", userID), slog.Int64("sessions_revoked", revoked))
	return nil
}

// Me returns the caller's profile with roles, permissions and modules.
func (s *AuthService) Me(ctx context.Context, userID string) (domain.UserAccess, error) {
	return s.Resolver.UserAccess(ctx, userID)
}

// checkPasswordStrength wants at least one letter and one digit.
func checkPasswordStrength(pw string) error {
	var letter, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return ErrWeakPassword
	}
	return nil
}

// loginConflict names the login field a users write collided on.
func loginConflict(err error) error {
	if errors.Is(err, store.ErrEmailExists) {
		return ErrEmailTaken
	}
	return conflictAs(err, ErrUsernameTaken)
}

// ensureLoginFree fails when username or email belongs to an active user
// other than exceptID.
func ensureLoginFree(ctx context.Context, q store.Store, username, email, exceptID string) error {
	if username != "" {
		other, err := q.Users().GetByUsername(ctx, username)
		if err == nil && other.ID != exceptID {
			return ErrUsernameTaken
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	if email != "" {
		other, err := q.Users().GetByEmail(ctx, email)
		if err == nil && other.ID != exceptID {
			return ErrEmailTaken
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	return nil
}
