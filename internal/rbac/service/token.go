package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/metrics"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/pkg/cryptox"
	"github.com/aussiebroadwan/warden/pkg/idx"
	"github.com/aussiebroadwan/warden/pkg/jwtx"
	"github.com/aussiebroadwan/warden/pkg/slogx"
)

// Token grants, used as the metrics label.
const (
	GrantPassword = "password"
	GrantRefresh  = "refresh"
)

// Identity is everything copied into an access token.
type Identity struct {
	UserID      string
	SessionID   string
	Username    string
	Email       string
	Roles       []string
	Permissions []string
}

// TokenService signs access tokens and manages refresh sessions.
type TokenService struct {
	Store      store.Store
	Keys       *jwtx.KeyManager
	Issuer     string
	Audience   []string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Metrics    *metrics.Metrics
	Now        func() time.Time
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL <= 0 {
		return jwtx.DefaultAccessTokenTTL
	}
	return s.AccessTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL <= 0 {
		return jwtx.DefaultRefreshTokenTTL
	}
	return s.RefreshTTL
}

// GenerateToken signs an access token for id.
func (s *TokenService) GenerateToken(id Identity) (string, time.Time, error) {
	signer := s.Keys.GetSigner()
	if signer == nil {
		return "", time.Time{}, errors.New("token: no signing key available")
	}

	claims := jwtx.NewAccessClaims(jwtx.AccessClaimsParams{
		Subject:     id.UserID,
		SessionID:   id.SessionID,
		Username:    id.Username,
		Email:       id.Email,
		Roles:       id.Roles,
		Permissions: id.Permissions,
		Issuer:      s.Issuer,
		Audience:    s.Audience,
		TTL:         s.accessTTL(),
		Now:         clock(s.Now),
	})

	tok, err := signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token: sign: %w", err)
	}
	return tok, claims.ExpiresAt.Time, nil
}

// GenerateRefreshToken persists a new session through q and returns the
// opaque token. Only its fingerprint is stored.
func (s *TokenService) GenerateRefreshToken(
	ctx context.Context,
	q store.Store,
	userID, ip, device string,
) (string, domain.UserSession, error) {
	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.UserSession{}, err
	}

	now := clock(s.Now)
	sess := domain.UserSession{
		ID:               idx.NewAt(now).String(),
		UserID:           userID,
		RefreshTokenHash: cryptox.FingerprintToken(opaque),
		ExpiresAt:        now.Add(s.refreshTTL()),
		IPAddress:        ip,
		DeviceInfo:       device,
		LastActivity:     now,
		Audit:            domain.NewAudit(userID, now),
	}
	if err := q.Sessions().Create(ctx, sess); err != nil {
		return "", domain.UserSession{}, fmt.Errorf("token: create session: %w", err)
	}
	return opaque, sess, nil
}

// ValidateRefreshToken reports whether opaque names an active unexpired
// session, and whose it is.
func (s *TokenService) ValidateRefreshToken(ctx context.Context, opaque string) (bool, string, error) {
	if opaque == "" {
		return false, "", nil
	}
	sess, err := s.Store.Sessions().GetByTokenHash(ctx, cryptox.FingerprintToken(opaque))
	if errors.Is(err, store.ErrNotFound) {
		return false, "", nil
	}
	if err != nil {
		return false, "", err
	}
	if !sess.Usable(clock(s.Now)) {
		return false, "", nil
	}
	return true, sess.UserID, nil
}

// Refresh spends opaque and returns a fresh pair. The old session is
// deactivated in the same transaction that creates the new one, so a token
// can be exchanged at most once.
func (s *TokenService) Refresh(ctx context.Context, opaque, ip, device string) (domain.TokenPair, error) {
	if opaque == "" {
		return domain.TokenPair{}, ErrInvalidRefreshToken
	}

	var (
		pair domain.TokenPair
		user domain.User
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		now := clock(s.Now)
		old, err := tx.Sessions().GetByTokenHash(ctx, cryptox.FingerprintToken(opaque))
		if err != nil {
			return notFoundAs(err, ErrInvalidRefreshToken)
		}
		if !old.Usable(now) {
			return ErrInvalidRefreshToken
		}
		if err := tx.Sessions().Deactivate(ctx, old.ID, now); err != nil {
			return notFoundAs(err, ErrInvalidRefreshToken)
		}

		user, err = tx.Users().GetByID(ctx, old.UserID)
		if err != nil {
			return notFoundAs(err, ErrInvalidRefreshToken)
		}
		if !user.IsActive {
			return ErrInvalidRefreshToken
		}
		if err := canHoldSession(user, now); err != nil {
			return err
		}

		pair, err = s.issuePair(ctx, tx, user, cmp.Or(ip, old.IPAddress), cmp.Or(device, old.DeviceInfo))
		return err
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	s.Metrics.TokenIssued(GrantRefresh)
	slogx.FromContext(ctx).Info("refresh token rotated", slog.String("user_id", user.ID))
	return pair, nil
}

// Logout deletes the session of opaque only when it belongs to userID.
func (s *TokenService) Logout(ctx context.Context, userID, opaque string) error {
	hash := cryptox.FingerprintToken(opaque)
	n, err := s.Store.Sessions().DeleteForUser(ctx, hash, userID)
	if err != nil {
		return err
	}
	if n > 0 {
		slogx.FromContext(ctx).Info("session ended", slog.String("user_id", userID))
		return nil
	}

	sess, err := s.Store.Sessions().GetByTokenHash(ctx, hash)
	if err != nil {
		return notFoundAs(err, ErrSessionNotFound)
	}
	if sess.UserID != userID {
		slogx.FromContext(ctx).Warn("logout with foreign session",
			slog.String("user_id", userID),
			slog.String("owner_id", sess.UserID),
		)
		return ErrSessionOwnership
	}
	return ErrSessionNotFound
}

// RevokeAllSessions deletes every session of userID.
// ListSessions returns the user's unexpired active sessions, newest first.
func (s *TokenService) ListSessions(ctx context.Context, userID string) ([]domain.UserSession, error) {
	if _, err := s.Store.Users().GetByID(ctx, userID); err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	return s.Store.Sessions().ListActiveForUser(ctx, userID, clock(s.Now))
}

func (s *TokenService) RevokeAllSessions(ctx context.Context, userID string) (int64, error) {
	return s.revokeAll(ctx, s.Store, userID)
}

func (s *TokenService) revokeAll(ctx context.Context, q store.Store, userID string) (int64, error) {
	n, err := q.Sessions().DeleteAllForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slogx.FromContext(ctx).Info("sessions revoked", slog.String("user_id", userID), slog.Int64("count", n))
	}
	return n, nil
}

// issuePair creates a session through q, resolves the user's current roles
// and permissions through q and signs the access token.
func (s *TokenService) issuePair(ctx context.Context, q store.Store, u domain.User, ip, device string) (domain.TokenPair, error) {
	opaque, sess, err := s.GenerateRefreshToken(ctx, q, u.ID, ip, device)
	if err != nil {
		return domain.TokenPair{}, err
	}

	roles, err := q.Access().RolesForUser(ctx, u.ID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	perms, err := q.Access().PermissionsForUser(ctx, u.ID)
	if err != nil {
		return domain.TokenPair{}, err
	}

	access := domain.UserAccess{Roles: roles, Permissions: perms}
	tok, exp, err := s.GenerateToken(Identity{
		UserID:      u.ID,
		SessionID:   sess.ID,
		Username:    u.Username,
		Email:       u.Email,
		Roles:       access.RoleNames(),
		Permissions: access.PermissionNames(),
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:      tok,
		RefreshToken:     opaque,
		TokenType:        "Bearer",
		ExpiresAt:        exp,
		RefreshExpiresAt: sess.ExpiresAt,
	}, nil
}

// canHoldSession rejects locked, suspended and unactivated users.
func canHoldSession(u domain.User, now time.Time) error {
	switch {
	case u.LockedAt(now):
		return &LockedOutError{Remaining: u.LockoutEnd.Sub(now)}
	case u.UserStatus == domain.UserStatusSuspended:
		return ErrAccountSuspended
	case u.UserStatus != domain.UserStatusActive || !u.EmailConfirmed:
		return ErrAccountNotActivated
	}
	return nil
}
