package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/metrics"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/pkg/cryptox"
	"github.com/aussiebroadwan/warden/pkg/idx"
	"github.com/aussiebroadwan/warden/pkg/slogx"
)

const (
	ActivationCodeLength     = 6
	DefaultActivationCodeTTL = 24 * time.Hour
	DefaultMaxResendsPerDay  = 5

	// attempts at drawing a code that differs from the user's live ones
	maxCodeDraws = 8
)

// Activation events, used as the metrics label.
const (
	ActivationIssued    = "issued"
	ActivationResent    = "resent"
	ActivationCompleted = "activated"
	ActivationRejected  = "rejected"
)

// ActivationService issues and redeems e-mail activation codes.
type ActivationService struct {
	Store            store.Store
	Sender           EmailSender
	CodeTTL          time.Duration
	MaxResendsPerDay int
	Metrics          *metrics.Metrics
	Now              func() time.Time
}

func (s *ActivationService) codeTTL() time.Duration {
	if s.CodeTTL <= 0 {
		return DefaultActivationCodeTTL
	}
	return s.CodeTTL
}

func (s *ActivationService) maxResends() int {
	if s.MaxResendsPerDay <= 0 {
		return DefaultMaxResendsPerDay
	}
	return s.MaxResendsPerDay
}

// Generate draws a fresh code. Codes are not globally unique.
func (s *ActivationService) Generate() (string, error) {
	return cryptox.GenerateCode(ActivationCodeLength, cryptox.CodeCharset)
}

// Issue stores a new code for userID.
func (s *ActivationService) Issue(ctx context.Context, userID string) (domain.ActivationCode, error) {
	c, err := s.issue(ctx, s.Store, userID, false)
	if err != nil {
		return domain.ActivationCode{}, err
	}
	s.Metrics.Activation(ActivationIssued)
	return c, nil
}

func (s *ActivationService) issue(ctx context.Context, q store.Store, userID string, resend bool) (domain.ActivationCode, error) {
	live, err := q.ActivationCodes().ListActiveForUser(ctx, userID)
	if err != nil {
		return domain.ActivationCode{}, err
	}
	taken := make(map[string]struct{}, len(live))
	for _, c := range live {
		taken[c.Code] = struct{}{}
	}

	var code string
	for range maxCodeDraws {
		if code, err = s.Generate(); err != nil {
			return domain.ActivationCode{}, err
		}
		if _, dup := taken[code]; !dup {
			break
		}
		code = ""
	}
	if code == "" {
		return domain.ActivationCode{}, errors.New("activation: could not draw a distinct code")
	}

	now := clock(s.Now)
	c := domain.ActivationCode{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		Code:      code,
		ExpiresAt: now.Add(s.codeTTL()),
		IsResend:  resend,
		Audit:     domain.NewAudit(domain.ActorSystem, now),
	}
	if err := q.ActivationCodes().Create(ctx, c); err != nil {
		return domain.ActivationCode{}, notFoundAs(err, ErrUserNotFound)
	}
	return c, nil
}

// Validate checks code for the account behind email without consuming it.
func (s *ActivationService) Validate(ctx context.Context, email, code string) (domain.ActivationCode, error) {
	_, c, err := s.validate(ctx, s.Store, email, code)
	return c, err
}

func (s *ActivationService) validate(
	ctx context.Context,
	q store.Store,
	email, code string,
) (domain.User, domain.ActivationCode, error) {
	u, err := q.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return domain.User{}, domain.ActivationCode{}, notFoundAs(err, ErrUserNotFound)
	}
	if u.EmailConfirmed {
		return domain.User{}, domain.ActivationCode{}, ErrAlreadyActivated
	}

	c, err := q.ActivationCodes().FindUnusedByCode(ctx, normalizeCode(code), u.ID)
	if err != nil {
		return domain.User{}, domain.ActivationCode{}, notFoundAs(err, ErrInvalidActivationCode)
	}
	if c.UserID != u.ID {
		return domain.User{}, domain.ActivationCode{}, ErrActivationCodeMismatch
	}
	if c.ExpiredAt(clock(s.Now)) {
		return domain.User{}, domain.ActivationCode{}, ErrActivationCodeExpired
	}
	return u, c, nil
}

// MarkUsed consumes the code. A second call fails.
func (s *ActivationService) MarkUsed(ctx context.Context, codeID string) error {
	return s.markUsed(ctx, s.Store, codeID)
}

func (s *ActivationService) markUsed(ctx context.Context, q store.Store, codeID string) error {
	ok, err := q.ActivationCodes().MarkUsed(ctx, codeID, clock(s.Now))
	if err != nil {
		return err
	}
	if !ok {
		return ErrActivationCodeUsed
	}
	return nil
}

// Activate redeems code and confirms the account in one transaction.
func (s *ActivationService) Activate(ctx context.Context, email, code string) (domain.User, error) {
	var u domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var (
			c   domain.ActivationCode
			err error
		)
		if u, c, err = s.validate(ctx, tx, email, code); err != nil {
			return err
		}
		if err := s.markUsed(ctx, tx, c.ID); err != nil {
			return err
		}

		now := clock(s.Now)
		if err := tx.Users().Activate(ctx, u.ID, u.ID, now); err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}
		if err := tx.ActivationCodes().InvalidateForUser(ctx, u.ID, now); err != nil {
			return err
		}
		u.EmailConfirmed = true
		u.UserStatus = domain.UserStatusActive
		return nil
	})
	if err != nil {
		if KindOf(err) != KindInternal {
			s.Metrics.Activation(ActivationRejected)
		}
		return domain.User{}, err
	}

	s.Metrics.Activation(ActivationCompleted)
	log := slogx.FromContext(ctx)
	log.Info("account activated", slog.String("user_id", u.ID))

	if s.Sender != nil {
		vars := map[string]string{"username": u.Username}
		if err := s.Sender.Send(ctx, TemplateWelcome, u.Email, vars); err != nil {
			log.Warn("welcome mail not sent", slog.String("user_id", u.ID), slog.Any("error", err))
		}
	}
	return u, nil
}

// Resend retires every unused code of the account and mails a new one. The
// number of resends is capped per UTC calendar day.
func (s *ActivationService) Resend(ctx context.Context, email string) error {
	var u domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		u, err = tx.Users().GetByEmail(ctx, normalizeEmail(email))
		if err != nil {
			return notFoundAs(err, ErrUserNotFound)
		}
		if u.EmailConfirmed {
			return ErrAlreadyActivated
		}

		now := clock(s.Now)
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		n, err := tx.ActivationCodes().CountResendsSince(ctx, u.ID, day)
		if err != nil {
			return err
		}
		if n >= s.maxResends() {
			return ErrResendLimitReached
		}

		if err := tx.ActivationCodes().InvalidateForUser(ctx, u.ID, now); err != nil {
			return err
		}
		c, err := s.issue(ctx, tx, u.ID, true)
		if err != nil {
			return err
		}
		return s.send(ctx, u, c)
	})
	if err != nil {
		return err
	}

	s.Metrics.Activation(ActivationResent)
	slogx.FromContext(ctx).Info("activation code resent", slog.String("user_id", u.ID))
	return nil
}

// send hands the activation mail to the sender. Failing to enqueue fails the
// surrounding transaction so no code exists that the user never received.
func (s *ActivationService) send(ctx context.Context, u domain.User, c domain.ActivationCode) error {
	if s.Sender == nil {
		return nil
	}
	vars := map[string]string{
		"username":   u.Username,
		"code":       c.Code,
		"expires_at": c.ExpiresAt.Format(time.RFC3339),
	}
	if err := s.Sender.Send(ctx, TemplateActivation, u.Email, vars); err != nil {
		return fmt.Errorf("activation: send: %w", err)
	}
	return nil
}

func normalizeCode(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
