package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/metrics"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/pkg/slogx"
)

const (
	DefaultLockoutThreshold = 5
	DefaultLockoutDuration  = 15 * time.Minute
)

// LockoutService tracks consecutive failed logins and locks accounts that
// reach Threshold for Duration.
type LockoutService struct {
	Store     store.Store
	Threshold int
	Duration  time.Duration
	Metrics   *metrics.Metrics
	Now       func() time.Time
}

func (s *LockoutService) threshold() int {
	if s.Threshold <= 0 {
		return DefaultLockoutThreshold
	}
	return s.Threshold
}

func (s *LockoutService) duration() time.Duration {
	if s.Duration <= 0 {
		return DefaultLockoutDuration
	}
	return s.Duration
}

func (s *LockoutService) IsLockedOut(ctx context.Context, userID string) (bool, error) {
	u, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return false, notFoundAs(err, ErrUserNotFound)
	}
	return u.LockedAt(clock(s.Now)), nil
}

// RecordFailedLoginAttempt counts one failure and reports whether it locked
// the account.
func (s *LockoutService) RecordFailedLoginAttempt(ctx context.Context, userID, actor string) (bool, error) {
	return s.recordFailure(ctx, s.Store, userID, actor)
}

func (s *LockoutService) recordFailure(ctx context.Context, q store.Store, userID, actor string) (bool, error) {
	now := clock(s.Now)
	count, end, err := q.Users().RecordFailedAccess(ctx, userID, s.threshold(), now.Add(s.duration()), actor, now)
	if err != nil {
		return false, notFoundAs(err, ErrUserNotFound)
	}

	// The counter only restarts at zero when this failure set the lock.
	locked := count == 0 && end != nil && end.After(now)
	if locked {
		s.Metrics.Lockout()
		slogx.FromContext(ctx).Warn("account locked",
			slog.String("user_id", userID),
			slog.Time("lockout_end", *end),
		)
	}
	return locked, nil
}

// RecordSuccessfulLogin clears the failure counter and any lockout.
func (s *LockoutService) RecordSuccessfulLogin(ctx context.Context, userID, actor string) error {
	return s.reset(ctx, s.Store, userID, actor)
}

func (s *LockoutService) reset(ctx context.Context, q store.Store, userID, actor string) error {
	err := q.Users().ResetAccessFailed(ctx, userID, actor, clock(s.Now))
	return notFoundAs(err, ErrUserNotFound)
}

func (s *LockoutService) GetRemainingLockoutTime(ctx context.Context, userID string) (time.Duration, error) {
	u, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return 0, notFoundAs(err, ErrUserNotFound)
	}
	if u.LockoutEnd == nil {
		return 0, nil
	}
	return max(0, u.LockoutEnd.Sub(clock(s.Now))), nil
}

// UnlockAccount is the administrative override.
func (s *LockoutService) UnlockAccount(ctx context.Context, userID, actor string) error {
	if err := s.reset(ctx, s.Store, userID, actor); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("account unlocked", slog.String("user_id", userID), slog.String("actor", actor))
	return nil
}

// LockoutStatus is the admin view of a user's lockout state.
type LockoutStatus struct {
	Locked            bool       `json:"locked"`
	AccessFailedCount int        `json:"access_failed_count"`
	LockoutEnd        *time.Time `json:"lockout_end,omitempty"`
	RemainingSeconds  int64      `json:"remaining_seconds"`
}

func (s *LockoutService) Status(ctx context.Context, userID string) (LockoutStatus, error) {
	u, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return LockoutStatus{}, notFoundAs(err, ErrUserNotFound)
	}

	now := clock(s.Now)
	st := LockoutStatus{
		Locked:            u.LockedAt(now),
		AccessFailedCount: u.AccessFailedCount,
		LockoutEnd:        u.LockoutEnd,
	}
	if st.Locked {
		st.RemainingSeconds = (&LockedOutError{Remaining: u.LockoutEnd.Sub(now)}).RemainingSeconds()
	}
	return st, nil
}
