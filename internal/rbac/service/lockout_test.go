package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockout_AliceScenario(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	alice := e.user(t, "alice", "correct-horse1")

	for i := range 4 {
		locked, err := e.lockout.RecordFailedLoginAttempt(ctx, alice.ID, alice.ID)
		require.NoError(t, err)
		require.False(t, locked, "attempt %d must not lock", i+1)
	}
	require.Equal(t, 4, e.reload(t, alice.ID).AccessFailedCount)

	isLocked, err := e.lockout.IsLockedOut(ctx, alice.ID)
	require.NoError(t, err)
	require.False(t, isLocked)

	locked, err := e.lockout.RecordFailedLoginAttempt(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, locked)

	isLocked, err = e.lockout.IsLockedOut(ctx, alice.ID)
	require.NoError(t, err)
	require.True(t, isLocked)

	remaining, err := e.lockout.GetRemainingLockoutTime(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, 15*time.Minute, remaining)

	u := e.reload(t, alice.ID)
	require.Zero(t, u.AccessFailedCount)
	require.NotNil(t, u.LockoutEnd)

	t.Run("window elapses", func(t *testing.T) {
		e.advance(15*time.Minute + time.Second)

		isLocked, err := e.lockout.IsLockedOut(ctx, alice.ID)
		require.NoError(t, err)
		require.False(t, isLocked)

		remaining, err := e.lockout.GetRemainingLockoutTime(ctx, alice.ID)
		require.NoError(t, err)
		require.Zero(t, remaining)
	})
}

func TestLockout_SuccessResets(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	bob := e.user(t, "bob", "pw-12345678")

	for range 3 {
		_, err := e.lockout.RecordFailedLoginAttempt(ctx, bob.ID, bob.ID)
		require.NoError(t, err)
	}
	require.NoError(t, e.lockout.RecordSuccessfulLogin(ctx, bob.ID, bob.ID))

	u := e.reload(t, bob.ID)
	require.Zero(t, u.AccessFailedCount)
	require.Nil(t, u.LockoutEnd)

	// The count restarts, so four more failures still do not lock.
	for range 4 {
		locked, err := e.lockout.RecordFailedLoginAttempt(ctx, bob.ID, bob.ID)
		require.NoError(t, err)
		require.False(t, locked)
	}
}

func TestLockout_UnlockAndStatus(t *testing.T) {
	e := newEnv(t)
	e.lockout.Threshold = 2
	e.lockout.Duration = time.Hour
	ctx := t.Context()
	carol := e.user(t, "carol", "pw-12345678")

	for range 2 {
		_, err := e.lockout.RecordFailedLoginAttempt(ctx, carol.ID, carol.ID)
		require.NoError(t, err)
	}

	st, err := e.lockout.Status(ctx, carol.ID)
	require.NoError(t, err)
	require.True(t, st.Locked)
	require.EqualValues(t, 3600, st.RemainingSeconds)

	require.NoError(t, e.lockout.UnlockAccount(ctx, carol.ID, "admin"))

	st, err = e.lockout.Status(ctx, carol.ID)
	require.NoError(t, err)
	require.False(t, st.Locked)
	require.Nil(t, st.LockoutEnd)
}

func TestLockout_MissingUser(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()

	_, err := e.lockout.IsLockedOut(ctx, "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = e.lockout.RecordFailedLoginAttempt(ctx, "nobody", "system")
	require.ErrorIs(t, err, ErrUserNotFound)

	require.ErrorIs(t, e.lockout.RecordSuccessfulLogin(ctx, "nobody", "system"), ErrUserNotFound)

	_, err = e.lockout.GetRemainingLockoutTime(ctx, "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
	require.Equal(t, KindNotFound, KindOf(err))
}

func TestLockout_ConcurrentFailuresLockOnce(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	dave := e.user(t, "dave", "pw-12345678")

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		locks int
	)
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locked, err := e.lockout.RecordFailedLoginAttempt(ctx, dave.ID, dave.ID)
			assert.NoError(t, err)
			if locked {
				mu.Lock()
				locks++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, locks)
	isLocked, err := e.lockout.IsLockedOut(ctx, dave.ID)
	require.NoError(t, err)
	require.True(t, isLocked)
}
