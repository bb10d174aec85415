package service

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/store/storetest"
	"github.com/aussiebroadwan/warden/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingCleanup(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	u := e.pendingUser(t, "hank")

	_, _, err := e.tokens.GenerateRefreshToken(ctx, e.store, u.ID, "", "")
	require.NoError(t, err)
	e.code(t, u.ID, "OLD001", storetest.Now)

	hk := NewHousekeepingService(e.store, slogx.Discard(), time.Minute, nil)
	hk.Now = e.now

	res := hk.Cleanup(ctx)
	require.Zero(t, res.Sessions)
	require.Zero(t, res.ActivationCodes)

	// Past the refresh lifetime, and past the code expiry plus retention.
	e.advance(8 * 24 * time.Hour)
	res = hk.Cleanup(ctx)
	require.EqualValues(t, 1, res.Sessions)
	require.EqualValues(t, 1, res.ActivationCodes)
}

func TestHousekeepingStartStop(t *testing.T) {
	e := newEnv(t)
	hk := NewHousekeepingService(e.store, slogx.Discard(), 0, nil)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()
}
