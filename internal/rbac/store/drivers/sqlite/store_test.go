package sqlite_test

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/internal/rbac/store/drivers/sqlite"
	"github.com/aussiebroadwan/warden/internal/rbac/store/storetest"
	"github.com/stretchr/testify/require"
)

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(t.Context()))
}

func TestWithTx(t *testing.T) {
	s := storetest.New(t)
	ctx := t.Context()

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.WithTx(ctx, func(tx store.Tx) error {
			storetest.Role(t, tx, "Temp")
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = s.Roles().GetByName(ctx, "Temp")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("commit on success", func(t *testing.T) {
		require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
			storetest.Role(t, tx, "Kept")
			return nil
		}))

		_, err := s.Roles().GetByName(ctx, "Kept")
		require.NoError(t, err)
	})

	t.Run("no nesting", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.WithTx(ctx, func(store.Tx) error { return nil })
		})
		require.ErrorIs(t, err, sql.ErrTxDone)
	})
}
