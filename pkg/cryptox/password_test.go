package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashAndVerify(t *testing.T) {
	for _, pw := range []string{"password123", "P@ssw0rd!#$%", "パスワード", strings.Repeat("a", 500), ""} {
		t.Run(pw[:min(len(pw), 12)], func(t *testing.T) {
			hash, err := HashPassword(pw)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"), hash)

			require.NoError(t, VerifyPassword(pw, hash))
			require.ErrorIs(t, VerifyPassword(pw+"x", hash), ErrPasswordMismatch)
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyPassword_StoredParamsWin(t *testing.T) {
	cheap := Argon2Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}
	hash, err := cheap.Hash("legacy")
	require.NoError(t, err)
	require.Contains(t, hash, "m=8192,t=1,p=1")

	require.NoError(t, VerifyPassword("legacy", hash))
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"bcrypt":      "$2a$10$abcdefghijklmnopqrstuv",
		"wrong algo":  "$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"old version": "$argon2id$v=16$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"bad params":  "$argon2id$v=19$m=x,t=2,p=1$c2FsdA$aGFzaA",
		"bad salt":    "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
		"empty key":   "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$",
	}
	for name, hash := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, VerifyPassword("pw", hash), ErrInvalidHash)
		})
	}
}

func TestPepper(t *testing.T) {
	prev := pepperState.path
	t.Cleanup(func() { SetPepperPath(prev) })

	path := filepath.Join(t.TempDir(), "nested", "pepper")
	SetPepperPath(path)

	first, err := Pepper()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, first, string(onDisk))

	t.Run("reloaded from file", func(t *testing.T) {
		SetPepperPath(path)
		again, err := Pepper()
		require.NoError(t, err)
		require.Equal(t, first, again)
	})

	t.Run("different pepper breaks old hashes", func(t *testing.T) {
		SetPepperPath(path)
		hash, err := HashPassword("peppered")
		require.NoError(t, err)

		SetPepperPath(filepath.Join(t.TempDir(), "other"))
		require.ErrorIs(t, VerifyPassword("peppered", hash), ErrPasswordMismatch)
	})

	t.Run("empty file rejected", func(t *testing.T) {
		empty := filepath.Join(t.TempDir(), "empty")
		require.NoError(t, os.WriteFile(empty, nil, 0o600))
		SetPepperPath(empty)
		_, err := Pepper()
		require.Error(t, err)
	})
}

func TestArgon2Hasher(t *testing.T) {
	var h Argon2Hasher

	hash, err := h.Hash("Sup3rSecret!")
	require.NoError(t, err)
	require.True(t, h.Verify("Sup3rSecret!", hash))
	require.False(t, h.Verify("sup3rsecret!", hash))
	require.False(t, h.Verify("Sup3rSecret!", "not-a-hash"))
}
