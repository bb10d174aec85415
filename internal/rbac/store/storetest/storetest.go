// Package storetest opens throwaway migrated stores for tests.
package storetest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/internal/rbac/store/drivers/sqlite"
	"github.com/aussiebroadwan/warden/pkg/idx"
	"github.com/stretchr/testify/require"
)

// New returns a migrated sqlite store backed by a file in t.TempDir. A file is
// used because every new connection to ":memory:" would see its own empty
// database.
func New(t testing.TB) store.Store {
	t.Helper()

	s, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "warden.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())

	t.Cleanup(func() { _ = s.Close() })
	return s
}

// Now is the fixed instant fixtures are stamped with.
var Now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// Clock returns a controllable clock starting at Now.
func Clock() (now func() time.Time, advance func(time.Duration)) {
	cur := Now
	return func() time.Time { return cur }, func(d time.Duration) { cur = cur.Add(d) }
}

func audit() domain.Audit { return domain.NewAudit("test", Now) }

// User inserts an active, confirmed local user.
func User(t testing.TB, s store.Store, username string) domain.User {
	t.Helper()
	hash := "unused"
	u := domain.User{
		ID:             idx.New().String(),
		Username:       username,
		Email:          username + "@example.com",
		PasswordHash:   &hash,
		UserType:       domain.UserTypeLocal,
		EmailConfirmed: true,
		LockoutEnabled: true,
		SecurityStamp:  idx.New().String(),
		UserStatus:     domain.UserStatusActive,
		Version:        1,
		Audit:          audit(),
	}
	require.NoError(t, s.Users().Create(t.Context(), u))
	return u
}

func Role(t testing.TB, s store.Store, name string) domain.Role {
	t.Helper()
	r := domain.Role{ID: idx.New().String(), Name: name, Audit: audit()}
	require.NoError(t, s.Roles().Create(t.Context(), r))
	return r
}

func Permission(t testing.TB, s store.Store, name string) domain.Permission {
	t.Helper()
	p := domain.Permission{ID: idx.New().String(), Name: name, Audit: audit()}
	require.NoError(t, s.Permissions().Create(t.Context(), p))
	return p
}

// Module inserts a module under parent (nil for a root).
func Module(t testing.TB, s store.Store, name string, order int, parent *string) domain.Module {
	t.Helper()
	m := domain.Module{
		ID:           idx.New().String(),
		Name:         name,
		Route:        "/" + name,
		DisplayOrder: order,
		ParentID:     parent,
		Audit:        audit(),
	}
	require.NoError(t, s.Modules().Create(t.Context(), m))
	return m
}

func Route(t testing.TB, s store.Store, name, method, path, moduleID string) domain.Route {
	t.Helper()
	r := domain.Route{
		ID:           idx.New().String(),
		Name:         name,
		Path:         path,
		HTTPMethod:   method,
		ModuleID:     moduleID,
		RequiresAuth: true,
		IsEnabled:    true,
		Audit:        audit(),
	}
	require.NoError(t, s.Routes().Create(t.Context(), r))
	return r
}

// Link inserts an active assignment row.
func Link(t testing.TB, s store.Store, rel domain.Relation, ownerID, targetID string) domain.Assignment {
	t.Helper()
	a := domain.Assignment{
		ID:       idx.New().String(),
		Relation: rel,
		OwnerID:  ownerID,
		TargetID: targetID,
		Audit:    audit(),
	}
	require.NoError(t, s.Assignments(rel).Create(t.Context(), a))
	return a
}
