package warden_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/pkg/wardensdk"
)

func TestAdminLogin(t *testing.T) {
	client := setupWarden(t)
	admin := loginAdmin(t, client)

	me, err := admin.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, adminUsername, me.User.Username)

	var roles []string
	for _, r := range me.Roles {
		roles = append(roles, r.Name)
	}
	require.Contains(t, roles, domain.RoleAdmin)
	require.NotEmpty(t, me.Permissions)
}

func TestRefreshRotation(t *testing.T) {
	client := setupWarden(t)

	first, err := client.LoginTokens(t.Context(), adminUsername, adminPassword)
	require.NoError(t, err)
	require.Equal(t, "Bearer", first.TokenType)

	second, err := client.Refresh(t.Context(), first.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = client.Refresh(t.Context(), first.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized, "invalid_refresh_token")

	_, err = client.Refresh(t.Context(), second.RefreshToken)
	require.NoError(t, err)
}

func TestLogout(t *testing.T) {
	client := setupWarden(t)
	session := loginAdmin(t, client)
	refresh := session.RefreshToken()

	require.NoError(t, session.Logout(t.Context()))

	_, err := client.Refresh(t.Context(), refresh)
	requireAPIError(t, err, http.StatusUnauthorized, "invalid_refresh_token")
}

func TestLockoutAndUnlock(t *testing.T) {
	client := setupWarden(t)
	admin := loginAdmin(t, client)
	user := createUser(t, admin, "mallory", "Correct123!")

	for range 4 {
		_, err := client.LoginTokens(t.Context(), "mallory", "wrong")
		requireAPIError(t, err, http.StatusUnauthorized, "invalid_credentials")
	}

	_, err := client.LoginTokens(t.Context(), "mallory", "wrong")
	apiErr := requireAPIError(t, err, http.StatusForbidden, "account_locked")
	require.Positive(t, apiErr.RemainingLockoutSeconds)

	_, err = client.LoginTokens(t.Context(), "mallory", "Correct123!")
	requireAPIError(t, err, http.StatusForbidden, "account_locked")

	status, err := admin.UserLockout(t.Context(), user.ID)
	require.NoError(t, err)
	require.True(t, status.Locked)

	require.NoError(t, admin.UnlockUser(t.Context(), user.ID))

	_, err = client.LoginTokens(t.Context(), "mallory", "Correct123!")
	require.NoError(t, err)
}

func TestRegisterRequiresActivation(t *testing.T) {
	client := setupWarden(t)

	u, err := client.Register(t.Context(), wardensdk.RegisterRequest{
		Username: "newbie",
		Email:    "newbie@warden.test",
		Password: "Newbie123!",
	})
	require.NoError(t, err)
	require.Equal(t, "pending", u.UserStatus)
	require.False(t, u.EmailConfirmed)

	_, err = client.LoginTokens(t.Context(), "newbie", "Newbie123!")
	requireAPIError(t, err, http.StatusForbidden, "account_not_activated")

	_, err = client.Activate(t.Context(), "newbie@warden.test", "ZZZZZZ")
	requireAPIError(t, err, http.StatusBadRequest, "invalid_activation_code")

	require.NoError(t, client.ResendActivation(t.Context(), "newbie@warden.test"))
}

func TestSuspendedUserCannotLogin(t *testing.T) {
	client := setupWarden(t)
	admin := loginAdmin(t, client)
	createUser(t, admin, "trent", "Trent123!")

	page, err := admin.ListUsers(t.Context(), wardensdk.ListOptions{Search: "trent"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	user := page.Items[0]

	suspended := "suspended"
	updated, err := admin.UpdateUser(t.Context(), user.ID, wardensdk.UpdateUserRequest{
		UserStatus: &suspended,
		Version:    user.Version,
	})
	require.NoError(t, err)
	require.Equal(t, suspended, updated.UserStatus)

	_, err = client.LoginTokens(t.Context(), "trent", "Trent123!")
	requireAPIError(t, err, http.StatusForbidden, "account_suspended")
}
