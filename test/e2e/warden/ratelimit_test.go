package warden_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginRateLimit(t *testing.T) {
	client := setupWardenWithDefaultRateLimits(t)

	for range 5 {
		_, err := client.LoginTokens(t.Context(), "ghost", "wrong")
		requireAPIError(t, err, http.StatusUnauthorized, "invalid_credentials")
	}

	_, err := client.LoginTokens(t.Context(), "ghost", "wrong")
	requireAPIError(t, err, http.StatusTooManyRequests, "rate_limit_exceeded")

	// The key includes the login, so another account is still allowed.
	_, err = client.LoginTokens(t.Context(), adminUsername, adminPassword)
	require.NoError(t, err)
}
