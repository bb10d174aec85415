package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/warden/pkg/wardensdk"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Issuer:               "warden-test",
		NumKeys:              1,
		DatabaseFile:         filepath.Join(dir, "warden.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		AccessTTL:            15 * time.Minute,
		RefreshTTL:           time.Hour,
		LockoutThreshold:     5,
		LockoutDuration:      15 * time.Minute,
		ActivationCodeTTL:    24 * time.Hour,
		MaxResendsPerDay:     5,
		AdminUsername:        "root",
		AdminEmail:           "root@example.com",
		AdminPassword:        "root-pass-1",
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestApplicationWiring(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.closeBackends() })

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := json.Marshal(wardensdk.LoginRequest{Login: "root", Password: "root-pass-1"})
	resp, err = http.Post(srv.URL+"/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokens wardensdk.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tokens))
	require.NotEmpty(t, tokens.AccessToken)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/roles", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var roles wardensdk.Page[wardensdk.Role]
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&roles))
	require.Equal(t, 2, roles.Total)
}

func TestApplicationReopensSeededDatabase(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, first.closeBackends())

	second, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, second.closeBackends())
}
