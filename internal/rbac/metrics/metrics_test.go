package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/warden/internal/rbac/metrics"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *metrics.Metrics
	m.Login(metrics.LoginSuccess)
	m.Lockout()
	m.TokenIssued("login")
	m.Activation("issued")
	m.HousekeepingDeleted("user_sessions", 3)

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestExposition(t *testing.T) {
	m := metrics.New()
	m.Login(metrics.LoginFailed)
	m.Login(metrics.LoginFailed)
	m.Lockout()
	m.HousekeepingDeleted("activation_codes", 2)

	mux := http.NewServeMux()
	mux.Handle("GET /livez", m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/livez", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `warden_login_attempts_total{result="failed"} 2`)
	require.Contains(t, string(body), `warden_account_lockouts_total 1`)
	require.Contains(t, string(body), `warden_housekeeping_deleted_total{table="activation_codes"} 2`)
	require.Contains(t, string(body), `warden_http_requests_total{code="418",route="GET /livez"} 1`)
}
