package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aussiebroadwan/warden/internal/rbac/captcha"
	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/metrics"
	"github.com/aussiebroadwan/warden/internal/rbac/service"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/internal/rbac/store/storetest"
	"github.com/aussiebroadwan/warden/pkg/jwtx"
	"github.com/aussiebroadwan/warden/pkg/slogx"
	"github.com/aussiebroadwan/warden/pkg/wardensdk"
	"github.com/stretchr/testify/require"
)

const testIssuer = "warden-test"

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "plain:" + p, nil }
func (plainHasher) Verify(p, h string) bool      { return h == "plain:"+p }

type codeCatcher struct {
	mu    sync.Mutex
	codes map[string]string
}

func (c *codeCatcher) Send(_ context.Context, template, to string, vars map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if template == service.TemplateActivation {
		c.codes[to] = vars["code"]
	}
	return nil
}

func (c *codeCatcher) code(to string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codes[to]
}

type testServer struct {
	router  *Router
	store   store.Store
	mail    *codeCatcher
	captcha *captcha.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st := storetest.New(t)
	keys, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer, NumKeys: 2})
	require.NoError(t, err)

	mail := &codeCatcher{codes: make(map[string]string)}
	captchaStore := captcha.NewMemoryStore()
	m := metrics.New()

	lockout := &service.LockoutService{Store: st, Metrics: m}
	tokens := &service.TokenService{Store: st, Keys: keys, Issuer: testIssuer, Metrics: m}
	resolver := &service.ResolverService{Store: st}
	activation := &service.ActivationService{Store: st, Sender: mail, Metrics: m}
	captchas := captcha.New(captchaStore, 0)

	r := NewRouter(keys, "test", st, m, slogx.Discard(), RouterOptions{})
	r.AuthService = &service.AuthService{
		Store:      st,
		Hasher:     plainHasher{},
		Captcha:    captchas,
		Lockout:    lockout,
		Tokens:     tokens,
		Resolver:   resolver,
		Activation: activation,
		Metrics:    m,
	}
	r.TokenService = tokens
	r.LockoutService = lockout
	r.ResolverService = resolver
	r.ActivationService = activation
	r.UserService = &service.UserService{Store: st, Hasher: plainHasher{}, Tokens: tokens}
	r.RoleService = &service.RoleService{Store: st}
	r.PermissionService = &service.PermissionService{Store: st}
	r.ModuleService = &service.ModuleService{Store: st}
	r.RouteService = &service.RouteService{Store: st}
	r.Captcha = captchas
	r.ApplyRoutes()

	return &testServer{router: r, store: st, mail: mail, captcha: captchaStore}
}

// do sends body as JSON and returns the recorded response.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// user creates an active account with password and the named roles.
func (s *testServer) user(t *testing.T, username, password string, roles ...string) domain.User {
	t.Helper()

	u := storetest.User(t, s.store, username)
	hash, _ := plainHasher{}.Hash(password)
	require.NoError(t, s.store.Users().UpdateCredentials(t.Context(), u.ID, hash, u.SecurityStamp, "test", storetest.Now))

	for _, name := range roles {
		role, err := s.store.Roles().GetByName(t.Context(), name)
		if err != nil {
			role = storetest.Role(t, s.store, name)
		}
		storetest.Link(t, s.store, domain.RelUserRole, u.ID, role.ID)
	}
	return u
}

func (s *testServer) login(t *testing.T, username, password string) wardensdk.TokenResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/login", "", wardensdk.LoginRequest{Login: username, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeAs[wardensdk.TokenResponse](t, rec)
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	s.user(t, "root", "root-pass-1", domain.RoleAdmin)
	return s.login(t, "root", "root-pass-1").AccessToken
}

func decodeAs[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeAs[wardensdk.ErrorResponse](t, rec).Error
}
