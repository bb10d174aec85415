package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/internal/rbac/store/storetest"
	"github.com/aussiebroadwan/warden/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "warden-test"
	testAudience = "warden"
)

// plainHasher keeps tests fast. Never use outside tests.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "plain:" + p, nil }
func (plainHasher) Verify(p, h string) bool      { return h == "plain:"+p }

type sentMail struct {
	Template string
	To       string
	Vars     map[string]string
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (r *recordingSender) Send(_ context.Context, template, to string, vars map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sentMail{Template: template, To: to, Vars: vars})
	return nil
}

func (r *recordingSender) last(t *testing.T) sentMail {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.sent)
	return r.sent[len(r.sent)-1]
}

type stubCaptcha struct{ answer string }

func (c stubCaptcha) Validate(_ context.Context, token string) (bool, error) {
	return token == c.answer, nil
}

type env struct {
	store   store.Store
	now     func() time.Time
	advance func(time.Duration)
	keys    *jwtx.KeyManager
	mail    *recordingSender

	lockout    *LockoutService
	tokens     *TokenService
	resolver   *ResolverService
	activation *ActivationService
	auth       *AuthService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	now, advance := storetest.Clock()
	keys, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:   testIssuer,
		Audience: []string{testAudience},
		NumKeys:  1,
	})
	require.NoError(t, err)

	e := &env{
		store:   storetest.New(t),
		now:     now,
		advance: advance,
		keys:    keys,
		mail:    &recordingSender{},
	}
	e.lockout = &LockoutService{Store: e.store, Now: now}
	e.tokens = &TokenService{
		Store:    e.store,
		Keys:     keys,
		Issuer:   testIssuer,
		Audience: []string{testAudience},
		Now:      now,
	}
	e.resolver = &ResolverService{Store: e.store, Now: now}
	e.activation = &ActivationService{Store: e.store, Sender: e.mail, Now: now}
	e.auth = &AuthService{
		Store:      e.store,
		Hasher:     plainHasher{},
		Captcha:    stubCaptcha{answer: "ok"},
		Lockout:    e.lockout,
		Tokens:     e.tokens,
		Resolver:   e.resolver,
		Activation: e.activation,
		Now:        now,
	}
	return e
}

// user inserts an active account whose password is password.
func (e *env) user(t *testing.T, username, password string) domain.User {
	t.Helper()
	u := storetest.User(t, e.store, username)
	hash, _ := plainHasher{}.Hash(password)
	require.NoError(t, e.store.Users().UpdateCredentials(t.Context(), u.ID, hash, u.SecurityStamp, "test", storetest.Now))
	u.PasswordHash = &hash
	return u
}

func (e *env) reload(t *testing.T, id string) domain.User {
	t.Helper()
	u, err := e.store.Users().GetByID(t.Context(), id)
	require.NoError(t, err)
	return u
}

func (e *env) login(username, password string) (domain.TokenPair, error) {
	return e.auth.Login(context.Background(), LoginRequest{Login: username, Password: password, IP: "127.0.0.1"})
}
