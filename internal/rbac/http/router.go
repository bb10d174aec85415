package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/captcha"
	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/metrics"
	"github.com/aussiebroadwan/warden/internal/rbac/service"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/pkg/httpx"
	"github.com/aussiebroadwan/warden/pkg/jwtx"
	"github.com/aussiebroadwan/warden/pkg/slogx"
	"github.com/unrolled/secure"

	_ "github.com/aussiebroadwan/warden/api/warden" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeyManager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics

	store             store.Store
	AuthService       *service.AuthService
	TokenService      *service.TokenService
	LockoutService    *service.LockoutService
	ResolverService   *service.ResolverService
	ActivationService *service.ActivationService
	UserService       *service.UserService
	RoleService       *service.RoleService
	PermissionService *service.PermissionService
	ModuleService     *service.ModuleService
	RouteService      *service.RouteService
	Captcha           *captcha.Service
}

// RouterOptions tunes the global middleware chain.
type RouterOptions struct {
	// Production turns on HSTS and the HTTPS redirect.
	Production bool
}

func NewRouter(
	keys *jwtx.KeyManager,
	buildVersion string,
	st store.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
	opts RouterOptions,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      m,
		logger:       logger,
	}

	headers := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        opts.Production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:         stsSeconds(opts.Production),
		IsDevelopment:      !opts.Production,
	})

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		headers.Handler,
	}

	return r
}

func stsSeconds(production bool) int64 {
	if production {
		return 31536000
	}
	return 0
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerRoles()
	r.registerPermissions()
	r.registerModules()
	r.registerRoutes()
	r.registerSystem()

	r.Mux.Handle("GET /metrics", r.metrics.Handler())
	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Warden RBAC Service API
//	@version		0.1.0
//	@description	Role based access control backend: users, roles, permissions, UI modules and API routes.
//	@description
//	@description				Access tokens are EdDSA signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/warden
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h behind the per-route metrics and the given middlewares.
func (r *Router) handle(pattern string, h http.HandlerFunc, mws ...httpx.Middleware) {
	chain := append([]httpx.Middleware{r.metrics.Middleware}, mws...)
	r.Mux.Handle(pattern, httpx.Chain(h, chain...))
}

// admin is the middleware stack of every administration endpoint.
func (r *Router) admin() []httpx.Middleware {
	return []httpx.Middleware{
		httpx.AuthnMiddleware(r.keys.Verifier),
		httpx.RequireAnyRole(domain.RoleAdmin),
		httpx.RateLimitByUser(httpx.LenientLimit),
	}
}

// authed only needs a valid access token.
func (r *Router) authed(limit httpx.RateLimitConfig) []httpx.Middleware {
	return []httpx.Middleware{
		httpx.AuthnMiddleware(r.keys.Verifier),
		httpx.RateLimitByUser(limit),
	}
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		Auth:       r.AuthService,
		Tokens:     r.TokenService,
		Activation: r.ActivationService,
		Captcha:    r.Captcha,
	}

	// Login is limited by IP and by IP + login name so one address cannot spray accounts
	r.handle("POST /auth/login", h.HandleLogin,
		httpx.RateLimitByIP(httpx.ModerateLimit),
		httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "login"),
	)
	r.handle("POST /auth/login-with-captcha", h.HandleLoginWithCaptcha,
		httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "login"),
	)
	r.handle("GET /auth/captcha", h.HandleCaptcha, httpx.RateLimitByIP(httpx.ModerateLimit))
	r.handle("POST /auth/refresh-token", h.HandleRefresh, httpx.RateLimitByIP(httpx.ModerateLimit))
	r.handle("POST /auth/logout", h.HandleLogout, r.authed(httpx.ModerateLimit)...)

	r.handle("POST /auth/register", h.HandleRegister, httpx.RateLimitByIP(httpx.StrictLimit))
	r.handle("POST /auth/activate", h.HandleActivate, httpx.RateLimitByIP(httpx.StrictLimit))
	r.handle("POST /auth/resend-activation", h.HandleResendActivation,
		httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
	)

	r.handle("GET /auth/me", h.HandleMe, r.authed(httpx.LenientLimit)...)
	r.handle("POST /auth/change-password", h.HandleChangePassword, r.authed(httpx.StrictLimit)...)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		Users:    r.UserService,
		Lockout:  r.LockoutService,
		Resolver: r.ResolverService,
		Tokens:   r.TokenService,
	}
	mw := r.admin()

	r.handle("GET /users", h.HandleList, mw...)
	r.handle("POST /users", h.HandleCreate, mw...)
	r.handle("GET /users/{id}", h.HandleGet, mw...)
	r.handle("PUT /users/{id}", h.HandleUpdate, mw...)
	r.handle("DELETE /users/{id}", h.HandleDelete, mw...)

	r.handle("POST /users/{id}/unlock", h.HandleUnlock, mw...)
	r.handle("GET /users/{id}/lockout", h.HandleLockout, mw...)
	r.handle("GET /users/{id}/sessions", h.HandleSessions, mw...)
	r.handle("DELETE /users/{id}/sessions", h.HandleRevokeSessions, mw...)

	r.handle("GET /users/{id}/roles", h.HandleRoles, mw...)
	r.handle("POST /users/{id}/roles/{roleId}", h.HandleAssignRole, mw...)
	r.handle("DELETE /users/{id}/roles/{roleId}", h.HandleRevokeRole, mw...)
	r.handle("GET /users/{id}/permissions", h.HandlePermissions, mw...)
	r.handle("GET /users/{id}/modules", h.HandleModules, mw...)
}

func (r *Router) registerRoles() {
	h := &RolesHandler{Roles: r.RoleService, Resolver: r.ResolverService}
	mw := r.admin()

	r.handle("GET /roles", h.HandleList, mw...)
	r.handle("POST /roles", h.HandleCreate, mw...)
	r.handle("GET /roles/{id}", h.HandleGet, mw...)
	r.handle("PUT /roles/{id}", h.HandleUpdate, mw...)
	r.handle("DELETE /roles/{id}", h.HandleDelete, mw...)

	r.handle("GET /roles/{id}/permissions", h.HandlePermissions, mw...)
	r.handle("GET /roles/{id}/modules", h.HandleModules, mw...)
	r.handle("GET /roles/{id}/routes", h.HandleRoutes, mw...)
	r.handle("GET /roles/{id}/modules/{moduleId}/access", h.HandleModuleAccess, mw...)
}

func (r *Router) registerPermissions() {
	h := &PermissionsHandler{Permissions: r.PermissionService, Resolver: r.ResolverService}
	mw := r.admin()

	r.handle("GET /permissions", h.HandleList, mw...)
	r.handle("POST /permissions", h.HandleCreate, mw...)
	r.handle("GET /permissions/{id}", h.HandleGet, mw...)
	r.handle("PUT /permissions/{id}", h.HandleUpdate, mw...)
	r.handle("DELETE /permissions/{id}", h.HandleDelete, mw...)

	r.handle("POST /permissions/assign-to-role", h.HandleAssignToRole, mw...)
	r.handle("POST /permissions/revoke-from-role", h.HandleRevokeFromRole, mw...)
	r.handle("POST /permissions/modules/assign", h.HandleAssignModule, mw...)
	r.handle("POST /permissions/modules/revoke", h.HandleRevokeModule, mw...)
	r.handle("POST /permissions/routes/assign", h.HandleAssignRoute, mw...)
	r.handle("POST /permissions/routes/revoke", h.HandleRevokeRoute, mw...)
}

func (r *Router) registerModules() {
	h := &ModulesHandler{Modules: r.ModuleService, Resolver: r.ResolverService}
	mw := r.admin()

	// The tree is the caller's own navigation, readable with modules.view
	tree := append(r.authed(httpx.LenientLimit), httpx.RequireAnyPermission(domain.PermModulesView))
	r.handle("GET /modules/tree", h.HandleTree, tree...)

	r.handle("GET /modules", h.HandleList, mw...)
	r.handle("POST /modules", h.HandleCreate, mw...)
	r.handle("GET /modules/{id}", h.HandleGet, mw...)
	r.handle("PUT /modules/{id}", h.HandleUpdate, mw...)
	r.handle("DELETE /modules/{id}", h.HandleDelete, mw...)
}

func (r *Router) registerRoutes() {
	h := &RoutesHandler{Routes: r.RouteService, Resolver: r.ResolverService}
	mw := r.admin()

	r.handle("GET /routes", h.HandleList, mw...)
	r.handle("POST /routes", h.HandleCreate, mw...)
	r.handle("GET /routes/{id}", h.HandleGet, mw...)
	r.handle("PUT /routes/{id}", h.HandleUpdate, mw...)
	r.handle("DELETE /routes/{id}", h.HandleDelete, mw...)

	r.handle("POST /routes/assign", h.HandleAssign, mw...)
	r.handle("POST /routes/revoke", h.HandleRevoke, mw...)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.handle("GET /livez", LivezHandler(r.startTime, r.buildVersion),
		httpx.RateLimitByIP(httpx.LenientLimit),
	)
	r.handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
		httpx.RateLimitByIP(httpx.LenientLimit),
	)
	r.handle("GET /.well-known/jwks.json", JWKSHandler(r.keys.KeySet),
		httpx.RateLimitByIP(httpx.PublicLimit),
	)
}
