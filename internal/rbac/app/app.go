package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/warden/internal/rbac/captcha"
	httpapi "github.com/aussiebroadwan/warden/internal/rbac/http"
	"github.com/aussiebroadwan/warden/internal/rbac/metrics"
	"github.com/aussiebroadwan/warden/internal/rbac/notify"
	"github.com/aussiebroadwan/warden/internal/rbac/service"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/internal/rbac/store/drivers/sqlite"
	"github.com/aussiebroadwan/warden/pkg/cryptox"
	"github.com/aussiebroadwan/warden/pkg/jwtx"
	"github.com/aussiebroadwan/warden/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application owns every long-lived dependency of the warden service.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager
	metrics    *metrics.Metrics

	redis  redis.UniversalClient // nil without WARDEN_REDIS_ADDR
	queue  *asynq.Client         // nil without WARDEN_REDIS_ADDR
	sender service.EmailSender
	hasher service.PasswordHasher

	authService         *service.AuthService
	tokenService        *service.TokenService
	lockoutService      *service.LockoutService
	resolverService     *service.ResolverService
	activationService   *service.ActivationService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService
	captchaService      *captcha.Service

	server *http.Server
	router *httpapi.Router
}

// New opens the database, seeds it and builds the HTTP server. Nothing
// listens until Run.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "warden",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(),
		hasher:  cryptox.Argon2Hasher{},
	}

	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keys, err := InitKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keyManager = keys

	if err := app.initCollaborators(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initServices()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.seed(ctx); err != nil {
		_ = app.closeBackends()
		return nil, err
	}

	app.initHTTP()
	return app, nil
}

// Handler exposes the fully wired router.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves until SIGINT/SIGTERM or a server failure.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("warden starting", slog.Int("port", app.cfg.Port), slog.String("version", BuildVersion))

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.closeBackends()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}
	return nil
}

// Shutdown drains in-flight requests, stops housekeeping and closes the
// database and redis connections.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down warden...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slog.Any("error", err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slog.Any("error", err))
		}
	}

	app.housekeepingService.Stop()

	if err := app.closeBackends(); err != nil {
		return err
	}

	app.logger.Info("warden stopped")
	return nil
}

func (app *Application) closeBackends() error {
	var errs []error
	if app.queue != nil {
		errs = append(errs, app.queue.Close())
	}
	if app.redis != nil {
		errs = append(errs, app.redis.Close())
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slog.Any("error", err))
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied", slog.String("file", app.cfg.DatabaseFile))
	return nil
}

// initCollaborators chooses between the redis-backed and in-process
// implementations of the e-mail sender and the CAPTCHA store.
func (app *Application) initCollaborators() error {
	var challenges captcha.Store

	if app.cfg.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: app.cfg.RedisAddr})
		app.queue = asynq.NewClient(asynq.RedisClientOpt{Addr: app.cfg.RedisAddr})

		challenges = captcha.NewRedisStore(app.redis)
		app.sender = &notify.AsynqSender{Client: app.queue}
		app.logger.Info("mail queued through asynq", slog.String("redis", app.cfg.RedisAddr))
	} else {
		challenges = captcha.NewMemoryStore()
		renderer, err := notify.NewRenderer()
		if err != nil {
			return fmt.Errorf("load mail templates: %w", err)
		}
		app.sender = &notify.DirectSender{Renderer: renderer, Deliverer: app.cfg.Deliverer(app.logger)}
		app.logger.Info("mail delivered in process")
	}

	app.captchaService = captcha.New(challenges, app.cfg.CaptchaTTL)
	return nil
}

func (app *Application) initServices() {
	app.lockoutService = &service.LockoutService{
		Store:     app.db,
		Threshold: app.cfg.LockoutThreshold,
		Duration:  app.cfg.LockoutDuration,
		Metrics:   app.metrics,
	}
	app.tokenService = &service.TokenService{
		Store:      app.db,
		Keys:       app.keyManager,
		Issuer:     app.cfg.Issuer,
		Audience:   app.cfg.Audience,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
		Metrics:    app.metrics,
	}
	app.resolverService = &service.ResolverService{Store: app.db}
	app.activationService = &service.ActivationService{
		Store:            app.db,
		Sender:           app.sender,
		CodeTTL:          app.cfg.ActivationCodeTTL,
		MaxResendsPerDay: app.cfg.MaxResendsPerDay,
		Metrics:          app.metrics,
	}
	app.authService = &service.AuthService{
		Store:      app.db,
		Hasher:     app.hasher,
		Captcha:    app.captchaService,
		Lockout:    app.lockoutService,
		Tokens:     app.tokenService,
		Resolver:   app.resolverService,
		Activation: app.activationService,
		Metrics:    app.metrics,
	}
	app.bootstrapService = &service.BootstrapService{Store: app.db, Hasher: app.hasher}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.metrics,
	)
}

func (app *Application) seed(ctx context.Context) error {
	res, err := app.bootstrapService.Seed(ctx, service.AdminSeed{
		Username: app.cfg.AdminUsername,
		Email:    app.cfg.AdminEmail,
		Password: app.cfg.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	app.logger.Info("seed applied",
		slog.Int("roles", res.Roles),
		slog.Int("permissions", res.Permissions),
		slog.Int("links", res.Links),
		slog.String("admin_user_id", res.AdminUserID),
	)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager,
		BuildVersion,
		app.db,
		app.metrics,
		app.logger,
		httpapi.RouterOptions{Production: app.cfg.IsProduction()},
	)

	router.AuthService = app.authService
	router.TokenService = app.tokenService
	router.LockoutService = app.lockoutService
	router.ResolverService = app.resolverService
	router.ActivationService = app.activationService
	router.UserService = &service.UserService{Store: app.db, Hasher: app.hasher, Tokens: app.tokenService}
	router.RoleService = &service.RoleService{Store: app.db}
	router.PermissionService = &service.PermissionService{Store: app.db}
	router.ModuleService = &service.ModuleService{Store: app.db}
	router.RouteService = &service.RouteService{Store: app.db}
	router.Captcha = app.captchaService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
