package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable, e.g. WARDEN_ISSUER. Fields with an
// explicit envconfig tag also fall back to the bare name (PORT, ENV, ...).
// Rate limits are read separately by httpx from RATELIMIT_*.
const EnvPrefix = "WARDEN"

type Config struct {
	Issuer   string   `envconfig:"ISSUER" default:"warden"`
	Audience []string `envconfig:"AUDIENCE"`
	NumKeys  int      `envconfig:"NUM_KEYS" default:"3"`

	DatabaseFile string `envconfig:"DATABASE_FILE" default:"warden.db"`
	PepperFile   string `envconfig:"PEPPER_FILE" default:"pepper"`

	AccessTTL  time.Duration `envconfig:"ACCESS_TTL" default:"15m"`
	RefreshTTL time.Duration `envconfig:"REFRESH_TTL" default:"168h"`

	LockoutThreshold int           `envconfig:"LOCKOUT_THRESHOLD" default:"5"`
	LockoutDuration  time.Duration `envconfig:"LOCKOUT_DURATION" default:"15m"`

	ActivationCodeTTL time.Duration `envconfig:"ACTIVATION_CODE_TTL" default:"24h"`
	MaxResendsPerDay  int           `envconfig:"MAX_RESENDS_PER_DAY" default:"5"`
	CaptchaTTL        time.Duration `envconfig:"CAPTCHA_TTL" default:"5m"`

	// Admin is only created when all three are set.
	AdminUsername string `envconfig:"ADMIN_USERNAME"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	// RedisAddr switches mail to the asynq queue and CAPTCHA challenges to
	// redis. Empty keeps both in process.
	RedisAddr         string `envconfig:"REDIS_ADDR"`
	WorkerConcurrency int    `envconfig:"WORKER_CONCURRENCY" default:"5"`

	// SMTPHost empty logs mail instead of sending it.
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"25"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"no-reply@warden.local"`

	Env                  string        `envconfig:"ENV" default:"dev"`
	LogLevel             string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat            string        `envconfig:"LOG_FORMAT" default:"json"`
	Port                 int           `envconfig:"PORT" default:"8080"`
	ShutdownGracePeriod  time.Duration `envconfig:"SHUTDOWN_GRACE_PERIOD" default:"10s"`
	HousekeepingInterval time.Duration `envconfig:"HOUSEKEEPING_INTERVAL" default:"1h"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations that cannot start a working service.
func (c Config) Validate() error {
	var errs []error
	if c.Issuer == "" {
		errs = append(errs, errors.New("issuer must not be empty"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		errs = append(errs, errors.New("token lifetimes must be positive"))
	}
	if c.RefreshTTL < c.AccessTTL {
		errs = append(errs, errors.New("refresh lifetime must not be shorter than access lifetime"))
	}
	set := 0
	for _, v := range []string{c.AdminUsername, c.AdminEmail, c.AdminPassword} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		errs = append(errs, errors.New("admin seed needs username, email and password together"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether ENV names a production deployment.
func (c Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

// Usage prints every recognised variable with its default.
func Usage() error {
	var cfg Config
	return envconfig.Usagef(EnvPrefix, &cfg, os.Stderr, envconfig.DefaultTableFormat)
}
