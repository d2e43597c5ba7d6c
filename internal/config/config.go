package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Security SecurityConfig
	Seed     SeedConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication and authorization parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	SuperRole             string
	DefaultRole           string
	CookieName            string
	CookieSecure          bool
	AuthorizeTimeoutMs    int
	PublicPaths           []string
	LoginMaxAttempts      int
	LoginWindowMinutes    int
	// AlwaysRefreshIdentity reloads the identity from storage on every
	// protected request instead of trusting token claims for role-only routes.
	AlwaysRefreshIdentity bool
}

// SecurityConfig configures edge protection middlewares.
type SecurityConfig struct {
	AllowedOrigins  []string
	RateLimitPerMin int
	RateLimitBurst  int
	BodyLimitBytes  int
}

// SeedConfig optionally bootstraps a super admin account at startup.
type SeedConfig struct {
	SuperAdminEmail    string
	SuperAdminPassword string
	SuperAdminName     string
	OfficeName         string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "invento-api"),
			Env:                   getEnv("APP_ENV", "production"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             os.Getenv("AUTH_JWT_SECRET"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			SuperRole:             getEnv("AUTH_SUPER_ROLE", "super_admin"),
			DefaultRole:           getEnv("AUTH_DEFAULT_ROLE", "employee"),
			CookieName:            os.Getenv("AUTH_COOKIE_NAME"),
			CookieSecure:          getEnvAsBool("AUTH_COOKIE_SECURE", true),
			AuthorizeTimeoutMs:    getEnvAsInt("AUTH_AUTHORIZE_TIMEOUT_MS", 3000),
			PublicPaths:           getEnvAsList("AUTH_PUBLIC_PATHS", []string{"/api/auth/login", "/api/auth/register", "/api/auth/logout", "/health", "/health/ready", "/metrics"}),
			LoginMaxAttempts:      getEnvAsInt("AUTH_LOGIN_MAX_ATTEMPTS", 5),
			LoginWindowMinutes:    getEnvAsInt("AUTH_LOGIN_WINDOW_MINUTES", 15),
			AlwaysRefreshIdentity: getEnvAsBool("AUTH_ALWAYS_REFRESH_IDENTITY", false),
		},
		Security: SecurityConfig{
			AllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:3001", "http://localhost:5173"}),
			RateLimitPerMin: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 20),
			BodyLimitBytes:  getEnvAsInt("HTTP_BODY_LIMIT_BYTES", 20*1024),
		},
		Seed: SeedConfig{
			SuperAdminEmail:    os.Getenv("SEED_SUPERADMIN_EMAIL"),
			SuperAdminPassword: os.Getenv("SEED_SUPERADMIN_PASSWORD"),
			SuperAdminName:     getEnv("SEED_SUPERADMIN_NAME", "Super Admin"),
			OfficeName:         getEnv("SEED_OFFICE_NAME", "Head Office"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		if !c.App.IsDevelopment() {
			return errors.New("AUTH_JWT_SECRET is required")
		}
		c.Auth.JWTSecret = "dev-secret"
	}
	if c.Auth.SuperRole == "" {
		return errors.New("AUTH_SUPER_ROLE must not be empty")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsDevelopment reports whether internal error details may be exposed.
func (a AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Env, "development")
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the lifetime of issued session tokens.
func (a AuthConfig) TokenTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// AuthorizeTimeout bounds the storage round-trip made while authorizing a request.
func (a AuthConfig) AuthorizeTimeout() time.Duration {
	if a.AuthorizeTimeoutMs <= 0 {
		return 3 * time.Second
	}
	return time.Duration(a.AuthorizeTimeoutMs) * time.Millisecond
}

// LoginWindow is the period failed logins are counted over.
func (a AuthConfig) LoginWindow() time.Duration {
	if a.LoginWindowMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(a.LoginWindowMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
