// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Database Configuration
	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBSource          string        `mapstructure:"DB_SOURCE"` // sqlite file (DB_DRIVER=sqlite)

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Session Configuration
	SessionSecret          string        `mapstructure:"SESSION_SECRET"`
	SessionPreviousSecrets []string      `mapstructure:"-"`
	SessionCookieName      string        `mapstructure:"SESSION_COOKIE_NAME"`
	SessionMaxAge          time.Duration `mapstructure:"SESSION_MAX_AGE_SECONDS"`

	// Uploads
	PublicDir          string        `mapstructure:"PUBLIC_DIR"`
	UploadMaxPartBytes int64         `mapstructure:"UPLOAD_MAX_PART_BYTES"`
	UploadSweepGrace   time.Duration `mapstructure:"UPLOAD_SWEEP_GRACE_MINUTES"`

	// Cron Jobs
	UploadSweepJobSchedule string `mapstructure:"UPLOAD_SWEEP_SCHEDULE"`

	// Application Specific Configuration
	MinPasswordLength int  `mapstructure:"MIN_PASSWORD_LENGTH"`
	RecentKudosLimit  int  `mapstructure:"RECENT_KUDOS_LIMIT"`
	AllowSelfKudos    bool `mapstructure:"ALLOW_SELF_KUDOS"`

	CORSAllowedOrigins []string `mapstructure:"-"`
}

// IsProduction reports whether the server runs in gin release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "kudos_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)
	v.SetDefault("DB_SOURCE", "kudos.db")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_PREVIOUS_SECRETS", "")
	v.SetDefault("SESSION_COOKIE_NAME", "kudos-session")
	v.SetDefault("SESSION_MAX_AGE_SECONDS", 3600)

	v.SetDefault("PUBLIC_DIR", "public")
	v.SetDefault("UPLOAD_MAX_PART_BYTES", 10_000_000)
	v.SetDefault("UPLOAD_SWEEP_GRACE_MINUTES", 60)
	v.SetDefault("UPLOAD_SWEEP_SCHEDULE", "@daily")

	v.SetDefault("MIN_PASSWORD_LENGTH", 5)
	v.SetDefault("RECENT_KUDOS_LIMIT", 3)
	v.SetDefault("ALLOW_SELF_KUDOS", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.SessionMaxAge = time.Duration(v.GetInt("SESSION_MAX_AGE_SECONDS")) * time.Second
	cfg.UploadSweepGrace = time.Duration(v.GetInt("UPLOAD_SWEEP_GRACE_MINUTES")) * time.Minute

	cfg.SessionPreviousSecrets = splitList(v.GetString("SESSION_PREVIOUS_SECRETS"))
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SessionSecret) == "" {
		return fmt.Errorf("FATAL: SESSION_SECRET is not set. It is required to sign and encrypt session cookies")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("FATAL: unsupported DB_DRIVER %q (expected postgres or sqlite)", c.DBDriver)
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("FATAL: SESSION_MAX_AGE_SECONDS must be positive")
	}
	if c.UploadMaxPartBytes <= 0 {
		return fmt.Errorf("FATAL: UPLOAD_MAX_PART_BYTES must be positive")
	}
	return nil
}

// PostgresDSN builds the GORM postgres DSN from the individual DB_* settings.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode, c.DBTimezone)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
