package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents runtime configuration derived from environment variables.
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds HTTP server runtime parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	URL                string
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
	ConnectTimeout     time.Duration
}

// AuthConfig holds token signing parameters.
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

// SchedulerConfig controls the background trust score recalculation loop.
type SchedulerConfig struct {
	Enabled       bool
	CheckInterval time.Duration
	StaleAfter    time.Duration
	BatchSize     int
}

const (
	defaultPort            = "8080"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second

	defaultLogFormat = "json"

	defaultMaxConnections     = 25
	defaultMaxIdleConnections = 5
	defaultConnMaxLifetime    = 5 * time.Minute
	defaultConnectTimeout     = 10 * time.Second

	defaultTokenExpiry = 24 * time.Hour

	defaultRecalcCheckInterval = 5 * time.Minute
	defaultScoreStaleAfter     = 24 * time.Hour
	defaultRecalcBatchSize     = 50
)

// Load reads configuration from environment variables, applying defaults when
// values are not provided.
func Load() (Config, error) {
	// Cloud Run sets PORT, but allow SERVER_PORT override for local dev
	port := getEnv("PORT", "")
	if port == "" {
		port = getEnv("SERVER_PORT", defaultPort)
	}

	dbURL, err := databaseURL()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: defaultLogFormat,
		},
		Database: DatabaseConfig{
			URL:                dbURL,
			MaxConnections:     defaultMaxConnections,
			MaxIdleConnections: defaultMaxIdleConnections,
			ConnMaxLifetime:    defaultConnMaxLifetime,
			ConnectTimeout:     defaultConnectTimeout,
		},
		Auth: AuthConfig{
			JWTSecret:   os.Getenv("JWT_SECRET"),
			TokenExpiry: defaultTokenExpiry,
		},
		Scheduler: SchedulerConfig{
			Enabled:       true,
			CheckInterval: defaultRecalcCheckInterval,
			StaleAfter:    defaultScoreStaleAfter,
			BatchSize:     defaultRecalcBatchSize,
		},
	}

	if v := os.Getenv("SERVER_READ_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_READ_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ReadTimeout = d
	}

	if v := os.Getenv("SERVER_WRITE_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.WriteTimeout = d
	}

	if v := os.Getenv("SERVER_SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.Logging.Level = level
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "text":
			cfg.Logging.Format = v
		default:
			return Config{}, fmt.Errorf("invalid LOG_FORMAT: must be 'json' or 'text'")
		}
	}

	if v := os.Getenv("DB_MAX_CONNECTIONS"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_MAX_CONNECTIONS: %w", err)
		}
		cfg.Database.MaxConnections = n
	}

	if v := os.Getenv("DB_MAX_IDLE_CONNECTIONS"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_MAX_IDLE_CONNECTIONS: %w", err)
		}
		cfg.Database.MaxIdleConnections = n
	}

	if v := os.Getenv("JWT_EXPIRY_HOURS"); v != "" {
		hours, err := parsePositiveInt(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid JWT_EXPIRY_HOURS: %w", err)
		}
		cfg.Auth.TokenExpiry = time.Duration(hours) * time.Hour
	}

	if v := os.Getenv("RECALC_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RECALC_ENABLED: %w", err)
		}
		cfg.Scheduler.Enabled = enabled
	}

	if v := os.Getenv("RECALC_CHECK_INTERVAL_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RECALC_CHECK_INTERVAL_SECONDS: %w", err)
		}
		cfg.Scheduler.CheckInterval = d
	}

	if v := os.Getenv("SCORE_STALE_AFTER_HOURS"); v != "" {
		hours, err := parsePositiveInt(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SCORE_STALE_AFTER_HOURS: %w", err)
		}
		cfg.Scheduler.StaleAfter = time.Duration(hours) * time.Hour
	}

	if v := os.Getenv("RECALC_BATCH_SIZE"); v != "" {
		n, err := parsePositiveInt(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RECALC_BATCH_SIZE: %w", err)
		}
		cfg.Scheduler.BatchSize = n
	}

	return cfg, nil
}

// databaseURL resolves the PostgreSQL connection string. DATABASE_URL wins;
// otherwise a Cloud SQL Unix socket connection string is built from
// INSTANCE_CONNECTION_NAME plus DB_USER/DB_PASSWORD/DB_NAME. Cloud Run mounts
// Cloud SQL instances at /cloudsql/[INSTANCE_CONNECTION_NAME].
func databaseURL() (string, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL, nil
	}

	instance := os.Getenv("INSTANCE_CONNECTION_NAME")
	if instance == "" {
		// No database configured. Connect reports the missing URL.
		return "", nil
	}

	user := os.Getenv("DB_USER")
	name := os.Getenv("DB_NAME")
	if user == "" || name == "" {
		return "", fmt.Errorf("DB_USER and DB_NAME must be set when using INSTANCE_CONNECTION_NAME")
	}

	socketPath := fmt.Sprintf("/cloudsql/%s", instance)
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			socketPath, user, password, name), nil
	}
	// IAM authentication needs no password.
	return fmt.Sprintf("host=%s user=%s dbname=%s sslmode=disable", socketPath, user, name), nil
}

// RedactedDatabaseURL returns the connection string with any password
// replaced, for startup logging.
func (c DatabaseConfig) RedactedDatabaseURL() string {
	connStr := c.URL
	if strings.HasPrefix(connStr, "postgresql://") || strings.HasPrefix(connStr, "postgres://") {
		parts := strings.SplitN(connStr, "@", 2)
		if len(parts) == 2 {
			userParts := strings.Split(parts[0], ":")
			if len(userParts) >= 3 {
				return userParts[0] + "://" + userParts[1] + ":***@" + parts[1]
			}
		}
	}
	return connStr
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("must be a non-negative integer")
	}
	return time.Duration(seconds) * time.Second, nil
}

func parsePositiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("must be a positive integer")
	}
	return n, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be one of debug, info, warn, error")
	}
}
