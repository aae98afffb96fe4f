package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Report   ReportConfig
	Download DownloadConfig
	Schedule ScheduleConfig
	SFTP     SFTPConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver           string
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ReportConfig holds staging and extraction settings
type ReportConfig struct {
	BaseDir   string
	BatchSize int
	Timezone  string
}

// DownloadConfig holds asset download timeouts
type DownloadConfig struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

// ScheduleConfig holds daemon settings
type ScheduleConfig struct {
	Cron     string
	GRPCAddr string
}

// SFTPConfig holds remote transfer settings
type SFTPConfig struct {
	Enabled    bool
	Host       string
	Port       int
	User       string
	Password   string
	RemoteBase string
	KnownHosts string
	Timeout    time.Duration
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory, when present, is applied first without overriding
// variables that are already set.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Database: DatabaseConfig{
			Driver:           strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			DSN:              getEnv("DB_URL", ""),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 5),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 1),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 5*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Report: ReportConfig{
			BaseDir:   getEnv("REPORT_BASE_DIR", "./staging"),
			BatchSize: getEnvAsInt("REPORT_BATCH_SIZE", 1000),
			Timezone:  getEnv("REPORT_TIMEZONE", "Local"),
		},
		Download: DownloadConfig{
			ConnectTimeout: getEnvAsDuration("DOWNLOAD_CONNECT_TIMEOUT", 10*time.Second),
			ReadTimeout:    getEnvAsDuration("DOWNLOAD_READ_TIMEOUT", 10*time.Second),
		},
		Schedule: ScheduleConfig{
			Cron:     getEnv("SCHEDULE_CRON", "0 30 0 * * *"),
			GRPCAddr: getEnv("GRPC_ADDR", ":8080"),
		},
		SFTP: SFTPConfig{
			Enabled:    getEnvAsBool("SFTP_ENABLED", false),
			Host:       getEnv("SFTP_HOST", ""),
			Port:       getEnvAsInt("SFTP_PORT", 22),
			User:       getEnv("SFTP_USER", ""),
			Password:   getEnv("SFTP_PASSWORD", ""),
			RemoteBase: getEnv("SFTP_REMOTE_BASE", "/upload"),
			KnownHosts: getEnv("SFTP_KNOWN_HOSTS", ""),
			Timeout:    getEnvAsDuration("SFTP_TIMEOUT", 30*time.Second),
		},
	}
}

// Supported values for DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Location resolves REPORT_TIMEZONE; "Local" or empty means the process zone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Report.Timezone)
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

// Validate validates the loaded configuration. requireDB is false for
// commands that run against an in-memory store.
func (c *Config) Validate(requireDB bool) error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return NewAppError("CONFIG_ERROR", "DB_DRIVER must be postgres or sqlite", ErrInvalidInput)
	}
	if requireDB && c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if strings.TrimSpace(c.Report.BaseDir) == "" {
		return NewAppError("CONFIG_ERROR", "REPORT_BASE_DIR is required", ErrInvalidInput)
	}
	if c.Report.BatchSize <= 0 {
		return NewAppError("CONFIG_ERROR", "REPORT_BATCH_SIZE must be positive", ErrInvalidInput)
	}
	if _, err := c.Location(); err != nil {
		return NewAppError("CONFIG_ERROR", "REPORT_TIMEZONE is not a known zone", err)
	}
	if c.SFTP.Enabled && (c.SFTP.Host == "" || c.SFTP.User == "") {
		return NewAppError("CONFIG_ERROR", "SFTP_HOST and SFTP_USER are required when SFTP_ENABLED", ErrInvalidInput)
	}
	return nil
}
