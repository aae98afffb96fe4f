package common

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"DB_DRIVER", "DB_URL", "REPORT_BASE_DIR", "REPORT_BATCH_SIZE", "DOWNLOAD_CONNECT_TIMEOUT", "SFTP_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.Database.Driver != DriverPostgres {
		t.Fatalf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Report.BatchSize != 1000 {
		t.Fatalf("batch size = %d", cfg.Report.BatchSize)
	}
	if cfg.Download.ConnectTimeout != 10*time.Second || cfg.Download.ReadTimeout != 10*time.Second {
		t.Fatalf("timeouts = %s/%s", cfg.Download.ConnectTimeout, cfg.Download.ReadTimeout)
	}
	if cfg.SFTP.Enabled {
		t.Fatalf("sftp enabled by default")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("REPORT_BATCH_SIZE", "250")
	t.Setenv("DOWNLOAD_READ_TIMEOUT", "3s")
	t.Setenv("SFTP_ENABLED", "true")

	cfg := LoadConfig()
	if cfg.Database.Driver != DriverSQLite {
		t.Fatalf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Report.BatchSize != 250 {
		t.Fatalf("batch size = %d", cfg.Report.BatchSize)
	}
	if cfg.Download.ReadTimeout != 3*time.Second {
		t.Fatalf("read timeout = %s", cfg.Download.ReadTimeout)
	}
	if !cfg.SFTP.Enabled {
		t.Fatalf("sftp not enabled")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: DriverPostgres, DSN: "postgres://x"},
			Report:   ReportConfig{BaseDir: "/tmp/staging", BatchSize: 10, Timezone: "UTC"},
		}
	}

	if err := base().Validate(true); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	noDSN := base()
	noDSN.Database.DSN = ""
	if err := noDSN.Validate(true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing DSN: %v", err)
	}
	if err := noDSN.Validate(false); err != nil {
		t.Fatalf("missing DSN without requireDB: %v", err)
	}

	badZone := base()
	badZone.Report.Timezone = "Mars/Olympus"
	if err := badZone.Validate(true); err == nil {
		t.Fatalf("unknown zone accepted")
	}

	sftp := base()
	sftp.SFTP.Enabled = true
	if err := sftp.Validate(true); err == nil {
		t.Fatalf("sftp without host accepted")
	}
}

func TestErrorCode(t *testing.T) {
	err := fmt.Errorf("run: %w", NewAppError(CodeRenderFailed, "write report", ErrStorage))
	if got := ErrorCode(err); got != CodeRenderFailed {
		t.Fatalf("code = %q", got)
	}
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("cause not unwrapped")
	}
	if ErrorCode(errors.New("plain")) != "" {
		t.Fatalf("plain error has a code")
	}
}

func TestRunIDContext(t *testing.T) {
	ctx := WithRunID(context.Background(), "abc")
	if got := RunIDFromContext(ctx); got != "abc" {
		t.Fatalf("run id = %q", got)
	}
	if got := RunIDFromContext(context.Background()); got != "" {
		t.Fatalf("empty context run id = %q", got)
	}
}
