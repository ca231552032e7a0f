package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps Load away from any config.toml on the developer machine.
func isolate(t *testing.T) {
	t.Helper()
	old := configPaths
	configPaths = []string{t.TempDir()}
	t.Cleanup(func() { configPaths = old })
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		isolate(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "repairdesk", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "repairdesk", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.True(t, cfg.PettyCash.OpeningBalance.Equal(decimal.NewFromInt(27500)))
		assert.Equal(t, SequenceBackendDatabase, cfg.Sequence.Backend)
		assert.Equal(t, 48*time.Hour, cfg.Sequence.DayTTL)
		assert.Equal(t, 200*time.Millisecond, cfg.Telemetry.DBSlowQueryThresh)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("loads values from environment variables with REPAIRDESK prefix", func(t *testing.T) {
		isolate(t)
		t.Setenv("REPAIRDESK_APP_NAME", "test-app")
		t.Setenv("REPAIRDESK_APP_PORT", "9000")
		t.Setenv("REPAIRDESK_DATABASE_HOST", "testdb.local")
		t.Setenv("REPAIRDESK_DATABASE_PORT", "5433")
		t.Setenv("REPAIRDESK_DATABASE_PASSWORD", "testpass")
		t.Setenv("REPAIRDESK_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("REPAIRDESK_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("REPAIRDESK_REDIS_PORT", "6380")
		t.Setenv("REPAIRDESK_PETTY_CASH_OPENING_BALANCE", "1000.50")
		t.Setenv("REPAIRDESK_SEQUENCE_BACKEND", "redis")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
		assert.Equal(t, "1000.5", cfg.PettyCash.OpeningBalance.String())
		assert.Equal(t, SequenceBackendRedis, cfg.Sequence.Backend)
	})

	t.Run("explicit zero opening balance is kept", func(t *testing.T) {
		isolate(t)
		t.Setenv("REPAIRDESK_PETTY_CASH_OPENING_BALANCE", "0")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.PettyCash.OpeningBalance.IsZero())
	})

	t.Run("rejects malformed opening balance", func(t *testing.T) {
		isolate(t)
		t.Setenv("REPAIRDESK_PETTY_CASH_OPENING_BALANCE", "lots")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "petty_cash.opening_balance")
	})

	t.Run("rejects negative opening balance", func(t *testing.T) {
		isolate(t)
		t.Setenv("REPAIRDESK_PETTY_CASH_OPENING_BALANCE", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})

	t.Run("rejects unknown sequence backend", func(t *testing.T) {
		isolate(t)
		t.Setenv("REPAIRDESK_SEQUENCE_BACKEND", "etcd")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sequence.backend")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		isolate(t)
		t.Setenv("REPAIRDESK_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("REPAIRDESK_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		isolate(t)
		t.Setenv("REPAIRDESK_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("rejects sampling ratio above one", func(t *testing.T) {
		isolate(t)
		t.Setenv("REPAIRDESK_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		isolate(t)
		t.Setenv("REPAIRDESK_APP_ENV", "production")
		t.Setenv("REPAIRDESK_DATABASE_PASSWORD", "secure-password")
		t.Setenv("REPAIRDESK_DATABASE_SSLMODE", "require")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("REPAIRDESK_DATABASE_PASSWORD", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("REPAIRDESK_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("rejects wildcard CORS in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("REPAIRDESK_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})

	t.Run("rejects in-memory sequences in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("REPAIRDESK_SEQUENCE_BACKEND", "memory")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sequence.backend=memory")
	})

	t.Run("rejects full SQL logging in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("REPAIRDESK_TELEMETRY_DB_LOG_FULL_SQL", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db_log_full_sql")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}
