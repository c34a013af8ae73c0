package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 2*time.Second, cfg.DB.RetryDelay)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 10, cfg.Security.LoginRateLimit)
	assert.True(t, cfg.Purchase.AllowStudentPurchases)
	assert.Equal(t, "9.99", cfg.Purchase.DefaultBookPrice.StringFixed(2))
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, []string{"*"}, cfg.App.AllowedOrigins)
	assert.Empty(t, cfg.Security.TrustedProxies)
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "DB_DRIVER=sqlite\nDB_PATH=/tmp/catalog.db\nPURCHASE_DEFAULT_PRICE=4.50\nPURCHASE_ALLOW_STUDENTS=false\nJWT_ACCESS_EXPIRY=bogus\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	t.Setenv("ENV_FILE", envFile)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.org, ,https://b.example.org")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "/tmp/catalog.db", cfg.DB.Path)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Purchase.AllowStudentPurchases)
	assert.Equal(t, "4.50", cfg.Purchase.DefaultBookPrice.StringFixed(2))
	// Unparseable durations fall back to their defaults
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, cfg.App.AllowedOrigins)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.Security.TrustedProxies)
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DB_DRIVER", "mysql")

	_, err := LoadConfig()
	assert.Error(t, err)
}
