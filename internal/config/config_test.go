package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/internal/config"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3900, cfg.App.Port)
	assert.Equal(t, config.StoreDriverMySQL, cfg.Store.Driver)
	assert.Equal(t, "db_social_network", cfg.MySQL.DB)
	assert.Equal(t, int64(2<<20), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, "0.0.0.0:3900", cfg.HTTPAddr())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[app]
port = 4000

[store]
driver = "memory"

[redis]
enabled = false
login_max_attempts = 3
`), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_PORT", "4100")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("RABBITMQ_ENABLED", "false")
	t.Setenv("UPLOAD_MAX_SIZE_BYTES", "1024")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 4100, cfg.App.Port)
	assert.Equal(t, config.StoreDriverMemory, cfg.Store.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Redis.LoginMaxAttempts)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, int64(1024), cfg.Upload.MaxSizeBytes)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "postgres"}},
		{name: "empty secret", env: map[string]string{"JWT_SECRET": ""}},
		{name: "non-positive upload size", env: map[string]string{"UPLOAD_MAX_SIZE_BYTES": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			require.Error(t, err)
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg := &config.Config{MySQL: config.MySQLConfig{
		Host: "db", Port: 3306, User: "u", Password: "p", DB: "social", Params: "parseTime=true",
	}}
	assert.Equal(t, "u:p@tcp(db:3306)/social?parseTime=true", cfg.MySQLDSN())
}
