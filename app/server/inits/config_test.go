package inits

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hello-world-site/app/server/config"
	"testing"
)

// 清空可能影响结果的环境变量
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"MODE", "APP_ENV", "HOST", "PORT", "LISTEN", "RELOAD", "WORKERS", "LOG_LEVEL", "CORS_ORIGINS",
		"DB_DRIVER", "DB_CONN", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_PATH",
		"REDIS_CONN", "SECRET_KEY", "AUTH_MODE", "ADMIN_USERNAME", "LOGIN_REQUIRE_USERNAME", "ADMIN_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}

func TestConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Config()
	require.NoError(t, err)
	assert.False(t, cfg.System.IsProd)
	assert.Equal(t, "0.0.0.0:5000", cfg.System.Listen)
	assert.Equal(t, []string{"*"}, cfg.System.CORSOrigins)
	assert.Equal(t, config.DBDriverPostgres, cfg.Database.Driver)
	assert.Contains(t, cfg.Database.ConnectionString, "host=localhost port=5432")
	assert.Equal(t, config.AuthModeToken, cfg.Security.AuthMode)
	assert.Equal(t, "admin", cfg.Security.AdminUsername)
	assert.False(t, cfg.Security.LoginRequireUsername)
	assert.Equal(t, devSecretKey, cfg.Security.SecretKey)
	assert.Equal(t, "admin123", cfg.Bootstrap.AdminPassword)
	assert.NotContains(t, cfg.String(), devSecretKey)
}

func TestConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODE", "production")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "8000")
	t.Setenv("WORKERS", "4")
	t.Setenv("RELOAD", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/site.db")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("AUTH_MODE", "session")
	t.Setenv("REDIS_CONN", "redis://localhost:6379/0")
	t.Setenv("LOGIN_REQUIRE_USERNAME", "true")

	cfg, err := Config()
	require.NoError(t, err)
	assert.True(t, cfg.System.IsProd)
	assert.True(t, cfg.System.Debug)
	assert.Equal(t, 4, cfg.System.Workers)
	assert.Equal(t, "127.0.0.1:8000", cfg.System.Listen)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.System.CORSOrigins)
	assert.Equal(t, "/tmp/site.db", cfg.Database.ConnectionString)
	assert.Equal(t, "s3cret", cfg.Security.SecretKey)
	assert.Equal(t, config.AuthModeSession, cfg.Security.AuthMode)
	assert.True(t, cfg.Security.LoginRequireUsername)
}

func TestConfigErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"prod without secret":   {"MODE": "prod"},
		"session without redis": {"AUTH_MODE": "session"},
		"unknown auth mode":     {"AUTH_MODE": "basic"},
		"unknown driver":        {"DB_DRIVER": "mysql"},
		"bad workers":           {"WORKERS": "many"},
		"bad reload":            {"RELOAD": "sometimes"},
		"bad require username":  {"LOGIN_REQUIRE_USERNAME": "maybe"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Config()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseTarget(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.ConnectionString = "host=db user=app password=hunter2 dbname=site"
	assert.Equal(t, "host=db user=app password=*** dbname=site", cfg.DatabaseTarget())

	cfg.Database.ConnectionString = "postgres://app:hunter2@db:5432/site"
	assert.Equal(t, "postgres://app:***@db:5432/site", cfg.DatabaseTarget())
}
