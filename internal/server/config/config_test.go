package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPServer.Address)
	assert.Equal(t, "leeroy.db", cfg.Storage.DBPath)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 43200, cfg.Auth.RefreshTokenTTLMinutes)
	assert.NotEmpty(t, cfg.Auth.JWTSignatureSecret)
	assert.NotEmpty(t, cfg.Bootstrap.AdminEmail)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("DB_PATH", "/var/lib/leeroy/db.sqlite")
	t.Setenv("JWT_SIGNATURE_SECRET", "env-secret")
	t.Setenv("ACCESS_TOKEN_TTL_IN_MINUTES", "15")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, ":9090", cfg.HTTPServer.Address)
	assert.Equal(t, "/var/lib/leeroy/db.sqlite", cfg.Storage.DBPath)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSignatureSecret)
	assert.Equal(t, 15, cfg.Auth.AccessTokenTTLMinutes)
}

func TestLoad_YAMLFile(t *testing.T) {
	content := `
env: dev
http_server:
  address: ":3000"
  read_timeout: 5s
storage:
  db_path: "test.db"
auth:
  jwt_signature_secret: "yaml-secret"
  access_token_ttl_in_minutes: 30
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":3000", cfg.HTTPServer.Address)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.ReadTimeout)
	assert.Equal(t, "test.db", cfg.Storage.DBPath)
	assert.Equal(t, "yaml-secret", cfg.Auth.JWTSignatureSecret)
	assert.Equal(t, 30, cfg.Auth.AccessTokenTTLMinutes)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestAuth_TTLHelpers(t *testing.T) {
	auth := Auth{
		AccessTokenTTLMinutes:  60,
		RefreshTokenTTLMinutes: 43200,
	}

	assert.Equal(t, time.Hour, auth.AccessTokenTTL())
	assert.Equal(t, 30*24*time.Hour, auth.RefreshTokenTTL())
}
