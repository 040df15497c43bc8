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
	t.Setenv("STOREFRONT_JWT__SECRET", "test-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenDuration)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Empty(t, cfg.Stripe.SecretKey)
}

func TestLoad_MissingSecret(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9000
database:
  name: shop_test
jwt:
  secret: file-secret
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("STOREFRONT_SERVER__PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "env should override the file")
	assert.Equal(t, "shop_test", cfg.Database.Name)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Name: "store", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@db:5432/store?sslmode=disable", d.DSN())
}
