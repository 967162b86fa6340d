package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://localhost/taskmanager?sslmode=disable
session:
  secret: s3cret
`)
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL())
}

func TestLoadConfigFull(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
database:
  url: postgres://localhost/taskmanager?sslmode=disable
session:
  secret: s3cret
  ttl_hours: 2
email:
  smtp_host: smtp.example.com
  smtp_port: 587
  from_email: noreply@example.com
`)
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL())
	assert.Equal(t, "smtp.example.com", cfg.Email.SMTPHost)
}

func TestLoadConfigRequiresSecretAndDSN(t *testing.T) {
	_, err := config.LoadConfig(writeConfig(t, "database:\n  url: postgres://x\n"))
	assert.ErrorContains(t, err, "session.secret")

	_, err = config.LoadConfig(writeConfig(t, "session:\n  secret: s\n"))
	assert.ErrorContains(t, err, "database.url")

	_, err = config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
