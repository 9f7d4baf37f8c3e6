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
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, "password123", cfg.Auth.SharedPassword)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Latency.Enabled)
	assert.Equal(t, 300*time.Millisecond, cfg.Latency.Read)
	assert.Equal(t, 500*time.Millisecond, cfg.Latency.List)
	assert.Equal(t, 2*time.Second, cfg.Latency.Reindex)
	assert.Equal(t, 30*time.Second, cfg.Cache.StaleTime)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ragshop.yaml")
	content := `
server:
  port: 9090
latency:
  enabled: false
  read: 50ms
cache:
  stale_time: 1m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("RAGSHOP_AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Latency.Enabled)
	assert.Equal(t, 50*time.Millisecond, cfg.Latency.Read)
	assert.Equal(t, 500*time.Millisecond, cfg.Latency.Write)
	assert.Equal(t, time.Minute, cfg.Cache.StaleTime)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
