package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ALUMNI_ADDR", "PORT", "CLIENT_URL", "RESET_URL", "SESSION_TOKEN_TTL", "DATABASE_URL", "JWT_SECRET", "TRUST_PROXY"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 15*time.Minute, cfg.ResetTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.ClientURLs)
	assert.Equal(t, "http://localhost:5173/reset-password", cfg.ResetURL)
	assert.Equal(t, int64(25<<20), cfg.MaxUploadBytes)
	assert.False(t, cfg.Storage.Enabled())
	assert.False(t, cfg.Mail.Enabled())
	assert.False(t, cfg.TrustProxy)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ALUMNI_ADDR", "")
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "file:alumni.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SESSION_TOKEN_TTL", "30m")
	t.Setenv("CLIENT_URL", "https://alumni.example.edu/, https://admin.example.edu")
	t.Setenv("RESET_URL", "")
	t.Setenv("RL_LOGIN_PER_MIN", "not-a-number")
	t.Setenv("TRUST_PROXY", "true")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"https://alumni.example.edu/", "https://admin.example.edu"}, cfg.ClientURLs)
	assert.Equal(t, "https://alumni.example.edu/reset-password", cfg.ResetURL)
	assert.Equal(t, 10, cfg.RateLimits.LoginPerMinute)
	assert.True(t, cfg.TrustProxy)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDotEnvKeepsExistingVariables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ALUMNI_TEST_FROM_FILE=file\nALUMNI_TEST_PRESET=file\n"), 0o600))

	t.Setenv("ALUMNI_TEST_PRESET", "env")
	t.Setenv("ALUMNI_TEST_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("ALUMNI_TEST_FROM_FILE"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "file", os.Getenv("ALUMNI_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("ALUMNI_TEST_PRESET"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
