package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setProviderEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SERVICE_ROLE_KEY", "service-key")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PROVIDER_TIMEOUT", "")
}

func TestFromEnvDefaults(t *testing.T) {
	setProviderEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultAppEnv, cfg.AppEnv)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultProviderTimeout, cfg.ProviderTimeout)
	assert.Equal(t, "https://project.supabase.co", cfg.SupabaseURL)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnvOverrides(t *testing.T) {
	setProviderEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("PROVIDER_TIMEOUT", "5s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.True(t, cfg.IsProduction())
}

func TestFromEnvMissingSecrets(t *testing.T) {
	setProviderEnv(t)
	t.Setenv("SUPABASE_URL", "")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrMissingSupabaseURL)

	setProviderEnv(t)
	t.Setenv("SERVICE_ROLE_KEY", "")

	_, err = FromEnv()
	assert.ErrorIs(t, err, ErrMissingServiceRoleKey)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	setProviderEnv(t)
	t.Setenv("SUPABASE_URL", "project.supabase.co")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrInvalidSupabaseURL)

	setProviderEnv(t)
	t.Setenv("PROVIDER_TIMEOUT", "soon")

	_, err = FromEnv()
	assert.Error(t, err)
}

func TestServiceRole(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": ServiceRoleName,
		"iss":  "supabase",
	}).SignedString([]byte("not-the-real-secret"))
	require.NoError(t, err)

	cfg := &Config{ServiceRoleKey: token}
	role, err := cfg.ServiceRole()
	require.NoError(t, err)
	assert.Equal(t, ServiceRoleName, role)

	cfg.ServiceRoleKey = "plain-string"
	_, err = cfg.ServiceRole()
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SUPERADMIN_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("SUPERADMIN_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("SUPERADMIN_TEST_VALUE"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("SUPERADMIN_TEST_VALUE"))

	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}
