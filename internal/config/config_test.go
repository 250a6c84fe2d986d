package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "HTTP_ADDR", "SECRET_KEY", "DATABASE_URL", "UPLOAD_DIR",
		"MAX_UPLOAD_BYTES", "SESSION_TTL", "COOKIE_SECURE",
		"DEFAULT_ADMIN_PASSWORD", "DEFAULT_CATEGORY", configFileEnv,
	} {
		t.Setenv(k, "")
	}
	// Keep a stray .env in the working directory out of the test.
	chdir(t, t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, defaultSecretKey, cfg.SecretKey)
	assert.Equal(t, "app.db", cfg.DatabaseURL)
	assert.Equal(t, int64(20*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "admin123", cfg.DefaultAdminPassword)
	assert.Equal(t, "Résumé", cfg.DefaultCategory)
	assert.ElementsMatch(t, []string{"pdf", "doc", "docx", "png", "jpg", "jpeg", "txt"}, cfg.AllowedExtensions)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/docs")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("COOKIE_SECURE", "yes")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.Equal(t, "postgres://u:p@localhost/docs", cfg.DatabaseURL)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
}

func TestLoad_YAMLFileBelowEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("upload_dir: /srv/docs\nhttp_addr: \":9000\"\n"), 0o600))
	t.Setenv(configFileEnv, path)
	t.Setenv("HTTP_ADDR", ":9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/docs", cfg.UploadDir)
	assert.Equal(t, ":9100", cfg.HTTPAddr)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("DEFAULT_CATEGORY=Contracts\n"), 0o600))
	// godotenv never overrides a variable that is already present, even empty.
	require.NoError(t, os.Unsetenv("DEFAULT_CATEGORY"))
	t.Cleanup(func() { _ = os.Unsetenv("DEFAULT_CATEGORY") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Contracts", cfg.DefaultCategory)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"MAX_UPLOAD_BYTES": "lots",
		"SESSION_TTL":      "forever",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_ProdRejectsDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")

	t.Setenv("SECRET_KEY", "0123456789abcdef0123456789abcdef")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_ADMIN_PASSWORD")

	t.Setenv("DEFAULT_ADMIN_PASSWORD", "a-much-better-password")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COOKIE_SECURE")

	t.Setenv("COOKIE_SECURE", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProdLike())
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
