package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultAppEnv               = "dev"
	defaultHTTPAddr             = ":8080"
	defaultSecretKey            = "change-me-in-production"
	defaultDatabaseURL          = "app.db"
	defaultUploadDir            = "./uploads"
	defaultMaxUploadBytes       = "20971520" // 20 MiB
	defaultSessionTTL           = "12h"
	defaultCookieSecure         = "false"
	defaultAdminPassword        = "admin123"
	defaultDocumentCategory     = "Résumé"
	defaultEnvFile              = ".env"
	configFileEnv               = "CONFIG_FILE"
	minSecretKeyLengthInRelease = 32
)

// AllowedExtensions is the fixed set of accepted upload extensions (lower case, no dot).
var AllowedExtensions = []string{"pdf", "doc", "docx", "png", "jpg", "jpeg", "txt"}

type Config struct {
	AppEnv               string
	HTTPAddr             string
	SecretKey            string
	DatabaseURL          string
	UploadDir            string
	MaxUploadBytes       int64
	AllowedExtensions    []string
	SessionTTL           time.Duration
	CookieSecure         bool
	DefaultAdminPassword string
	DefaultCategory      string
}

// fileConfig mirrors the optional YAML file. Keys use the same names as the
// environment variables, lower-cased.
type fileConfig struct {
	AppEnv               string `yaml:"app_env"`
	HTTPAddr             string `yaml:"http_addr"`
	SecretKey            string `yaml:"secret_key"`
	DatabaseURL          string `yaml:"database_url"`
	UploadDir            string `yaml:"upload_dir"`
	MaxUploadBytes       string `yaml:"max_upload_bytes"`
	SessionTTL           string `yaml:"session_ttl"`
	CookieSecure         string `yaml:"cookie_secure"`
	DefaultAdminPassword string `yaml:"default_admin_password"`
	DefaultCategory      string `yaml:"default_category"`
}

// Load builds the configuration from defaults, an optional YAML file
// (CONFIG_FILE), a .env file and the process environment, in increasing order
// of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", defaultEnvFile, err)
	}

	fc, err := readFile(strings.TrimSpace(os.Getenv(configFileEnv)))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AllowedExtensions: append([]string(nil), AllowedExtensions...),
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", or(fc.AppEnv, defaultAppEnv))))
	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", or(fc.HTTPAddr, defaultHTTPAddr)))
	cfg.SecretKey = strings.TrimSpace(getEnv("SECRET_KEY", or(fc.SecretKey, defaultSecretKey)))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", or(fc.DatabaseURL, defaultDatabaseURL)))
	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", or(fc.UploadDir, defaultUploadDir)))
	cfg.DefaultAdminPassword = getEnv("DEFAULT_ADMIN_PASSWORD", or(fc.DefaultAdminPassword, defaultAdminPassword))
	cfg.DefaultCategory = strings.TrimSpace(getEnv("DEFAULT_CATEGORY", or(fc.DefaultCategory, defaultDocumentCategory)))
	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", or(fc.CookieSecure, defaultCookieSecure))

	cfg.MaxUploadBytes, err = parseInt64Env("MAX_UPLOAD_BYTES", or(fc.MaxUploadBytes, defaultMaxUploadBytes))
	if err != nil {
		return nil, err
	}

	cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", or(fc.SessionTTL, defaultSessionTTL))
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProdLike reports whether the app runs in a production-like environment.
func (c *Config) IsProdLike() bool {
	return isProdLike(c.AppEnv)
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fc, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, fmt.Errorf("failed to decode config file: %w", err)
	}
	return fc, nil
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if cfg.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY must not be empty")
	}
	if cfg.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be > 0")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.DefaultCategory == "" {
		return fmt.Errorf("DEFAULT_CATEGORY must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.SecretKey, defaultSecretKey) {
			return fmt.Errorf("in prod/release SECRET_KEY must be set and not default")
		}
		if len(cfg.SecretKey) < minSecretKeyLengthInRelease {
			return fmt.Errorf("in prod/release SECRET_KEY must be at least %d characters", minSecretKeyLengthInRelease)
		}
		if isEmptyOrDefault(cfg.DefaultAdminPassword, defaultAdminPassword) {
			return fmt.Errorf("in prod/release DEFAULT_ADMIN_PASSWORD must be set and not default")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseInt64Env(name, fallback string) (int64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func or(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
