package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL       string `mapstructure:"rahkaran_base_url"`
	Username      string `mapstructure:"rahkaran_username"`
	Password      string `mapstructure:"rahkaran_password"`
	CookiesRaw    string `mapstructure:"rahkaran_cookies"`
	EndpointsFile string `mapstructure:"rahkaran_endpoints_file"`
	UserAgent     string `mapstructure:"user_agent"`

	LoginServiceURL    string            `mapstructure:"login_service_url"`
	HTTPTimeoutSeconds int64             `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration     `mapstructure:"-"`
	Cookies            map[string]string `mapstructure:"-"`

	PublishersFile string `mapstructure:"publishers_file"`

	StorageType       string        `mapstructure:"storage_type"`
	BBoltPath         string        `mapstructure:"bbolt_path"`
	SessionTTLSeconds int64         `mapstructure:"session_ttl_seconds"`
	SessionTTL        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "rahkaran-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("rahkaran_base_url", "")
	v.SetDefault("rahkaran_username", "")
	v.SetDefault("rahkaran_password", "")
	v.SetDefault("rahkaran_cookies", "")
	v.SetDefault("rahkaran_endpoints_file", "")
	v.SetDefault("user_agent", "RahkaranGoClient/1.0")
	v.SetDefault("login_service_url", "")
	v.SetDefault("http_timeout_seconds", 10)
	v.SetDefault("publishers_file", "")
	v.SetDefault("storage_type", "none")
	v.SetDefault("bbolt_path", "./data/session.db")
	v.SetDefault("session_ttl_seconds", int64((30*time.Minute)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) finalize() error {
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		return fmt.Errorf("rahkaran_base_url is required")
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.SessionTTLSeconds <= 0 {
		return fmt.Errorf("invalid session_ttl_seconds (must be positive seconds)")
	}
	cfg.SessionTTL = time.Duration(cfg.SessionTTLSeconds) * time.Second

	cookies, err := ParseCookies(cfg.CookiesRaw)
	if err != nil {
		return fmt.Errorf("invalid rahkaran_cookies: %w", err)
	}
	cfg.Cookies = cookies

	if len(cfg.Cookies) == 0 && (cfg.Username == "" || cfg.Password == "") {
		return fmt.Errorf("either rahkaran_cookies or rahkaran_username and rahkaran_password are required")
	}
	if len(cfg.Cookies) == 0 && strings.TrimSpace(cfg.LoginServiceURL) == "" {
		return fmt.Errorf("login_service_url is required for username/password login")
	}
	return nil
}

// ParseCookies parses a "name=value; other=value" list.
func ParseCookies(raw string) (map[string]string, error) {
	out := map[string]string{}
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed cookie %q", part)
		}
		out[name] = strings.TrimSpace(value)
	}
	return out, nil
}

// Redacted returns a loggable view of the config without secrets.
func (cfg Config) Redacted() map[string]any {
	return map[string]any{
		"app_name":             cfg.AppName,
		"app_env":              cfg.Env,
		"log_level":            cfg.LogLevel,
		"rahkaran_base_url":    cfg.BaseURL,
		"rahkaran_username":    cfg.Username,
		"cookie_count":         len(cfg.Cookies),
		"endpoints_file":       cfg.EndpointsFile,
		"login_service_url":    cfg.LoginServiceURL,
		"http_timeout_seconds": cfg.HTTPTimeoutSeconds,
		"publishers_file":      cfg.PublishersFile,
		"storage_type":         cfg.StorageType,
		"bbolt_path":           cfg.BBoltPath,
		"session_ttl_seconds":  cfg.SessionTTLSeconds,
	}
}
