// Package config loads splitday settings from an optional YAML file and
// SPLITDAY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix          = "SPLITDAY"
	minSecretLength    = 32
	placeholderSecret  = "change_me_in_production"
	exampleSecret      = "replace_with_at_least_32_random_characters"
	defaultDatabaseDir = "data"
)

var (
	ErrSecretMissing     = errors.New("auth.secret is required")
	ErrSecretPlaceholder = errors.New("auth.secret uses an insecure placeholder")
	ErrSecretTooShort    = fmt.Errorf("auth.secret must be at least %d characters", minSecretLength)
	ErrInvalidTimeZone   = errors.New("time.zone is not a known location")
	ErrDatabasePathEmpty = errors.New("database.path is required")
	ErrInvalidPort       = errors.New("server.port must be between 1 and 65535")
	ErrInvalidTokenTTL   = errors.New("auth token TTLs must be positive")
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Time     TimeConfig     `mapstructure:"time"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	MCP      MCPConfig      `mapstructure:"mcp"`
}

type ServerConfig struct {
	Port    string `mapstructure:"port"`
	AppName string `mapstructure:"app_name"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	Secret       string        `mapstructure:"secret"`
	AccessTTL    time.Duration `mapstructure:"access_ttl"`
	RefreshTTL   time.Duration `mapstructure:"refresh_ttl"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	JSON   bool   `mapstructure:"json"`
	File   string `mapstructure:"file"`
	Stdout bool   `mapstructure:"stdout"`
}

type TimeConfig struct {
	Zone string `mapstructure:"zone"`
}

type CatalogConfig struct {
	Seed bool `mapstructure:"seed"`
}

type MCPConfig struct {
	UserEmail string `mapstructure:"user_email"`
}

// Load reads config.yaml from the working directory or /etc/splitday, or the
// file at path when one is given. A missing search-path file is not an error.
// Environment variables override file values, e.g. SPLITDAY_AUTH_SECRET.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/splitday")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Auth.Secret = strings.TrimSpace(cfg.Auth.Secret)
	cfg.Server.Port = strings.TrimSpace(cfg.Server.Port)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.app_name", "splitday")
	v.SetDefault("database.path", defaultDatabaseDir+"/splitday.db")
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.access_ttl", "15m")
	v.SetDefault("auth.refresh_ttl", "168h")
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.stdout", true)
	v.SetDefault("time.zone", "UTC")
	v.SetDefault("catalog.seed", true)
	v.SetDefault("mcp.user_email", "")
}

// Validate checks the settings the server cannot start without.
func (cfg Config) Validate() error {
	if err := validateSecret(cfg.Auth.Secret); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Database.Path) == "" {
		return ErrDatabasePathEmpty
	}
	if _, err := cfg.Location(); err != nil {
		return err
	}
	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return ErrInvalidPort
	}
	if cfg.Auth.AccessTTL <= 0 || cfg.Auth.RefreshTTL <= 0 {
		return ErrInvalidTokenTTL
	}
	return nil
}

func validateSecret(secret string) error {
	switch {
	case secret == "":
		return ErrSecretMissing
	case secret == placeholderSecret || secret == exampleSecret:
		return ErrSecretPlaceholder
	case len(secret) < minSecretLength:
		return ErrSecretTooShort
	}
	return nil
}

func (cfg Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(strings.TrimSpace(cfg.Time.Zone))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, cfg.Time.Zone)
	}
	return location, nil
}
