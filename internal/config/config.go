// Package config loads service configuration from an optional YAML file
// overridden by environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the service's environment variables, e.g.
// STOREFRONT_SERVER__PORT=8080 maps to server.port.
const envPrefix = "STOREFRONT_"

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Log       LogConfig       `koanf:"log"`
	JWT       JWTConfig       `koanf:"jwt"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Stripe    StripeConfig    `koanf:"stripe"`
	PayPal    PayPalConfig    `koanf:"paypal"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	MetricsPort     int           `koanf:"metrics_port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig contains PostgreSQL settings. URL, when set, wins over
// the individual fields.
type DatabaseConfig struct {
	URL      string `koanf:"url"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"ssl_mode"`
	MaxConns int32  `koanf:"max_conns"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// JWTConfig contains token signing settings.
type JWTConfig struct {
	Secret        string        `koanf:"secret"`
	TokenDuration time.Duration `koanf:"token_duration"`
}

// CORSConfig contains CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// RateLimitConfig throttles the credential endpoints per client IP.
type RateLimitConfig struct {
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	TTL               time.Duration `koanf:"ttl"`
}

// StripeConfig contains card payment provider settings. The gateway is
// disabled when the secret key is empty.
type StripeConfig struct {
	SecretKey string `koanf:"secret_key"`
}

// PayPalConfig contains redirect payment provider settings. The gateway
// is disabled when the client id is empty.
type PayPalConfig struct {
	ClientID string `koanf:"client_id"`
	Secret   string `koanf:"secret"`
	Live     bool   `koanf:"live"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			MetricsPort:     9090,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "storefront",
			Password: "storefront",
			Name:     "storefront",
			SSLMode:  "disable",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		JWT: JWTConfig{
			TokenDuration: 24 * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
			TTL:               10 * time.Minute,
		},
	}
}

// Load reads configuration from the given YAML file (if it exists) and
// the environment. Environment variables win; nested keys use a double
// underscore, e.g. STOREFRONT_DATABASE__MAX_CONNS.
func Load(path string) (*Config, error) {
	cfg := defaults()

	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file: %w", err)
			}
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required")
	}

	return &cfg, nil
}
