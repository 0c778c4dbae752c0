// Package config wraps viper with nil-safe accessors and the Stinger
// defaults, file and environment layering.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. STINGER_SERVER_PORT.
const EnvPrefix = "STINGER"

// Config is a read-only view over a viper instance.
type Config struct {
	v *viper.Viper
}

// New wraps v. A nil v behaves as an empty configuration.
func New(v *viper.Viper) *Config {
	if v == nil {
		v = viper.New()
	}
	return &Config{v: v}
}

// Load builds the configuration from defaults, the optional YAML file at
// path and STINGER_* environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	} else {
		v.SetConfigName("stinger")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/stinger")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return New(v), nil
}

// SetDefaults registers the default value of every known key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("catalog.path", "")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests", 300)
	v.SetDefault("ratelimit.window", time.Minute)

	v.SetDefault("trailer.enabled", true)
	v.SetDefault("trailer.search_url", "https://www.youtube.com/results")
	v.SetDefault("trailer.timeout", 10*time.Second)
	v.SetDefault("trailer.retries", 2)
	v.SetDefault("trailer.rate", 2.0)
	v.SetDefault("trailer.burst", 4)
	v.SetDefault("trailer.cache_ttl", 6*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// GetString returns the value of key as a string.
func (c *Config) GetString(key string) string { return c.v.GetString(key) }

// GetInt returns the value of key as an int.
func (c *Config) GetInt(key string) int { return c.v.GetInt(key) }

// GetBool returns the value of key as a bool.
func (c *Config) GetBool(key string) bool { return c.v.GetBool(key) }

// GetFloat64 returns the value of key as a float64.
func (c *Config) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }

// GetDuration returns the value of key as a time.Duration.
func (c *Config) GetDuration(key string) time.Duration { return c.v.GetDuration(key) }

// GetStringSlice returns the value of key as a []string.
func (c *Config) GetStringSlice(key string) []string { return c.v.GetStringSlice(key) }

// IsSet reports whether key has a value from any source.
func (c *Config) IsSet(key string) bool { return c.v.IsSet(key) }

// Sub returns the subtree under key. A missing subtree yields an empty
// Config, never nil.
func (c *Config) Sub(key string) *Config {
	return New(c.v.Sub(key))
}

// Unmarshal decodes the whole configuration into target using mapstructure tags.
func (c *Config) Unmarshal(target any) error {
	return c.v.Unmarshal(target)
}

// Settings decodes the configuration into typed settings.
func (c *Config) Settings() (Settings, error) {
	var s Settings
	if err := c.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}
