package config

import (
	"net"
	"time"
)

// Settings is the typed form of the configuration keys.
type Settings struct {
	Server    ServerSettings    `mapstructure:"server"`
	Catalog   CatalogSettings   `mapstructure:"catalog"`
	CORS      CORSSettings      `mapstructure:"cors"`
	RateLimit RateLimitSettings `mapstructure:"ratelimit"`
	Trailer   TrailerSettings   `mapstructure:"trailer"`
	Log       LogSettings       `mapstructure:"log"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns host:port.
func (s ServerSettings) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// CatalogSettings selects the catalog source. An empty Path serves the
// embedded sample catalog.
type CatalogSettings struct {
	Path string `mapstructure:"path"`
}

// CORSSettings configures cross-origin access.
type CORSSettings struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
}

// RateLimitSettings configures the per-client inbound rate limit.
type RateLimitSettings struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// TrailerSettings configures the outbound trailer lookup.
type TrailerSettings struct {
	Enabled   bool          `mapstructure:"enabled"`
	SearchURL string        `mapstructure:"search_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Retries   int           `mapstructure:"retries"`
	Rate      float64       `mapstructure:"rate"`
	Burst     int           `mapstructure:"burst"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// LogSettings configures the zap logger.
type LogSettings struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}
