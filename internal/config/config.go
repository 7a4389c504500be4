package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	StoreBadger = "badger"
	StoreMemory = "memory"
)

type Config struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	LogLevel        string        `koanf:"loglevel"`
	LayoutStore     string        `koanf:"layout_store" validate:"oneof=badger memory"`
	LayoutStorePath string        `koanf:"layout_store_path" validate:"required_if=LayoutStore badger"`
	VeeamAPIURL     string        `koanf:"veeam_api_url" validate:"omitempty,url"`
	VeeamAPIVersion string        `koanf:"veeam_api_version" validate:"required"`
	RelayTimeout    time.Duration `koanf:"relay_timeout" validate:"gt=0"`
	RelayRateLimit  int           `koanf:"relay_rate_limit" validate:"min=0"`
	CORSOrigins     string        `koanf:"cors_origins"`
}

// envKeys maps the supported environment variables onto koanf paths.
var envKeys = map[string]string{
	"PORT":              "port",
	"LOGLEVEL":          "loglevel",
	"LAYOUT_STORE":      "layout_store",
	"LAYOUT_STORE_PATH": "layout_store_path",
	"VEEAM_API_URL":     "veeam_api_url",
	"VEEAM_API_VERSION": "veeam_api_version",
	"RELAY_TIMEOUT":     "relay_timeout",
	"RELAY_RATE_LIMIT":  "relay_rate_limit",
	"CORS_ORIGINS":      "cors_origins",
}

func defaults() Config {
	return Config{
		Port:            8080,
		LogLevel:        "info",
		LayoutStore:     StoreBadger,
		LayoutStorePath: "data/layouts",
		VeeamAPIVersion: "1.3-rev1",
		RelayTimeout:    30 * time.Second,
		RelayRateLimit:  120,
		CORSOrigins:     "*",
	}
}

// New loads defaults overlaid with environment variables.
func New() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := new(Config)
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// envTransform drops every variable that is not a known key.
func envTransform(key string) string {
	return envKeys[key]
}

func (c *Config) Validate() error {
	c.LayoutStore = strings.ToLower(strings.TrimSpace(c.LayoutStore))
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
