// Package config loads optional server settings from a JSON file. Fields
// omitted from the file fall back to built-in defaults, so partial configs
// are safe. Command-line flags override anything loaded here.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pitwall-data/pitwall.report/internal/units"
)

// Built-in defaults, used when neither the config file nor a flag sets a
// value.
const (
	DefaultListen          = ":8000"
	DefaultProviderURL     = "http://localhost:8765"
	DefaultCacheBackend    = "memory"
	DefaultCachePath       = "sessions.db"
	DefaultUnits           = units.KPH
	DefaultProviderTimeout = 2 * time.Minute
)

// ServerConfig holds the optional settings of the pitwall server. Pointer
// fields distinguish "not set" from an explicit zero value.
type ServerConfig struct {
	Listen          *string `json:"listen,omitempty"`
	ProviderURL     *string `json:"provider_url,omitempty"`
	CacheBackend    *string `json:"cache_backend,omitempty"` // memory or sqlite
	CachePath       *string `json:"cache_path,omitempty"`
	Units           *string `json:"units,omitempty"`
	ProviderTimeout *string `json:"provider_timeout,omitempty"` // duration string like "2m"
}

// Load reads a ServerConfig from a JSON file. The path must carry a .json
// extension and the file must be under 1MB.
func Load(path string) (*ServerConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &ServerConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the set fields hold usable values.
func (c *ServerConfig) Validate() error {
	if c.CacheBackend != nil {
		switch *c.CacheBackend {
		case "memory", "sqlite":
		default:
			return fmt.Errorf("cache_backend must be memory or sqlite, got %q", *c.CacheBackend)
		}
	}
	if c.Units != nil && !units.IsValid(*c.Units) {
		return fmt.Errorf("units must be one of %s, got %q", units.ValidUnitsString(), *c.Units)
	}
	if c.ProviderTimeout != nil && *c.ProviderTimeout != "" {
		if _, err := time.ParseDuration(*c.ProviderTimeout); err != nil {
			return fmt.Errorf("invalid provider_timeout %q: %w", *c.ProviderTimeout, err)
		}
	}
	return nil
}

// Getters return the configured value or the built-in default.

func (c *ServerConfig) GetListen() string {
	if c != nil && c.Listen != nil {
		return *c.Listen
	}
	return DefaultListen
}

func (c *ServerConfig) GetProviderURL() string {
	if c != nil && c.ProviderURL != nil {
		return *c.ProviderURL
	}
	return DefaultProviderURL
}

func (c *ServerConfig) GetCacheBackend() string {
	if c != nil && c.CacheBackend != nil {
		return *c.CacheBackend
	}
	return DefaultCacheBackend
}

func (c *ServerConfig) GetCachePath() string {
	if c != nil && c.CachePath != nil {
		return *c.CachePath
	}
	return DefaultCachePath
}

func (c *ServerConfig) GetUnits() string {
	if c != nil && c.Units != nil {
		return *c.Units
	}
	return DefaultUnits
}

func (c *ServerConfig) GetProviderTimeout() time.Duration {
	if c != nil && c.ProviderTimeout != nil && *c.ProviderTimeout != "" {
		if d, err := time.ParseDuration(*c.ProviderTimeout); err == nil {
			return d
		}
	}
	return DefaultProviderTimeout
}
