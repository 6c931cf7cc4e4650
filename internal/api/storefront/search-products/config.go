// internal/api/storefront/search-products/config.go
package searchproducts

import (
	"time"

	"storefront-platform/internal/common/config"
)

type Config struct {
	Timeout         time.Duration
	DefaultPageSize int
	MaxPageSize     int
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{Timeout: 10 * time.Second, DefaultPageSize: 24, MaxPageSize: 100}
	if cfg == nil {
		return c
	}
	if cfg.Search.DefaultPageSize > 0 {
		c.DefaultPageSize = cfg.Search.DefaultPageSize
	}
	if cfg.Search.MaxPageSize > 0 {
		c.MaxPageSize = cfg.Search.MaxPageSize
	}
	return c
}
