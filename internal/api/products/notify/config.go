// internal/api/products/notify/config.go
package notify

import (
	"time"

	"storefront-platform/internal/common/config"
)

type Config struct {
	Timeout    time.Duration
	RateLimit  int
	RateWindow time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:    10 * time.Second,
		RateLimit:  10,
		RateWindow: time.Minute,
	}
	if cfg == nil {
		return c
	}
	if cfg.Server.RequestTimeout > 0 {
		c.Timeout = config.GetDuration(cfg.Server.RequestTimeout)
	}
	if cfg.Notify.RateLimit > 0 {
		c.RateLimit = cfg.Notify.RateLimit
	}
	if cfg.Notify.RateWindow > 0 {
		c.RateWindow = time.Duration(cfg.Notify.RateWindow) * time.Second
	}
	return c
}
