// internal/api/onboarding/signup/config.go
package signup

import (
	"time"

	"storefront-platform/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{Timeout: 10 * time.Second}
	if cfg != nil && cfg.Server.RequestTimeout > 0 {
		c.Timeout = config.GetDuration(cfg.Server.RequestTimeout)
	}
	return c
}
