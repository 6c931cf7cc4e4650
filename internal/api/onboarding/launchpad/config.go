// internal/api/onboarding/launchpad/config.go
package launchpad

import (
	"time"

	"storefront-platform/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	BaseDomain   string
	MaxLogoBytes int
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:      30 * time.Second,
		BaseDomain:   "koopi.online",
		MaxLogoBytes: 5 << 20,
	}
	if cfg != nil && cfg.Tenant.BaseDomain != "" {
		c.BaseDomain = cfg.Tenant.BaseDomain
	}
	return c
}
