// internal/api/orders/update-status/config.go
package updatestatus

import (
	"time"

	"storefront-platform/internal/common/config"
	"storefront-platform/internal/inventory"
)

type Config struct {
	Timeout                  time.Duration
	DefaultLowStockThreshold int
	ActiveStatuses           []string
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:                  10 * time.Second,
		DefaultLowStockThreshold: inventory.DefaultLowStockThreshold,
		ActiveStatuses:           []string{"Processing", "Shipped"},
	}
	if cfg == nil {
		return c
	}
	if cfg.Server.RequestTimeout > 0 {
		c.Timeout = config.GetDuration(cfg.Server.RequestTimeout)
	}
	if cfg.Inventory.DefaultLowStockThreshold > 0 {
		c.DefaultLowStockThreshold = cfg.Inventory.DefaultLowStockThreshold
	}
	if len(cfg.Inventory.ActiveStatuses) > 0 {
		c.ActiveStatuses = cfg.Inventory.ActiveStatuses
	}
	return c
}
