// internal/api/dashboard/mark-notification-read/config.go
package marknotificationread

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}
