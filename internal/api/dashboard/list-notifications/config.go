// internal/api/dashboard/list-notifications/config.go
package listnotifications

import "time"

type Config struct {
	Timeout      time.Duration
	DefaultLimit int
	MaxLimit     int
}

func LoadConfig() *Config {
	return &Config{Timeout: 5 * time.Second, DefaultLimit: 50, MaxLimit: 200}
}
