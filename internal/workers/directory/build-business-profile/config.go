package buildbusinessprofile

import (
	"time"

	"trustgrade-workers/internal/common/config"
)

type Config struct {
	Timeout  time.Duration
	Defaults config.ProfileConfig
}

// LoadConfig takes the profile fallbacks from the application config.
func LoadConfig(wcfg config.WorkerConfig, defaults config.ProfileConfig) *Config {
	timeout := config.GetDuration(wcfg.Timeout)
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Config{Timeout: timeout, Defaults: defaults}
}
