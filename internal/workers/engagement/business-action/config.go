package businessaction

import (
	"time"

	"trustgrade-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// Contact fallbacks used when the business record has no phone or website.
	Profile config.ProfileConfig
}

func LoadConfig(wcfg config.WorkerConfig, profile config.ProfileConfig) *Config {
	timeout := config.GetDuration(wcfg.Timeout)
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Config{Timeout: timeout, Profile: profile}
}
