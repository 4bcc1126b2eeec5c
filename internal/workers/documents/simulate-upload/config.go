package simulateupload

import (
	"time"

	"trustgrade-workers/internal/common/config"
	"trustgrade-workers/internal/upload"
)

type Config struct {
	Timeout time.Duration
	Upload  upload.Options
}

// LoadConfig reads tick, step and verify delay from the upload section. The job
// timeout must leave room for a full run.
func LoadConfig(wcfg config.WorkerConfig, ucfg config.UploadConfig) *Config {
	timeout := config.GetDuration(wcfg.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Config{
		Timeout: timeout,
		Upload: upload.Options{
			Tick:        config.GetDuration(ucfg.TickInterval),
			Step:        ucfg.Step,
			VerifyDelay: config.GetDuration(ucfg.VerifyDelay),
		},
	}
}
