package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
workers:
  search-businesses:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Directory.Source)
	assert.Equal(t, 1800, cfg.Signup.SessionTTL)
	assert.Equal(t, 200, cfg.Upload.TickInterval)
	assert.Equal(t, 10, cfg.Upload.Step)
	assert.Equal(t, 2500, cfg.Upload.VerifyDelay)
	assert.Equal(t, "https://lunoa.com", cfg.Referral.BaseURL)
	assert.Equal(t, "+92 123 456 7890", cfg.Profile.Phone)
	assert.Equal(t, 8, cfg.Profile.YearsActive)
	assert.Equal(t, "businesses", cfg.Database.Elasticsearch.Index)

	w := cfg.Workers["search-businesses"]
	assert.True(t, w.Enabled)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 30000, w.Timeout)
	assert.Equal(t, 3, w.MaxRetries)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TG_REDIS_ADDR", "redis.internal:6379")
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: ${TG_REDIS_ADDR}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", cfg.Database.Redis.Address)
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Camunda.BrokerAddress = "localhost:26500"
		cfg.Database.Redis.Address = "localhost:6379"
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid memory source", func(*Config) {}, ""},
		{"missing broker", func(c *Config) { c.Camunda.BrokerAddress = "" }, "camunda.broker_address"},
		{"postgres without host", func(c *Config) { c.Directory.Source = "postgres" }, "database.postgres.host"},
		{"unknown source", func(c *Config) { c.Directory.Source = "csv" }, "directory.source"},
		{"search index without addresses", func(c *Config) { c.Directory.SearchIndex = true }, "elasticsearch.addresses"},
		{"ses without region", func(c *Config) { c.AWS.SES.Enabled = true; c.AWS.Region = "" }, "aws.region"},
		{"upload step out of range", func(c *Config) { c.Upload.Step = 150 }, "upload.step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetWorkerConfig_FallsBackToDefaults(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{"submit-signup": {Enabled: false}}}

	assert.False(t, IsWorkerEnabled(cfg, "submit-signup"))
	assert.True(t, IsWorkerEnabled(cfg, "build-dashboard"))

	def := GetWorkerConfig(cfg, "build-dashboard")
	assert.Equal(t, 30000, def.Timeout)
	assert.Equal(t, 5, def.MaxJobsActive)
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, "www.akhtarindustries.com", p.Website)
	assert.Equal(t, "contact@akhtarindustries.com", p.Email)
	assert.Equal(t, 12, p.DocumentsVerified)
	assert.Equal(t, 3, p.PartnerReferences)
	assert.Equal(t, "2 days ago", p.LastUpdated)
	assert.NotEmpty(t, p.VerifiedDocuments)
}
