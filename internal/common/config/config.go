package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Directory     DirectoryConfig         `mapstructure:"directory"`
	Signup        SignupConfig            `mapstructure:"signup"`
	Upload        UploadConfig            `mapstructure:"upload"`
	Referral      ReferralConfig          `mapstructure:"referral"`
	Profile       ProfileConfig           `mapstructure:"profile"`
	AWS           AWSConfig               `mapstructure:"aws"`
	API           APIConfig               `mapstructure:"api"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	Plaintext      bool   `mapstructure:"plaintext"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DirectoryConfig selects where business records come from.
type DirectoryConfig struct {
	Source      string `mapstructure:"source"` // memory | postgres
	SearchIndex bool   `mapstructure:"search_index"`
	CacheTTL    int    `mapstructure:"cache_ttl"` // seconds, 0 disables the cache
}

type SignupConfig struct {
	SessionTTL int `mapstructure:"session_ttl"` // seconds
}

// UploadConfig drives the simulated document upload.
type UploadConfig struct {
	TickInterval int `mapstructure:"tick_interval"` // milliseconds
	Step         int `mapstructure:"step"`          // percent per tick
	VerifyDelay  int `mapstructure:"verify_delay"`  // milliseconds
}

type ReferralConfig struct {
	BaseURL    string            `mapstructure:"base_url"`
	FixedCodes map[string]string `mapstructure:"fixed_codes"` // business slug -> code
	Subject    string            `mapstructure:"subject"`
}

// ProfileConfig carries the fallbacks used when a business has no public contact data.
type ProfileConfig struct {
	Phone             string   `mapstructure:"phone"`
	Website           string   `mapstructure:"website"`
	Email             string   `mapstructure:"email"`
	YearsActive       int      `mapstructure:"years_active"`
	DocumentsVerified int      `mapstructure:"documents_verified"`
	PartnerReferences int      `mapstructure:"partner_references"`
	LastUpdated       string   `mapstructure:"last_updated"`
	VerifiedDocuments []string `mapstructure:"verified_documents"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
	SES    struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"ses"`
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sns"`
}

type APIConfig struct {
	Enabled     bool     `mapstructure:"enabled"`
	Address     string   `mapstructure:"address"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
