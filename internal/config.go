package internal

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	Env           string              `mapstructure:"env" env:"APP_ENV" envDefault:"development"`
	Server        ServerConfig        `mapstructure:"http_server" envPrefix:"HTTP_"`
	Database      DatabaseConfig      `mapstructure:"database" envPrefix:"DB_"`
	Observability ObservabilityConfig `mapstructure:"observability" envPrefix:"OBSERVABILITY_"`
	Ledger        LedgerConfig        `mapstructure:"ledger" envPrefix:"LEDGER_"`
	API           APIConfig           `mapstructure:"api" envPrefix:"API_"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" env:"PORT" envDefault:"8080"`
	BaseURL           string        `mapstructure:"base_url" env:"BASE_URL"`
	AllowedOrigins    string        `mapstructure:"allowed_origins" env:"ALLOWED_ORIGINS"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout" env:"READ_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" env:"IDLE_TIMEOUT" envDefault:"60s"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" env:"WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" env:"MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" env:"CONN_MAX_IDLE_TIME" envDefault:"1m"`
	Source          string        `mapstructure:"source" env:"SOURCE,required"`
}

type ObservabilityConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics" envPrefix:"METRICS_"`
	Logging LoggingConfig `mapstructure:"logging" envPrefix:"LOG_"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" env:"ENABLED" envDefault:"false"`
	Path    string `mapstructure:"path" env:"PATH" envDefault:"/metrics"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" env:"LEVEL" envDefault:"info"`
	Format string `mapstructure:"format" env:"FORMAT" envDefault:"json"`
}

// LedgerConfig tunes payment ledger behaviour.
//
// StrictVerification turns VerifyPayment into a guarded pending -> completed
// transition. When false, re-verifying a completed payment re-applies the
// update and appends another payment_verified audit entry.
type LedgerConfig struct {
	Currency           string `mapstructure:"currency" env:"CURRENCY" envDefault:"BDT"`
	StrictVerification bool   `mapstructure:"strict_verification" env:"STRICT_VERIFICATION" envDefault:"false"`
}

type APIConfig struct {
	OpenAPIPath string `mapstructure:"openapi_path" env:"OPENAPI_PATH" envDefault:"api/openapi.yml"`
}

// LoadConfigFromEnv builds the config from plain environment variables, used
// for container deployments where no config file is mounted.
func LoadConfigFromEnv() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}
	return &cfg, nil
}

// ApplyDefaults fills zero values left by a sparse config file.
func (c *Config) ApplyDefaults() {
	if c.Env == "" {
		c.Env = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
	if c.Observability.Metrics.Path == "" {
		c.Observability.Metrics.Path = "/metrics"
	}
	if c.Ledger.Currency == "" {
		c.Ledger.Currency = "BDT"
	}
	if c.API.OpenAPIPath == "" {
		c.API.OpenAPIPath = "api/openapi.yml"
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Observability.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if err := c.Ledger.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("ledger config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error; got %q", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text; got %q", c.Format)
	}
	return nil
}

func (c *LedgerConfig) Validate() error {
	if len(c.Currency) != 3 {
		return fmt.Errorf("currency must be a 3 letter code; got %q", c.Currency)
	}
	return nil
}
