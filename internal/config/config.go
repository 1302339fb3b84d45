// Package config manages environment configuration.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), maps them into structured Go types, and
// validates that required values are present so the application fails
// fast on bad or missing config.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process
	// environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// The `koanf` tags map env keys onto fields; the `validate` tags are
// enforced with go-playground/validator after unmarshaling.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Storage       StorageConfig        `koanf:"storage" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment,
// used to tag logs/traces and to switch env-dependent behavior.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are interpreted as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// StorageConfig selects the file-storage driver and its root location.
//
// Driver "fs" writes under Location on the local filesystem. Driver
// "memory" keeps objects in process memory and exists for tests.
type StorageConfig struct {
	Driver   string `koanf:"driver" validate:"required,oneof=fs memory"`
	Location string `koanf:"location"`
}

// listValueKeys are the config keys whose env values are
// comma-separated lists. Only these are split, so values elsewhere
// (passwords, URLs) may contain commas.
var listValueKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

// Load reads configuration from environment variables, unmarshals it
// into Config, validates it, applies observability defaults, and
// returns the result.
//
// Env keys use the USERHUB_ prefix with "__" as the nesting separator:
//
//	USERHUB_SERVER__PORT              -> server.port
//	USERHUB_DATABASE__MAX_OPEN_CONNS  -> database.max_open_conns
//
// Load exits the process on any failure; there is no meaningful way to
// run without configuration.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue("USERHUB_", ".", func(key, value string) (string, interface{}) {
		mapped := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, "USERHUB_")), "__", ".")

		// List-typed keys arrive as one comma-separated variable; the
		// provider must split them itself.
		if listValueKeys[mapped] {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return mapped, parts
		}

		return mapped, value
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	applyObservabilityDefaults(mainConfig)

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}

// applyObservabilityDefaults fills unset observability settings before
// validation runs, so a partial override keeps working defaults.
func applyObservabilityDefaults(cfg *Config) {
	defaults := DefaultObservabilityConfig()

	if cfg.Observability == nil {
		cfg.Observability = defaults
	} else {
		obs := cfg.Observability
		if obs.Logging.Level == "" {
			obs.Logging.Level = defaults.Logging.Level
		}
		if obs.Logging.Format == "" {
			obs.Logging.Format = defaults.Logging.Format
		}
		if obs.Logging.SlowQueryThreshold == 0 {
			obs.Logging.SlowQueryThreshold = defaults.Logging.SlowQueryThreshold
		}
		if obs.HealthChecks.Timeout == 0 {
			obs.HealthChecks.Timeout = defaults.HealthChecks.Timeout
		}
		if len(obs.HealthChecks.Checks) == 0 {
			obs.HealthChecks.Checks = defaults.HealthChecks.Checks
		}
	}

	// Service name and environment are forced so telemetry sees
	// consistent naming regardless of what was configured.
	cfg.Observability.ServiceName = "userhub"
	cfg.Observability.Environment = cfg.Primary.Env
}
