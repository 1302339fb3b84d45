package config

import (
	"fmt"
	"time"
)

// ObservabilityConfig groups configuration related to telemetry and
// runtime visibility: structured logging, New Relic APM/tracing, and
// dependency health checks.
//
// It is embedded under Config.Observability and is optional at the
// root level; DefaultObservabilityConfig fills the gap when omitted.
type ObservabilityConfig struct {
	// ServiceName identifies this service in logs/traces/APM
	// dashboards. Hardcoded per service in Load.
	ServiceName string `koanf:"service_name" validate:"required"`

	// Environment labels telemetry by runtime environment
	// (production, development, local, ...).
	Environment string `koanf:"environment" validate:"required"`

	// Logging controls structured logger behavior.
	Logging LoggingConfig `koanf:"logging" validate:"required"`

	// NewRelic controls APM and tracing features.
	NewRelic NewRelicConfig `koanf:"new_relic"`

	// HealthChecks controls dependency health checks.
	HealthChecks HealthChecksConfig `koanf:"health_checks"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level" validate:"required"`

	// Format selects the log output format ("json" or "console").
	Format string `koanf:"format" validate:"required"`

	// SlowQueryThreshold is the duration beyond which queries are
	// flagged as slow. Supply parseable duration strings ("100ms").
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
//
// An empty LicenseKey means "not configured"; the agent is then never
// initialized and all instrumentation degrades to no-ops.
type NewRelicConfig struct {
	LicenseKey string `koanf:"license_key"`

	// AppLogForwardingEnabled forwards application logs to New Relic.
	AppLogForwardingEnabled bool `koanf:"app_log_forwarding_enabled"`

	// DistributedTracingEnabled enables cross-service trace
	// propagation.
	DistributedTracingEnabled bool `koanf:"distributed_tracing_enabled"`

	// DebugLogging enables agent debug output. Off in production to
	// avoid mixed log formats.
	DebugLogging bool `koanf:"debug_logging"`
}

// HealthChecksConfig controls the dependency checks reported by the
// /status endpoint.
type HealthChecksConfig struct {
	Enabled bool `koanf:"enabled"`

	// Timeout is the max time allowed per dependency check.
	Timeout time.Duration `koanf:"timeout" validate:"omitempty,min=1s"`

	// Checks lists the check names to run (database, storage).
	Checks []string `koanf:"checks"`
}

// DefaultObservabilityConfig provides the defaults used when
// Config.Observability is not supplied via the environment.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		// ServiceName and Environment are overwritten in Load.
		ServiceName: "userhub",
		Environment: "development",

		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 100 * time.Millisecond,
		},

		NewRelic: NewRelicConfig{
			LicenseKey:                "",
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false,
		},

		HealthChecks: HealthChecksConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
			Checks:  []string{"database", "storage"},
		},
	}
}

// Validate applies rules that go beyond struct tags: enum membership
// and cross-field constraints.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}

	if c.Logging.SlowQueryThreshold < 0 {
		return fmt.Errorf("logging slow_query_threshold must be non-negative")
	}

	return nil
}

// GetLogLevel returns the effective log level, defaulting by
// environment when none is set.
func (c *ObservabilityConfig) GetLogLevel() string {
	switch c.Environment {
	case "production":
		if c.Logging.Level == "" {
			return "info"
		}
	case "development", "local":
		if c.Logging.Level == "" {
			return "debug"
		}
	}
	return c.Logging.Level
}

// IsProduction reports whether the application runs in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}
