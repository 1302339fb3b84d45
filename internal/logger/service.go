package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/userhubapp/userhub/internal/config"
)

// LoggerService owns the optional New Relic application instance.
//
// When no license key is configured the service still exists but
// GetApplication returns nil, and every caller treats that as
// "telemetry disabled".
type LoggerService struct {
	app *newrelic.Application
}

// NewLoggerService initializes the New Relic agent from observability
// config. A missing license key is not an error; it simply disables
// the agent.
func NewLoggerService(cfg *config.ObservabilityConfig) (*LoggerService, error) {
	if cfg.NewRelic.LicenseKey == "" {
		return &LoggerService{}, nil
	}

	opts := []newrelic.ConfigOption{
		newrelic.ConfigAppName(fmt.Sprintf("%s-%s", cfg.ServiceName, cfg.Environment)),
		newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(cfg.NewRelic.DistributedTracingEnabled),
		newrelic.ConfigAppLogForwardingEnabled(cfg.NewRelic.AppLogForwardingEnabled),
	}
	if cfg.NewRelic.DebugLogging {
		opts = append(opts, newrelic.ConfigDebugLogger(os.Stdout))
	}

	app, err := newrelic.NewApplication(opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing new relic application: %w", err)
	}

	return &LoggerService{app: app}, nil
}

// GetApplication returns the New Relic application, or nil when the
// agent is disabled.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.app
}

// Shutdown flushes telemetry and stops the agent. Safe to call when
// the agent is disabled.
func (s *LoggerService) Shutdown(timeout time.Duration) {
	if s == nil || s.app == nil {
		return
	}
	s.app.Shutdown(timeout)
}
