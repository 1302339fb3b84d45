// Package logger configures the application's logging and telemetry.
//
// It uses zerolog for structured logging and integrates with New Relic
// to forward logs and correlate them with traces. When no license key
// is configured, everything degrades to plain zerolog.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/userhubapp/userhub/internal/config"
)

// New builds the application's main logger from observability config.
//
// Format "console" writes human-friendly output for local development;
// anything else writes JSON. When the optional LoggerService carries a
// New Relic application, log lines are routed through the agent's
// writer so they are forwarded with trace linking metadata.
func New(cfg *config.ObservabilityConfig, service *LoggerService) *zerolog.Logger {
	level := ParseLevel(cfg.GetLogLevel())

	var out io.Writer = os.Stdout
	if cfg.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	} else if service != nil && service.GetApplication() != nil && cfg.NewRelic.AppLogForwardingEnabled {
		w := zerologWriter.New(os.Stdout, service.GetApplication())
		out = &w
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("env", cfg.Environment).
		Logger()

	return &logger
}

// ParseLevel maps a config level string to a zerolog level, defaulting
// to info for unknown values.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithTraceContext returns a child logger carrying the transaction's
// trace and span ids, so log lines can be joined with distributed
// traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}
	md := txn.GetTraceMetadata()
	return logger.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}

// NewPgxLogger builds the logger handed to the pgx tracelog adapter.
// SQL logging is noisy, so it gets its own console logger at the
// application's level rather than sharing the main JSON stream.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps the application log level to a pgx tracelog
// level.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	default:
		return tracelog.LogLevelError
	}
}
