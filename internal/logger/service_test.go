package logger

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhubapp/userhub/internal/config"
)

func TestNewLoggerServiceDisabledWithoutLicenseKey(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()

	svc, err := NewLoggerService(cfg)
	require.NoError(t, err)
	assert.Nil(t, svc.GetApplication())

	// Safe no-ops when the agent is disabled.
	svc.Shutdown(time.Millisecond)

	var nilSvc *LoggerService
	assert.Nil(t, nilSvc.GetApplication())
}

func TestNewLoggerServiceBuildsAgentFromConfig(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.NewRelic.LicenseKey = strings.Repeat("0", 40)
	cfg.NewRelic.DistributedTracingEnabled = true
	cfg.NewRelic.AppLogForwardingEnabled = true

	svc, err := NewLoggerService(cfg)
	require.NoError(t, err)
	require.NotNil(t, svc.GetApplication())

	svc.Shutdown(time.Second)
}
