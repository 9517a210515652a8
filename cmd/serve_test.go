package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/agentdocs/internal/auth"
)

func TestNewServeCmdDefaults(t *testing.T) {
	cmd := newServeCmd()

	transport, err := cmd.Flags().GetString("transport")
	require.NoError(t, err)
	assert.Equal(t, "stdio", transport)

	httpAddr, err := cmd.Flags().GetString("http-addr")
	require.NoError(t, err)
	assert.Equal(t, ":8080", httpAddr)

	callTimeout, err := cmd.Flags().GetDuration("call-timeout")
	require.NoError(t, err)
	assert.Equal(t, auth.DefaultCallTimeout, callTimeout)

	metricsEnabled, err := cmd.Flags().GetBool("metrics-enabled")
	require.NoError(t, err)
	assert.True(t, metricsEnabled)

	metricsAddr, err := cmd.Flags().GetString("metrics-addr")
	require.NoError(t, err)
	assert.Equal(t, ":9090", metricsAddr)
}

func TestNewServeCmdFlagsExist(t *testing.T) {
	cmd := newServeCmd()

	for _, flag := range []string{
		"debug",
		"transport",
		"http-addr",
		"base-url",
		"google-client-id",
		"google-client-secret",
		"call-timeout",
		"metrics-enabled",
		"metrics-addr",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestRunServeRejectsUnknownTransport(t *testing.T) {
	err := runServe("websocket", false, ":8080", "", "", "", 30*time.Second, MetricsConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported transport type")
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
	assert.Equal(t, "1.2.3", rootCmd.Version)
}
