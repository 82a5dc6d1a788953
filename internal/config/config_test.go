package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigtrip/internal/config"
)

func TestNewFromReader_OverridesDefaults(t *testing.T) {
	in := strings.NewReader("endpoint: https://example.test/big-trip\nauthorization: Basic abc123\n")

	c, err := config.NewFromReader(in)

	require.NoError(t, err)
	assert.Equal(t, "https://example.test/big-trip", c.Endpoint)
	assert.Equal(t, "Basic abc123", c.Authorization)
	assert.Equal(t, config.Default.DemoPoints, c.DemoPoints)
}

func TestNewFromReader_EmptyKeepsDefaults(t *testing.T) {
	c, err := config.NewFromReader(strings.NewReader(""))

	require.NoError(t, err)
	assert.Equal(t, config.Default.Endpoint, c.Endpoint)
}

func TestNewFromReader_RejectsBadEndpoint(t *testing.T) {
	in := strings.NewReader("endpoint: not-a-url\nauthorization: Basic abc\n")

	_, err := config.NewFromReader(in)

	assert.Error(t, err)
}

func TestNewFromReader_RejectsMissingAuthorization(t *testing.T) {
	in := strings.NewReader("endpoint: https://example.test\nauthorization: \"\"\n")

	_, err := config.NewFromReader(in)

	assert.Error(t, err)
}
