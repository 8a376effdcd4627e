package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", settings.Addr)
	assert.Equal(t, "", settings.APIBasePath)
	assert.Equal(t, []string{"http://localhost:3000", "http://0.0.0.0:3000"}, settings.AllowedOrigins)
	assert.Equal(t, "us-east-1", settings.DefaultRegion)
	assert.Equal(t, 10*time.Second, settings.ShutdownTimeout)
	assert.Equal(t, "redis://localhost:6379", settings.RedisURL)
	assert.Equal(t, time.Hour, settings.CacheTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BILLING_ADDR", ":9000")
	t.Setenv("BILLING_API_BASE_PATH", "/billing/")
	t.Setenv("BILLING_ALLOWED_ORIGINS", "https://dashboard.example.com, https://staging.example.com")
	t.Setenv("BILLING_DEFAULT_REGION", "eu-west-1")
	t.Setenv("BILLING_SHUTDOWN_TIMEOUT", "30s")

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", settings.Addr)
	assert.Equal(t, "/billing", settings.APIBasePath, "trailing slash is trimmed")
	assert.Equal(t, []string{"https://dashboard.example.com", "https://staging.example.com"}, settings.AllowedOrigins)
	assert.Equal(t, "eu-west-1", settings.DefaultRegion)
	assert.Equal(t, 30*time.Second, settings.ShutdownTimeout)
}

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "single origin", raw: "http://localhost:3000", expected: []string{"http://localhost:3000"}},
		{
			name:     "multiple with spaces",
			raw:      "http://a.test , http://b.test",
			expected: []string{"http://a.test", "http://b.test"},
		},
		{name: "empty entries dropped", raw: ",http://a.test,,", expected: []string{"http://a.test"}},
		{name: "empty string", raw: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitOrigins(tt.raw))
		})
	}
}
