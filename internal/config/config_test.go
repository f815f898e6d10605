package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VSPHERE_HOST", "vcenter.example.com")
	t.Setenv("VSPHERE_USERNAME", "administrator@vsphere.local")
	t.Setenv("VSPHERE_PASSWORD", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 443, cfg.VSphere.Port)
	assert.False(t, cfg.VSphere.Insecure)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "vsphere_inventory", cfg.MongoDB.DBName)
	assert.Equal(t, "0 * * * *", cfg.Collector.CronSchedule)
	assert.Equal(t, 5*time.Minute, cfg.Collector.RunTimeout)
	assert.Equal(t, 15*time.Second, cfg.Webhook.Timeout)
	assert.Empty(t, cfg.Webhook.URL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VSPHERE_PORT", "8443")
	t.Setenv("VSPHERE_INSECURE", "true")
	t.Setenv("COLLECT_CRON_SCHEDULE", "*/15 * * * *")
	t.Setenv("COLLECT_RUN_TIMEOUT", "90s")
	t.Setenv("WEBHOOK_URL", "https://consumer.example.com/hooks/inventory")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8443, cfg.VSphere.Port)
	assert.True(t, cfg.VSphere.Insecure)
	assert.Equal(t, "*/15 * * * *", cfg.Collector.CronSchedule)
	assert.Equal(t, 90*time.Second, cfg.Collector.RunTimeout)
	assert.Equal(t, "https://consumer.example.com/hooks/inventory", cfg.Webhook.URL)
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		wantErr string
	}{
		{name: "host", unset: "VSPHERE_HOST", wantErr: "VSPHERE_HOST"},
		{name: "username", unset: "VSPHERE_USERNAME", wantErr: "VSPHERE_USERNAME"},
		{name: "password", unset: "VSPHERE_PASSWORD", wantErr: "VSPHERE_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := Load("")
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port not a number", key: "VSPHERE_PORT", value: "sdk"},
		{name: "port out of range", key: "VSPHERE_PORT", value: "70000"},
		{name: "insecure not a bool", key: "VSPHERE_INSECURE", value: "maybe"},
		{name: "timeout not a duration", key: "COLLECT_RUN_TIMEOUT", value: "fast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			require.Error(t, err)
		})
	}
}

func TestLoadSheetsRequiresCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOOGLE_SHEET_EXPORT_ID", "1aBcD")

	_, err := Load("")
	require.Error(t, err)
	assert.ErrorContains(t, err, "GOOGLE_SHEETS_CREDENTIALS_PATH")
}
