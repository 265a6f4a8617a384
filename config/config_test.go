package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("BASIC_AUTH_CREDS", "")

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 100, cfg.Database.BatchSize)
	assert.Equal(t, 5*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, time.Duration(0), cfg.Sweep.Interval)
	assert.Empty(t, cfg.GetCreds())
	assert.False(t, cfg.MailgunEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("BASIC_AUTH_CREDS", "admin:secret, ops : hunter2")
	t.Setenv("SWEEP_INTERVAL", "6h")
	t.Setenv("MAILGUN_DOMAIN", "mg.urbansetu.app")
	t.Setenv("MAILGUN_API_KEY", "key-123")
	t.Setenv("DB_DRIVER", "postgres")

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"admin": "secret", "ops": "hunter2"}, cfg.GetCreds())
	assert.Equal(t, 6*time.Hour, cfg.Sweep.Interval)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.MailgunEnabled())
}

func TestLoad_CredentialsRequiredOutsideDevelopment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("BASIC_AUTH_CREDS", "")

	_, err := Load(zap.NewNop())
	assert.Error(t, err)
}

func TestParseCreds_Malformed(t *testing.T) {
	cfg := &Config{BasicAuthCreds: "admin:secret,broken"}
	_, err := cfg.parseCreds()
	assert.ErrorContains(t, err, "broken")
}

func TestListingURL(t *testing.T) {
	cfg := &Config{ClientURL: "https://urbansetu.app/"}
	assert.Equal(t, "https://urbansetu.app/listing/42", cfg.ListingURL(42))
}
