package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idverify/internal/identity"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.InDelta(t, 85.0, cfg.Thresholds.AutoVerify, 0.001)
	assert.InDelta(t, 70.0, cfg.Thresholds.ManualReview, 0.001)
	assert.InDelta(t, 50.0, cfg.Thresholds.AutoReject, 0.001)
	assert.Equal(t, 90, cfg.Thresholds.CompanyAutoVerify)
	assert.Equal(t, 70, cfg.Thresholds.CompanyManualReview)
	assert.Equal(t, ProviderPersona, cfg.Provider.Active)
	assert.Equal(t, 30*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "2023-01-05", cfg.Persona.Version)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
thresholds:
  auto_verify: 90
  manual_review: 60
provider:
  active: kora
log:
  level: debug
  format: text
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "idverify.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 90.0, cfg.Thresholds.AutoVerify, 0.001)
	assert.InDelta(t, 60.0, cfg.Thresholds.ManualReview, 0.001)
	assert.Equal(t, ProviderKora, cfg.Provider.Active)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.InDelta(t, 50.0, cfg.Thresholds.AutoReject, 0.001)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "idverify.yaml"), []byte(yaml), 0644))
	t.Setenv("IDVERIFY_LOG_LEVEL", "warn")
	t.Setenv("IDVERIFY_PROVIDER_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.Provider.Timeout)
}

func TestLoadRejectsInvalidThresholds(t *testing.T) {
	chdirTemp(t)
	t.Setenv("IDVERIFY_THRESHOLDS_MANUAL_REVIEW", "95")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:     ServerConfig{JWTSigningKey: "k"},
			Thresholds: ThresholdsConfig{AutoVerify: 85, ManualReview: 70, AutoReject: 50, CompanyAutoVerify: 90, CompanyManualReview: 70},
			Provider:   ProviderConfig{Active: ProviderPersona, Timeout: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "auto reject above manual review", mutate: func(c *Config) { c.Thresholds.AutoReject = 75 }, wantErr: true},
		{name: "auto verify above 100", mutate: func(c *Config) { c.Thresholds.AutoVerify = 101 }, wantErr: true},
		{name: "manual review above auto verify", mutate: func(c *Config) { c.Thresholds.ManualReview = 90 }, wantErr: true},
		{name: "company thresholds inverted", mutate: func(c *Config) { c.Thresholds.CompanyManualReview = 95 }, wantErr: true},
		{name: "unknown provider", mutate: func(c *Config) { c.Provider.Active = "acme" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Provider.Timeout = 0 }, wantErr: true},
		{name: "regulated mode with dev key", mutate: func(c *Config) {
			c.Server.RegulatedMode = true
			c.Server.JWTSigningKey = "dev-secret-key-change-in-production"
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_ScorerThresholdsShareIdentityRule(t *testing.T) {
	cfg := Config{
		Thresholds: ThresholdsConfig{AutoVerify: 85, ManualReview: 70, AutoReject: -1, CompanyAutoVerify: 90, CompanyManualReview: 70},
		Provider:   ProviderConfig{Active: ProviderPersona, Timeout: time.Second},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrInvalidThresholds)

	assert.Equal(t, identity.Thresholds{AutoVerify: 85, ManualReview: 70, AutoReject: -1}, cfg.Thresholds.Scorer())
}
