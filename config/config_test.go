package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeops/services"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "./pb_data", cfg.App.DataDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, services.USD, cfg.Pricing.Currency())
	assert.True(t, cfg.IsDevelopment())

	rates, err := cfg.Pricing.Rates()
	require.NoError(t, err)
	for c, want := range services.DefaultReferenceRates() {
		got, ok := rates.Rate(c)
		require.True(t, ok, "missing reference rate for %s", c)
		assert.True(t, want.Equal(got), "%s: got %s want %s", c, got, want)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[app]
env = "production"

[log]
level = "warn"

[company]
name = "Hanbit Trading"
email = "sales@hanbit.example"

[pricing]
default_currency = "eur"

[pricing.reference_rates]
eur = "1480"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tradeops.toml"), []byte(content), 0o644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "Hanbit Trading", cfg.Company.Export().Name)
	assert.Equal(t, services.EUR, cfg.Pricing.Currency())

	rates, err := cfg.Pricing.Rates()
	require.NoError(t, err)
	eur, _ := rates.Rate(services.EUR)
	assert.Equal(t, "1480", eur.String())
	usd, _ := rates.Rate(services.USD)
	assert.Equal(t, "1400", usd.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRADEOPS_LOG_LEVEL", "debug")
	t.Setenv("TRADEOPS_PRICING_REFERENCE_RATES_JPY", "9.1")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	rates, err := cfg.Pricing.Rates()
	require.NoError(t, err)
	jpy, _ := rates.Rate(services.JPY)
	assert.Equal(t, "9.1", jpy.String())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("log level", func(t *testing.T) {
		t.Setenv("TRADEOPS_LOG_LEVEL", "loud")
		_, err := LoadFrom(t.TempDir())
		assert.ErrorContains(t, err, "invalid log level")
	})

	t.Run("currency", func(t *testing.T) {
		t.Setenv("TRADEOPS_PRICING_DEFAULT_CURRENCY", "GBP")
		_, err := LoadFrom(t.TempDir())
		assert.ErrorContains(t, err, "default_currency")
	})

	t.Run("reference rate", func(t *testing.T) {
		t.Setenv("TRADEOPS_PRICING_REFERENCE_RATES_USD", "-1")
		_, err := LoadFrom(t.TempDir())
		assert.ErrorContains(t, err, "invalid reference rate for USD")
	})
}
