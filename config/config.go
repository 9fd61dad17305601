// Package config loads application settings from tradeops.toml and
// TRADEOPS_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"tradeops/services"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Log     LogConfig
	Company CompanyConfig
	Pricing PricingConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Env     string
	DataDir string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string // debug, info, warn, error
}

// CompanyConfig is the issuing company printed on exported documents
type CompanyConfig struct {
	Name    string
	Address string
	Email   string
}

// PricingConfig holds pricing defaults
type PricingConfig struct {
	DefaultCurrency string
	// ReferenceRates are KRW per unit of each currency, used to normalise
	// profit. Keys are currency codes.
	ReferenceRates map[string]string
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Load reads configuration from tradeops.toml in the working directory or
// ./config, environment variables and built-in defaults, in increasing order
// of precedence: defaults, file, env.
func Load() (*Config, error) {
	return LoadFrom(".", "./config")
}

// LoadFrom is Load with explicit search paths for tradeops.toml.
func LoadFrom(paths ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("tradeops")
	v.SetConfigType("toml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("TRADEOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:     v.GetString("app.env"),
			DataDir: v.GetString("app.data_dir"),
		},
		Log: LogConfig{
			Level: strings.ToLower(v.GetString("log.level")),
		},
		Company: CompanyConfig{
			Name:    v.GetString("company.name"),
			Address: v.GetString("company.address"),
			Email:   v.GetString("company.email"),
		},
		Pricing: PricingConfig{
			DefaultCurrency: strings.ToUpper(v.GetString("pricing.default_currency")),
			ReferenceRates:  map[string]string{},
		},
	}
	for _, c := range services.SupportedCurrencies {
		key := "pricing.reference_rates." + strings.ToLower(string(c))
		if s := v.GetString(key); s != "" {
			cfg.Pricing.ReferenceRates[string(c)] = s
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.data_dir", "./pb_data")
	v.SetDefault("log.level", "info")
	v.SetDefault("company.name", "Trading Company")
	v.SetDefault("pricing.default_currency", string(services.USD))
	for c, r := range services.DefaultReferenceRates() {
		v.SetDefault("pricing.reference_rates."+strings.ToLower(string(c)), r.String())
	}
}

func (c *Config) validate() error {
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	if _, err := services.ParseCurrency(c.Pricing.DefaultCurrency); err != nil {
		return fmt.Errorf("invalid pricing.default_currency: %w", err)
	}
	if _, err := c.Pricing.Rates(); err != nil {
		return err
	}
	return nil
}

// Rates parses the configured reference rates.
func (p PricingConfig) Rates() (services.ReferenceRates, error) {
	rates := services.ReferenceRates{}
	for code, s := range p.ReferenceRates {
		c, err := services.ParseCurrency(code)
		if err != nil {
			return nil, fmt.Errorf("invalid reference rate currency: %w", err)
		}
		r, err := decimal.NewFromString(s)
		if err != nil || !r.IsPositive() {
			return nil, fmt.Errorf("invalid reference rate for %s: %q", code, s)
		}
		rates[c] = r
	}
	return rates, nil
}

// Currency returns the parsed default document currency.
func (p PricingConfig) Currency() services.Currency {
	c, err := services.ParseCurrency(p.DefaultCurrency)
	if err != nil {
		return services.USD
	}
	return c
}

// Export returns the company block for exported documents.
func (c CompanyConfig) Export() services.Company {
	return services.Company{Name: c.Name, Address: c.Address, Email: c.Email}
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}
