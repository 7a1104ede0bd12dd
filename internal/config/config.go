package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "TOKENWATT"
	defaultDBPath  = "./tokenwatt.db"
	defaultAddr    = ":8080"
	defaultTariff  = "new"
	defaultVATRate = "0.18"
)

// Config holds application configuration sourced from an optional config
// file, a local .env file and TOKENWATT_* environment variables.
type Config struct {
	App struct {
		Env string `mapstructure:"env"`
	} `mapstructure:"app"`

	HTTP struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"http"`

	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`

	Tariff struct {
		Default     string `mapstructure:"default"`
		VATRate     string `mapstructure:"vat_rate"`
		PresetsFile string `mapstructure:"presets_file"`
	} `mapstructure:"tariff"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"metrics"`
}

// Load reads configuration. path may be empty, in which case only defaults,
// .env and the environment are used.
func Load(path string) (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("app.env", "dev")
	v.SetDefault("http.addr", defaultAddr)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("tariff.default", defaultTariff)
	v.SetDefault("tariff.vat_rate", defaultVATRate)
	v.SetDefault("tariff.presets_file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.enabled", true)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Tariff.Default) == "" {
		return fmt.Errorf("tariff.default is required")
	}
	if _, err := c.VATRate(); err != nil {
		return err
	}
	return nil
}

// VATRate parses tariff.vat_rate.
func (c Config) VATRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(c.Tariff.VATRate))
	if err != nil {
		return decimal.Zero, fmt.Errorf("tariff.vat_rate must be numeric: %w", err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("tariff.vat_rate must be greater than or equal to 0")
	}
	return rate, nil
}
