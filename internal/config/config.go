// Package config handles configuration management for salescope.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for salescope.
type Config struct {
	// Connection is the PostgreSQL connection string for the warehouse.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Seed holds configuration for the init subcommand.
	Seed SeedConfig `mapstructure:"seed"`

	// Refresh holds configuration for the refresh subcommand.
	Refresh RefreshConfig `mapstructure:"refresh"`
}

// SeedConfig holds configuration for warehouse initialization.
type SeedConfig struct {
	// Products is the number of product dimension rows to generate.
	Products int `mapstructure:"products"`

	// Customers is the number of customer dimension rows to generate.
	Customers int `mapstructure:"customers"`

	// Orders is the number of orders (each 1-4 fact rows) to generate.
	Orders int `mapstructure:"orders"`

	// RandomSeed fixes the generator sequence (0 = random).
	RandomSeed uint64 `mapstructure:"random_seed"`

	// DropExisting drops existing schema before initialization.
	DropExisting bool `mapstructure:"drop_existing"`
}

// RefreshConfig holds configuration for report recomputation.
type RefreshConfig struct {
	// Reports selects which reports to run (empty = all registered).
	Reports []string `mapstructure:"reports"`

	// Concurrency is the number of reports computed in parallel.
	Concurrency int `mapstructure:"concurrency"`

	// TablePrefix is prepended to every report table name.
	TablePrefix string `mapstructure:"table_prefix"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Seed: SeedConfig{
			Products:  200,
			Customers: 1000,
			Orders:    20000,
		},
		Refresh: RefreshConfig{
			Concurrency: 4,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salescope.yaml
// 3. ~/.config/salescope/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("salescope")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salescope"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Missing config file is fine; defaults apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateSeed checks configuration required for the init command.
func (c *Config) ValidateSeed() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Seed.Products < 1 {
		return fmt.Errorf("seed products must be at least 1")
	}
	if c.Seed.Customers < 1 {
		return fmt.Errorf("seed customers must be at least 1")
	}
	if c.Seed.Orders < 1 {
		return fmt.Errorf("seed orders must be at least 1")
	}
	return nil
}

// ValidateRefresh checks configuration required for the refresh command.
func (c *Config) ValidateRefresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Refresh.Concurrency < 1 {
		return fmt.Errorf("refresh concurrency must be at least 1")
	}
	return nil
}
