package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Catalogue CatalogueConfig `mapstructure:"catalogue"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds the HTTP listener configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// StorageConfig holds the document store configuration
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds the page-cache configuration. TTLSeconds of 0 means
// cached pages never expire on their own.
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
	MaxItems   int `mapstructure:"max_items"`
}

// CatalogueConfig holds catalogue seeding configuration
type CatalogueConfig struct {
	SeedFile string `mapstructure:"seed_file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data/reelist.db",
		},
		Cache: CacheConfig{
			TTLSeconds: 300,
			MaxItems:   512,
		},
		Catalogue: CatalogueConfig{
			SeedFile: "",
		},
		Logging: LoggingConfig{
			File:  "",
			Level: "INFO",
		},
	}
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/reelist")
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("REELIST")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}
