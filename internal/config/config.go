package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Catalog     ServiceConfig
	Cart        ServiceConfig
	Orders      ServiceConfig
	LogLevel    string
}

// ServiceConfig describes one remote commerce service endpoint.
type ServiceConfig struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVICE_TIMEOUT", "30s")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeout, err := time.ParseDuration(getEnvOrViper("SERVICE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVICE_TIMEOUT: %w", err)
	}

	token := getEnvOrViper("COMMERCE_ACCESS_TOKEN", "")

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Catalog: ServiceConfig{
			BaseURL:     getEnvOrViper("CATALOG_SERVICE_URL", ""),
			AccessToken: token,
			Timeout:     timeout,
		},
		Cart: ServiceConfig{
			BaseURL:     getEnvOrViper("CART_SERVICE_URL", ""),
			AccessToken: token,
			Timeout:     timeout,
		},
		Orders: ServiceConfig{
			BaseURL:     getEnvOrViper("ORDER_SERVICE_URL", ""),
			AccessToken: token,
			Timeout:     timeout,
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Catalog.BaseURL == "" {
		return nil, fmt.Errorf("CATALOG_SERVICE_URL is required")
	}
	if cfg.Cart.BaseURL == "" {
		return nil, fmt.Errorf("CART_SERVICE_URL is required")
	}
	if cfg.Orders.BaseURL == "" {
		return nil, fmt.Errorf("ORDER_SERVICE_URL is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
