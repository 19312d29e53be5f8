// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload" // Load .env into the environment, if present
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"northwind-orders/pkg/db"
)

// EnvPrefix is the prefix of every environment variable read by LoadConfig.
// A double underscore separates nested keys: NORTHWIND_DB__HOST -> db.host.
const EnvPrefix = "NORTHWIND_"

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string    `koanf:"server_port" validate:"required,numeric"`
	LogLevel   string    `koanf:"log_level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	DB         db.Config `koanf:"db" validate:"required"`
}

// Default returns the configuration used for local development.
func Default() *AppConfig {
	return &AppConfig{
		ServerPort: "8080",
		LogLevel:   "info",
		DB: db.Config{
			Driver:          db.DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			User:            "user",
			Password:        "password",
			DBName:          "northwind",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: 5 * time.Minute,
		},
	}
}

// LoadConfig loads configuration from environment variables on top of Default.
// It returns an error if a variable cannot be decoded or the result is invalid.
func LoadConfig() (*AppConfig, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// envKey maps NORTHWIND_DB__MAX_OPEN_CONNS to db.max_open_conns.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
