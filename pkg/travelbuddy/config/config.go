// Package config loads server settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. TRAVELBUDDY_PORT.
const EnvPrefix = "TRAVELBUDDY"

type Config struct {
	DBDriver      string        `mapstructure:"DB_DRIVER"`
	DBDSN         string        `mapstructure:"DB_DSN"`
	Port          string        `mapstructure:"PORT"`
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	TokenTTL      time.Duration `mapstructure:"TOKEN_TTL"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	AMQPURL       string        `mapstructure:"AMQP_URL"`
	AdminEmail    string        `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string        `mapstructure:"ADMIN_PASSWORD"`
}

var defaults = map[string]any{
	"DB_DRIVER":      "sqlite",
	"DB_DSN":         "travelbuddy.db",
	"PORT":           "8080",
	"JWT_SECRET":     "travelbuddy-dev-secret-change-in-production",
	"TOKEN_TTL":      "24h",
	"REDIS_ADDR":     "",
	"REDIS_PASSWORD": "",
	"AMQP_URL":       "",
	"ADMIN_EMAIL":    "admin@travelbuddy.local",
	"ADMIN_PASSWORD": "changeme",
}

// Load reads .env (if present) and the environment. Redis and AMQP stay
// disabled while their addresses are empty.
func Load() (Config, error) {
	_ = godotenv.Load() // ok if missing

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
