// Package config loads the process configuration from CARWASH_ prefixed
// environment variables. A `.env` file in the working directory is loaded
// first when present.
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const envPrefix = "CARWASH_"

type Config struct {
	Env      string `koanf:"env" validate:"required"`
	Port     string `koanf:"port" validate:"required"`
	LogLevel string `koanf:"log_level" validate:"required"`

	MongoURI string `koanf:"mongodb_uri" validate:"required"`
	DBName   string `koanf:"db_name" validate:"required"`

	// AdminEmails is a comma separated allow-list of addresses that may read
	// every booking.
	AdminEmails        string `koanf:"admin_emails"`
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`

	ResendAPIKey string `koanf:"resend_api_key"`
	NotifyFrom   string `koanf:"notify_from" validate:"required_with=ResendAPIKey"`
	NotifyTo     string `koanf:"notify_to"`

	AMQPURL   string `koanf:"amqp_url"`
	AMQPQueue string `koanf:"amqp_queue" validate:"required"`
}

func defaults() *Config {
	return &Config{
		Env:                "development",
		Port:               "3000",
		LogLevel:           "info",
		DBName:             "carwash",
		CORSAllowedOrigins: "*",
		AMQPQueue:          "bookings.events",
	}
}

// Load reads the environment into a Config on top of the defaults and
// validates required values.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "load env")
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Admins returns the normalized admin allow-list.
func (c *Config) Admins() []string {
	return splitList(c.AdminEmails)
}

func (c *Config) AllowedOrigins() []string {
	origins := splitList(c.CORSAllowedOrigins)
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
