package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port string `mapstructure:"PORT"`

	JWTSecret       string `mapstructure:"JWT_SECRET"`
	TokenTTLMinutes int    `mapstructure:"TOKEN_TTL_MINUTES"`

	StoreDriver   string `mapstructure:"STORE_DRIVER"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	RedisAddr              string `mapstructure:"REDIS_ADDR"`
	RedisPassword          string `mapstructure:"REDIS_PASSWORD"`
	RedisDB                int    `mapstructure:"REDIS_DB"`
	TokenRateLimit         int    `mapstructure:"TOKEN_RATE_LIMIT"`
	TokenRateWindowSeconds int    `mapstructure:"TOKEN_RATE_WINDOW_SECONDS"`

	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`

	AllowedOrigins  string `mapstructure:"ALLOWED_ORIGINS"`
	EnableScheduler bool   `mapstructure:"ENABLE_SCHEDULER"`
	Debug           bool   `mapstructure:"DEBUG"`
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

var defaults = map[string]any{
	"PORT":                      "8080",
	"JWT_SECRET":                "",
	"TOKEN_TTL_MINUTES":         60,
	"STORE_DRIVER":              DriverMemory,
	"DATABASE_URL":              "",
	"MONGO_URI":                 "",
	"MONGO_DATABASE":            "portal_gambit",
	"REDIS_ADDR":                "",
	"REDIS_PASSWORD":            "",
	"REDIS_DB":                  0,
	"TOKEN_RATE_LIMIT":          10,
	"TOKEN_RATE_WINDOW_SECONDS": 60,
	"FIREBASE_CREDENTIALS_FILE": "",
	"FIREBASE_PROJECT_ID":       "",
	"ALLOWED_ORIGINS":           "*",
	"ENABLE_SCHEDULER":          true,
	"DEBUG":                     false,
}

// LoadConfig loads the configuration from a .env file in dir and the
// process environment. Environment variables win over the file.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that have no usable default.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be set for the postgres store")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI must be set for the mongo store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.TokenTTLMinutes <= 0 {
		return errors.New("TOKEN_TTL_MINUTES must be positive")
	}
	return nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

func (c *Config) TokenRateWindow() time.Duration {
	return time.Duration(c.TokenRateWindowSeconds) * time.Second
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// IdentityConfigured reports whether the external identity provider can be
// reached.
func (c *Config) IdentityConfigured() bool {
	return c.FirebaseCredentialsFile != "" || c.FirebaseProjectID != ""
}
