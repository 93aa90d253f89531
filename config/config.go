// file: config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting. It is built once in main and passed down.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	Timezone string `mapstructure:"TIMEZONE"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxIdle   int    `mapstructure:"DB_MAX_IDLE"`
	DBMaxOpen   int    `mapstructure:"DB_MAX_OPEN"`
	AutoMigrate bool   `mapstructure:"AUTO_MIGRATE"`

	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTTTLHours int    `mapstructure:"JWT_TTL_HOURS"`

	RedisEnabled  bool   `mapstructure:"REDIS_ENABLED"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	OverlapCacheTTLSeconds int `mapstructure:"OVERLAP_CACHE_TTL_SECONDS"`

	ReservationMaxHours      int    `mapstructure:"RESERVATION_MAX_HOURS"`
	ReservationRetentionDays int    `mapstructure:"RESERVATION_RETENTION_DAYS"`
	CleanupCron              string `mapstructure:"CLEANUP_CRON"`

	RateLimitPerMin int    `mapstructure:"RATE_LIMIT_PER_MIN"`
	CORSOrigins     string `mapstructure:"CORS_ORIGINS"`

	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
	AdminName     string `mapstructure:"ADMIN_NAME"`
}

var defaults = map[string]any{
	"APP_PORT":                   "8080",
	"ENV":                        "development",
	"LOG_LEVEL":                  "info",
	"TIMEZONE":                   "Asia/Seoul",
	"DATABASE_URL":               "sqlite:database.db",
	"DB_MAX_IDLE":                10,
	"DB_MAX_OPEN":                100,
	"AUTO_MIGRATE":               true,
	"JWT_SECRET":                 "",
	"JWT_TTL_HOURS":              168,
	"REDIS_ENABLED":              false,
	"REDIS_ADDR":                 "localhost:6379",
	"REDIS_PASSWORD":             "",
	"REDIS_DB":                   0,
	"OVERLAP_CACHE_TTL_SECONDS":  30,
	"RESERVATION_MAX_HOURS":      72,
	"RESERVATION_RETENTION_DAYS": 30,
	"CLEANUP_CRON":               "0 30 4 * * *",
	"RATE_LIMIT_PER_MIN":         200,
	"CORS_ORIGINS":               "*",
	"ADMIN_USERNAME":             "",
	"ADMIN_PASSWORD":             "",
	"ADMIN_NAME":                 "관리자",
}

// Load reads .env (if present), then config.yaml from . or ./config, then the
// environment, which wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is empty")
	}
	if c.IsProduction() && len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters in production")
	}
	if c.ReservationMaxHours <= 0 {
		return fmt.Errorf("RESERVATION_MAX_HOURS must be positive, got %d", c.ReservationMaxHours)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

func (c *Config) OverlapCacheTTL() time.Duration {
	return time.Duration(c.OverlapCacheTTLSeconds) * time.Second
}

func (c *Config) ReservationMaxDuration() time.Duration {
	return time.Duration(c.ReservationMaxHours) * time.Hour
}

func (c *Config) ReservationRetention() time.Duration {
	return time.Duration(c.ReservationRetentionDays) * 24 * time.Hour
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
