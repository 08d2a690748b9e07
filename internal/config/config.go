package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	LogLevel  string
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig describes the document store. An empty URL means no store
// handle is created at startup.
type DatabaseConfig struct {
	Driver         string
	URL            string
	Name           string
	Timeout        time.Duration
	ConnectRetries int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("DATABASE_NAME", "paws_hearts")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("MONGODB_CONNECT_RETRIES", 5)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_RPS", 5.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	v.SetDefault("REDIS_PORT", "6379")

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			Host:         v.GetString("HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:         strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
			URL:            v.GetString("DATABASE_URL"),
			Name:           v.GetString("DATABASE_NAME"),
			Timeout:        time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
			ConnectRetries: v.GetInt("MONGODB_CONNECT_RETRIES"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       0,
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if cfg.Database.Driver != DriverMemory {
		cfg.Database.Driver = DriverMongo
	}
	if cfg.Database.ConnectRetries < 1 {
		cfg.Database.ConnectRetries = 1
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
