package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DatabaseConfig holds the postgres connection parameters
type DatabaseConfig struct {
	Host     string `env:"DB_HOST"`
	Port     string `env:"DB_PORT"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// DSN returns the postgres connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Validate checks that every required parameter is set
func (c DatabaseConfig) Validate() error {
	if c.Host == "" || c.Port == "" || c.User == "" || c.Password == "" || c.Name == "" {
		return fmt.Errorf("missing required database environment variables. Please check your .env file")
	}
	return nil
}

// RedisConfig holds the read-cache connection parameters
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	Prefix   string `env:"REDIS_PREFIX" envDefault:"queen"`
}

// RabbitMQConfig holds the broker parameters used to broadcast cache invalidations
type RabbitMQConfig struct {
	Host  string `env:"RABBITMQ_HOST" envDefault:"localhost"`
	Port  string `env:"RABBITMQ_PORT" envDefault:"5672"`
	User  string `env:"RABBITMQ_USER" envDefault:"guest"`
	Pass  string `env:"RABBITMQ_PASS" envDefault:"guest"`
	Queue string `env:"RABBITMQ_CACHE_QUEUE" envDefault:"queen_cache_invalidation"`
}

// URL returns the amqp connection url
func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.User, c.Pass, c.Host, c.Port)
}

// Config is the whole service configuration
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	BasePath  string `env:"BASE_PATH" envDefault:"/queen-api"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	TempDir   string `env:"TEMP_DIR"`
	JWTSecret string `env:"JWT_SECRET"`
	AdminRole string `env:"ADMIN_ROLE" envDefault:"admin"`
	SentryDSN string `env:"SENTRY_DSN"`

	Database DatabaseConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
}

// Load reads the optional .env file then parses the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if err := os.MkdirAll(cfg.TempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory %s: %w", cfg.TempDir, err)
	}

	return &cfg, nil
}
