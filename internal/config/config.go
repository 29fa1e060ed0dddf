package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Scheduler SchedulerConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Port           int `mapstructure:"port" envconfig:"SERVER_PORT"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds" envconfig:"SERVER_TIMEOUT_SECONDS"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url" envconfig:"DATABASE_URL"`
	Host     string `mapstructure:"host" envconfig:"DB_HOST"`
	Port     int    `mapstructure:"port" envconfig:"DB_PORT"`
	User     string `mapstructure:"user" envconfig:"DB_USER"`
	Password string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name     string `mapstructure:"name" envconfig:"DB_NAME"`
	SSLMode  string `mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
}

type RedisConfig struct {
	URL string `mapstructure:"url" envconfig:"REDIS_URL"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	ExpiryHours int    `mapstructure:"expiry_hours" envconfig:"JWT_EXPIRY_HOURS"`
}

// SchedulerConfig tunes the availability engine. DefaultTimezone is only a
// fallback for clinics created before timezone became mandatory.
type SchedulerConfig struct {
	DefaultTimezone     string `mapstructure:"default_timezone" envconfig:"DEFAULT_TIMEZONE"`
	SlotDurationMinutes int    `mapstructure:"slot_duration_minutes" envconfig:"SLOT_DURATION_MINUTES"`
	HorizonDays         int    `mapstructure:"horizon_days" envconfig:"SCHEDULER_HORIZON_DAYS"`
}

type WorkerConfig struct {
	BatchSize    int `mapstructure:"batch_size" envconfig:"WORKER_BATCH_SIZE"`
	IntervalSecs int `mapstructure:"interval_seconds" envconfig:"WORKER_INTERVAL_SECONDS"`
	MaxRetries   int `mapstructure:"max_retries" envconfig:"WORKER_MAX_RETRIES"`
}

// LoadConfig reads config.yaml and then overlays environment variables, so
// deployment secrets never need to live in the file.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("scheduler.default_timezone", "Asia/Kolkata")
	viper.SetDefault("scheduler.slot_duration_minutes", 60)
	viper.SetDefault("scheduler.horizon_days", 90)
	viper.SetDefault("worker.batch_size", 100)
	viper.SetDefault("worker.interval_seconds", 5)
	viper.SetDefault("worker.max_retries", 3)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &config, nil
}
