package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr selects the Redis cache. Empty means the in-process cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// AMQPURL enables publishing status snapshots to RabbitMQ. Empty means
	// websocket subscribers only.
	AMQPURL      string
	AMQPExchange string

	TrackingCodeLength  int
	CacheWarmupSchedule string
	LogLevel            string
}

// LoadConfig reads the environment, after loading .env from the working
// directory when one exists. Variables already set win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:            env("HTTP_PORT", "8080"),
		DBHost:              env("DB_HOST", "localhost"),
		DBPort:              env("DB_PORT", "5432"),
		DBUser:              env("DB_USER", "postgres"),
		DBPassword:          env("DB_PASSWORD", ""),
		DBName:              env("DB_NAME", "logistics"),
		DBSslMode:           env("DB_SSLMODE", "disable"),
		RedisAddr:           env("REDIS_ADDR", ""),
		RedisPassword:       env("REDIS_PASSWORD", ""),
		AMQPURL:             env("AMQP_URL", ""),
		AMQPExchange:        env("AMQP_EXCHANGE", "shipment.status"),
		CacheWarmupSchedule: env("CACHE_WARMUP_SCHEDULE", "@every 1m"),
		LogLevel:            env("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.TrackingCodeLength, err = envInt("TRACKING_CODE_LENGTH", 6); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = envDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := env(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// envDuration accepts Go durations ("90s") and plain seconds ("90").
func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := env(key, "")
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
