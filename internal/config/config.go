package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPConfig     HTTPConfig
	DBConfig       DBConfig
	PostgresConfig PostgresConfig
	AuthConfig     AuthConfig
	KafkaConfig    KafkaConfig
	TelegramConfig TelegramConfig
	TracingConfig  TracingConfig
}

type HTTPConfig struct {
	Addr        string
	MetricsAddr string
}

type DBConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver     string
	SQLitePath string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type TelegramConfig struct {
	TokenBot    string
	AdminChatID int64
}

type TracingConfig struct {
	Endpoint string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env file not found, using environment variables")
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL is invalid: %w", err)
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("BCRYPT_COST is invalid: %w", err)
	}

	var adminChat int64
	if raw := getEnv("TELEGRAM_ADMIN_CHAT", ""); raw != "" {
		if adminChat, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("TELEGRAM_ADMIN_CHAT is invalid: %w", err)
		}
	}

	config := &Config{
		HTTPConfig: HTTPConfig{
			Addr:        getEnv("HTTP_ADDR", ":5000"),
			MetricsAddr: getEnv("METRICS_ADDR", ":8080"),
		},
		DBConfig: DBConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			SQLitePath: getEnv("SQLITE_PATH", "./data/notes.db"),
		},
		PostgresConfig: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "user"),
			Password: getEnv("POSTGRES_PASSWORD", "password"),
			DBName:   getEnv("POSTGRES_DB", "notes"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		AuthConfig: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			TokenTTL:   ttl,
			BcryptCost: cost,
		},
		KafkaConfig: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "notes-events"),
			GroupID: getEnv("KAFKA_GROUP_ID", "notes-notifier"),
		},
		TelegramConfig: TelegramConfig{
			TokenBot:    getEnv("TOKEN_NOTES_BOT", ""),
			AdminChatID: adminChat,
		},
		TracingConfig: TracingConfig{
			Endpoint: getEnv("TRACING_ENDPOINT", ""),
		},
	}

	switch config.DBConfig.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("DB_DRIVER '%s' is not supported", config.DBConfig.Driver)
	}

	if config.AuthConfig.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBConfig.Driver == "sqlite" {
		return c.DBConfig.SQLitePath
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresConfig.User,
		c.PostgresConfig.Password,
		c.PostgresConfig.Host,
		c.PostgresConfig.Port,
		c.PostgresConfig.DBName,
		c.PostgresConfig.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
