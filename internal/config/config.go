package config

import (
	"os"
	"time"
)

type Config struct {
	DB          DBConfig
	KafkaConfig KafkaConfig
	Gateway     GatewayConfig
}
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// GatewayConfig — настройки платежного шлюза.
// SecretKey уходит в Authorization (Basic), Timeout ограничивает
// каждый исходящий вызов.
type GatewayConfig struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

func LoadConfig() *Config {
	dbconfig := DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "user"),
		Password: getEnv("DB_PASSWORD", "pass"),
		DBName:   getEnv("DB_NAME", "marketplace_db"),
	}

	kafkaConf := KafkaConfig{
		Brokers: []string{getEnv("KAFKA_BROKER", "localhost:9092")},
		Topic:   getEnv("KAFKA_TOPIC", "payment-status-events"),
	}

	gatewayConf := GatewayConfig{
		BaseURL:   getEnv("GATEWAY_BASE_URL", "https://api.pagar.me/core/v5"),
		SecretKey: getEnv("GATEWAY_SECRET_KEY", ""),
		Timeout:   getDuration("GATEWAY_TIMEOUT", 10*time.Second),
	}

	return &Config{DB: dbconfig, KafkaConfig: kafkaConf, Gateway: gatewayConf}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}

	return defaultValue
}
