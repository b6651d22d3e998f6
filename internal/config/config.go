package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Consul   ConsulConfig
	Quiz     QuizConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	ServiceName    string
	ServiceAddress string
	ServiceID      string
	AllowOrigins   []string
}

type MongoDBConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URI      string
	Exchange string
}

type ConsulConfig struct {
	Address string
}

type QuizConfig struct {
	SessionDuration time.Duration
	ContentCacheTTL time.Duration
}

func Load() *Config {
	serviceName := getEnv("ASSESSMENT_SERVICE_NAME", "assessment-service")
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "9280"),
			Host:           getEnv("HOST", "0.0.0.0"),
			ServiceName:    serviceName,
			ServiceAddress: getEnv("ASSESSMENT_SERVICE_ADDRESS", serviceName),
			ServiceID:      serviceName + "-" + getEnv("HOSTNAME", "local"),
			AllowOrigins:   []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DB", "assessment_service"),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URI:      getEnv("RABBITMQ_URI", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "assessment.events"),
		},
		Consul: ConsulConfig{
			Address: getEnv("CONSUL_ADDR", ""),
		},
		Quiz: QuizConfig{
			SessionDuration: getEnvAsDuration("QUIZ_SESSION_DURATION", 30*time.Minute),
			ContentCacheTTL: getEnvAsDuration("CONTENT_CACHE_TTL", 60*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("invalid int env var %s: %s", key, err)
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			log.Printf("invalid duration env var %s: %s", key, err)
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}
