package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds every environment-driven setting the hub needs at startup.
type Config struct {
	AppEnv   string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int

	ConsulHTTPAddr      string
	KafkaBrokers        []string
	ApicurioRegistryURL string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int

	GRPCPort string
	HTTPPort string

	ServiceRegistrationEnabled      bool
	ServiceRegistrationServiceName  string
	ServiceRegistrationHost         string
	ServiceRegistrationPort         int
	ServiceRegistrationCapabilities []string
	ServiceRegistrationTags         []string
}

// Load reads Config from the process environment, defaulting blank values
// and validating the fields the hub cannot start without.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:   os.Getenv("APP_ENV"),
		LogLevel: os.Getenv("LOG_LEVEL"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  os.Getenv("DB_SSL_MODE"),

		ConsulHTTPAddr:      os.Getenv("CONSUL_HTTP_ADDR"),
		ApicurioRegistryURL: os.Getenv("APICURIO_REGISTRY_URL"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),

		GRPCPort: os.Getenv("GRPC_PORT"),
		HTTPPort: os.Getenv("HTTP_PORT"),

		ServiceRegistrationServiceName: os.Getenv("SERVICE_REGISTRATION_SERVICE_NAME"),
		ServiceRegistrationHost:        os.Getenv("SERVICE_REGISTRATION_HOST"),
	}

	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	if cfg.ConsulHTTPAddr == "" {
		cfg.ConsulHTTPAddr = "http://localhost:8500"
	}
	if cfg.ApicurioRegistryURL == "" {
		cfg.ApicurioRegistryURL = "http://localhost:8080"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if cfg.GRPCPort == "" {
		cfg.GRPCPort = "50051"
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8081"
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}

	var err error
	if v := os.Getenv("DB_MAX_OPEN_CONNS"); v != "" {
		if cfg.DBMaxOpenConns, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
		}
	} else {
		cfg.DBMaxOpenConns = 25
	}
	if v := os.Getenv("DB_MAX_IDLE_CONNS"); v != "" {
		if cfg.DBMaxIdleConns, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
		}
	} else {
		cfg.DBMaxIdleConns = 5
	}
	if v := os.Getenv("DB_CONN_MAX_LIFETIME_MINUTES"); v != "" {
		if cfg.DBConnMaxLifetimeMinutes, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME_MINUTES: %w", err)
		}
	} else {
		cfg.DBConnMaxLifetimeMinutes = 30
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if cfg.RedisDB, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}

	if v := os.Getenv("SERVICE_REGISTRATION_ENABLED"); v != "" {
		if cfg.ServiceRegistrationEnabled, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid SERVICE_REGISTRATION_ENABLED: %w", err)
		}
	}
	if v := os.Getenv("SERVICE_REGISTRATION_PORT"); v != "" {
		if cfg.ServiceRegistrationPort, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid SERVICE_REGISTRATION_PORT: %w", err)
		}
	}
	if v := os.Getenv("SERVICE_REGISTRATION_CAPABILITIES"); v != "" {
		cfg.ServiceRegistrationCapabilities = strings.Split(v, ",")
	}
	if v := os.Getenv("SERVICE_REGISTRATION_TAGS"); v != "" {
		cfg.ServiceRegistrationTags = strings.Split(v, ",")
	}

	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBPassword == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("missing required environment variables")
	}
	return cfg, nil
}
