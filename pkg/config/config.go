package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Auth        AuthConfig
	Email       EmailConfig
	Storage     StorageConfig
	Scheduling  SchedulingConfig
	Environment Environment
}

type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

func (c Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}
func (c Config) IsStaging() bool {
	return c.Environment == EnvironmentStaging
}
func (c Config) IsProd() bool {
	return c.Environment == EnvironmentProduction
}

func loadEnvironment() Environment {
	env := getEnv("ENVIRONMENT", "development")
	switch strings.ToLower(env) {
	case "production":
		return EnvironmentProduction
	case "staging":
		return EnvironmentStaging
	default:
		return EnvironmentDevelopment
	}
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	// .env es opcional; en producción las variables vienen del entorno
	_ = godotenv.Load(DefaultEnvFile)

	cfg := &Config{
		Server:      loadServerConfig(),
		Database:    loadDatabaseConfig(),
		Mongo:       loadMongoConfig(),
		Redis:       loadRedisConfig(),
		Auth:        loadAuthConfig(),
		Email:       LoadEmailConfig(),
		Storage:     loadStorageConfig(),
		Scheduling:  loadSchedulingConfig(),
		Environment: loadEnvironment(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWT.SecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(c.Auth.JWT.SecretKey) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER must be one of postgres, mongo, memory (got %q)", c.Database.Driver)
	}
	switch c.Storage.Mode {
	case StorageLocal, StorageS3:
	default:
		return fmt.Errorf("STORAGE_MODE must be local or s3 (got %q)", c.Storage.Mode)
	}
	if c.Database.Driver == DriverMemory && c.IsProd() {
		return fmt.Errorf("DB_DRIVER=memory is not allowed in production")
	}
	if c.Scheduling.LockBackend == LockRedis && !c.Redis.Enabled {
		return fmt.Errorf("SCHEDULING_LOCK_BACKEND=redis requires REDIS_ENABLED")
	}
	if c.Scheduling.LockTTL <= 0 {
		return fmt.Errorf("SCHEDULING_LOCK_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
