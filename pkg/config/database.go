// pkg/config/database.go
package config

import (
	"fmt"
	"strconv"
	"time"
)

// Driver selects the persistence backend for every repository.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMongo    Driver = "mongo"
	DriverMemory   Driver = "memory"
)

type DatabaseConfig struct {
	Driver          Driver
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// AutoMigrate applies the embedded schema on startup.
	AutoMigrate bool
}

// DSN builds the lib/pq connection string.
func (dc DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dc.Host, dc.Port, dc.User, dc.Password, dc.Name, dc.SSLMode)
}

type MongoConfig struct {
	URI      string
	Database string
	// Transactions requires a replica set or sharded cluster.
	Transactions bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

func (rc RedisConfig) Address() string {
	return rc.Host + ":" + strconv.Itoa(rc.Port)
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:          Driver(getEnv("DB_DRIVER", string(DriverPostgres))),
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", "postgres"),
		Name:            getEnv("DB_NAME", "hrms"),
		SSLMode:         getEnv("DB_SSL_MODE", "disable"),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
	}
}

func loadMongoConfig() MongoConfig {
	return MongoConfig{
		URI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database:     getEnv("MONGO_DATABASE", "hrms"),
		Transactions: getEnvBool("MONGO_TRANSACTIONS", true),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled:  getEnvBool("REDIS_ENABLED", true),
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnvInt("REDIS_PORT", 6379),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}
}
