package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	// StorageDriverMemory keeps all records in process memory. This is the
	// default; all data is lost on restart.
	StorageDriverMemory = "memory"
	// StorageDriverPostgres stores records in PostgreSQL.
	StorageDriverPostgres = "postgres"
)

type Config struct {
	ServerPort    int
	JWTSecret     string
	StorageDriver string
	Database      DatabaseConfig
	Admin         AdminConfig
}

// AdminConfig describes the bootstrap admin account. The account is
// created at startup when both fields are set and the username is not
// taken yet; with the memory driver this is the only way to obtain an
// admin after a restart.
type AdminConfig struct {
	Username string
	Password string
	Email    string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "churchhub"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "churchhub_db"),
		UseSSL:   getEnvBool("DB_SSL", false),
	}

	return Config{
		ServerPort:    getEnvInt("SERVER_PORT", 8080),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		StorageDriver: getEnv("STORAGE_DRIVER", StorageDriverMemory),
		Database:      dbConfig,
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
			Email:    getEnv("ADMIN_EMAIL", "admin@localhost"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		return valueStr == "true" || valueStr == "1"
	}
	return defaultValue
}
