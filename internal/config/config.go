package config

import "os"

// Config holds application configuration
type Config struct {
	ServerPort     string
	StorageBackend string // "database" or "redis"
	DatabaseType   string // "sqlite", "postgres" or "mysql"
	DatabasePath   string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	UserID         string
	PetName        string
	AWSRegion      string
	SESFromEmail   string
	SESFromName    string
	ParentEmail    string
	Debug          bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		StorageBackend: getEnv("STORAGE_BACKEND", "database"),
		DatabaseType:   getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./typepet.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		UserID:         getEnv("USER_ID", "default"),
		PetName:        getEnv("PET_NAME", ""),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:   getEnv("SES_FROM_EMAIL", ""),
		SESFromName:    getEnv("SES_FROM_NAME", "TypePet"),
		ParentEmail:    getEnv("PARENT_EMAIL", ""),
		Debug:          getEnv("DEBUG", "") == "true",
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
