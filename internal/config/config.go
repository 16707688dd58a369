package config

import "os"

type Config struct {
	Port             string
	RedisURL         string
	LogLevel         string
	Environment      string
	CORSOrigins      string
	LookupTablesPath string
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		CORSOrigins:      getEnv("CORS_ORIGINS", "*"),
		LookupTablesPath: getEnv("LOOKUP_TABLES_PATH", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
