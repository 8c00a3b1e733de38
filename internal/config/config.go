package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	AppEnv string
	Port   string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr   string
	KafkaBroker string

	JWTSecret        string
	CredentialEncKey string

	UploadDir string
	BaseURL   string

	CORSAllowOrigins []string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from the environment. Secrets have development
// fallbacks; outside development the process refuses to boot without them.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "btms"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: getEnv("KAFKA_BROKER", "localhost:9092"),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		CredentialEncKey: os.Getenv("CREDENTIAL_ENC_KEY"),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
		BaseURL:   getEnv("BASE_URL", "http://localhost:8080"),
	}

	origins := getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, o)
		}
	}

	if cfg.AppEnv == "development" {
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = "dev-only-jwt-secret"
		}
	} else {
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required outside development")
		}
		if cfg.CredentialEncKey == "" {
			return nil, fmt.Errorf("CREDENTIAL_ENC_KEY is required outside development")
		}
	}

	return cfg, nil
}
