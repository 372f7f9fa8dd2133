package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	ErrMissingDBHost    = errors.New("environment variables not loaded properly: DB_HOST is empty")
	ErrMissingJWTSecret = errors.New("JWT_SECRET must be set in production")
)

const EnvProduction = "production"

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	JWTSecret string

	// Optional notification backends. Empty disables the listener.
	RedisAddr      string
	SendGridAPIKey string
	MailFrom       string

	// Shared secret trusted services send in X-Service-Auth for the
	// internal rate tier.
	InternalKey string

	CORSOrigins []string
	PageSize    int
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         os.Getenv("DB_PORT"),
		AppPort:        os.Getenv("APP_PORT"),
		AppEnv:         os.Getenv("APP_ENV"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		SendGridAPIKey: os.Getenv("SENDGRID_APIKEY"),
		MailFrom:       os.Getenv("MAIL_FROM"),
		InternalKey:    os.Getenv("INTERNAL_SERVICE_KEY"),
		CORSOrigins:    splitList(os.Getenv("CORS_ORIGINS")),
		PageSize:       10,
	}

	if cfg.DBHost == "" {
		return nil, ErrMissingDBHost
	}
	if cfg.JWTSecret == "" && cfg.AppEnv == EnvProduction {
		return nil, ErrMissingJWTSecret
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}
	if v := os.Getenv("PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}

	return cfg, nil
}

// MustLoadConfig aborts the process when the environment is incomplete.
func MustLoadConfig() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
