// Package config reads the process environment exactly once at startup.
// Everything downstream receives a Config (or a slice of it) explicitly;
// nothing reads env vars at request time.
package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Port string

	// DatabaseURL wins when set; otherwise the discrete DB_* vars are used.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// AllowedOrigins feeds the CORS middleware.
	AllowedOrigins []string

	// FrontendBaseURL is where password-reset links point.
	FrontendBaseURL string

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

func Load() Config {
	cfg := Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DBHost:          getenv("DB_HOST", "localhost"),
		DBPort:          getenv("DB_PORT", "5432"),
		DBUser:          getenv("DB_USER", "postgres"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          getenv("DB_NAME", "resonance"),
		FrontendBaseURL: getenv("FRONTEND_BASE_URL", "http://localhost:3000"),
		SMTP: SMTPConfig{
			Host:     getenv("MAIL_HOST", "smtp.mailtrap.io"),
			Port:     getenv("MAIL_PORT", "587"),
			Username: os.Getenv("MAIL_USERNAME"),
			Password: os.Getenv("MAIL_PASSWORD"),
			From:     getenv("MAIL_FROM", "noreply@resonance.store"),
			FromName: getenv("MAIL_FROM_NAME", "Resonance"),
		},
	}

	origins := getenv("ALLOWED_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg
}

// DSN builds the Postgres connection string when DATABASE_URL is not set.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
