package config

import (
	"strconv"

	"farmstock_backend/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config carries all startup configuration for the application. It is built
// once in main and passed down explicitly; nothing mutates it after startup.
type Config struct {
	DB   DBConfig
	HTTP HTTPConfig
	JWT  JWTConfig
	SMTP SMTPConfig
	Site SiteConfig
}

type DBConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SchemaPath string
}

type HTTPConfig struct {
	Port           string
	AllowedOrigins string // comma-separated CORS origins
	IntakeRate     string // ulule/limiter formatted rate for the public intake forms
}

type JWTConfig struct {
	Secret string
}

type SMTPConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	From               string
	InsecureSkipVerify bool
}

// SiteConfig identifies the shop in outbound notifications.
type SiteConfig struct {
	Name        string
	NotifyEmail string // recipient of order request / contact notifications
}

// Load reads configuration from a .env file (if present) and the process
// environment. Missing values fall back to development defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	smtpPort, err := strconv.Atoi(utils.Getenv("SMTP_PORT", "587"))
	if err != nil {
		smtpPort = 587
	}

	return Config{
		DB: DBConfig{
			Host:       utils.Getenv("DB_HOST", "localhost"),
			Port:       utils.Getenv("DB_PORT", "5432"),
			User:       utils.Getenv("DB_USER", "farmstock_user"),
			Password:   utils.Getenv("DB_PASSWORD", "farmstock_password"),
			Name:       utils.Getenv("DB_NAME", "farmstock_db"),
			SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
			SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
		},
		HTTP: HTTPConfig{
			Port:           utils.Getenv("PORT", "8080"),
			AllowedOrigins: utils.Getenv("CORS_ALLOWED_ORIGINS", ""),
			IntakeRate:     utils.Getenv("INTAKE_RATE_LIMIT", "10-M"),
		},
		JWT: JWTConfig{
			Secret: utils.Getenv("JWT_SECRET", "dev-only-jwt-secret-change-me"),
		},
		SMTP: SMTPConfig{
			Host:               utils.Getenv("SMTP_HOST", "localhost"),
			Port:               smtpPort,
			Username:           utils.Getenv("SMTP_USERNAME", ""),
			Password:           utils.Getenv("SMTP_PASSWORD", ""),
			From:               utils.Getenv("SMTP_FROM", "noreply@farmstock.local"),
			InsecureSkipVerify: utils.Getenv("SMTP_SKIP_TLS_VERIFY", "false") == "true",
		},
		Site: SiteConfig{
			Name:        utils.Getenv("SITE_NAME", "Farmstock Agro Ventures"),
			NotifyEmail: utils.Getenv("SITE_NOTIFY_EMAIL", "orders@farmstock.local"),
		},
	}
}
