package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	BaseURL     string
	Database    DatabaseConfig
	Session     SessionConfig
	Admin       AdminConfig
	Mpesa       MpesaConfig
	Flutterwave FlutterwaveConfig
	WhatsApp    WhatsAppConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// SessionConfig signs the session cookie JWTs
type SessionConfig struct {
	Secret     string
	CookieName string
}

// AdminConfig holds the shared back-office credentials
type AdminConfig struct {
	Username string
	Password string
}

type MpesaConfig struct {
	ConsumerKey    string
	ConsumerSecret string
	Shortcode      string
	Passkey        string
	CallbackURL    string
	BaseURL        string // sandbox or production API host
}

type FlutterwaveConfig struct {
	SecretKey string
	PublicKey string
	BaseURL   string
}

// WhatsAppConfig is where checkout/refund/issue deep links point
type WhatsAppConfig struct {
	BusinessNumber string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		BaseURL:     strings.TrimSuffix(getEnvOrViper("BASE_URL", "http://localhost:8080"), "/"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "wegatsaucee"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Session: SessionConfig{
			Secret:     getEnvOrViper("SECRET_KEY", "dev-key-change-in-production"),
			CookieName: getEnvOrViper("SESSION_COOKIE", "session"),
		},
		Admin: AdminConfig{
			Username: getEnvOrViper("ADMIN_USER", ""),
			Password: getEnvOrViper("ADMIN_PASS", ""),
		},
		Mpesa: MpesaConfig{
			ConsumerKey:    strings.TrimSpace(getEnvOrViper("MPESA_CONSUMER_KEY", "")),
			ConsumerSecret: strings.TrimSpace(getEnvOrViper("MPESA_CONSUMER_SECRET", "")),
			Shortcode:      getEnvOrViper("MPESA_SHORTCODE", "174379"),
			Passkey:        strings.TrimSpace(getEnvOrViper("MPESA_PASSKEY", "")),
			CallbackURL:    getEnvOrViper("MPESA_CALLBACK_URL", ""),
			BaseURL:        getEnvOrViper("MPESA_BASE_URL", "https://sandbox-api.safaricom.co.ke"),
		},
		Flutterwave: FlutterwaveConfig{
			SecretKey: strings.TrimSpace(getEnvOrViper("FLUTTERWAVE_SECRET_KEY", "")),
			PublicKey: strings.TrimSpace(getEnvOrViper("FLUTTERWAVE_PUBLIC_KEY", "")),
			BaseURL:   getEnvOrViper("FLUTTERWAVE_BASE_URL", "https://api.flutterwave.com"),
		},
		WhatsApp: WhatsAppConfig{
			BusinessNumber: getEnvOrViper("WHATSAPP_NUMBER", "254729453903"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	if cfg.Mpesa.CallbackURL == "" {
		cfg.Mpesa.CallbackURL = cfg.BaseURL + "/mpesa/callback"
	}

	// Validate required fields
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		return nil, fmt.Errorf("ADMIN_USER and ADMIN_PASS are required")
	}
	if cfg.Environment == "production" && cfg.Session.Secret == "dev-key-change-in-production" {
		return nil, fmt.Errorf("SECRET_KEY must be set in production")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
