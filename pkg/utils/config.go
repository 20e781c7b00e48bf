package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Gateway  GatewayConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

type GatewayConfig struct {
	BaseURL        string
	AccessToken    string
	TimeoutSeconds int
}

type BookingConfig struct {
	// TenantID is the single-tenant caller's tenant. Services still take the
	// tenant explicitly so the core stays multi-tenant-ready.
	TenantID string

	TimeZone              string
	SlotStepMinutes       int
	FallbackBufferMinutes float64
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("GATEWAY_TIMEOUT_SECONDS", 15)
	viper.SetDefault("BOOKING_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("SLOT_STEP_MINUTES", 30)
	viper.SetDefault("FALLBACK_BUFFER_MINUTES", 30)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Gateway: GatewayConfig{
			BaseURL:        viper.GetString("GATEWAY_BASE_URL"),
			AccessToken:    viper.GetString("GATEWAY_ACCESS_TOKEN"),
			TimeoutSeconds: viper.GetInt("GATEWAY_TIMEOUT_SECONDS"),
		},
		Booking: BookingConfig{
			TenantID:              viper.GetString("TENANT_ID"),
			TimeZone:              viper.GetString("BOOKING_TIMEZONE"),
			SlotStepMinutes:       viper.GetInt("SLOT_STEP_MINUTES"),
			FallbackBufferMinutes: viper.GetFloat64("FALLBACK_BUFFER_MINUTES"),
		},
	}

	return config, nil
}
