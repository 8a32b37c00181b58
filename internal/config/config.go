package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string
	GinMode       string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	JWTTTL        time.Duration
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "taskuser")
	viper.SetDefault("DB_PASSWORD", "taskpassword")
	viper.SetDefault("DB_NAME", "task_manager")
	viper.SetDefault("JWT_SECRET", "default-secret-key-change-me")
	viper.SetDefault("JWT_TTL_HOURS", 24)
	viper.SetDefault("ADMIN_EMAIL", "hexlet@example.com")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.AutomaticEnv()

	return &Config{
		Port:          viper.GetString("APP_PORT"),
		GinMode:       viper.GetString("GIN_MODE"),
		DBHost:        viper.GetString("DB_HOST"),
		DBPort:        viper.GetString("DB_PORT"),
		DBUser:        viper.GetString("DB_USER"),
		DBPassword:    viper.GetString("DB_PASSWORD"),
		DBName:        viper.GetString("DB_NAME"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		JWTTTL:        time.Duration(viper.GetInt("JWT_TTL_HOURS")) * time.Hour,
		AdminEmail:    viper.GetString("ADMIN_EMAIL"),
		AdminPassword: viper.GetString("ADMIN_PASSWORD"),
	}
}
