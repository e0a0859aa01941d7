package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	Backend BackendConfig
	Session SessionConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// BackendConfig points at the external commerce API that owns products,
// orders, users, payments and shipments.
type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:8000")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SESSION_COOKIE_NAME", "gvn_session")
	viper.SetDefault("SESSION_TTL_HOURS", 720)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Backend: BackendConfig{
			BaseURL:        viper.GetString("BACKEND_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		},
		Session: SessionConfig{
			Secret:     viper.GetString("SESSION_SECRET"),
			CookieName: viper.GetString("SESSION_COOKIE_NAME"),
			TTL:        time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
	}
}
