package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL      string
	JWTSecret        string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	HTTPAddress      string
	CookieDomain     string
	AllowedOrigins   []string
	AllowCredentials bool
	RedisAddress     string
	RedisPassword    string
	RedisDB          int
	LogLevel         string
}

// Load reads configuration from the environment. DATABASE_URL and
// JWT_SECRET have no defaults: a missing secret is a startup error, not
// something to discover on the first login.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	for _, key := range []string{
		"DATABASE_URL", "JWT_SECRET", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL",
		"HTTP_ADDRESS", "COOKIE_DOMAIN", "ALLOWED_ORIGINS", "ALLOW_CREDENTIALS",
		"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB", "LOG_LEVEL",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault("ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("REFRESH_TOKEN_TTL", "168h")
	v.SetDefault("HTTP_ADDRESS", ":4001")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("ALLOW_CREDENTIALS", true)
	v.SetDefault("REDIS_DB", 0)

	cfg := &Config{
		DatabaseURL:      v.GetString("DATABASE_URL"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		AccessTokenTTL:   v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:  v.GetDuration("REFRESH_TOKEN_TTL"),
		HTTPAddress:      v.GetString("HTTP_ADDRESS"),
		CookieDomain:     v.GetString("COOKIE_DOMAIN"),
		AllowedOrigins:   v.GetStringSlice("ALLOWED_ORIGINS"),
		AllowCredentials: v.GetBool("ALLOW_CREDENTIALS"),
		RedisAddress:     v.GetString("REDIS_ADDRESS"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_TTL must be positive, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("REFRESH_TOKEN_TTL must be positive, got %v", cfg.RefreshTokenTTL)
	}

	return cfg, nil
}
