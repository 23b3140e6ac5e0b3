package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Port            string
	GinMode         string
	DBPath          string
	AssetsDir       string
	SessionCapacity int
	LogLevel        zapcore.Level
	AdminUsername   string
	AdminPassword   string
}

// loadConfig reads settings from the environment. A .env file in the working
// directory is loaded by the godotenv autoload import.
func loadConfig() (*Config, error) {
	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		GinMode:       getenv("GIN_MODE", gin.DebugMode),
		DBPath:        getenv("DB_PATH", "about.db"),
		AssetsDir:     getenv("ASSETS_DIR", "./images"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	capacity, err := strconv.Atoi(getenv("SESSION_CAPACITY", "1024"))
	if err != nil || capacity <= 0 {
		return nil, fmt.Errorf("SESSION_CAPACITY must be a positive integer, got %q", os.Getenv("SESSION_CAPACITY"))
	}
	cfg.SessionCapacity = capacity

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newLogger(cfg *Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.GinMode == gin.ReleaseMode {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	return zc.Build()
}
