package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig holds raw environment values. Unset variables leave the zero
// value, which means "keep what the earlier layers produced".
type envConfig struct {
	HTTPAddr        string        `env:"NOTES_HTTP_ADDR"`
	GRPCAddr        string        `env:"NOTES_GRPC_ADDR"`
	StorageDriver   string        `env:"NOTES_STORAGE_DRIVER"`
	DatabaseDSN     string        `env:"NOTES_DATABASE_DSN"`
	BadgerDir       string        `env:"NOTES_BADGER_DIR"`
	SecretKey       string        `env:"NOTES_SECRET_KEY"`
	JWTAlgorithm    string        `env:"NOTES_JWT_ALGORITHM"`
	TTLMinutes      int           `env:"NOTES_ACCESS_TOKEN_TTL_MINUTES"`
	BcryptCost      int           `env:"NOTES_BCRYPT_COST"`
	CORSOrigins     []string      `env:"NOTES_CORS_ORIGINS" envSeparator:","`
	LogLevel        string        `env:"NOTES_LOG_LEVEL"`
	LogFormat       string        `env:"NOTES_LOG_FORMAT"`
	ShutdownTimeout time.Duration `env:"NOTES_SHUTDOWN_TIMEOUT"`
}

func parseEnv(config *Config) error {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	setString(&config.HTTPAddr, raw.HTTPAddr)
	setString(&config.GRPCAddr, raw.GRPCAddr)
	setString(&config.StorageDriver, raw.StorageDriver)
	setString(&config.DatabaseDSN, raw.DatabaseDSN)
	setString(&config.BadgerDir, raw.BadgerDir)
	setString(&config.SecretKey, raw.SecretKey)
	setString(&config.JWTAlgorithm, raw.JWTAlgorithm)
	setString(&config.LogLevel, raw.LogLevel)
	setString(&config.LogFormat, raw.LogFormat)
	if raw.TTLMinutes != 0 {
		config.AccessTokenTTL = time.Duration(raw.TTLMinutes) * time.Minute
	}
	if raw.BcryptCost != 0 {
		config.BcryptCost = raw.BcryptCost
	}
	if len(raw.CORSOrigins) > 0 {
		config.CORSOrigins = raw.CORSOrigins
	}
	if raw.ShutdownTimeout != 0 {
		config.ShutdownTimeout = raw.ShutdownTimeout
	}
	return nil
}
