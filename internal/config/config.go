package config

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	defaultPort        = "3001"
	defaultEnvironment = "production"
	defaultLogLevel    = "info"
	defaultRPSBurst    = 200
	defaultDBPath      = "election.db"
)

// Config holds the process configuration
type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// RPSLimit of zero disables rate limiting
	RPSLimit float64
	RPSBurst int

	// DBConfig is the JSON document handed to the storage provider factory
	DBConfig string
}

// Load reads configuration from a .env file (if present) and the environment
func Load(logger *zap.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}

	cfg := &Config{
		Port:        getEnv("PORT", defaultPort),
		Environment: getEnv("ENVIRONMENT", defaultEnvironment),
		LogLevel:    getEnv("LOG_LEVEL", defaultLogLevel),
		RPSBurst:    defaultRPSBurst,
		DBConfig:    os.Getenv("DB_CONFIG"),
	}

	if v := os.Getenv("RPS_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil || limit <= 0 {
			logger.Warn("invalid RPS_LIMIT, rate limiting disabled", zap.String("value", v))
		} else {
			cfg.RPSLimit = limit
		}
	}

	if v := os.Getenv("RPS_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst <= 0 {
			logger.Warn("invalid RPS_BURST, using default", zap.String("value", v), zap.Int("default", defaultRPSBurst))
		} else {
			cfg.RPSBurst = burst
		}
	}

	if cfg.DBConfig == "" {
		cfg.DBConfig = defaultDBConfig(getEnv("DB_PATH", defaultDBPath))
	}

	logger.Info("configuration loaded",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.Float64("rps_limit", cfg.RPSLimit),
		zap.Int("rps_burst", cfg.RPSBurst),
	)

	return cfg
}

// defaultDBConfig builds a sqlite provider configuration for the given file
func defaultDBConfig(path string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"db_type": "sqlite",
		"extra_details": map[string]interface{}{
			"path": path,
		},
	})
	return string(b)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
