package config

import (
	"fmt"
	"os"
	"strconv"

	"chess-manager/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Config struct {
	DataDir      string
	StoreBackend string
	DBPath       string
	ServerPort   string
	LogLevel     string
	Level        zerolog.Level
	NATSURL      string
	NATSStream   string
	Pairing      string
	PairingSeed  int64
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DataDir:      getEnv("DATA_DIR", "."),
		StoreBackend: getEnv("STORE_BACKEND", BackendJSON),
		DBPath:       getEnv("DB_PATH", "chess.db"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		NATSURL:      getEnv("NATS_URL", ""),
		NATSStream:   getEnv("NATS_STREAM", "CHESS_TOURNAMENTS"),
		Pairing:      getEnv("PAIRING_ALGORITHM", "swiss"),
	}

	if cfg.StoreBackend != BackendJSON && cfg.StoreBackend != BackendSQLite {
		return nil, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendJSON, BackendSQLite, cfg.StoreBackend)
	}

	if cfg.Pairing != "swiss" && cfg.Pairing != "random" {
		return nil, fmt.Errorf("PAIRING_ALGORITHM must be \"swiss\" or \"random\", got %q", cfg.Pairing)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.Level = level

	port, err := strconv.Atoi(cfg.ServerPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	if seed := getEnv("PAIRING_SEED", ""); seed != "" {
		cfg.PairingSeed, err = strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid PAIRING_SEED: %w", err)
		}
	}

	logger.Info().
		Str("data_dir", cfg.DataDir).
		Str("store_backend", cfg.StoreBackend).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("pairing", cfg.Pairing).
		Bool("events_enabled", cfg.NATSURL != "").
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Module loads the configuration with a bootstrap logger, since .env is only
// read here, and exposes the configured level to logger.Module.
var Module = fx.Provide(
	func() (*Config, error) { return Load(logger.New()) },
	func(cfg *Config) zerolog.Level { return cfg.Level },
)
