// Package config reads runtime settings from the environment. Binaries
// autoload a .env file first, and command-line flags override the result.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/hldx/internal/game"
)

// DefaultRedisChannel is the Pub/Sub channel game events are broadcast on.
const DefaultRedisChannel = "hldx_events"

// Config holds everything a binary needs to set up a game and its sinks.
type Config struct {
	CardsFile string // empty for the built-in catalog
	Rules     game.Rules
	Seed      int64
	LogLevel  logrus.Level

	RedisAddr    string // empty disables broadcasting
	RedisDB      int
	RedisChannel string

	WebAddr string
}

// Load reads the configuration from environment variables:
//   - HLDX_CARDS: card catalog YAML file
//   - HLDX_WIN_SCORE, HLDX_HAND_SIZE, HLDX_MAX_ROUNDS: rule overrides
//   - HLDX_SEED: shuffle seed (0 = random)
//   - HLDX_LOG_LEVEL: logrus level (default "info")
//   - REDIS_ADDR, REDIS_DB, REDIS_CHANNEL: event broadcasting
//   - HLDX_WEB_ADDR: spectator server address (default ":8080")
func Load() (Config, error) {
	cfg := Config{
		CardsFile: getEnv("HLDX_CARDS", ""),
		Rules: game.Rules{
			WinScore:  getEnvInt("HLDX_WIN_SCORE", 0),
			HandSize:  getEnvInt("HLDX_HAND_SIZE", 0),
			MaxRounds: getEnvInt("HLDX_MAX_ROUNDS", 0),
		},
		Seed:         getEnvInt64("HLDX_SEED", 0),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisChannel: getEnv("REDIS_CHANNEL", DefaultRedisChannel),
		WebAddr:      getEnv("HLDX_WEB_ADDR", ":8080"),
	}

	level, err := logrus.ParseLevel(getEnv("HLDX_LOG_LEVEL", "info"))
	if err != nil {
		return cfg, fmt.Errorf("HLDX_LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level
	return cfg, nil
}

// Catalog loads the configured card catalog.
func (c Config) Catalog() (*game.Catalog, error) {
	if c.CardsFile == "" {
		return game.DefaultCatalog()
	}
	return game.LoadCatalog(c.CardsFile)
}

// GameConfig returns the engine configuration for catalog.
func (c Config) GameConfig(catalog *game.Catalog, diag logrus.FieldLogger) game.GameConfig {
	return game.GameConfig{
		Catalog: catalog,
		Rules:   c.Rules,
		Diag:    diag,
		Seed:    c.Seed,
	}
}

// NewLogger returns a logrus logger at the configured level, writing to stderr.
func (c Config) NewLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(c.LogLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := getEnv(key, "")
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getEnvInt64(key string, def int64) int64 {
	s := getEnv(key, "")
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}
