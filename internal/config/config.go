// Package config loads skinvault settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"skinvault/internal/constants"
	"skinvault/internal/ddragon"
	"skinvault/internal/rarity"
	"skinvault/internal/wiki"
)

// Config holds all configuration values for the application.
type Config struct {
	LogLevel string

	// Public reference data
	DDragonURL       string
	RarityURL        string
	WikiURL          string
	Locale           string
	ReferenceTimeout time.Duration

	// Local service
	LCURequestsPerSecond float64
	ExtraInstallDirs     []string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:   getEnv("SKINVAULT_LOG_LEVEL", "info"),
		DDragonURL: strings.TrimRight(getEnv("SKINVAULT_DDRAGON_URL", ddragon.DefaultBaseURL), "/"),
		RarityURL:  getEnv("SKINVAULT_RARITY_URL", rarity.DefaultURL),
		WikiURL:    getEnv("SKINVAULT_WIKI_URL", wiki.DefaultURL),
		Locale:     getEnv("SKINVAULT_LOCALE", "en_US"),
	}

	timeout, err := time.ParseDuration(getEnv("SKINVAULT_REFERENCE_TIMEOUT", constants.ReferenceTimeout.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid SKINVAULT_REFERENCE_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("SKINVAULT_REFERENCE_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.ReferenceTimeout = timeout

	rps, err := strconv.ParseFloat(getEnv("SKINVAULT_LCU_RPS", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SKINVAULT_LCU_RPS: %w", err)
	}
	if rps < 0 {
		return nil, fmt.Errorf("SKINVAULT_LCU_RPS must not be negative, got %v", rps)
	}
	cfg.LCURequestsPerSecond = rps

	for _, dir := range strings.Split(os.Getenv("SKINVAULT_INSTALL_DIRS"), ";") {
		if dir = strings.TrimSpace(dir); dir != "" {
			cfg.ExtraInstallDirs = append(cfg.ExtraInstallDirs, dir)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
