package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"govmmc/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	RNG    RNGConfig
	Output OutputConfig
	Log    LogConfig
}

// RNGConfig holds random variate settings
type RNGConfig struct {
	// Seed is nil when the generator should be seeded from system entropy
	Seed    *uint32
	Workers int
}

// OutputConfig holds export paths
type OutputConfig struct {
	Dir            string
	TrajectoryFile string
	ScriptFile     string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	rngConfig, err := loadRNGConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load RNG configuration")
	}

	config := &Config{
		RNG:    *rngConfig,
		Output: *loadOutputConfig(),
		Log:    LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadRNGConfig() (*RNGConfig, error) {
	cfg := &RNGConfig{
		Workers: getEnvIntOrDefault("WORKERS", 4),
	}

	if raw := strings.TrimSpace(os.Getenv("RNG_SEED")); raw != "" {
		seed, err := ParseSeed(raw)
		if err != nil {
			return nil, err
		}
		cfg.Seed = &seed
	}
	return cfg, nil
}

func loadOutputConfig() *OutputConfig {
	return &OutputConfig{
		Dir:            getEnvOrDefault("OUTPUT_DIR", "."),
		TrajectoryFile: getEnvOrDefault("TRAJECTORY_FILE", "trajectory.xyz"),
		ScriptFile:     getEnvOrDefault("VMD_SCRIPT", "vmd.tcl"),
	}
}

func validateConfig(config *Config) error {
	if config.RNG.Workers <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("WORKERS must be > 0, got %d", config.RNG.Workers))
	}
	if config.Output.TrajectoryFile == "" || config.Output.ScriptFile == "" {
		return errors.ConfigInvalid("output file names must not be empty")
	}
	return nil
}

// ParseSeed parses an unsigned 32-bit seed
func ParseSeed(raw string) (uint32, error) {
	seed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, errors.WithCode(errors.CodeConfigInvalid,
			errors.Wrapf(err, "invalid seed %q: must be an unsigned 32-bit integer", raw))
	}
	return uint32(seed), nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
