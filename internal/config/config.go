package config

import (
	"os"
	"strconv"

	"analytico/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Pipeline PipelineConfig
	Data     DataConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// PipelineConfig holds preprocessing settings
type PipelineConfig struct {
	KNeighbors   int
	IQRThreshold float64
}

// DataConfig holds the standalone runner's input location
type DataConfig struct {
	CSVFile string
}

// Load reads configuration from environment variables. Every variable has a
// default, so an empty environment reproduces the stock behavior.
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Pipeline: PipelineConfig{
			KNeighbors:   getEnvIntOrDefault("PIPELINE_K_NEIGHBORS", 5),
			IQRThreshold: getEnvFloatOrDefault("PIPELINE_IQR_THRESHOLD", 1.5),
		},
		Data: DataConfig{
			CSVFile: getEnvOrDefault("DATA_CSV_FILE", "data.csv"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Pipeline.KNeighbors < 1 {
		return errors.ConfigInvalid("PIPELINE_K_NEIGHBORS must be at least 1")
	}
	if config.Pipeline.IQRThreshold <= 0 {
		return errors.ConfigInvalid("PIPELINE_IQR_THRESHOLD must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
