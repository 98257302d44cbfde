// Package config loads csv-qif settings from defaults, an optional YAML
// file, a .env file and CSVQIF_ environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"dtarbill/csv-qif/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the working
// directory or its parent, if one exists. It returns the file it loaded.
func LoadEnv() (string, error) {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return "", nil
		}
	}

	if err := godotenv.Load(envFile); err != nil {
		return "", err
	}
	return envFile, nil
}

// ConfigureLogging builds the application logger from the configuration.
func ConfigureLogging(cfg *Config) logging.Logger {
	return logging.NewLogrusAdapter(cfg.Log.Level, strings.ToLower(cfg.Log.Format))
}
