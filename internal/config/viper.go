package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by InitializeConfig.
const EnvPrefix = "CSVQIF"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	QIF struct {
		MaxColumns    int    `mapstructure:"max_columns" yaml:"max_columns"`
		StrictAmounts bool   `mapstructure:"strict_amounts" yaml:"strict_amounts"`
		FundPrefix    string `mapstructure:"fund_prefix" yaml:"fund_prefix"`
	} `mapstructure:"qif" yaml:"qif"`
}

// InitializeConfig loads configuration in increasing precedence: defaults,
// config file, CSVQIF_ environment variables. An empty configFile searches
// $HOME/.csv-qif, .csv-qif and the working directory for csv-qif.yaml.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("csv-qif")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.csv-qif")
		v.AddConfigPath(".csv-qif")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("qif.max_columns", 20)
	v.SetDefault("qif.strict_amounts", false)
	v.SetDefault("qif.fund_prefix", "SF ")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	format := strings.ToLower(config.Log.Format)
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.QIF.MaxColumns < 1 {
		return fmt.Errorf("qif.max_columns must be at least 1, got: %d", config.QIF.MaxColumns)
	}

	return nil
}
