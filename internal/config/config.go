package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

var validate = validator.New()

// Config represents the complete application configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
}

// PathsConfig contains the file-system locations the pipeline reads from
// and writes to.
type PathsConfig struct {
	InputFile  string `yaml:"input_file" envconfig:"INPUT_FILE" default:"household_expenses.xlsx" validate:"required"`
	ReportFile string `yaml:"report_file" envconfig:"REPORT_FILE" default:"reports/expense_report.xlsx" validate:"required"`
	ChartsDir  string `yaml:"charts_dir" envconfig:"CHARTS_DIR" default:"charts" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports" validate:"required"`
}

// Load loads configuration from environment variables and an optional
// config file, then validates the result.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("EXPENSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence;
// envconfig leaves fields at their struct defaults when unset, so any field
// still holding the default is taken from the file).
func mergeConfigs(fileConfig, envConfig Config) Config {
	def := Default()

	if envConfig.Logging.Level == def.Logging.Level && fileConfig.Logging.Level != "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == def.Logging.Format && fileConfig.Logging.Format != "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if envConfig.Paths.InputFile == def.Paths.InputFile && fileConfig.Paths.InputFile != "" {
		envConfig.Paths.InputFile = fileConfig.Paths.InputFile
	}
	if envConfig.Paths.ReportFile == def.Paths.ReportFile && fileConfig.Paths.ReportFile != "" {
		envConfig.Paths.ReportFile = fileConfig.Paths.ReportFile
	}
	if envConfig.Paths.ChartsDir == def.Paths.ChartsDir && fileConfig.Paths.ChartsDir != "" {
		envConfig.Paths.ChartsDir = fileConfig.Paths.ChartsDir
	}
	if envConfig.Paths.ReportsDir == def.Paths.ReportsDir && fileConfig.Paths.ReportsDir != "" {
		envConfig.Paths.ReportsDir = fileConfig.Paths.ReportsDir
	}

	return envConfig
}

// getConfigFilePath returns the path to the config file, or "" when no
// config file exists and env vars alone apply.
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Paths: PathsConfig{
			InputFile:  "household_expenses.xlsx",
			ReportFile: "reports/expense_report.xlsx",
			ChartsDir:  "charts",
			ReportsDir: "reports",
		},
	}
}
