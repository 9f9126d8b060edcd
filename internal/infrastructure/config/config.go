package config

import (
	"os"
	"strconv"
	"time"

	"equiptrack/internal/domain/constants"
	"equiptrack/internal/domain/errors"

	"gopkg.in/yaml.v3"
)

// Config is a struct that holds application configuration
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Server     ServerConfig     `yaml:"server"`
	Validation ValidationConfig `yaml:"validation"`
	Report     ReportConfig     `yaml:"report"`
	Health     HealthConfig     `yaml:"health"`
}

// DatabaseConfig is a struct that holds database configuration
type DatabaseConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password"`
	Database     string        `yaml:"database"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	MaxLifetime  time.Duration `yaml:"max_lifetime"`
}

// ServerConfig is a struct that holds API server configuration
type ServerConfig struct {
	Port string `yaml:"port"`
}

// ValidationConfig is a struct that holds MAC validation configuration
type ValidationConfig struct {
	// IncludeRMA enables the RMA collection in conflict display lookups
	IncludeRMA bool `yaml:"include_rma"`

	// AdminRoles lists role names granted elevated conflict actions
	AdminRoles []string `yaml:"admin_roles"`
}

// ReportConfig is a struct that holds daily report configuration
type ReportConfig struct {
	Enabled       bool          `yaml:"enabled"`
	OutputDir     string        `yaml:"output_dir"`
	StateDBPath   string        `yaml:"state_db_path"`
	CheckInterval time.Duration `yaml:"check_interval"`

	// GenerateAfter is the local hour (0-23) after which the daily
	// report may be generated
	GenerateAfter int `yaml:"generate_after"`
}

// HealthConfig is a struct that holds health check configuration
type HealthConfig struct {
	Port string `yaml:"port"`
}

// ConfigLoader is an interface for loading configuration
type ConfigLoader interface {
	Load() (*Config, error)
}

// EnvironmentConfigLoader loads configuration from environment variables,
// optionally overlaid by a YAML file named in CONFIG_FILE
type EnvironmentConfigLoader struct{}

// NewEnvironmentConfigLoader creates a new EnvironmentConfigLoader
func NewEnvironmentConfigLoader() ConfigLoader {
	return &EnvironmentConfigLoader{}
}

// Load loads configuration from environment variables
func (l *EnvironmentConfigLoader) Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", constants.DefaultDBHost),
			Port:         getEnvOrDefault("DB_PORT", constants.DefaultDBPort),
			User:         getEnvOrDefault("DB_USER", "root"),
			Password:     getEnvOrDefault("DB_PASSWORD", ""),
			Database:     getEnvOrDefault("DB_NAME", constants.DefaultDBName),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvDurationOrDefault("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("API_PORT", constants.DefaultAPIPort),
		},
		Validation: ValidationConfig{
			IncludeRMA: getEnvBoolOrDefault("VALIDATE_RMA_MACS", false),
			AdminRoles: []string{"admin"},
		},
		Report: ReportConfig{
			Enabled:       getEnvBoolOrDefault("REPORT_ENABLED", true),
			OutputDir:     getEnvOrDefault("REPORT_DIR", constants.DefaultReportDir),
			StateDBPath:   getEnvOrDefault("REPORT_STATE_DB", constants.DefaultReportStateDB),
			CheckInterval: getEnvDurationOrDefault("REPORT_CHECK_INTERVAL", 5*time.Minute),
			GenerateAfter: getEnvIntOrDefault("REPORT_GENERATE_AFTER", 18),
		},
		Health: HealthConfig{
			Port: getEnvOrDefault("HEALTH_PORT", constants.DefaultHealthPort),
		},
	}

	// Optional YAML overlay
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := l.overlayFile(config, path); err != nil {
			return nil, err
		}
	}

	// Validate configuration
	if err := l.validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// overlayFile merges values from a YAML config file over the env-derived config
func (l *EnvironmentConfigLoader) overlayFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewSystemError("failed to read config file", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return errors.NewValidationError("failed to parse config file", err)
	}
	return nil
}

// validate validates the configuration
func (l *EnvironmentConfigLoader) validate(config *Config) error {
	// Validate database configuration
	if config.Database.Host == "" {
		return errors.NewValidationError("database host not configured", nil)
	}
	if config.Database.Port == "" {
		return errors.NewValidationError("database port not configured", nil)
	}
	if config.Database.User == "" {
		return errors.NewValidationError("database user not configured", nil)
	}
	if config.Database.Database == "" {
		return errors.NewValidationError("database name not configured", nil)
	}

	// Validate server configuration
	if config.Server.Port == "" {
		return errors.NewValidationError("API port not configured", nil)
	}

	// Validate report configuration
	if config.Report.Enabled {
		if config.Report.CheckInterval <= 0 {
			return errors.NewValidationError("invalid report check interval", nil)
		}
		if config.Report.GenerateAfter < 0 || config.Report.GenerateAfter > 23 {
			return errors.NewValidationError("report generation hour must be 0-23", nil)
		}
		if config.Report.OutputDir == "" {
			return errors.NewValidationError("report output directory not configured", nil)
		}
	}

	// Validate health check configuration
	if config.Health.Port == "" {
		return errors.NewValidationError("health check port not configured", nil)
	}

	return nil
}

// Environment variable helper functions

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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
