package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
	Scheduling SchedulingConfig `yaml:"scheduling"`
	Extract    ExtractConfig    `yaml:"extract"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Server     ServerConfig     `yaml:"server"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Type     string         `yaml:"type"` // "file" or "postgres"
	Path     string         `yaml:"path"` // data file for the file backend
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulingConfig tunes the booking engine.
type SchedulingConfig struct {
	// SearchHorizonDays bounds the auto-schedule slot search; 0 disables
	// the horizon so the search always succeeds past the last booking.
	SearchHorizonDays int `yaml:"search_horizon_days"`
	// DefaultRentalDays is used when a rent command gives neither an end
	// date nor a day count.
	DefaultRentalDays int `yaml:"default_rental_days"`
}

// ExtractConfig configures the natural-language rental extractor.
type ExtractConfig struct {
	Mode     string `yaml:"mode"` // "heuristic" or "openai"
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

// SMTPConfig contains email notification settings. Notifications are
// disabled when Host is empty.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// ServerConfig contains the read-only HTTP API settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SchedulerConfig contains cron schedule settings for the job runner.
type SchedulerConfig struct {
	FlagOverdueRentals  string `yaml:"flag_overdue_rentals"`
	SendReturnReminders string `yaml:"send_return_reminders"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file, applies environment overrides
// and validates the result.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables.
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("RENTAL_DATA_FILE"); val != "" {
		c.Storage.Path = val
	}
	if val := os.Getenv("RENTAL_STORAGE_TYPE"); val != "" {
		c.Storage.Type = val
	}

	if val := os.Getenv("DB_HOST"); val != "" {
		c.Storage.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Storage.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Storage.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Storage.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Storage.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Storage.Database.SSLMode = val
	}

	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.SMTP.Port)
	}
	if val := os.Getenv("SMTP_USER"); val != "" {
		c.SMTP.User = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.SMTP.Password = val
	}
	if val := os.Getenv("SMTP_FROM"); val != "" {
		c.SMTP.From = val
	}

	if val := os.Getenv("EXTRACT_API_KEY"); val != "" {
		c.Extract.APIKey = val
	}
	if val := os.Getenv("EXTRACT_ENDPOINT"); val != "" {
		c.Extract.Endpoint = val
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

func (c *Config) applyDefaults() {
	if c.Storage.Type == "" {
		c.Storage.Type = "file"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data/rentals.json"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Scheduling.SearchHorizonDays == 0 {
		c.Scheduling.SearchHorizonDays = 365
	}
	if c.Scheduling.DefaultRentalDays == 0 {
		c.Scheduling.DefaultRentalDays = 3
	}
	if c.Extract.Mode == "" {
		c.Extract.Mode = "heuristic"
	}
	if c.Extract.Model == "" {
		c.Extract.Model = "gpt-4o-mini"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Scheduler.FlagOverdueRentals == "" {
		c.Scheduler.FlagOverdueRentals = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.SendReturnReminders == "" {
		c.Scheduler.SendReturnReminders = "0 0 9 * * *" // 9 AM UTC
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "file":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for the file backend")
		}
	case "postgres":
		if c.Storage.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Storage.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Storage.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	default:
		return fmt.Errorf("unknown storage type: %q", c.Storage.Type)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Scheduling.SearchHorizonDays < 0 {
		return fmt.Errorf("search horizon must not be negative")
	}
	if c.Scheduling.DefaultRentalDays < 1 {
		return fmt.Errorf("default rental days must be at least 1")
	}
	if c.Extract.Mode != "heuristic" && c.Extract.Mode != "openai" {
		return fmt.Errorf("unknown extract mode: %q", c.Extract.Mode)
	}
	if c.Extract.Mode == "openai" && c.Extract.Endpoint == "" {
		return fmt.Errorf("extract endpoint is required in openai mode")
	}
	if c.SMTP.Host != "" && (c.SMTP.Port <= 0 || c.SMTP.Port > 65535) {
		return fmt.Errorf("invalid SMTP port: %d", c.SMTP.Port)
	}
	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string.
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Storage.Database.User,
		c.Storage.Database.Password,
		c.Storage.Database.Host,
		c.Storage.Database.Port,
		c.Storage.Database.Database,
		c.Storage.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address.
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
