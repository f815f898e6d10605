package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	VSphere   VSphereConfig
	MongoDB   MongoDBConfig
	Collector CollectorConfig
	Webhook   WebhookConfig
	Sheets    SheetsConfig
	LogLevel  string
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// VSphereConfig contains the credentials and endpoint of the vCenter or
// ESXi server the collector connects to. These values come from the
// developer-supplied .env file and are never committed.
type VSphereConfig struct {
	Host     string
	Username string
	Password string
	Port     int
	Insecure bool
}

// MongoDBConfig holds settings for the snapshot store.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// CollectorConfig holds scheduler-related settings for inventory runs.
type CollectorConfig struct {
	CronSchedule string
	RunTimeout   time.Duration
}

// WebhookConfig configures the optional downstream consumer endpoint.
type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

// SheetsConfig configures the optional Google Sheets export target.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ExportRange     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	vspherePort, err := getenvInt("VSPHERE_PORT", 443)
	if err != nil {
		return nil, err
	}

	insecure, err := getenvBool("VSPHERE_INSECURE", false)
	if err != nil {
		return nil, err
	}

	runTimeout, err := getenvDuration("COLLECT_RUN_TIMEOUT", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	webhookTimeout, err := getenvDuration("WEBHOOK_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		VSphere: VSphereConfig{
			Host:     os.Getenv("VSPHERE_HOST"),
			Username: os.Getenv("VSPHERE_USERNAME"),
			Password: os.Getenv("VSPHERE_PASSWORD"),
			Port:     vspherePort,
			Insecure: insecure,
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "vsphere_inventory"),
		},
		Collector: CollectorConfig{
			CronSchedule: getenvWithDefault("COLLECT_CRON_SCHEDULE", "0 * * * *"),
			RunTimeout:   runTimeout,
		},
		Webhook: WebhookConfig{
			URL:     os.Getenv("WEBHOOK_URL"),
			Timeout: webhookTimeout,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
			ExportRange:     getenvWithDefault("GOOGLE_SHEET_EXPORT_RANGE", "Inventory!A:H"),
		},
		LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.VSphere.Host == "":
		return errors.New("VSPHERE_HOST must be provided")
	case c.VSphere.Username == "":
		return errors.New("VSPHERE_USERNAME must be provided")
	case c.VSphere.Password == "":
		return errors.New("VSPHERE_PASSWORD must be provided")
	}

	if c.VSphere.Port <= 0 || c.VSphere.Port > 65535 {
		return fmt.Errorf("VSPHERE_PORT %d is out of range", c.VSphere.Port)
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must not be empty")
	}

	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	if c.Collector.CronSchedule == "" {
		return errors.New("COLLECT_CRON_SCHEDULE must be provided")
	}

	// The sheets export is optional, but when a spreadsheet is configured the
	// credentials file must come with it.
	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_EXPORT_ID is set")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getenvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return parsed, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return parsed, nil
}
