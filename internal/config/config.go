package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	HTTPAddr  string
	CORSAllow string // Comma-separated allowed origins
	DBPath    string
	Reference ReferenceConfig
	Deals     DealsConfig
	Quotes    QuotesConfig
	Location  LocationConfig
	Valkey    ValkeyConfig
	Log       LogConfig
}

// ReferenceConfig controls how the airport reference set is built
type ReferenceConfig struct {
	ExtraAirportsCSV []string // Optional CSV files appended to the built-in airports
}

// DealsConfig holds deal synthesis settings
type DealsConfig struct {
	DefaultCount int
	MaxCount     int
	Seed         uint64 // 0 uses the process-global random source
}

// QuotesConfig holds quote log settings
type QuotesConfig struct {
	BatchSize      int
	BatchTimeout   int // seconds
	RetentionHours int
	PruneInterval  int // minutes
}

// LocationConfig selects the session location store
type LocationConfig struct {
	Backend  string // sqlite or valkey
	TTLHours int    // only honoured by the valkey backend
}

// ValkeyConfig holds the Valkey connection settings
type ValkeyConfig struct {
	Addr string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("cors_allow_origins", "*")
	v.SetDefault("db_path", "cheapflyer.db")
	v.SetDefault("reference.extra_airports_csv", []string{})
	v.SetDefault("deals.default_count", 6)
	v.SetDefault("deals.max_count", 50)
	v.SetDefault("deals.seed", 0)
	v.SetDefault("quotes.batch_size", 100)
	v.SetDefault("quotes.batch_timeout", 5)
	v.SetDefault("quotes.retention_hours", 24*30)
	v.SetDefault("quotes.prune_interval", 60)
	v.SetDefault("location.backend", "sqlite")
	v.SetDefault("location.ttl_hours", 24*30)
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/cheapflyer")
	v.AddConfigPath(".")

	if configPath := os.Getenv("CHEAPFLYER_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	// A missing config file is fine, defaults and env vars still apply.
	// Logging is not initialized yet, so nothing is reported here.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("CHEAPFLYER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		HTTPAddr:  v.GetString("http_addr"),
		CORSAllow: v.GetString("cors_allow_origins"),
		DBPath:    v.GetString("db_path"),
		Reference: ReferenceConfig{
			ExtraAirportsCSV: v.GetStringSlice("reference.extra_airports_csv"),
		},
		Deals: DealsConfig{
			DefaultCount: v.GetInt("deals.default_count"),
			MaxCount:     v.GetInt("deals.max_count"),
			Seed:         v.GetUint64("deals.seed"),
		},
		Quotes: QuotesConfig{
			BatchSize:      v.GetInt("quotes.batch_size"),
			BatchTimeout:   v.GetInt("quotes.batch_timeout"),
			RetentionHours: v.GetInt("quotes.retention_hours"),
			PruneInterval:  v.GetInt("quotes.prune_interval"),
		},
		Location: LocationConfig{
			Backend:  strings.ToLower(v.GetString("location.backend")),
			TTLHours: v.GetInt("location.ttl_hours"),
		},
		Valkey: ValkeyConfig{
			Addr: v.GetString("valkey.addr"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("http_addr is required")
	}

	if cfg.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if cfg.Deals.DefaultCount <= 0 {
		return fmt.Errorf("deals.default_count must be greater than 0")
	}

	if cfg.Deals.MaxCount < cfg.Deals.DefaultCount {
		return fmt.Errorf("deals.max_count must be at least deals.default_count")
	}

	if cfg.Quotes.BatchSize <= 0 {
		return fmt.Errorf("quotes.batch_size must be greater than 0")
	}

	if cfg.Quotes.BatchTimeout <= 0 {
		return fmt.Errorf("quotes.batch_timeout must be greater than 0")
	}

	if cfg.Quotes.RetentionHours <= 0 {
		return fmt.Errorf("quotes.retention_hours must be greater than 0")
	}

	if cfg.Quotes.PruneInterval <= 0 {
		return fmt.Errorf("quotes.prune_interval must be greater than 0")
	}

	switch cfg.Location.Backend {
	case "sqlite":
	case "valkey":
		if cfg.Valkey.Addr == "" {
			return fmt.Errorf("valkey.addr is required when location.backend is valkey")
		}
		if cfg.Location.TTLHours <= 0 {
			return fmt.Errorf("location.ttl_hours must be greater than 0")
		}
	default:
		return fmt.Errorf("invalid location backend: %s (must be sqlite or valkey)", cfg.Location.Backend)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
