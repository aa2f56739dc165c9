package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Sample    SampleConfig    `yaml:"sample"`
	Timing    TimingConfig    `yaml:"timing"`
	Retry     RetryConfig     `yaml:"retry"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TransportConfig selects how the MCP server is exposed: "stdio" or "http".
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// DBConfig selects the storage backend. Path is used by sqlite, DSN by postgres.
type DBConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// SampleConfig controls whether empty panels are seeded with demo records.
type SampleConfig struct {
	Seed bool `yaml:"seed"`
}

type TimingConfig struct {
	AlertDelay  time.Duration `yaml:"alert_delay"`
	SplashDelay time.Duration `yaml:"splash_delay"`
}

type RetryConfig struct {
	Attempts int `yaml:"attempts"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		DB: DBConfig{
			Driver: DriverSQLite,
			Path:   ":memory:",
		},
		Log: LogConfig{
			Level: "info",
		},
		Sample: SampleConfig{
			Seed: true,
		},
		Timing: TimingConfig{
			AlertDelay:  2 * time.Second,
			SplashDelay: 2500 * time.Millisecond,
		},
		Retry: RetryConfig{
			Attempts: 3,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("NIRAPOD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("NIRAPOD_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("NIRAPOD_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NIRAPOD_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("NIRAPOD_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if driver := os.Getenv("NIRAPOD_DB_DRIVER"); driver != "" {
		cfg.DB.Driver = driver
	}
	if dbPath := os.Getenv("NIRAPOD_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if dsn := os.Getenv("NIRAPOD_DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	}
	if level := os.Getenv("NIRAPOD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("NIRAPOD_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if seedStr := os.Getenv("NIRAPOD_SEED"); seedStr != "" {
		seed, err := strconv.ParseBool(seedStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NIRAPOD_SEED: %w", err)
		}
		cfg.Sample.Seed = seed
	}
	if delayStr := os.Getenv("NIRAPOD_ALERT_DELAY"); delayStr != "" {
		delay, err := time.ParseDuration(delayStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NIRAPOD_ALERT_DELAY: %w", err)
		}
		cfg.Timing.AlertDelay = delay
	}
	if delayStr := os.Getenv("NIRAPOD_SPLASH_DELAY"); delayStr != "" {
		delay, err := time.ParseDuration(delayStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NIRAPOD_SPLASH_DELAY: %w", err)
		}
		cfg.Timing.SplashDelay = delay
	}
	if attemptsStr := os.Getenv("NIRAPOD_RETRY_ATTEMPTS"); attemptsStr != "" {
		attempts, err := strconv.Atoi(attemptsStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NIRAPOD_RETRY_ATTEMPTS: %w", err)
		}
		cfg.Retry.Attempts = attempts
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Transport.Mode {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	switch c.DB.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("db driver %q requires a dsn", c.DB.Driver)
		}
	default:
		return fmt.Errorf("invalid db driver %q", c.DB.Driver)
	}
	if c.Timing.AlertDelay < 0 || c.Timing.SplashDelay < 0 {
		return fmt.Errorf("timing delays must not be negative")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
