package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeContinuous Mode = "continuous"
	ModeOneTime    Mode = "onetime"
)

type ChannelsConfig struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

type ForwarderConfig struct {
	Mode                   Mode     `yaml:"mode"`
	PollIntervalMS         int      `yaml:"poll_interval_ms"`
	PageSize               int      `yaml:"page_size"`
	MaxConcurrentDownloads int      `yaml:"max_concurrent_downloads"`
	MaxConcurrentUploads   int      `yaml:"max_concurrent_uploads"`
	RetryCount             int      `yaml:"retry_count"`
	RetryDelayMS           int      `yaml:"retry_delay_ms"`
	MessageFilters         []string `yaml:"message_filters"`
}

func (c ForwarderConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

func (c ForwarderConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

type ProxyConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
}

type StatusConfig struct {
	Addr string `yaml:"addr"`
}

// APIConfig holds the client credentials, loaded from the environment rather
// than the config file.
type APIConfig struct {
	ID    int
	Hash  string
	Phone string
}

type Config struct {
	Channels  ChannelsConfig  `yaml:"channels"`
	Forwarder ForwarderConfig `yaml:"forwarder"`
	Proxy     ProxyConfig     `yaml:"proxy"`
	Log       LogConfig       `yaml:"log"`
	Status    StatusConfig    `yaml:"status"`
	API       APIConfig       `yaml:"-"`
}

func checkEnv(envVars []string) error {
	var missingVars []string

	for _, envVar := range envVars {
		if value, exists := os.LookupEnv(envVar); !exists || value == "" {
			missingVars = append(missingVars, envVar)
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("error: this env vars are missing: %v", missingVars)
	}
	return nil
}

func loadAPIConfig() (APIConfig, error) {
	// The .env file is optional; variables may come from the environment.
	_ = godotenv.Load(".env")

	err := checkEnv([]string{
		"API_ID",
		"API_HASH",
		"PHONE_NUMBER",
	})
	if err != nil {
		return APIConfig{}, err
	}

	apiID, err := strconv.Atoi(os.Getenv("API_ID"))
	if err != nil {
		return APIConfig{}, fmt.Errorf("parse API_ID: %w", err)
	}

	return APIConfig{
		ID:    apiID,
		Hash:  os.Getenv("API_HASH"),
		Phone: os.Getenv("PHONE_NUMBER"),
	}, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Forwarder.Mode != ModeContinuous && cfg.Forwarder.Mode != ModeOneTime {
		cfg.Forwarder.Mode = ModeContinuous
	}
	if cfg.Forwarder.PollIntervalMS <= 0 {
		cfg.Forwarder.PollIntervalMS = 1000
	}
	if cfg.Forwarder.PageSize <= 0 {
		cfg.Forwarder.PageSize = 10
	}
	if cfg.Forwarder.MaxConcurrentDownloads <= 0 {
		cfg.Forwarder.MaxConcurrentDownloads = 2
	}
	if cfg.Forwarder.MaxConcurrentUploads <= 0 {
		cfg.Forwarder.MaxConcurrentUploads = 2
	}
	if cfg.Forwarder.RetryCount < 0 {
		cfg.Forwarder.RetryCount = 3
	}
	if cfg.Forwarder.RetryDelayMS <= 0 {
		cfg.Forwarder.RetryDelayMS = 5000
	}
	if cfg.Log.Mode == "" {
		cfg.Log.Mode = "prod"
	}
	if cfg.Status.Addr == "" {
		cfg.Status.Addr = ":8080"
	}
	if cfg.Proxy.Type == "" {
		cfg.Proxy.Type = "socks5"
	}
}

// Validate checks the parts of the config that have no usable default.
func (c *Config) Validate() error {
	if c.Channels.Source == "" {
		return fmt.Errorf("config: source channel is required")
	}
	if c.Channels.Target == "" {
		return fmt.Errorf("config: target channel is required")
	}
	return nil
}

// LoadConfig reads the YAML config file and merges credentials from the
// environment. Channel overrides from the CLI are applied by the caller
// before Validate.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	apiCfg, err := loadAPIConfig()
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: %w", err)
	}
	cfg.API = apiCfg

	applyDefaults(cfg)
	return cfg, nil
}
