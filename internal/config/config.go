package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all board configuration.
type Config struct {
	Addr        string   `yaml:"addr"`
	BaseURL     string   `yaml:"base_url"`
	DataDir     string   `yaml:"data_dir"`
	AdminEmails []string `yaml:"admin_emails"`

	Gateway  GatewayConfig  `yaml:"gateway"`
	Poll     PollConfig     `yaml:"poll"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Payments PaymentsConfig `yaml:"payments"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GatewayConfig points the board at the REST backend holding domain records.
type GatewayConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// PollConfig drives the background dashboard refresh.
type PollConfig struct {
	Interval string `yaml:"interval"`
}

type SMTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	From string `yaml:"from"`
}

// PaymentsConfig gates the donation payment simulation. The board never
// initiates real payments; the simulate flag only enables the staging flow
// that posts a locally generated transaction reference to the gateway.
type PaymentsConfig struct {
	Simulate bool `yaml:"simulate"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a config with working local defaults.
func Default() *Config {
	return &Config{
		Addr:    ":8080",
		BaseURL: "http://localhost:8080",
		DataDir: "data",
		Gateway: GatewayConfig{
			BaseURL: "http://localhost:8000/api",
			Timeout: "15s",
		},
		Poll:    PollConfig{Interval: "30s"},
		SMTP:    SMTPConfig{Port: 587},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the YAML config at path, falling back to defaults when the file
// is absent, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BOARD_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("BOARD_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("BOARD_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("BOARD_GATEWAY_URL"); v != "" {
		c.Gateway.BaseURL = v
	}
	if v := os.Getenv("BOARD_ADMIN_EMAILS"); v != "" {
		c.AdminEmails = splitList(v)
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		c.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		c.SMTP.User = v
	}
	if v := os.Getenv("SMTP_PASS"); v != "" {
		c.SMTP.Pass = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		c.SMTP.From = v
	}
	if strings.EqualFold(os.Getenv("BOARD_SIMULATE_PAYMENTS"), "true") {
		c.Payments.Simulate = true
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GatewayTimeout parses the configured gateway timeout, defaulting to 15s.
func (c *Config) GatewayTimeout() time.Duration {
	d, err := time.ParseDuration(c.Gateway.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// PollInterval parses the configured poll interval, defaulting to 30s.
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Poll.Interval)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
