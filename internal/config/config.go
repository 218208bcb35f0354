package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level ledgerline.yaml configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Report  ReportConfig  `yaml:"report"`
	Email   EmailConfig   `yaml:"email,omitempty"`
	Webhook WebhookConfig `yaml:"webhook,omitempty"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ReportConfig selects the report delivery channels and sizes the
// background dispatch queue.
type ReportConfig struct {
	Channels  []string `yaml:"channels"`
	Subject   string   `yaml:"subject"`
	QueueSize int      `yaml:"queue_size"`
	Workers   int      `yaml:"workers"`
}

// EmailConfig holds SMTP settings for the email report channel.
type EmailConfig struct {
	SMTPHost string   `yaml:"smtp_host"`
	SMTPPort int      `yaml:"smtp_port"`
	Username string   `yaml:"username,omitempty"`
	Password string   `yaml:"password,omitempty"`
	From     string   `yaml:"from,omitempty"`
	To       []string `yaml:"to,omitempty"`
}

// WebhookConfig holds the target for the webhook report channel.
type WebhookConfig struct {
	URL string `yaml:"url,omitempty"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a ledgerline.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new deployment:
// log-channel reports only, no SMTP or webhook configured.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Report: ReportConfig{
			Channels:  []string{"log"},
			Subject:   "Migration Report - Ledgerline",
			QueueSize: 16,
			Workers:   2,
		},
		Email: EmailConfig{
			SMTPHost: "smtp.gmail.com",
			SMTPPort: 587,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
