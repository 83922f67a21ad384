package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultStoreTimeout bounds the store work for one message
const DefaultStoreTimeout = 5 * time.Second

// TelegramConfig holds Telegram-specific settings
type TelegramConfig struct {
	Token string `yaml:"token"` // Bot token from @BotFather
}

// DatabaseConfig holds publication store settings
type DatabaseConfig struct {
	Path    string         `yaml:"path"`    // SQLite file, ~ expands to home
	Timeout *time.Duration `yaml:"timeout"` // per-message limit, 0 disables
}

// Config holds the publist bot configuration
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Database DatabaseConfig `yaml:"database"`
	LogFile  string         `yaml:"log_file"` // path to log file
	Debug    bool           `yaml:"debug"`    // enable debug logging
}

// Load reads and parses the config file from the given path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram.token is required")
	}

	if cfg.Database.Timeout != nil && *cfg.Database.Timeout < 0 {
		return nil, fmt.Errorf("database.timeout cannot be negative")
	}

	return &cfg, nil
}

// StoreTimeout returns the configured per-message store timeout
func (c *Config) StoreTimeout() time.Duration {
	if c.Database.Timeout == nil {
		return DefaultStoreTimeout
	}
	return *c.Database.Timeout
}

// DatabasePath returns the SQLite path, defaulting to publist.db next to
// the config in ~/.config/publist
func (c *Config) DatabasePath(homeDir string) string {
	path := c.Database.Path
	if path == "" {
		return filepath.Join(homeDir, ".config", "publist", "publist.db")
	}
	if strings.HasPrefix(path, "~") {
		path = strings.Replace(path, "~", homeDir, 1)
	}
	return path
}
