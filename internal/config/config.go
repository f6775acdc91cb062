package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	DropeaAPIKey string `yaml:"dropea_api_key"`
	StoreName    string `yaml:"store_name"`

	// ProductNames maps a product sku to the display name used in
	// messages; products without an entry keep their raw name.
	ProductNames map[string]string `yaml:"product_names"`

	// Rolling fetch windows, in days around "now".
	PendingDaysBack      int `yaml:"pending_days_back"`
	PendingDaysForward   int `yaml:"pending_days_forward"`
	IncidenceDaysBack    int `yaml:"incidence_days_back"`
	IncidenceDaysForward int `yaml:"incidence_days_forward"`

	// HideResolved hides solution-sent incidences by default.
	HideResolved *bool  `yaml:"hide_resolved"`
	Theme        string `yaml:"theme"`

	// PoolsFile optionally replaces the built-in message fragment pools.
	PoolsFile string `yaml:"pools_file"`
}

// Load loads configuration from config file and environment variables
// Environment variables take precedence over config file values
func Load() (*Config, error) {
	cfg := defaults()

	// Load from config file first
	if err := cfg.loadFromFile(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Environment variables override config file
	cfg.loadFromEnv()
	cfg.applyDefaults()

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		StoreName:            "IBericaStore",
		PendingDaysBack:      5,
		PendingDaysForward:   2,
		IncidenceDaysBack:    15,
		IncidenceDaysForward: 1,
	}
}

// applyDefaults fills fields the file zeroed out or never set.
func (c *Config) applyDefaults() {
	d := defaults()
	if c.StoreName == "" {
		c.StoreName = d.StoreName
	}
	if c.PendingDaysBack == 0 {
		c.PendingDaysBack = d.PendingDaysBack
	}
	if c.PendingDaysForward == 0 {
		c.PendingDaysForward = d.PendingDaysForward
	}
	if c.IncidenceDaysBack == 0 {
		c.IncidenceDaysBack = d.IncidenceDaysBack
	}
	if c.IncidenceDaysForward == 0 {
		c.IncidenceDaysForward = d.IncidenceDaysForward
	}
	if c.PoolsFile == "" {
		if dir, err := GetConfigDir(); err == nil {
			c.PoolsFile = filepath.Join(dir, "pools.yaml")
		}
	}
}

// HideResolvedDefault returns the hide-resolved toggle start value.
// Unset means hidden.
func (c *Config) HideResolvedDefault() bool {
	if c.HideResolved == nil {
		return true
	}
	return *c.HideResolved
}

func (c *Config) loadFromFile() error {
	configPath := getConfigPath()
	if configPath == "" {
		return os.ErrNotExist
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	if key := os.Getenv("DROPEA_API_KEY"); key != "" {
		c.DropeaAPIKey = key
	}
	if store := os.Getenv("WHATSTRIAGE_STORE_NAME"); store != "" {
		c.StoreName = store
	}
}

// getConfigPath returns the path to the config file
// Priority: $WHATSTRIAGE_CONFIG > ~/.config/whatstriage/config.yaml
func getConfigPath() string {
	if configPath := os.Getenv("WHATSTRIAGE_CONFIG"); configPath != "" {
		return configPath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "whatstriage", "config.yaml")
}

func GetConfigDir() (string, error) {
	configPath := getConfigPath()
	if configPath == "" {
		return "", fmt.Errorf("cannot determine config path")
	}
	return filepath.Dir(configPath), nil
}

// EnsureConfigDir ensures the config directory exists
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return configDir, nil
}

// SaveExampleConfig creates an example config file
func SaveExampleConfig() error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil // Already exists, don't overwrite
	}

	example := `# whatstriage configuration
# The Dropea API key can also be set via the DROPEA_API_KEY env var.

dropea_api_key: ""

# Store name used in message headers and agent introductions.
store_name: "IBericaStore"

# Optional: sku -> display name overrides for message product lists.
product_names:
  Evilgoods_15913: "Crema EvilGoods"

# Rolling fetch windows in days around today.
pending_days_back: 5
pending_days_forward: 2
incidence_days_back: 15
incidence_days_forward: 1

# Hide incidences whose solution was already sent (default: true).
hide_resolved: true

# Optional: color theme (default, catppuccin, dracula, nord)
theme: "default"

# Optional: yaml file replacing the built-in message fragment pools.
# pools_file: ""
`

	return os.WriteFile(configPath, []byte(example), 0600)
}

func (c *Config) Save() error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	// Load existing config to preserve fields like the API key
	existing := defaults()
	if data, err := os.ReadFile(configPath); err == nil {
		yaml.Unmarshal(data, existing)
	}

	// Update only the fields we manage (not secrets from env vars)
	existing.StoreName = c.StoreName
	existing.ProductNames = c.ProductNames
	existing.PendingDaysBack = c.PendingDaysBack
	existing.PendingDaysForward = c.PendingDaysForward
	existing.IncidenceDaysBack = c.IncidenceDaysBack
	existing.IncidenceDaysForward = c.IncidenceDaysForward
	existing.HideResolved = c.HideResolved
	existing.Theme = c.Theme
	existing.PoolsFile = c.PoolsFile
	// Note: We preserve existing.DropeaAPIKey

	data, err := yaml.Marshal(existing)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# whatstriage configuration\n# Note: the API key can be set via environment variable or this file\n\n")
	return os.WriteFile(configPath, append(header, data...), 0600)
}
