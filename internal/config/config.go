package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/muhammadidrees/raseed/internal/domain"
	"github.com/muhammadidrees/raseed/internal/logger"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const appName = "raseed"

// Supported output formats for generated invoices
const (
	FormatPDF  = "pdf"
	FormatText = "txt"
	FormatHTML = "html"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// Company presets selectable by slug
	Companies map[string]domain.CompanyInfo `yaml:"companies"`

	// Preview server settings
	Server ServerConfig `yaml:"server"`

	Log logger.LogConfig `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to SQLite database
}

type InvoiceConfig struct {
	TaxRate       float64 `yaml:"tax_rate"`       // Tax rate as a percentage (19 = 19%)
	OutputDir     string  `yaml:"output_dir"`     // Directory for generated invoices
	DefaultFormat string  `yaml:"default_format"` // pdf, txt or html
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Dir returns ~/.config/raseed
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", appName)
	}
	return filepath.Join(homeDir, ".config", appName)
}

// DefaultConfigPath returns ~/.config/raseed/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := Dir()

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "raseed.db"),
		},
		Invoice: InvoiceConfig{
			TaxRate:       0,
			OutputDir:     filepath.Join(dir, "invoices"),
			DefaultFormat: FormatPDF,
		},
		Companies: map[string]domain.CompanyInfo{
			"makula": {
				Name: "Makula Technology GmbH",
				Address: domain.Address{
					Street: "c/o Mindspace Münzstr. 12",
					City:   "Germany",
					Zip:    "10178 Berlin",
				},
			},
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Log: logger.DefaultConfig(),
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist.
// Environment variables override values from the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) applyEnv() error {
	c.Database.Path = getEnv("RASEED_DB_PATH", c.Database.Path)
	c.Invoice.OutputDir = getEnv("RASEED_OUTPUT_DIR", c.Invoice.OutputDir)
	c.Invoice.DefaultFormat = getEnv("RASEED_FORMAT", c.Invoice.DefaultFormat)
	c.Server.Addr = getEnv("RASEED_SERVER_ADDR", c.Server.Addr)
	c.Log.Level = getEnv("RASEED_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("RASEED_LOG_FORMAT", c.Log.Format)
	c.Log.Output = getEnv("RASEED_LOG_OUTPUT", c.Log.Output)

	if raw := os.Getenv("RASEED_TAX_RATE"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid RASEED_TAX_RATE %q: %w", raw, err)
		}
		c.Invoice.TaxRate = rate
	}

	return nil
}

// Validate returns an error if the config is invalid
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Invoice.TaxRate < 0 || c.Invoice.TaxRate > 100 {
		return fmt.Errorf("tax rate must be between 0 and 100, got %v", c.Invoice.TaxRate)
	}
	switch c.Invoice.DefaultFormat {
	case FormatPDF, FormatText, FormatHTML:
	default:
		return fmt.Errorf("unknown invoice format %q", c.Invoice.DefaultFormat)
	}
	return nil
}

// TaxRate returns the configured tax rate as a decimal percentage
func (c *Config) TaxRate() decimal.Decimal {
	return decimal.NewFromFloat(c.Invoice.TaxRate)
}

// CompanyPreset looks up a company preset by slug
func (c *Config) CompanyPreset(slug string) (domain.CompanyInfo, bool) {
	company, ok := c.Companies[slug]
	return company, ok
}

// PresetSlugs returns the preset slugs in sorted order
func (c *Config) PresetSlugs() []string {
	slugs := make([]string, 0, len(c.Companies))
	for slug := range c.Companies {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the database and invoice output directories
func (c *Config) EnsureDirectories() error {
	dbDir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	if err := os.MkdirAll(c.Invoice.OutputDir, 0755); err != nil {
		return err
	}

	return nil
}
