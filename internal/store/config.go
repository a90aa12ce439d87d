package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"management-quality/internal/types"
)

const defaultWindowYears = 10

type Config struct {
	BasePath    string           `yaml:"base_path"`
	DataSource  string           `yaml:"data_source"`
	DataDir     string           `yaml:"data_dir"`
	ReportDir   string           `yaml:"report_dir"`
	RulePolicy  types.RulePolicy `yaml:"rule_policy"`
	WindowYears int              `yaml:"window_years"`
	Report      struct {
		Indent        int    `yaml:"indent"`
		ConsoleFormat string `yaml:"console_format"`
	} `yaml:"report"`
}

func (c *Config) Validate() error {
	if c.DataSource != "FILESYSTEM" && c.DataSource != "MOCK" {
		return fmt.Errorf("invalid data_source '%s': must be 'FILESYSTEM' or 'MOCK'", c.DataSource)
	}
	if c.DataSource == "FILESYSTEM" && c.BasePath == "" {
		return errors.New("base_path cannot be empty")
	}
	if c.RulePolicy != types.PolicyCanonical && c.RulePolicy != types.PolicyLegacy {
		return fmt.Errorf("invalid rule_policy '%s': must be 'CANONICAL' or 'LEGACY'", c.RulePolicy)
	}
	if c.WindowYears != defaultWindowYears {
		return fmt.Errorf("window_years is fixed at %d, got %d", defaultWindowYears, c.WindowYears)
	}
	switch c.Report.ConsoleFormat {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("report.console_format must be 'text', 'json', or 'csv', got '%s'", c.Report.ConsoleFormat)
	}
	if c.Report.Indent < 0 || c.Report.Indent > 8 {
		return fmt.Errorf("report.indent must be between 0-8, got %d", c.Report.Indent)
	}
	return nil
}

// ManagementConfig returns the scoring settings
func (c *Config) ManagementConfig() *types.ManagementConfig {
	return &types.ManagementConfig{
		Policy:      c.RulePolicy,
		WindowYears: c.WindowYears,
	}
}

// Option overrides a loaded setting, typically from a command line flag
type Option func(*Config)

// WithBasePath overrides base_path when v is set
func WithBasePath(v string) Option {
	return func(c *Config) {
		if v != "" {
			c.BasePath = v
		}
	}
}

// WithRulePolicy overrides rule_policy when v is set
func WithRulePolicy(v string) Option {
	return func(c *Config) {
		if v != "" {
			c.RulePolicy = types.RulePolicy(strings.ToUpper(v))
		}
	}
}

// WithDataSource overrides data_source when v is set
func WithDataSource(v string) Option {
	return func(c *Config) {
		if v != "" {
			c.DataSource = strings.ToUpper(v)
		}
	}
}

// LoadConfig reads path, falling back to defaults when the file does not exist.
// Options are applied after defaults and before validation.
func LoadConfig(path string, opts ...Option) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	applyDefaults(&c)
	for _, opt := range opts {
		opt(&c)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func applyDefaults(c *Config) {
	if v := os.Getenv("MANAGEMENT_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if c.DataSource == "" {
		c.DataSource = "FILESYSTEM"
	}
	c.DataSource = strings.ToUpper(c.DataSource)
	if c.DataDir == "" {
		c.DataDir = "core"
	}
	if c.ReportDir == "" {
		c.ReportDir = "management"
	}
	if c.RulePolicy == "" {
		c.RulePolicy = types.PolicyCanonical
	}
	c.RulePolicy = types.RulePolicy(strings.ToUpper(string(c.RulePolicy)))
	if c.WindowYears == 0 {
		c.WindowYears = defaultWindowYears
	}
	if c.Report.Indent == 0 {
		c.Report.Indent = 4
	}
	if c.Report.ConsoleFormat == "" {
		c.Report.ConsoleFormat = "text"
	}
}
