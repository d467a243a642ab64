package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"BlueBatch/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment" default:"production"`
	Batch       struct {
		Workers          int           `yaml:"workers" default:"4"`
		MaxFilesPerBatch int           `yaml:"max_files_per_batch" default:"500"`
		RunTimeout       time.Duration `yaml:"run_timeout" default:"30m"`
	} `yaml:"batch"`
	Retry struct {
		MaxAttempts int           `yaml:"max_attempts" default:"3"`
		BaseDelay   time.Duration `yaml:"base_delay" default:"500ms"`
		MaxDelay    time.Duration `yaml:"max_delay" default:"30s"`
	} `yaml:"retry"`
	Validation struct {
		MissingDataThreshold float64 `yaml:"missing_data_threshold" default:"0.1"`
		MinBars              int     `yaml:"min_bars" default:"30"`
		StrictMinBars        bool    `yaml:"strict_min_bars"`
	} `yaml:"validation"`
	Paths struct {
		Input   string `yaml:"input" default:"data/raw"`
		Output  string `yaml:"output" default:"data/processed"`
		History string `yaml:"history" default:"logs/processing_history.json"`
	} `yaml:"paths"`
	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Monitor struct {
		Enabled    bool          `yaml:"enabled"`
		Port       int           `yaml:"port" default:"8080"`
		StaleAfter time.Duration `yaml:"stale_after" default:"26h"`
	} `yaml:"monitor"`
	Notify struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"notify"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Fill zero-valued fields with defaults
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("INPUT_PATH"); v != "" {
		c.Paths.Input = v
	}
	if v := os.Getenv("OUTPUT_PATH"); v != "" {
		c.Paths.Output = v
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		c.Notify.WebhookURL = v
	}
	if v := os.Getenv("BATCH_WORKERS"); v != "" {
		c.Batch.Workers = util.ParseIntDefault(v, c.Batch.Workers)
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("batch.workers must be positive, got %d", c.Batch.Workers)
	}
	if c.Batch.MaxFilesPerBatch <= 0 {
		return fmt.Errorf("batch.max_files_per_batch must be positive, got %d", c.Batch.MaxFilesPerBatch)
	}
	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry.max_attempts must be positive, got %d", c.Retry.MaxAttempts)
	}
	if c.Validation.MissingDataThreshold < 0 || c.Validation.MissingDataThreshold > 1 {
		return fmt.Errorf("validation.missing_data_threshold must be in [0,1], got %v", c.Validation.MissingDataThreshold)
	}
	if c.Validation.MinBars < 0 {
		return fmt.Errorf("validation.min_bars must be non-negative, got %d", c.Validation.MinBars)
	}
	if c.Paths.Input == "" || c.Paths.Output == "" {
		return fmt.Errorf("paths.input and paths.output are required")
	}
	return nil
}
