// Package config exposes the reconciler configuration loaded from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"trade-netting/internal/gateway"
	"trade-netting/internal/netting"
)

// Environment variables overriding the file.
const (
	EnvLogLevel   = "RECONCILER_LOG_LEVEL"
	EnvListenAddr = "RECONCILER_LISTEN_ADDR"
	EnvSheetName  = "RECONCILER_SHEET_NAME"
)

// App captures process-wide runtime settings.
type App struct {
	LogLevel    string `yaml:"log_level"`
	ListenAddr  string `yaml:"listen_addr"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
}

// Input describes where trades are found in uploaded files.
type Input struct {
	SheetName string `yaml:"sheet_name"`
}

// Reconciliation configures how operations are classified and symbols normalized.
type Reconciliation struct {
	BuyOperationLabels   []string `yaml:"buy_operation_labels"`
	SellOperationLabels  []string `yaml:"sell_operation_labels"`
	TickerSuffixPatterns []string `yaml:"ticker_suffix_patterns"`
}

// Config collects every configuration leaf.
type Config struct {
	App            App            `yaml:"app"`
	Input          Input          `yaml:"input"`
	Reconciliation Reconciliation `yaml:"reconciliation"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	n := netting.DefaultConfig()
	return &Config{
		App: App{
			LogLevel:    "info",
			ListenAddr:  ":8080",
			MaxUploadMB: 10,
		},
		Input: Input{SheetName: gateway.DefaultSheetName},
		Reconciliation: Reconciliation{
			BuyOperationLabels:   n.BuyOperationLabels,
			SellOperationLabels:  n.SellOperationLabels,
			TickerSuffixPatterns: n.TickerSuffixPatterns,
		},
	}
}

// Load layers the YAML file at path (if any) and the environment over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.App.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvListenAddr)); v != "" {
		c.App.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSheetName)); v != "" {
		c.Input.SheetName = v
	}
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	if c.App.MaxUploadMB <= 0 {
		return errors.New("app.max_upload_mb must be positive")
	}
	return c.Netting().Validate()
}

// Netting returns the reconciliation settings in the form the engine expects.
func (c *Config) Netting() netting.Config {
	return netting.Config{
		BuyOperationLabels:   c.Reconciliation.BuyOperationLabels,
		SellOperationLabels:  c.Reconciliation.SellOperationLabels,
		TickerSuffixPatterns: c.Reconciliation.TickerSuffixPatterns,
	}
}
