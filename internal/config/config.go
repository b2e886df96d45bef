package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries one run's settings. Defaults come from Default; an
// optional YAML file overlays them before flags are applied on top.
type Config struct {
	InputPath string `yaml:"input"`
	OutputDir string `yaml:"output"`
	Sectors   int    `yaml:"sectors"`
	Workers   int    `yaml:"workers"`
	DPI       int    `yaml:"dpi"` // PDF page rendering only
	FontPath  string `yaml:"font"`

	Classification Classification `yaml:"classification"`
}

// Classification is the threshold table applied to each sector's
// hue-like value. The value space is 0..360; DontSellMin must sit above
// SqueezeMin for the three branches to be distinct.
type Classification struct {
	DontSellMin  int    `yaml:"dont_sell_min"`
	SqueezeMin   int    `yaml:"squeeze_min"`
	DontSellName string `yaml:"dont_sell_name"`
	SqueezeName  string `yaml:"squeeze_name"`
	SellName     string `yaml:"sell_name"`
}

// Default returns the configuration the reference pipeline uses.
func Default() *Config {
	return &Config{
		Sectors: 32,
		Workers: 0, // 0 = one per physical core, resolved at startup
		DPI:     300,
		Classification: Classification{
			DontSellMin:  200,
			SqueezeMin:   125,
			DontSellName: "Don't sell",
			SqueezeName:  "Squeeze room",
			SellName:     "Sell",
		},
	}
}

// LoadFile overlays c with the values from a YAML file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Sectors < 1 {
		return fmt.Errorf("sectors must be >= 1, got %d", c.Sectors)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.DPI < 1 {
		return fmt.Errorf("dpi must be >= 1, got %d", c.DPI)
	}
	return nil
}
