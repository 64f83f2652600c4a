package app

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the optional single-file configuration schema. Nested
// sections map naturally onto the flag names.
type FileConfig struct {
	Listen string `yaml:"listen" json:"listen"`

	Upload struct {
		Dir string `yaml:"dir" json:"dir"`
	} `yaml:"upload" json:"upload"`

	Static struct {
		Dir string `yaml:"dir" json:"dir"`
	} `yaml:"static" json:"static"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadFileConfig reads and decodes a YAML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return fc, nil
}

// Apply copies non-empty file values onto cfg. Flags already set keep
// their values; the file only fills gaps, keeping flag > file > default
// precedence.
func (fc FileConfig) Apply(cfg *Config) {
	if cfg.Listen == "" {
		cfg.Listen = fc.Listen
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = fc.Upload.Dir
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = fc.Static.Dir
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}
