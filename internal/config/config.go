// Package config loads docullim.json and merges it over built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/shrynx/docullim/internal/logging"
)

// ConfigFile is the default configuration file name looked up in the
// working directory when no explicit path is given.
const ConfigFile = "docullim.json"

const defaultPrompt = "Generate short and simple documentation explaing the code " +
	"and include sample usage. don't add the word documentation in the begining " +
	"and also don't explain the example usage."

// Config holds the runtime configuration for a docullim run.
type Config struct {
	Model          string            `mapstructure:"model"`
	MaxConcurrency int               `mapstructure:"max_concurrency"`
	Prompts        map[string]string `mapstructure:"prompts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Model:          "gpt-4",
		MaxConcurrency: 1,
		Prompts: map[string]string{
			"default": defaultPrompt,
		},
	}
}

// Load reads configuration from path and merges it over the defaults.
//
// An empty path falls back to docullim.json in the working directory when
// that file exists. A missing, unreadable, or malformed file is reported and
// the defaults are used; loading never fails the run.
func Load(path string) *Config {
	if path == "" {
		candidate := filepath.Join(".", ConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	cfg := Default()
	if path == "" {
		return cfg
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault("model", cfg.Model)
	v.SetDefault("max_concurrency", cfg.MaxConcurrency)
	v.SetDefault("prompts", cfg.Prompts)

	if err := v.ReadInConfig(); err != nil {
		logging.Warn("failed to load config file, using defaults", "path", path, "error", err)
		return cfg
	}

	merged := Default()
	if err := v.Unmarshal(merged); err != nil {
		logging.Warn("failed to parse config file, using defaults", "path", path, "error", err)
		return cfg
	}
	if merged.Model == "" {
		merged.Model = cfg.Model
	}
	if merged.MaxConcurrency < 1 {
		merged.MaxConcurrency = cfg.MaxConcurrency
	}
	if merged.Prompts == nil {
		merged.Prompts = map[string]string{}
	}
	if strings.TrimSpace(merged.Prompts["default"]) == "" {
		merged.Prompts["default"] = defaultPrompt
	}

	return merged
}

// PromptFor returns the prompt template for a unit tag. An empty or unknown
// tag falls back to the default prompt.
func (c *Config) PromptFor(tag string) string {
	if tag != "" {
		if prompt, ok := c.Prompts[tag]; ok && strings.TrimSpace(prompt) != "" {
			return prompt
		}
	}
	return c.Prompts["default"]
}
