// Package config loads application settings: an optional YAML file for
// tuning, plus environment variables (optionally from a .env file) for
// credentials. Secrets never live in the YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Model  Model  `yaml:"model"`
	Loop   Loop   `yaml:"loop"`
	Tools  Tools  `yaml:"tools"`
	Memory Memory `yaml:"memory"`
}

// Model selects and authenticates the decision model.
type Model struct {
	// Name is the provider model name, e.g. "gpt-4o-mini".
	Name string `yaml:"name"`

	// APIKey comes from OPENAI_API_KEY only, never from the file.
	APIKey string `yaml:"-"`
}

// Loop tunes the agent loop.
type Loop struct {
	MaxIterations int `yaml:"max_iterations"`
}

// Tools tunes tool invocation.
type Tools struct {
	// TimeoutSeconds bounds side-effecting tool calls.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	Weather Weather `yaml:"weather"`
}

// Weather configures the get_weather tool.
type Weather struct {
	// BaseURL overrides the OpenWeatherMap endpoint, mainly for tests.
	BaseURL string `yaml:"base_url"`

	// APIKey comes from OPENWEATHER_API_KEY only.
	APIKey string `yaml:"-"`
}

// Memory configures long-term memory.
type Memory struct {
	// UserID keys the memory store. Empty disables memory.
	UserID string `yaml:"user_id"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Model: Model{Name: "gpt-4o-mini"},
		Loop:  Loop{MaxIterations: 10},
		Tools: Tools{TimeoutSeconds: 10},
	}
}

// ToolTimeout returns the tool budget as a duration.
func (c Config) ToolTimeout() time.Duration {
	return time.Duration(c.Tools.TimeoutSeconds) * time.Second
}

// Load builds the configuration: defaults, overlaid with the YAML file
// at path (skipped when path is empty), overlaid with environment
// credentials. A .env file in the working directory is loaded first
// when present; a missing one is not an error.
func Load(path string) (Config, error) {
	// Best effort; explicit environment always wins over .env.
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if cfg.Loop.MaxIterations <= 0 {
		cfg.Loop.MaxIterations = Default().Loop.MaxIterations
	}
	if cfg.Tools.TimeoutSeconds <= 0 {
		cfg.Tools.TimeoutSeconds = Default().Tools.TimeoutSeconds
	}
	if cfg.Model.Name == "" {
		cfg.Model.Name = Default().Model.Name
	}

	cfg.Model.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Tools.Weather.APIKey = os.Getenv("OPENWEATHER_API_KEY")
	return cfg, nil
}
