package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"qabot/internal/intro"
	"qabot/internal/similarity"
)

// EngineConfig selects the encoder, the metric and its acceptance rule.
type EngineConfig struct {
	Encoder   string  `yaml:"encoder"`
	Dimension int     `yaml:"dimension"`
	Metric    string  `yaml:"metric"`
	Tolerance float64 `yaml:"tolerance"`
	// MinSimilarity gates cosine and attention matches when set.
	MinSimilarity *float64 `yaml:"min_similarity,omitempty"`
}

// StoreConfig locates the question/response file and bounds the in-memory store.
type StoreConfig struct {
	Path     string `yaml:"path"`
	Capacity int    `yaml:"capacity"`
}

// IntroConfig configures self-introduction detection.
type IntroConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Keywords []string `yaml:"keywords,omitempty"`
	Greeting string   `yaml:"greeting"`
}

// LogConfig configures the zap logger. An empty Path disables logging in the chat UI.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
	Path  string `yaml:"path"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Engine EngineConfig `yaml:"engine"`
	Store  StoreConfig  `yaml:"store"`
	Intro  IntroConfig  `yaml:"intro"`
	Log    LogConfig    `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/qabot/config.yaml.
// If neither exists, it writes defaults to ~/.config/qabot/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports every invalid setting at once.
func (c *AppConfig) Validate() error {
	var result *multierror.Error
	if c.Engine.Dimension <= 0 {
		result = multierror.Append(result, fmt.Errorf("engine.dimension must be positive, got %d", c.Engine.Dimension))
	}
	switch c.Engine.Metric {
	case similarity.NameCosine, similarity.NameAttention, similarity.NameEditDistance, similarity.NameExact:
	default:
		result = multierror.Append(result, fmt.Errorf("engine.metric %q is not one of cosine, attention, edit_distance, exact", c.Engine.Metric))
	}
	if c.Engine.Encoder != "charcode" {
		result = multierror.Append(result, fmt.Errorf("engine.encoder %q is not supported", c.Engine.Encoder))
	}
	if c.Engine.Tolerance < 0 {
		result = multierror.Append(result, fmt.Errorf("engine.tolerance must not be negative, got %g", c.Engine.Tolerance))
	}
	if c.Store.Capacity <= 0 {
		result = multierror.Append(result, fmt.Errorf("store.capacity must be positive, got %d", c.Store.Capacity))
	}
	if c.Store.Path == "" {
		result = multierror.Append(result, errors.New("store.path is required"))
	}
	return result.ErrorOrNil()
}

// StorePath returns the store path with environment variables expanded.
func (c *AppConfig) StorePath() string {
	return os.ExpandEnv(c.Store.Path)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qabot", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Engine: EngineConfig{Encoder: "charcode", Dimension: 128, Metric: similarity.NameEditDistance, Tolerance: 5},
		Store:  StoreConfig{Path: "database.txt", Capacity: 10000},
		Intro:  IntroConfig{Enabled: true, Greeting: intro.DefaultGreeting},
		Log:    LogConfig{Level: "info"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Engine.Encoder == "" {
		cfg.Engine.Encoder = "charcode"
	}
	if cfg.Engine.Dimension == 0 {
		cfg.Engine.Dimension = 128
	}
	if cfg.Engine.Metric == "" {
		cfg.Engine.Metric = similarity.NameEditDistance
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "database.txt"
	}
	if cfg.Store.Capacity == 0 {
		cfg.Store.Capacity = 10000
	}
	if cfg.Intro.Greeting == "" {
		cfg.Intro.Greeting = intro.DefaultGreeting
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
