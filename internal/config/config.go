package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"disasterwatch/internal/eventbus"
	"disasterwatch/internal/predicthq"
)

// FileName is the config file looked up in the user config directory
const FileName = "config.toml"

// Config represents the application configuration
type Config struct {
	Version    int        `toml:"version"`
	BaseURL    string     `toml:"base_url" env:"PREDICTHQ_BASE_URL"`
	Token      string     `toml:"-" env:"PREDICTHQ_TOKEN"` // never written to disk
	Timeout    Duration   `toml:"timeout" env:"DISASTERWATCH_TIMEOUT"`
	UISettings UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowLabels   bool `toml:"show_labels"`
	ShowLocation bool `toml:"show_location"`
}

// Duration is a time.Duration that reads and writes as "15s" in TOML and env
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service rooted in the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "disasterwatch", FileName),
	}
}

// NewConfigServiceWithBus creates a config service that publishes load/save events
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	cs := NewConfigService().(*configService)
	if path != "" {
		cs.filePath = path
	}
	cs.bus = bus
	return cs
}

// Path returns the file the service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the config file, creating it with defaults on first run,
// then applies environment overrides.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
		if err := cs.Save(cfg); err != nil {
			return nil, err
		}
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, BaseURL: cfg.BaseURL})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path without env overrides
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Normalize()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadDotEnv loads variables from a .env file if one exists.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays environment variables onto cfg
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	cfg.Normalize()
	return nil
}

// Normalize fills in zero values with defaults
func (c *Config) Normalize() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.BaseURL == "" {
		c.BaseURL = predicthq.DefaultBaseURL
	}
	if c.Timeout.Duration < 0 {
		c.Timeout.Duration = 0
	}
}

// Validate reports configuration that would make every request fail
func (c *Config) Validate() error {
	var errs []error
	if c.Token == "" {
		errs = append(errs, errors.New("missing API token: set PREDICTHQ_TOKEN"))
	}
	if c.BaseURL == "" {
		errs = append(errs, errors.New("missing base_url"))
	}
	return errors.Join(errs...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		BaseURL: predicthq.DefaultBaseURL,
		UISettings: UISettings{
			ShowLabels:   true,
			ShowLocation: true,
		},
	}
}
