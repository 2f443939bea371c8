package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/splitflap/internal/align"
	"github.com/san-kum/splitflap/internal/charset"
	"github.com/san-kum/splitflap/internal/flap"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCharset  = charset.DefaultName
	DefaultMinWidth = flap.DefaultMinWidth
	DefaultPad      = "left"
	DefaultStepMs   = 200
	DefaultTheme    = "classic"
	DefaultFPS      = 30
)

type Config struct {
	Charset      string `yaml:"charset"`
	Symbols      string `yaml:"symbols,omitempty"`
	MinWidth     int    `yaml:"min_width"`
	PadDirection string `yaml:"pad_direction"`
	StepMs       int    `yaml:"step_ms"`
	InitialValue string `yaml:"initial_value,omitempty"`
	Theme        string `yaml:"theme"`
	FPS          int    `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Charset:      DefaultCharset,
		MinWidth:     DefaultMinWidth,
		PadDirection: DefaultPad,
		StepMs:       DefaultStepMs,
		Theme:        DefaultTheme,
		FPS:          DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CharacterSet resolves the board's symbols. Custom symbols take precedence
// over the named preset.
func (c *Config) CharacterSet() (*charset.Set, error) {
	if c.Symbols != "" {
		return charset.FromString(c.Symbols)
	}
	name := c.Charset
	if name == "" {
		name = DefaultCharset
	}
	set := charset.Lookup(name)
	if set == nil {
		return nil, fmt.Errorf("unknown charset: %s (available: %v)", name, charset.Names())
	}
	return set, nil
}

// EngineConfig converts the file representation into an engine configuration.
func (c *Config) EngineConfig() (flap.Config, error) {
	set, err := c.CharacterSet()
	if err != nil {
		return flap.Config{}, err
	}
	dir, err := align.ParseDirection(c.PadDirection)
	if err != nil {
		return flap.Config{}, err
	}
	cfg := flap.Config{
		Charset:      set,
		MinWidth:     c.MinWidth,
		PadDirection: dir,
		Step:         time.Duration(c.StepMs) * time.Millisecond,
		InitialValue: c.InitialValue,
	}
	if err := cfg.Validate(); err != nil {
		return flap.Config{}, err
	}
	return cfg, nil
}
