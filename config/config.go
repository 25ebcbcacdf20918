// Package config loads the editor settings: the embedded defaults, overridden
// by wavedit.yml in the user config directory.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/vsariola/wavedit/logutils"
)

type (
	Config struct {
		Log     LogConfig
		History HistoryConfig
		Volume  VolumeConfig
		Output  OutputConfig
		// YmlError is set when a user config file exists but could not be
		// parsed; the defaults are used in that case.
		YmlError error `yaml:"-"`
	}

	LogConfig struct {
		Level      string
		File       string
		MaxSize    int `yaml:"maxsize"`
		MaxBackups int `yaml:"maxbackups"`
		Compress   bool
	}

	HistoryConfig struct {
		MaxUndo int `yaml:"maxundo"`
	}

	VolumeConfig struct {
		Factor float64
	}

	OutputConfig struct {
		Directory string
	}
)

const FileName = "wavedit.yml"

//go:embed wavedit.yml
var defaultConfigYaml []byte

// Default returns the embedded default configuration.
func Default() Config {
	var c Config
	if err := yaml.UnmarshalStrict(defaultConfigYaml, &c); err != nil {
		panic(fmt.Errorf("failed to unmarshal default config: %w", err))
	}
	return c
}

// Load returns the defaults overridden by the user config file, if one exists.
func Load() Config {
	c := Default()
	configDir, err := os.UserConfigDir()
	if err != nil {
		return c
	}
	c.YmlError = c.merge(filepath.Join(configDir, "wavedit", FileName))
	return c
}

// LoadFile returns the defaults overridden by the given file.
func LoadFile(path string) (Config, error) {
	c := Default()
	if err := c.merge(path); err != nil {
		return Default(), err
	}
	return c, nil
}

func (c *Config) merge(path string) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	override := *c
	if err := yaml.UnmarshalStrict(b, &override); err != nil {
		return fmt.Errorf("could not parse %v: %w", path, err)
	}
	if err := override.Validate(); err != nil {
		return fmt.Errorf("invalid config %v: %w", path, err)
	}
	*c = override
	return nil
}

func (c Config) Validate() error {
	if c.Volume.Factor <= 0 {
		return fmt.Errorf("volume factor must be positive, got %v", c.Volume.Factor)
	}
	if c.History.MaxUndo < 0 {
		return fmt.Errorf("history maxundo cannot be negative, got %v", c.History.MaxUndo)
	}
	return nil
}

func (c Config) LogOptions() logutils.Options {
	return logutils.Options{
		Level: c.Log.Level,
		File: logutils.FileOptions{
			Filename:   c.Log.File,
			MaxSize:    c.Log.MaxSize,
			MaxBackups: c.Log.MaxBackups,
			Compress:   c.Log.Compress,
		},
	}
}
