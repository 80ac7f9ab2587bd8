package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const defaultConfigPath = "~/.config/dlsys/config.toml"

// Output contains where and how fetched files are written.
type Output struct {
	Dir          string `toml:"dir"`
	Template     string `toml:"template"`
	SkipExisting bool   `toml:"skip_existing"`
}

// Dispatch contains batch scheduling settings.
type Dispatch struct {
	Parallel bool `toml:"parallel"`
	Workers  int  `toml:"workers"` // 0 selects one worker per CPU
}

// Audio contains audio post-processing settings.
type Audio struct {
	SplitMinutes int    `toml:"split_minutes"`
	FFmpegPath   string `toml:"ffmpeg_path"`
	FFprobePath  string `toml:"ffprobe_path"`
}

// HTTP contains settings for image and webpage downloads.
type HTTP struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level string `toml:"level"`
}

// Config encapsulates all configuration values for dlsys.
type Config struct {
	Output   Output   `toml:"output"`
	Dispatch Dispatch `toml:"dispatch"`
	Audio    Audio    `toml:"audio"`
	HTTP     HTTP     `toml:"http"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load parses and validates the configuration file at path, or at the default
// location if path is "". A missing file is not an error; the defaults are
// used. It returns the config, the resolved path and whether the file exists.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	if path == "" {
		path = defaultConfigPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return nil, "", false, err
	}

	exists := true
	b, err := os.ReadFile(resolved)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", false, fmt.Errorf("read config: %w", err)
		}
		exists = false
	}

	if exists {
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolved, exists, nil
}

// HTTPTimeout returns the per-request timeout for image and webpage
// downloads.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

func (c *Config) normalize() error {
	c.Output.Template = strings.TrimSpace(c.Output.Template)
	if c.Output.Template == "" {
		c.Output.Template = Default().Output.Template
	}

	dir, err := expandPath(strings.TrimSpace(c.Output.Dir))
	if err != nil {
		return err
	}
	c.Output.Dir = dir

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// Encode returns c as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// WriteDefault writes the default configuration to path, creating parent
// directories as needed.
func WriteDefault(path string) error {
	cfg := Default()
	b, err := cfg.Encode()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
