package config

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Dispatch.Workers < 0 {
		return errors.New("dispatch.workers must not be negative")
	}
	if c.Audio.SplitMinutes < 0 {
		return errors.New("audio.split_minutes must not be negative")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return errors.New("http.timeout_seconds must be positive")
	}
	if c.Audio.FFmpegPath == "" || c.Audio.FFprobePath == "" {
		return errors.New("audio.ffmpeg_path and audio.ffprobe_path must be set")
	}
	if c.Logging.Level != "" {
		if _, err := log.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
	}
	return nil
}
