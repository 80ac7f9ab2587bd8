package config

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Output: Output{
			Dir:      ".",
			Template: "%(title)s.%(ext)s",
		},
		Audio: Audio{
			FFmpegPath:  "ffmpeg",
			FFprobePath: "ffprobe",
		},
		HTTP: HTTP{
			TimeoutSeconds: 30,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}
