package audio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"

	MP3Codec       = "libmp3lame"
	DefaultBitrate = "192k"
)

var ErrNoDuration = errors.New("ffprobe reported no duration")

// FFmpeg is a Codec that shells out to the ffmpeg and ffprobe executables.
type FFmpeg struct {
	FFmpegPath  string // Default: "ffmpeg" from PATH
	FFprobePath string // Default: "ffprobe" from PATH
	Bitrate     string // mp3 output bitrate. Default: DefaultBitrate
}

func NewFFmpeg() *FFmpeg {
	return &FFmpeg{
		FFmpegPath:  FFmpegCommand,
		FFprobePath: FFprobeCommand,
		Bitrate:     DefaultBitrate,
	}
}

type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration runs ffprobe against path and returns the container duration.
func (f *FFmpeg) Duration(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, orDefault(f.FFprobePath, FFprobeCommand),
		"-v", "error", "-hide_banner", "-show_format", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	return parseProbeDuration(output)
}

func parseProbeDuration(output []byte) (time.Duration, error) {
	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return 0, fmt.Errorf("ffprobe parse: %w", err)
	}

	raw := strings.TrimSpace(result.Format.Duration)
	if raw == "" {
		return 0, ErrNoDuration
	}

	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(secs) || secs < 0 {
		return 0, fmt.Errorf("ffprobe parse: invalid duration %q", raw)
	}

	// Millisecond resolution.
	return time.Duration(math.Round(secs*1000)) * time.Millisecond, nil
}

// Export encodes a slice of src into dst.
func (f *FFmpeg) Export(ctx context.Context, src string, start time.Duration, length time.Duration, dst string) error {
	args := f.BuildArgs(src, start, length, dst)
	log.Debugf("ffmpeg %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, orDefault(f.FFmpegPath, FFmpegCommand), args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// BuildArgs builds the ffmpeg command arguments for one slice.
func (f *FFmpeg) BuildArgs(src string, start time.Duration, length time.Duration, dst string) []string {
	args := []string{
		"-y",
		"-v", "error",
		"-ss", formatSeconds(start),
		"-t", formatSeconds(length),
		"-i", src,
		"-vn",
		"-map_metadata", "0",
	}

	if strings.EqualFold(filepath.Ext(dst), ".mp3") {
		args = append(args, "-c:a", MP3Codec, "-b:a", orDefault(f.Bitrate, DefaultBitrate))
	}

	return append(args, dst)
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func orDefault(v string, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
