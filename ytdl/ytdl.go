// Package ytdl resolves streaming-site URLs and downloads their media through
// yt-dlp, driven by github.com/lrstanley/go-ytdlp.
package ytdl

import (
	"context"
	"errors"
	"fmt"

	"github.com/ccollins476ad/dlsys/fileutil"
	"github.com/lrstanley/go-ytdlp"
	log "github.com/sirupsen/logrus"
)

const (
	// FormatBestAudio selects the best audio-only stream, falling back to the
	// best combined stream.
	FormatBestAudio = "bestaudio/best"

	AudioFormatMP3    = "mp3"
	AudioQuality192K  = "192K"
	DefaultOutputTmpl = "%(title)s.%(ext)s"
)

var ErrNoFilename = errors.New("yt-dlp did not report an output filename")

// Options is the declarative description of a single extraction.
type Options struct {
	Format         string // yt-dlp format selector; "" lets yt-dlp decide
	ExtractAudio   bool   // Post-process into an audio-only file
	AudioFormat    string // Target codec when ExtractAudio is set
	AudioQuality   string // Target bitrate when ExtractAudio is set
	OutputTemplate string // Full output template, including directory
}

// AudioOptions returns the options used for audio fetches: best available
// audio transcoded to 192k mp3.
func AudioOptions(outputTemplate string) Options {
	return Options{
		Format:         FormatBestAudio,
		ExtractAudio:   true,
		AudioFormat:    AudioFormatMP3,
		AudioQuality:   AudioQuality192K,
		OutputTemplate: outputTemplate,
	}
}

// VideoOptions returns the options used for plain video fetches.
func VideoOptions(outputTemplate string) Options {
	return Options{
		OutputTemplate: outputTemplate,
	}
}

// Extractor downloads the media behind a single url and returns the path of
// the written file.
type Extractor interface {
	Download(ctx context.Context, u string, opts Options) (string, error)
}

// Client is an Extractor backed by the yt-dlp executable.
type Client struct{}

func NewClient() *Client {
	return &Client{}
}

// Command builds the yt-dlp invocation for opts.
func (c *Client) Command(opts Options) *ytdlp.Command {
	tmpl := opts.OutputTemplate
	if tmpl == "" {
		tmpl = DefaultOutputTmpl
	}

	cmd := ytdlp.New().
		NoProgress().
		DumpJSON().
		NoSimulate().
		Output(tmpl)

	if opts.Format != "" {
		cmd = cmd.Format(opts.Format)
	}
	if opts.ExtractAudio {
		cmd = cmd.ExtractAudio()
		if opts.AudioFormat != "" {
			cmd = cmd.AudioFormat(opts.AudioFormat)
		}
		if opts.AudioQuality != "" {
			cmd = cmd.AudioQuality(opts.AudioQuality)
		}
	}

	return cmd
}

// Download runs yt-dlp against url=u. It returns the path of the final file.
// When audio extraction is requested, the extension reported by yt-dlp is
// replaced with the target audio format, since the reported filename refers to
// the pre-conversion download.
func (c *Client) Download(ctx context.Context, u string, opts Options) (string, error) {
	log.Debugf("yt-dlp: %s", u)

	result, err := c.Command(opts).Run(ctx, u)
	if err != nil {
		return "", fmt.Errorf("yt-dlp failed: url=%s: %w", u, err)
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return "", fmt.Errorf("failed to read yt-dlp info: url=%s: %w", u, err)
	}

	var filename string
	for _, info := range infos {
		if info.Filename != nil && *info.Filename != "" {
			filename = *info.Filename
			break
		}
	}
	if filename == "" {
		return "", fmt.Errorf("%w: url=%s", ErrNoFilename, u)
	}

	return FinalPath(filename, opts), nil
}

// FinalPath returns the path of the file yt-dlp leaves on disk, given the
// filename it reported before post-processing.
func FinalPath(reported string, opts Options) string {
	if opts.ExtractAudio && opts.AudioFormat != "" {
		return fileutil.ReplaceExt(reported, "."+opts.AudioFormat)
	}
	return reported
}

// Install ensures a yt-dlp executable is available, downloading it into the
// user cache if needed. It returns the resolved executable path.
func Install(ctx context.Context) (string, error) {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	log.Infof("yt-dlp available: %s (%s)", resolved.Executable, resolved.Version)
	return resolved.Executable, nil
}
