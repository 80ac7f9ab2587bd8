package fetch

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/ccollins476ad/dlsys/audio"
	"github.com/ccollins476ad/dlsys/download"
	"github.com/ccollins476ad/dlsys/fileutil"
	"github.com/ccollins476ad/dlsys/media"
	"github.com/ccollins476ad/dlsys/media/imgbb"
	"github.com/ccollins476ad/dlsys/media/imgur"
	"github.com/ccollins476ad/dlsys/media/postimg"
	"github.com/ccollins476ad/dlsys/ytdl"
)

// Options wires a Fetcher to its collaborators. Zero fields get defaults.
type Options struct {
	// Extractor downloads streaming media. Default: ytdl.NewClient().
	Extractor ytdl.Extractor

	// Codec probes and slices audio. Default: audio.NewFFmpeg().
	Codec audio.Codec

	// HTTPClient is used for images, webpages and gallery expansion.
	// Default: &http.Client{}.
	HTTPClient *http.Client

	// HTTPTimeout bounds each image or webpage GET. Default:
	// download.DefaultTimeout.
	HTTPTimeout time.Duration

	// Expanders resolve image gallery urls before an image batch. nil
	// selects the imgur, postimg and imgbb expanders; an empty non-nil
	// slice disables expansion.
	Expanders []media.Expander

	// Progress, if set, is told about every finished job.
	Progress ProgressFunc
}

// Fetcher runs fetch requests.
type Fetcher struct {
	extractor ytdl.Extractor
	splitter  *audio.Splitter
	hc        *http.Client
	timeout   time.Duration
	expanders []media.Expander
	progress  ProgressFunc
}

func New(opts Options) *Fetcher {
	if opts.Extractor == nil {
		opts.Extractor = ytdl.NewClient()
	}
	if opts.Codec == nil {
		opts.Codec = audio.NewFFmpeg()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Expanders == nil {
		opts.Expanders = DefaultExpanders(opts.HTTPClient)
	}

	return &Fetcher{
		extractor: opts.Extractor,
		splitter:  audio.NewSplitter(opts.Codec),
		hc:        opts.HTTPClient,
		timeout:   opts.HTTPTimeout,
		expanders: opts.Expanders,
		progress:  opts.Progress,
	}
}

// DefaultExpanders returns the gallery expanders for every supported image
// host.
func DefaultExpanders(hc *http.Client) []media.Expander {
	return []media.Expander{
		imgur.NewExpander(hc),
		postimg.NewExpander(hc),
		imgbb.NewExpander(hc),
	}
}

// Split slices an existing audio file into parts of the given number of
// minutes, written next to it. It returns the part paths in order.
func (f *Fetcher) Split(ctx context.Context, path string, minutes int) ([]string, error) {
	return f.splitter.Split(ctx, path, minutes)
}

// prepare validates req and resolves the url list for a terminal operation.
// It performs no I/O.
func prepare(req Request, override []string) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	urls := req.URLs
	if len(override) > 0 {
		urls = override
	}
	if len(urls) == 0 {
		return nil, ErrNotConfigured
	}
	return urls, nil
}

func (f *Fetcher) newStore(req Request) *download.Store {
	return download.NewStore(req.outputDir(), download.Options{
		Client:       f.hc,
		Timeout:      f.timeout,
		SkipExisting: req.SkipExisting,
	})
}

// ensureOutputDir creates the request's output directory.
func ensureOutputDir(req Request) error {
	return fileutil.EnsureDir(req.outputDir())
}

// fileSize returns the size of the file at path, or 0 if it cannot be read.
func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
