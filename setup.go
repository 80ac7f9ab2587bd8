package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/ccollins476ad/dlsys/audio"
	"github.com/ccollins476ad/dlsys/config"
	"github.com/ccollins476ad/dlsys/fetch"
	"github.com/ccollins476ad/dlsys/web"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flags holds the command-line options shared by every subcommand. Options
// that were not given on the command line fall back to the config file.
type flags struct {
	ConfigPath   string
	Verbose      bool
	OutputDir    string
	Template     string
	Parallel     bool
	Workers      int
	SplitMinutes int
	Policy       string
	SkipExisting bool
	PageImages   bool
	Gallery      bool
	URLsFile     string
}

// app is the state shared by the subcommands once flags have been parsed.
type app struct {
	flags flags
	cfg   *config.Config

	// newFetcher is replaced in tests.
	newFetcher func(cfg *config.Config) *fetch.Fetcher
}

func newApp() *app {
	return &app{newFetcher: defaultFetcher}
}

func registerFlags(fs *pflag.FlagSet, f *flags) {
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "configuration file path (default ~/.config/dlsys/config.toml)")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "verbose output")
	fs.StringVarP(&f.OutputDir, "output-dir", "o", "", "directory to write files to")
	fs.StringVarP(&f.Template, "template", "t", "", "yt-dlp output template")
	fs.BoolVarP(&f.Parallel, "parallel", "p", false, "download urls concurrently")
	fs.IntVarP(&f.Workers, "workers", "j", 0, "number of concurrent downloads (default: number of CPUs)")
	fs.IntVar(&f.SplitMinutes, "split", 0, "split downloaded audio into parts of this many minutes")
	fs.StringVar(&f.Policy, "policy", "", `failure policy: "fail-fast" or "isolate" (default depends on the command)`)
	fs.BoolVar(&f.SkipExisting, "skip-existing", false, "do not download files that already exist")
	fs.BoolVar(&f.PageImages, "page-images", false, "also download the images each webpage references")
	fs.BoolVar(&f.Gallery, "gallery", false, "write an html gallery of downloaded images")
	fs.StringVar(&f.URLsFile, "urls-file", "", "read urls from a text file")
}

// setup loads the config file and applies the log level. Flags given on the
// command line override config values.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, path, exists, err := config.Load(a.flags.ConfigPath)
	if err != nil {
		return err
	}
	if exists {
		log.Debugf("loaded config: %s", path)
	}

	changed := cmd.Flags().Changed
	if changed("output-dir") {
		dir, err := config.ExpandPath(a.flags.OutputDir)
		if err != nil {
			return err
		}
		cfg.Output.Dir = dir
	}
	if changed("template") {
		cfg.Output.Template = a.flags.Template
	}
	if changed("parallel") {
		cfg.Dispatch.Parallel = a.flags.Parallel
	}
	if changed("workers") {
		cfg.Dispatch.Workers = a.flags.Workers
	}
	if changed("split") {
		cfg.Audio.SplitMinutes = a.flags.SplitMinutes
	}
	if changed("skip-existing") {
		cfg.Output.SkipExisting = a.flags.SkipExisting
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := log.InfoLevel
	if cfg.Logging.Level != "" {
		level, _ = log.ParseLevel(cfg.Logging.Level)
	}
	if a.flags.Verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	a.cfg = cfg
	return nil
}

// request builds the fetch request for urls from the merged settings.
func (a *app) request(urls []string) (fetch.Request, error) {
	policy, err := parsePolicy(a.flags.Policy)
	if err != nil {
		return fetch.Request{}, err
	}

	req := fetch.NewRequest().
		WithURLs(urls...).
		WithOutputDir(a.cfg.Output.Dir).
		WithOutputTemplate(a.cfg.Output.Template).
		WithWorkers(a.cfg.Dispatch.Workers).
		WithSplit(a.cfg.Audio.SplitMinutes).
		WithPolicy(policy)
	if a.cfg.Dispatch.Parallel {
		req = req.WithParallel()
	}
	if a.cfg.Output.SkipExisting {
		req = req.WithSkipExisting()
	}
	if a.flags.PageImages {
		req = req.WithPageImages()
	}
	if a.flags.Gallery {
		req = req.WithGallery()
	}

	return req, req.Validate()
}

// collectURLs returns args followed by the urls found in --urls-file.
func (a *app) collectURLs(args []string) ([]string, error) {
	urls := append([]string(nil), args...)
	if a.flags.URLsFile == "" {
		return urls, nil
	}

	b, err := os.ReadFile(a.flags.URLsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read urls file: %w", err)
	}
	found := web.ExtractURLs(string(b))
	log.Debugf("read %d urls from %s", len(found), a.flags.URLsFile)

	return append(urls, found...), nil
}

func parsePolicy(s string) (fetch.Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return fetch.PolicyDefault, nil
	case "fail-fast", "failfast":
		return fetch.PolicyFailFast, nil
	case "isolate":
		return fetch.PolicyIsolate, nil
	default:
		return fetch.PolicyDefault, fmt.Errorf("%w: unknown policy %q", fetch.ErrInvalidArgument, s)
	}
}

func defaultFetcher(cfg *config.Config) *fetch.Fetcher {
	codec := audio.NewFFmpeg()
	codec.FFmpegPath = cfg.Audio.FFmpegPath
	codec.FFprobePath = cfg.Audio.FFprobePath

	opts := fetch.Options{
		Codec:       codec,
		HTTPClient:  &http.Client{},
		HTTPTimeout: cfg.HTTPTimeout(),
	}
	if isTerminal(os.Stderr) {
		opts.Progress = newBatchProgress(os.Stderr).Update
	}
	return fetch.New(opts)
}
