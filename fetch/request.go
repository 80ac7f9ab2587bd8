package fetch

import (
	"fmt"
	"runtime"

	"github.com/ccollins476ad/dlsys/ytdl"
)

// Policy decides what a batch does when one of its jobs fails.
type Policy int

const (
	// PolicyDefault defers to the operation: FailFast for Audio and Video,
	// Isolate for Images and Webpages.
	PolicyDefault Policy = iota

	// PolicyFailFast cancels the remaining jobs and returns the first error.
	PolicyFailFast

	// PolicyIsolate logs the failure, records it in the report, and lets the
	// other jobs finish.
	PolicyIsolate
)

func (p Policy) String() string {
	switch p {
	case PolicyFailFast:
		return "fail-fast"
	case PolicyIsolate:
		return "isolate"
	default:
		return "default"
	}
}

// Request describes what to fetch and where to put it. It is a value: every
// With* method returns a modified copy and leaves the receiver untouched.
type Request struct {
	URLs           []string
	OutputTemplate string // yt-dlp output template, relative to OutputDir
	OutputDir      string
	Parallel       bool
	Workers        int // Pool size when Parallel; 0 means runtime.NumCPU()
	SplitMinutes   int // Split downloaded audio into parts this long; 0 disables
	Policy         Policy
	SkipExisting   bool // Keep files already present in OutputDir
	PageImages     bool // Webpages: also fetch the images each page references
	Gallery        bool // Images: also write an html gallery of the batch
}

// NewRequest returns a request with no urls, the default output template, and
// the current directory as output directory.
func NewRequest() Request {
	return Request{
		OutputTemplate: ytdl.DefaultOutputTmpl,
		OutputDir:      ".",
	}
}

// WithURLs replaces the request's urls.
func (r Request) WithURLs(urls ...string) Request {
	r.URLs = append([]string(nil), urls...)
	return r
}

// SetURL replaces the request's urls with v, which must be a string or a
// []string. Any other type fails with ErrInvalidArgument.
func (r Request) SetURL(v any) (Request, error) {
	switch t := v.(type) {
	case string:
		return r.WithURLs(t), nil
	case []string:
		return r.WithURLs(t...), nil
	default:
		return r, fmt.Errorf("%w: urls must be a string or a list of strings, got %T", ErrInvalidArgument, v)
	}
}

func (r Request) WithOutputTemplate(tmpl string) Request {
	r.OutputTemplate = tmpl
	return r
}

func (r Request) WithOutputDir(dir string) Request {
	r.OutputDir = dir
	return r
}

// WithParallel enables pooled dispatch.
func (r Request) WithParallel() Request {
	r.Parallel = true
	return r
}

// WithWorkers sets the pool size used under parallel dispatch.
func (r Request) WithWorkers(n int) Request {
	r.Workers = n
	return r
}

// WithSplit makes audio fetches split each file into parts of the given
// number of minutes.
func (r Request) WithSplit(minutes int) Request {
	r.SplitMinutes = minutes
	return r
}

func (r Request) WithPolicy(p Policy) Request {
	r.Policy = p
	return r
}

func (r Request) WithSkipExisting() Request {
	r.SkipExisting = true
	return r
}

func (r Request) WithPageImages() Request {
	r.PageImages = true
	return r
}

func (r Request) WithGallery() Request {
	r.Gallery = true
	return r
}

// Validate checks the request's ranges. It does not require urls; terminal
// operations check that separately.
func (r Request) Validate() error {
	if r.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative: %d", ErrInvalidArgument, r.Workers)
	}
	if r.SplitMinutes < 0 {
		return fmt.Errorf("%w: split minutes must not be negative: %d", ErrInvalidArgument, r.SplitMinutes)
	}
	if r.Policy < PolicyDefault || r.Policy > PolicyIsolate {
		return fmt.Errorf("%w: unknown policy %d", ErrInvalidArgument, int(r.Policy))
	}
	return nil
}

// workers returns the effective pool size.
func (r Request) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.NumCPU()
}

// policy returns the request's policy, or def if none was chosen.
func (r Request) policy(def Policy) Policy {
	if r.Policy == PolicyDefault {
		return def
	}
	return r.Policy
}

// outputDir returns OutputDir, or "." if unset.
func (r Request) outputDir() string {
	if r.OutputDir == "" {
		return "."
	}
	return r.OutputDir
}

// outputTemplate returns OutputTemplate, or the yt-dlp default if unset.
func (r Request) outputTemplate() string {
	if r.OutputTemplate == "" {
		return ytdl.DefaultOutputTmpl
	}
	return r.OutputTemplate
}
