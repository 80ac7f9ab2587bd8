package fetch

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Mode is how a batch's jobs were dispatched.
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModePooled     Mode = "pooled"
)

// Result is the outcome of a single job.
type Result struct {
	URL     string
	Path    string // Written file; "" on failure
	Size    int64  // Bytes on disk, when known
	Title   string // Page title, for inspected webpages
	Skipped bool   // File was already present and not fetched again
	Err     error
}

// OK reports whether the job succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report describes a finished batch.
type Report struct {
	ID        string
	Kind      string // "audio", "video", "image" or "webpage"
	Mode      Mode
	Workers   int       // Pool size; 1 when sequential
	Results   []Result  // One per job, in input order
	Segments  []string  // Files produced by splitting audio
	Followups []*Report // Batches started from this one, e.g. page images
}

func newReport(kind string, mode Mode, workers int, n int) *Report {
	id := uuid.NewString()
	if v7, err := uuid.NewV7(); err == nil {
		id = v7.String()
	}

	return &Report{
		ID:      id,
		Kind:    kind,
		Mode:    mode,
		Workers: workers,
		Results: make([]Result, n),
	}
}

// Succeeded returns the results of jobs that succeeded.
func (r *Report) Succeeded() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Failed returns the results of jobs that failed.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Paths returns the written file of every successful job, in input order.
func (r *Report) Paths() []string {
	var out []string
	for _, res := range r.Succeeded() {
		out = append(out, res.Path)
	}
	return out
}

// Err joins the errors of every failed job in this batch and its followups.
// It returns nil if all jobs succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", res.URL, res.Err))
	}
	for _, f := range r.Followups {
		if err := f.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
