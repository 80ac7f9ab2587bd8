package fetch

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc is told how many jobs of a batch have finished. It is called
// with done == 0 when the batch starts and again after every job, possibly
// from several goroutines at once.
type ProgressFunc func(kind string, done int, total int)

// jobFunc runs the job for urls[i]. The returned Result need not have its
// URL or Err fields set; runBatch fills them in.
type jobFunc func(ctx context.Context, i int, u string) (Result, error)

// runBatch runs fn once per url and waits for all of them. A single url, or a
// request without Parallel, runs in input order on the calling goroutine.
// Otherwise the jobs run on a pool of req.workers() goroutines that lives for
// this call only.
//
// Under PolicyFailFast the first error stops the batch: sequentially, later
// jobs are not started; pooled, the context passed to running jobs is
// canceled and jobs that have not started yet are skipped. The error is
// returned along with the partial report. Under PolicyIsolate every job runs
// and errors are only logged and recorded.
func (f *Fetcher) runBatch(ctx context.Context, kind string, req Request, policy Policy, urls []string, fn jobFunc) (*Report, error) {
	mode := ModeSequential
	workers := 1
	if req.Parallel && len(urls) > 1 {
		mode = ModePooled
		workers = req.workers()
	}

	report := newReport(kind, mode, workers, len(urls))
	logger := log.WithField("batch", report.ID)
	logger.Debugf("starting %s batch: jobs=%d mode=%s workers=%d policy=%s", kind, len(urls), mode, workers, policy)

	var mtx sync.Mutex
	done := 0
	progress := func(finished int) {
		if f.progress == nil {
			return
		}
		mtx.Lock()
		defer mtx.Unlock()
		done += finished
		f.progress(kind, done, len(urls))
	}
	progress(0)

	run := func(ctx context.Context, i int) error {
		u := urls[i]
		res, err := fn(ctx, i, u)
		res.URL = u
		res.Err = err
		report.Results[i] = res
		progress(1)

		if err == nil {
			return nil
		}
		if policy == PolicyFailFast {
			return fmt.Errorf("%s job failed: url=%s: %w", kind, u, err)
		}
		logger.WithError(err).Errorf("error downloading %s from %s", kind, u)
		return nil
	}

	if mode == ModeSequential {
		for i := range urls {
			if err := run(ctx, i); err != nil {
				for j := i + 1; j < len(urls); j++ {
					report.Results[j] = skipped(urls[j], err)
				}
				return report, err
			}
		}
		return report, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range urls {
		if gctx.Err() != nil {
			// A job already failed; the rest are skipped.
			report.Results[i] = skipped(urls[i], context.Cause(gctx))
			continue
		}
		g.Go(func() error {
			return run(gctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	if policy == PolicyFailFast && ctx.Err() != nil {
		return report, ctx.Err()
	}
	return report, nil
}

// skipped returns the result of a job that was not started because of cause.
func skipped(u string, cause error) Result {
	return Result{URL: u, Err: fmt.Errorf("%w: %w", ErrSkipped, cause)}
}
