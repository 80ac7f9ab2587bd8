package main

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// batchProgress draws one progress bar per batch.
type batchProgress struct {
	w   io.Writer
	mtx sync.Mutex
	bar *progressbar.ProgressBar
}

func newBatchProgress(w io.Writer) *batchProgress {
	return &batchProgress{w: w}
}

// Update implements fetch.ProgressFunc.
func (p *batchProgress) Update(kind string, done int, total int) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if done == 0 {
		if p.bar != nil {
			// The previous batch was aborted before its last job.
			p.bar.Finish()
		}
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetDescription(kind),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		return
	}
	if p.bar == nil {
		return
	}

	p.bar.Set(done)
	if done == total {
		p.bar.Finish()
		p.bar = nil
	}
}
