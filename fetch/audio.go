package fetch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ccollins476ad/dlsys/ytdl"
	log "github.com/sirupsen/logrus"
)

// Audio downloads the best audio stream of every url in req as 192k mp3 into
// req.OutputDir. If req.SplitMinutes is set, each downloaded file is then
// split into parts, one file after another, once every download has
// finished.
//
// It fails with ErrNotConfigured, before touching the filesystem, if req has
// no urls.
func (f *Fetcher) Audio(ctx context.Context, req Request) (*Report, error) {
	urls, err := prepare(req, nil)
	if err != nil {
		return nil, err
	}

	if err := ensureOutputDir(req); err != nil {
		return nil, err
	}

	opts := ytdl.AudioOptions(filepath.Join(req.outputDir(), req.outputTemplate()))
	report, err := f.runBatch(ctx, "audio", req, req.policy(PolicyFailFast), urls,
		func(ctx context.Context, i int, u string) (Result, error) {
			path, err := f.extractor.Download(ctx, u, opts)
			if err != nil {
				return Result{}, err
			}
			log.Infof("audio downloaded for: %s", u)
			return Result{Path: path, Size: fileSize(path)}, nil
		})
	if err != nil {
		return report, err
	}

	if len(urls) > 1 {
		log.Infof("all audio files downloaded")
	}

	if req.SplitMinutes > 0 {
		for _, res := range report.Succeeded() {
			segs, err := f.splitter.Split(ctx, res.Path, req.SplitMinutes)
			report.Segments = append(report.Segments, segs...)
			if err != nil {
				return report, fmt.Errorf("failed to split %s: %w", res.Path, err)
			}
		}
	}

	return report, nil
}

// Video downloads every url in req with yt-dlp's default format selection
// into req.OutputDir.
//
// It fails with ErrNotConfigured, before touching the filesystem, if req has
// no urls.
func (f *Fetcher) Video(ctx context.Context, req Request) (*Report, error) {
	urls, err := prepare(req, nil)
	if err != nil {
		return nil, err
	}

	if err := ensureOutputDir(req); err != nil {
		return nil, err
	}

	opts := ytdl.VideoOptions(filepath.Join(req.outputDir(), req.outputTemplate()))
	return f.runBatch(ctx, "video", req, req.policy(PolicyFailFast), urls,
		func(ctx context.Context, i int, u string) (Result, error) {
			path, err := f.extractor.Download(ctx, u, opts)
			if err != nil {
				return Result{}, err
			}
			log.Infof("video downloaded and saved to: %s", path)
			return Result{Path: path, Size: fileSize(path)}, nil
		})
}
