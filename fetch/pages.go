package fetch

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/ccollins476ad/dlsys/download"
	"github.com/ccollins476ad/dlsys/media"
	"github.com/ccollins476ad/dlsys/web"
	log "github.com/sirupsen/logrus"
)

// target is a url to fetch, or the error that prevented resolving it.
type target struct {
	url string
	err error
}

// Images downloads images into req.OutputDir, each named after the last
// element of its url path. Gallery urls on supported image hosts are first
// expanded into their images. The urls come from override when given,
// otherwise from req.URLs.
//
// Repeated urls, given directly or through albums, are fetched once.
//
// By default a failed image is logged and recorded in the report without
// affecting the others, and the returned error is nil; use Report.Err to
// inspect failures.
func (f *Fetcher) Images(ctx context.Context, req Request, override ...string) (*Report, error) {
	urls, err := prepare(req, override)
	if err != nil {
		return nil, err
	}

	if err := ensureOutputDir(req); err != nil {
		return nil, err
	}

	return f.images(ctx, req, f.newStore(req), urls)
}

func (f *Fetcher) images(ctx context.Context, req Request, store *download.Store, urls []string) (*Report, error) {
	policy := req.policy(PolicyIsolate)

	var targets []target
	seen := map[string]struct{}{}
	for _, u := range dedupe(urls) {
		expanded, err := media.Expand(ctx, f.expanders, u)
		if err != nil {
			targets = append(targets, target{url: u, err: err})
			continue
		}
		for _, e := range expanded {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			targets = append(targets, target{url: e})
		}
	}

	targetURLs := make([]string, len(targets))
	for i, t := range targets {
		targetURLs[i] = t.url
	}

	report, err := f.runBatch(ctx, "image", req, policy, targetURLs,
		func(ctx context.Context, i int, u string) (Result, error) {
			if targets[i].err != nil {
				return Result{}, targets[i].err
			}

			filename, err := ImageFilename(u)
			if err != nil {
				return Result{}, err
			}

			desc, err := store.DownloadAs(ctx, u, nil, filename)
			if err != nil {
				return Result{}, err
			}

			path := store.Path(desc.Filename)
			log.Infof("image downloaded and saved to: %s", path)
			return Result{Path: path, Size: desc.Size, Skipped: desc.IsLocal}, nil
		})
	if err != nil {
		return report, err
	}

	log.Infof("all images downloaded")

	if req.Gallery {
		writeGallery(store, report)
	}

	return report, nil
}

// writeGallery saves an html page showing every image in report.
func writeGallery(store *download.Store, report *Report) {
	var names []string
	for _, p := range report.Paths() {
		names = append(names, filepath.Base(p))
	}
	if len(names) == 0 {
		return
	}

	title := filepath.Base(store.Dir())
	err := store.SaveFile(web.GalleryFilename, []byte(web.BuildGallery(title, names)))
	if err != nil {
		log.WithError(err).Errorf("failed to write gallery: dir=%s", store.Dir())
		return
	}
	log.Infof("gallery saved to: %s", store.Path(web.GalleryFilename))
}

// Webpages downloads webpages into req.OutputDir as UTF-8 html. Each page is
// named after its url: scheme removed, slashes replaced by underscores, with
// an ".html" suffix. The urls come from override when given, otherwise from
// req.URLs.
//
// With req.PageImages, every saved page is inspected and the images it
// references are fetched as a followup image batch into the same directory.
//
// Repeated urls are fetched once. Failures are handled as in Images.
func (f *Fetcher) Webpages(ctx context.Context, req Request, override ...string) (*Report, error) {
	urls, err := prepare(req, override)
	if err != nil {
		return nil, err
	}

	if err := ensureOutputDir(req); err != nil {
		return nil, err
	}

	urls = dedupe(urls)
	store := f.newStore(req)

	var mtx sync.Mutex
	var pageImages []string

	report, err := f.runBatch(ctx, "webpage", req, req.policy(PolicyIsolate), urls,
		func(ctx context.Context, i int, u string) (Result, error) {
			filename, err := WebpageFilename(u)
			if err != nil {
				return Result{}, err
			}

			desc, err := store.DownloadTextAs(ctx, u, nil, filename)
			if err != nil {
				return Result{}, err
			}

			path := store.Path(desc.Filename)
			log.Infof("webpage downloaded and saved to: %s", path)
			res := Result{Path: path, Size: desc.Size, Skipped: desc.IsLocal}

			if req.PageImages {
				page, err := inspectSaved(u, path)
				if err != nil {
					log.WithError(err).Warnf("failed to inspect webpage: url=%s", u)
					return res, nil
				}
				res.Title = page.Title

				mtx.Lock()
				pageImages = append(pageImages, page.Images...)
				mtx.Unlock()
			}

			return res, nil
		})
	if err != nil {
		return report, err
	}

	log.Infof("all webpages downloaded")

	if len(pageImages) > 0 {
		imgs, err := f.images(ctx, req, store, dedupe(pageImages))
		if imgs != nil {
			report.Followups = append(report.Followups, imgs)
		}
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

func inspectSaved(u string, path string) (*web.Page, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return web.Inspect(u, string(b))
}

// dedupe returns urls without repeats, keeping the first occurrence of each.
func dedupe(urls []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
