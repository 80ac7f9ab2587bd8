package download

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ccollins476ad/dlsys/fileutil"
	"github.com/flytam/filenamify"
	log "github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a single GET issued by a Store.
const DefaultTimeout = 30 * time.Second

var AlreadyAttempted = errors.New("download already attempted")

// Options configures a Store.
type Options struct {
	// Client is the http client used for every request. Default:
	// &http.Client{}.
	Client *http.Client

	// Timeout bounds each request, including reading the body. Default:
	// DefaultTimeout.
	Timeout time.Duration

	// SkipExisting makes the store treat a file already present in the
	// destination directory as downloaded.
	SkipExisting bool
}

// Store downloads files into a single destination directory.
type Store struct {
	destDir string // constant
	opts    Options

	seenMtx sync.Mutex          // Protects the "seen" field.
	seen    map[string]struct{} // URLs we have already attempted.
}

// Desc describes a downloaded file.
type Desc struct {
	Filename string // Relative to destination directory
	IsLocal  bool   // True if file was already on disk
	Size     int64  // Bytes written; 0 if IsLocal
}

func NewStore(destDir string, opts Options) *Store {
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Store{
		destDir: destDir,
		opts:    opts,
		seen:    map[string]struct{}{},
	}
}

// Dir returns the store's destination directory.
func (s *Store) Dir() string {
	return s.destDir
}

// Path returns the full path of a file relative to the destination directory.
func (s *Store) Path(relPath string) string {
	return filepath.Join(s.destDir, relPath)
}

// Evaluate returns a descriptor for the file that url=u would be saved as. It
// does not download anything. It infers the filename from the url if filename
// is "". The `IsLocal` field is true if SkipExisting is set and the file is
// already on disk. It returns AlreadyAttempted if this store has seen the url
// before.
func (s *Store) Evaluate(u string, filename string) (*Desc, error) {
	if filename == "" {
		var err error
		filename, err = URLToFilename(u)
		if err != nil {
			log.WithError(err).Errorf("failed to convert url to filename: url=%s", u)
			return nil, err
		}
	}

	destPath := s.Path(filename)
	if s.opts.SkipExisting && fileutil.FileExists(destPath) {
		log.Debugf("skipping %s: file already exists: %s", u, destPath)
		return &Desc{
			Filename: filename,
			IsLocal:  true,
		}, nil
	}

	if s.see(u) {
		return nil, AlreadyAttempted
	}

	return &Desc{
		Filename: filename,
		IsLocal:  false,
	}, nil
}

func (s *Store) SaveFile(relPath string, b []byte) error {
	destPath := s.Path(relPath)
	log.Debugf("writing %s", destPath)
	return os.WriteFile(destPath, b, 0644)
}

// DownloadAs ensures the file at url=u has been saved as filename, relative to
// the destination directory. The response body is written verbatim.
func (s *Store) DownloadAs(ctx context.Context, u string, header http.Header, filename string) (*Desc, error) {
	return s.download(ctx, u, header, filename, func(ctx context.Context) ([]byte, error) {
		return Get(ctx, s.opts.Client, u, header)
	})
}

// DownloadTextAs is like DownloadAs, but decodes the response body to UTF-8
// before writing it.
func (s *Store) DownloadTextAs(ctx context.Context, u string, header http.Header, filename string) (*Desc, error) {
	return s.download(ctx, u, header, filename, func(ctx context.Context) ([]byte, error) {
		text, err := GetText(ctx, s.opts.Client, u, header)
		if err != nil {
			return nil, err
		}
		return []byte(text), nil
	})
}

func (s *Store) download(ctx context.Context, u string, header http.Header, filename string,
	get func(ctx context.Context) ([]byte, error)) (*Desc, error) {

	desc, err := s.Evaluate(u, filename)
	if err != nil {
		return nil, err
	}

	if desc.IsLocal {
		// Already downloaded.
		return desc, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	b, err := get(ctx)
	if err != nil {
		return nil, err
	}

	err = s.SaveFile(desc.Filename, b)
	if err != nil {
		return nil, fmt.Errorf("failed to save http response: %w", err)
	}

	desc.Size = int64(len(b))
	return desc, nil
}

// see returns true if the store has already attempted to download the
// specified url. Otherwise, it marks the url as "seen" and returns false.
func (s *Store) see(u string) bool {
	s.seenMtx.Lock()
	defer s.seenMtx.Unlock()

	_, ok := s.seen[u]
	if ok {
		return true
	}

	s.seen[u] = struct{}{}
	return false
}

// URLToFilename returns a filesystem-safe filename derived from the full url.
func URLToFilename(u string) (string, error) {
	return filenamify.Filenamify(u, filenamify.Options{})
}
