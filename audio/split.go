package audio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ccollins476ad/dlsys/fileutil"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidLength = errors.New("segment length must be positive")

// Codec decodes and re-encodes audio files. Slicing is expressed as a time
// range of the source.
type Codec interface {
	// Duration returns the playing time of the file at path.
	Duration(ctx context.Context, path string) (time.Duration, error)

	// Export encodes the [start, start+length) range of src into dst. The
	// output format follows dst's extension.
	Export(ctx context.Context, src string, start time.Duration, length time.Duration, dst string) error
}

// Segment is one contiguous, time-bounded slice of a source file.
type Segment struct {
	Index  int // 1-based
	Start  time.Duration
	Length time.Duration
}

// End returns the exclusive end offset of the segment.
func (s Segment) End() time.Duration {
	return s.Start + s.Length
}

// Plan divides total into ceil(total/length) contiguous segments. Every
// segment is length long except the last, which holds the remainder.
func Plan(total time.Duration, length time.Duration) []Segment {
	if total <= 0 || length <= 0 {
		return nil
	}

	count := int((total + length - 1) / length)
	segs := make([]Segment, 0, count)
	for i := 0; i < count; i++ {
		start := time.Duration(i) * length
		segLen := length
		if rest := total - start; rest < segLen {
			segLen = rest
		}
		segs = append(segs, Segment{
			Index:  i + 1,
			Start:  start,
			Length: segLen,
		})
	}

	return segs
}

// SegmentPath returns the output path of segment n of src:
// <dir>/<base>_part<n><ext>.
func SegmentPath(src string, n int) string {
	name := fmt.Sprintf("%s_part%d%s", fileutil.BaseNoExt(src), n, filepath.Ext(src))
	return filepath.Join(filepath.Dir(src), name)
}

// Splitter slices audio files into fixed-length segments.
type Splitter struct {
	codec Codec
}

func NewSplitter(codec Codec) *Splitter {
	return &Splitter{codec: codec}
}

// Split slices the file at path into segments of the given number of minutes
// and writes each one next to the source. It returns the segment paths in
// order.
func (s *Splitter) Split(ctx context.Context, path string, minutes int) ([]string, error) {
	if minutes <= 0 {
		return nil, fmt.Errorf("%w: minutes=%d", ErrInvalidLength, minutes)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &fs.PathError{Op: "split", Path: path, Err: fs.ErrNotExist}
		}
		return nil, err
	}

	total, err := s.codec.Duration(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read duration: path=%s: %w", path, err)
	}

	segs := Plan(total, time.Duration(minutes)*time.Minute)

	paths := make([]string, 0, len(segs))
	for _, seg := range segs {
		dst := SegmentPath(path, seg.Index)
		err := s.codec.Export(ctx, path, seg.Start, seg.Length, dst)
		if err != nil {
			return paths, fmt.Errorf("failed to export segment %d of %s: %w", seg.Index, path, err)
		}
		log.Infof("exported: %s", dst)
		paths = append(paths, dst)
	}

	log.Infof("split %s into %d parts of %d minutes each", path, len(segs), minutes)
	return paths, nil
}
