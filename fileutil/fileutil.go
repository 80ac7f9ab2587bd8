package fileutil

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// FileExists returns true if a file or directory with the given path exists.
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// IsDir returns true if a directory with the given path exists.
func IsDir(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && info.IsDir()
}

// EnsureDir creates dir and any missing parents. It is a no-op if the
// directory already exists.
func EnsureDir(dir string) error {
	if IsDir(dir) {
		return nil
	}

	log.Debugf("creating directory: %s", dir)
	return os.MkdirAll(dir, 0755)
}

// ReplaceExt returns path with its extension replaced by ext. ext should
// include the leading dot.
func ReplaceExt(path string, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// BaseNoExt returns the last element of path without its extension.
func BaseNoExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
