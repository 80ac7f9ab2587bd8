package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
	"strings"

	"github.com/flytam/filenamify"
)

const (
	// maxStemLength bounds a saved file's name, not counting its extension.
	maxStemLength = 100

	// maxExtLength is the longest suffix still treated as a file extension.
	maxExtLength = 16

	hashLength = 8
)

// ImageFilename returns the name an image url is saved under: the last
// element of the url's path.
func ImageFilename(u string) (string, error) {
	var base string
	if parsed, err := url.Parse(u); err == nil {
		base = path.Base(parsed.Path)
	}
	if base == "" || base == "." || base == "/" {
		// No usable path element; fall back to the whole url.
		return sanitize(u, "", u)
	}

	ext := path.Ext(base)
	if len(ext) > maxExtLength {
		ext = ""
	}
	return sanitize(strings.TrimSuffix(base, ext), ext, u)
}

// WebpageFilename returns the name a webpage url is saved under: the url
// without its scheme, with slashes replaced by underscores, plus ".html".
func WebpageFilename(u string) (string, error) {
	name := u
	if i := strings.Index(name, "://"); i >= 0 {
		name = name[i+len("://"):]
	}
	return sanitize(strings.ReplaceAll(name, "/", "_"), ".html", u)
}

// sanitize makes stem+ext safe to use as a single path element. A stem longer
// than maxStemLength is cut short and tagged with a hash of u, so distinct
// urls sharing a long prefix keep distinct names. ext is always kept.
func sanitize(stem string, ext string, u string) (string, error) {
	stem, err := filenamifyFull(stem)
	if err != nil {
		return "", err
	}
	ext, err = filenamifyFull(ext)
	if err != nil {
		return "", err
	}

	runes := []rune(stem)
	if len(runes) > maxStemLength {
		sum := sha256.Sum256([]byte(u))
		keep := maxStemLength - hashLength - 1
		stem = string(runes[:keep]) + "-" + hex.EncodeToString(sum[:])[:hashLength]
	}

	return stem + ext, nil
}

// filenamifyFull sanitizes s without filenamify's default length cap.
func filenamifyFull(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	return filenamify.Filenamify(s, filenamify.Options{MaxLength: len(s) + 1})
}
