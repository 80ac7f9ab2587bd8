package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

// ErrNotFound matches a StatusError carrying http status 404.
var ErrNotFound = errors.New("resource not found")

// StatusError is returned when a server answers with a non-2xx status.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("error status: %s", e.Status)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Do performs an http GET with url=u using the supplied client and header. It
// returns a *StatusError if the server responds with a non-2xx status. The
// caller must close the response body.
func Do(ctx context.Context, hc *http.Client, u string, header http.Header) (*http.Response, error) {
	log.Debugf("get: %s", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	rsp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		rsp.Body.Close()
		return nil, &StatusError{
			URL:    u,
			Code:   rsp.StatusCode,
			Status: rsp.Status,
		}
	}

	return rsp, nil
}

// GetBody performs an http GET with url=u and returns the response body.
func GetBody(ctx context.Context, hc *http.Client, u string, header http.Header) (io.ReadCloser, error) {
	rsp, err := Do(ctx, hc, u, header)
	if err != nil {
		return nil, err
	}
	return rsp.Body, nil
}

// Get calls GetBody(), then reads the full response and returns the raw
// bytes. Canceling ctx aborts the read.
func Get(ctx context.Context, hc *http.Client, u string, header http.Header) ([]byte, error) {
	body, err := GetBody(ctx, hc, u, header)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return io.ReadAll(body)
}

// GetText performs an http GET and returns the response body decoded to
// UTF-8 according to the response's declared or sniffed charset.
func GetText(ctx context.Context, hc *http.Client, u string, header http.Header) (string, error) {
	rsp, err := Do(ctx, hc, u, header)
	if err != nil {
		return "", err
	}
	defer rsp.Body.Close()

	r, err := charset.NewReader(rsp.Body, rsp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to decode response charset: %w", err)
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
