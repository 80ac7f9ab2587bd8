package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/ok.bin", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0x00, 0x01, 0x02})
	})
	mux.HandleFunc("/latin1.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "café" in latin-1.
		w.Write([]byte{'c', 'a', 'f', 0xe9})
	})
	mux.HandleFunc("/stall", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("partial"))
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})
	mux.HandleFunc("/header", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Header.Get("X-Test")))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetReturnsBody(t *testing.T) {
	srv := newTestServer(t)

	b, err := Get(context.Background(), srv.Client(), srv.URL+"/ok.bin", nil)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(b) != 3 || b[2] != 0x02 {
		t.Fatalf("unexpected body: %v", b)
	}
}

func TestGetSendsHeader(t *testing.T) {
	srv := newTestServer(t)

	b, err := Get(context.Background(), srv.Client(), srv.URL+"/header", http.Header{"X-Test": []string{"yes"}})
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(b) != "yes" {
		t.Fatalf("expected header echo, got %q", b)
	}
}

func TestGetNotFoundIsStatusError(t *testing.T) {
	srv := newTestServer(t)

	_, err := Get(context.Background(), srv.Client(), srv.URL+"/missing", nil)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if se.Code != http.StatusNotFound {
		t.Fatalf("unexpected code: %d", se.Code)
	}
}

func TestGetTextDecodesCharset(t *testing.T) {
	srv := newTestServer(t)

	text, err := GetText(context.Background(), srv.Client(), srv.URL+"/latin1.html", nil)
	if err != nil {
		t.Fatalf("GetText returned error: %v", err)
	}
	if text != "café" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestGetCanceledContext(t *testing.T) {
	srv := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Get(ctx, srv.Client(), srv.URL+"/ok.bin", nil); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestGetCanceledDuringBody(t *testing.T) {
	srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	if _, err := Get(ctx, srv.Client(), srv.URL+"/stall", nil); err == nil {
		t.Fatal("expected error when the context expires mid-body")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("read was not aborted by the context: took %s", elapsed)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := GetText(ctx, srv.Client(), srv.URL+"/stall", nil); err == nil {
		t.Fatal("expected GetText error when the context expires mid-body")
	}
}

func TestStoreDownloadAs(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()
	s := NewStore(dir, Options{Client: srv.Client()})

	desc, err := s.DownloadAs(context.Background(), srv.URL+"/ok.bin", nil, "ok.bin")
	if err != nil {
		t.Fatalf("DownloadAs returned error: %v", err)
	}
	if desc.Filename != "ok.bin" || desc.Size != 3 || desc.IsLocal {
		t.Fatalf("unexpected desc: %+v", desc)
	}

	b, err := os.ReadFile(filepath.Join(dir, "ok.bin"))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if len(b) != 3 {
		t.Fatalf("unexpected saved size: %d", len(b))
	}

	// The same url is not fetched twice by one store.
	if _, err := s.DownloadAs(context.Background(), srv.URL+"/ok.bin", nil, "ok.bin"); !errors.Is(err, AlreadyAttempted) {
		t.Fatalf("expected AlreadyAttempted, got %v", err)
	}
}

func TestStoreSkipExisting(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ok.bin"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(dir, Options{Client: srv.Client(), SkipExisting: true})
	desc, err := s.DownloadAs(context.Background(), srv.URL+"/ok.bin", nil, "ok.bin")
	if err != nil {
		t.Fatalf("DownloadAs returned error: %v", err)
	}
	if !desc.IsLocal {
		t.Fatal("expected existing file to be reported as local")
	}

	b, _ := os.ReadFile(filepath.Join(dir, "ok.bin"))
	if string(b) != "old" {
		t.Fatalf("existing file was overwritten: %q", b)
	}
}

func TestStoreDownloadTextAs(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()
	s := NewStore(dir, Options{Client: srv.Client()})

	if _, err := s.DownloadTextAs(context.Background(), srv.URL+"/latin1.html", nil, "page.html"); err != nil {
		t.Fatalf("DownloadTextAs returned error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "page.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "café" {
		t.Fatalf("expected utf-8 text, got %q", b)
	}
}

func TestURLToFilename(t *testing.T) {
	name, err := URLToFilename("https://example.com/a/b?c=d")
	if err != nil {
		t.Fatalf("URLToFilename returned error: %v", err)
	}
	if strings.ContainsAny(name, `/?:`) {
		t.Fatalf("filename contains reserved characters: %q", name)
	}
}
