package imgbb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
)

// rewriteTransport sends every request to target, keeping the path.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func newExpander(t *testing.T) *Expander {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/album/xyz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<img src="https://i.ibb.co/1/a.jpg"><img src="/logo.png"><img src="https://i.ibb.co/2/b.jpg">`))
	})
	mux.HandleFunc("/single", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<img src="https://i.ibb.co/3/c.jpg"><img src="/logo.png">`))
	})
	mux.HandleFunc("/double", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<img src="https://i.ibb.co/3/c.jpg"><img src="https://i.ibb.co/4/d.jpg">`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	target, _ := url.Parse(srv.URL)
	return NewExpander(&http.Client{Transport: rewriteTransport{target: target}})
}

func TestExpandAlbum(t *testing.T) {
	e := newExpander(t)

	urls, err := e.Expand(context.Background(), "https://ibb.co/album/xyz")
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	want := []string{"https://i.ibb.co/1/a.jpg", "https://i.ibb.co/2/b.jpg"}
	if !reflect.DeepEqual(urls, want) {
		t.Fatalf("urls = %v, want %v", urls, want)
	}
}

func TestExpandImagePage(t *testing.T) {
	e := newExpander(t)

	urls, err := e.Expand(context.Background(), "https://ibb.co/single")
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if !reflect.DeepEqual(urls, []string{"https://i.ibb.co/3/c.jpg"}) {
		t.Fatalf("unexpected urls: %v", urls)
	}

	if _, err := e.Expand(context.Background(), "https://ibb.co/double"); err == nil {
		t.Fatal("expected error for page with multiple images")
	}
}

func TestExpandIgnoresOtherHosts(t *testing.T) {
	e := newExpander(t)

	urls, err := e.Expand(context.Background(), "https://example.com/a.jpg")
	if err != nil || urls != nil {
		t.Fatalf("expected no expansion, got %v %v", urls, err)
	}
}
