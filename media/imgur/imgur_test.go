package imgur

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestExpandAlbum(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"status":200,"data":{"images":[
			{"link":"https://i.imgur.com/aaaaaaa.jpg"},
			{"link":"https://i.imgur.com/bbbbbbb.png"}]}}`))
	}))
	defer srv.Close()

	e := NewExpander(srv.Client())
	e.APIBase = srv.URL + "/album/"

	urls, err := e.Expand(context.Background(), "https://imgur.com/a/my-trip-AbCdEfG")
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}

	want := []string{"https://i.imgur.com/aaaaaaa.jpg", "https://i.imgur.com/bbbbbbb.png"}
	if !reflect.DeepEqual(urls, want) {
		t.Fatalf("urls = %v, want %v", urls, want)
	}
	if gotPath != "/album/AbCdEfG" {
		t.Fatalf("unexpected api path: %s", gotPath)
	}
	if gotAuth != "Client-ID "+clientID {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
}

func TestExpandAlbumFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"status":404}`))
	}))
	defer srv.Close()

	e := NewExpander(srv.Client())
	e.APIBase = srv.URL + "/"

	if _, err := e.Expand(context.Background(), "https://imgur.com/a/AbCdEfG"); err == nil {
		t.Fatal("expected error for unsuccessful album response")
	}
}

func TestExpandShortLinks(t *testing.T) {
	e := NewExpander(http.DefaultClient)

	urls, err := e.Expand(context.Background(), "https://imgur.com/XyZ1234")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(urls, []string{"https://i.imgur.com/XyZ1234.jpeg"}) {
		t.Fatalf("unexpected urls: %v", urls)
	}

	for _, u := range []string{"https://i.imgur.com/XyZ1234.png", "https://example.com/x.png"} {
		urls, err := e.Expand(context.Background(), u)
		if err != nil || urls != nil {
			t.Fatalf("expected no expansion for %s, got %v %v", u, urls, err)
		}
	}
}
