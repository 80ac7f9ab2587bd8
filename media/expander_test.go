package media

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type prefixExpander struct {
	prefix string
	urls   []string
	err    error
}

func (e prefixExpander) Expand(ctx context.Context, u string) ([]string, error) {
	if !strings.HasPrefix(u, e.prefix) {
		return nil, nil
	}
	return e.urls, e.err
}

func TestExpandFirstMatchWins(t *testing.T) {
	exps := []Expander{
		prefixExpander{prefix: "https://a/", urls: []string{"https://a/1.jpg", "https://a/2.jpg"}},
		prefixExpander{prefix: "https://", urls: []string{"https://other.jpg"}},
	}

	got, err := Expand(context.Background(), exps, "https://a/album")
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"https://a/1.jpg", "https://a/2.jpg"}) {
		t.Fatalf("unexpected urls: %v", got)
	}
}

func TestExpandUnrecognisedPassesThrough(t *testing.T) {
	exps := []Expander{prefixExpander{prefix: "https://a/"}}

	got, err := Expand(context.Background(), exps, "https://b/pic.png")
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"https://b/pic.png"}) {
		t.Fatalf("unexpected urls: %v", got)
	}
}

func TestExpandError(t *testing.T) {
	boom := errors.New("boom")
	exps := []Expander{prefixExpander{prefix: "https://a/", err: boom}}

	if _, err := Expand(context.Background(), exps, "https://a/x"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
