package imgbb

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ccollins476ad/dlsys/download"
	"github.com/ccollins476ad/dlsys/web"
	"golang.org/x/net/html"
)

// Expander resolves imgbb albums and image pages. It implements the
// media.Expander interface.
type Expander struct {
	hc *http.Client
}

func NewExpander(hc *http.Client) *Expander {
	return &Expander{
		hc: hc,
	}
}

// Expand returns the image urls of an imgbb album, or the single image shown
// on an imgbb image page. See media.Expander#Expand for API details.
func (e *Expander) Expand(ctx context.Context, u string) ([]string, error) {
	switch {
	case strings.HasPrefix(u, "https://ibb.co/album/"):
		urls, err := e.embeddedImageURLs(ctx, u)
		if err != nil {
			return nil, err
		}
		if len(urls) == 0 {
			return nil, fmt.Errorf("imgbb album contains 0 embedded image urls")
		}
		return urls, nil

	case strings.HasPrefix(u, "https://ibb.co/"):
		urls, err := e.embeddedImageURLs(ctx, u)
		if err != nil {
			return nil, err
		}
		if len(urls) == 0 {
			return nil, fmt.Errorf("imgbb page lacks image link")
		}
		if len(urls) > 1 {
			return nil, fmt.Errorf("imgbb page contains multiple image links: first=%s second=%s", urls[0], urls[1])
		}
		return urls, nil
	}

	return nil, nil
}

// embeddedImageURLs reads the imgbb page at the specified url and returns the
// absolute urls of all its images.
func (e *Expander) embeddedImageURLs(ctx context.Context, u string) ([]string, error) {
	body, err := download.GetBody(ctx, e.hc, u, nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := html.Parse(body)
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, ru := range web.EmbeddedImageURLs(doc) {
		if strings.HasPrefix(ru, "https://") {
			urls = append(urls, ru)
		}
	}

	return urls, nil
}
