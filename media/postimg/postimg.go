package postimg

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/ccollins476ad/dlsys/download"
	"github.com/ccollins476ad/dlsys/web"
	"golang.org/x/net/html"
)

var linkRegexp = regexp.MustCompile(`background-image:url\('(https://i.postimg.cc/[^']+)'\)`)

// Expander resolves postimg galleries. It implements the media.Expander
// interface.
type Expander struct {
	hc *http.Client
}

func NewExpander(hc *http.Client) *Expander {
	return &Expander{
		hc: hc,
	}
}

// Expand returns the full-size image urls of a postimg gallery. See
// media.Expander#Expand for API details.
func (e *Expander) Expand(ctx context.Context, u string) ([]string, error) {
	if !strings.HasPrefix(u, "https://postimg.cc/gallery/") {
		return nil, nil
	}

	body, err := download.GetBody(ctx, e.hc, u, nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := html.Parse(body)
	if err != nil {
		return nil, err
	}

	urls := parseGallery(doc)
	if len(urls) == 0 {
		return nil, fmt.Errorf("postimg gallery contains 0 image links: %s", u)
	}

	return urls, nil
}

// parseGallery extracts the full-size image urls from a postimg gallery page.
// Each thumbnail is a link whose style carries the full image as its
// background.
func parseGallery(doc *html.Node) []string {
	var urls []string

	web.ForEachLink(doc, func(n *html.Node) error {
		for _, a := range n.Attr {
			if a.Key != "style" {
				continue
			}
			matches := linkRegexp.FindStringSubmatch(a.Val)
			if len(matches) > 0 {
				urls = append(urls, matches[1])
			}
		}
		return nil
	})

	return urls
}
