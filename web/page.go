package web

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
	"golang.org/x/net/html"
)

// Page holds what we learn about a downloaded webpage.
type Page struct {
	URL    string
	Title  string
	Images []string // Absolute http(s) image urls, og:image first
}

// Inspect parses a webpage body fetched from pageURL. It collects the page
// title and every image the page references, resolved against pageURL.
func Inspect(pageURL string, body string) (*Page, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page url: %w", err)
	}

	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(strings.NewReader(body)); err != nil {
		return nil, fmt.Errorf("failed to parse opengraph: %w", err)
	}

	page := &Page{
		URL:   pageURL,
		Title: strings.TrimSpace(og.Title),
	}
	if page.Title == "" {
		doc := goquery.NewDocumentFromNode(root)
		page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	var raw []string
	for _, img := range og.Images {
		if img != nil {
			raw = append(raw, img.URL)
		}
	}
	raw = append(raw, EmbeddedImageURLs(root)...)

	seen := map[string]struct{}{}
	for _, r := range raw {
		abs, ok := resolve(base, r)
		if !ok {
			continue
		}
		if _, dup := seen[abs]; dup {
			continue
		}
		seen[abs] = struct{}{}
		page.Images = append(page.Images, abs)
	}

	return page, nil
}

// resolve returns ref as an absolute http(s) url relative to base.
func resolve(base *url.URL, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}

	abs := base.ResolveReference(u)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	return abs.String(), true
}
