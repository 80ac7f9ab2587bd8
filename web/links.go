package web

import (
	"mvdan.cc/xurls/v2"
)

// ExtractURLs returns every url with a scheme found in text, in order of first
// appearance and without duplicates.
func ExtractURLs(text string) []string {
	rx := xurls.Strict()

	var urls []string
	seen := map[string]struct{}{}
	for _, u := range rx.FindAllString(text, -1) {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	return urls
}
