package web

import (
	"golang.org/x/net/html"
)

// extractLinkFromNode returns the href anchor text associated with the given
// html node. It returns the empty string if the node is not a link.
func extractLinkFromNode(n *html.Node) string {
	if n.Type != html.ElementNode || n.Data != "a" {
		return ""
	}
	return attr(n, "href")
}

// attr returns the value of the named attribute, or "" if absent.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// ForEachNode applies a function to the given node and each of its
// descendants.
func ForEachNode(node *html.Node, fn func(n *html.Node) error) error {
	var iter func(n *html.Node) error
	iter = func(n *html.Node) error {
		err := fn(n)
		if err != nil {
			return err
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			err := iter(c)
			if err != nil {
				return err
			}
		}

		return nil
	}

	return iter(node)
}

// ForEachLink applies a function to each `a href` element in the given html
// node and its descendants.
func ForEachLink(node *html.Node, fn func(n *html.Node) error) error {
	return ForEachNode(node, func(n *html.Node) error {
		if extractLinkFromNode(n) != "" {
			return fn(n)
		}
		return nil
	})
}

// NodesWithDataVal returns a slice of all descendant element nodes whose
// "data" field has the given value.
func NodesWithDataVal(node *html.Node, dataName string) []*html.Node {
	var nodes []*html.Node

	ForEachNode(node, func(n *html.Node) error {
		if n.Type == html.ElementNode && n.Data == dataName {
			nodes = append(nodes, n)
		}
		return nil
	})

	return nodes
}

// EmbeddedImageURLs returns the src of every img element in the given html
// document, in document order. Relative urls are returned as-is.
func EmbeddedImageURLs(doc *html.Node) []string {
	var urls []string
	for _, n := range NodesWithDataVal(doc, "img") {
		if src := attr(n, "src"); src != "" {
			urls = append(urls, src)
		}
	}
	return urls
}
