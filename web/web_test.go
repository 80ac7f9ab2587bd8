package web

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
<title> Sample Page </title>
<meta property="og:image" content="https://cdn.example.com/cover.jpg">
</head>
<body>
<a href="/about">about</a>
<img src="/img/a.png">
<img src="https://cdn.example.com/cover.jpg">
<img src="data:image/gif;base64,R0lGOD">
<img src="b.gif">
</body>
</html>`

func TestEmbeddedImageURLs(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(samplePage))
	if err != nil {
		t.Fatal(err)
	}

	got := EmbeddedImageURLs(doc)
	want := []string{"/img/a.png", "https://cdn.example.com/cover.jpg", "data:image/gif;base64,R0lGOD", "b.gif"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("EmbeddedImageURLs = %v, want %v", got, want)
	}
}

func TestForEachLink(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(samplePage))
	if err != nil {
		t.Fatal(err)
	}

	var hrefs []string
	ForEachLink(doc, func(n *html.Node) error {
		hrefs = append(hrefs, extractLinkFromNode(n))
		return nil
	})
	if len(hrefs) != 1 || hrefs[0] != "/about" {
		t.Fatalf("unexpected links: %v", hrefs)
	}
}

func TestInspect(t *testing.T) {
	page, err := Inspect("https://example.com/dir/index.html", samplePage)
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}

	if page.Title != "Sample Page" {
		t.Fatalf("unexpected title: %q", page.Title)
	}

	want := []string{
		"https://cdn.example.com/cover.jpg",
		"https://example.com/img/a.png",
		"https://example.com/dir/b.gif",
	}
	if !reflect.DeepEqual(page.Images, want) {
		t.Fatalf("Images = %v, want %v", page.Images, want)
	}
}

func TestBuildGallery(t *testing.T) {
	out := BuildGallery("pics", []string{"a.jpg", `b"c.png`})

	if !strings.Contains(out, `<img src="a.jpg"`) {
		t.Fatalf("gallery missing a.jpg: %s", out)
	}
	if !strings.Contains(out, `b&#34;c.png`) {
		t.Fatalf("gallery did not escape filename: %s", out)
	}
	if !strings.Contains(out, "<title>pics</title>") {
		t.Fatalf("gallery missing title: %s", out)
	}
}

func TestExtractURLs(t *testing.T) {
	text := `first https://youtu.be/abc then
https://example.com/pic.jpg, again https://youtu.be/abc and example.org without scheme`

	got := ExtractURLs(text)
	want := []string{"https://youtu.be/abc", "https://example.com/pic.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractURLs = %v, want %v", got, want)
	}
}
