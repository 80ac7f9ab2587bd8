package web

import (
	"fmt"
	"html"
	"strings"
)

// GalleryFilename is the name of the page written by BuildGallery callers.
const GalleryFilename = "gallery.html"

// BuildGallery constructs an html web page displaying images with the given
// filenames.
func BuildGallery(title string, filenames []string) string {
	sb := strings.Builder{}

	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString(fmt.Sprintf("<meta charset=\"utf-8\">\n<title>%s</title>\n", html.EscapeString(title)))
	sb.WriteString("</head>\n<body>\n")

	for _, f := range filenames {
		esc := html.EscapeString(f)
		sb.WriteString(fmt.Sprintf("<img src=\"%s\" alt=\"%s\" style=\"max-width:100%%\">\n", esc, esc))
	}

	sb.WriteString("</body>\n</html>\n")

	return sb.String()
}
