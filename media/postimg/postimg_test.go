package postimg

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestParseGallery(t *testing.T) {
	page := `<html><body>
<a href="https://postimg.cc/one" style="background-image:url('https://i.postimg.cc/one/full.jpg')">1</a>
<a href="https://postimg.cc/two" style="color:red">2</a>
<a href="https://postimg.cc/three" style="background-image:url('https://i.postimg.cc/three/full.png')">3</a>
</body></html>`

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}

	got := parseGallery(doc)
	want := []string{"https://i.postimg.cc/one/full.jpg", "https://i.postimg.cc/three/full.png"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseGallery = %v, want %v", got, want)
	}
}
