package imgur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ccollins476ad/dlsys/download"
	"github.com/koffeinsource/go-imgur"
	log "github.com/sirupsen/logrus"
)

const (
	clientID = "ab1802d70cb1deb"

	DefaultAPIBase = "https://api.imgur.com/3/album/"
)

var getHeader = http.Header{
	"Authorization": []string{"Client-ID " + clientID},
	"referer":       []string{"https://imgur.com/"},
	"origin":        []string{"https://imgur.com"},
	"content-type":  []string{"application/json"},
	"user-agent":    []string{"curl/7.84.0"},
}

type albumInfoDataWrapper struct {
	AI      *imgur.AlbumInfo `json:"data"`
	Success bool             `json:"success"`
	Status  int              `json:"status"`
}

// Expander resolves imgur albums and short image links. It implements the
// media.Expander interface.
type Expander struct {
	hc      *http.Client
	APIBase string
}

func NewExpander(hc *http.Client) *Expander {
	return &Expander{
		hc:      hc,
		APIBase: DefaultAPIBase,
	}
}

// Expand returns the image urls of an imgur album, or the direct image url of
// a short imgur link. See media.Expander#Expand for API details.
func (e *Expander) Expand(ctx context.Context, u string) ([]string, error) {
	// Album.
	if strings.HasPrefix(u, "https://imgur.com/a/") {
		return e.albumLinks(ctx, u)
	}

	// Direct image; nothing to expand.
	if strings.HasPrefix(u, "https://i.imgur.com/") {
		return nil, nil
	}

	// Alternate image url format:
	//     https://imgur.com/<image_id>
	if imageID, ok := strings.CutPrefix(u, "https://imgur.com/"); ok && len(imageID) == 7 {
		return []string{"https://i.imgur.com/" + imageID + ".jpeg"}, nil
	}

	return nil, nil
}

// albumLinks reads the imgur album at the specified url and returns the urls
// of all its images.
func (e *Expander) albumLinks(ctx context.Context, u string) ([]string, error) {
	log.Debugf("scanning imgur album: %s", u)

	hash := strings.TrimPrefix(u, "https://imgur.com/a/")
	if len(hash) < 7 {
		return nil, fmt.Errorf("imgur album hash length too short: have=%d want=7 hash=%s", len(hash), hash)
	}
	if len(hash) > 7 {
		// Titled albums look like <slug>-<hash>.
		trimmed := hash[len(hash)-7:]
		log.Debugf("removing imgur album prefix: %s --> %s", hash, trimmed)
		hash = trimmed
	}

	b, err := download.Get(ctx, e.hc, e.APIBase+hash, getHeader)
	if err != nil {
		return nil, err
	}

	aidw := &albumInfoDataWrapper{}
	err = json.Unmarshal(b, aidw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode album info: %w", err)
	}

	if !aidw.Success || aidw.AI == nil {
		return nil, fmt.Errorf("album info response has success=false: status=%d", aidw.Status)
	}

	var links []string
	for _, img := range aidw.AI.Images {
		log.Debugf("detected imgur album image link: %s", img.Link)
		links = append(links, img.Link)
	}

	if len(links) == 0 {
		return nil, fmt.Errorf("imgur album contains 0 images: %s", u)
	}

	return links, nil
}
