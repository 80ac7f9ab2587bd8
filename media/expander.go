package media

import "context"

// Expander resolves a gallery or album url on an image host into the direct
// urls of its images. Most implementations only know one site (e.g., imgur).
type Expander interface {
	// Expand returns the image urls behind u. It returns nil and no error if
	// it does not recognise u, in which case u should be fetched as-is.
	Expand(ctx context.Context, u string) ([]string, error)
}

// Expand runs u through each expander in turn and returns the first non-empty
// result. It returns []string{u} if no expander recognises u.
func Expand(ctx context.Context, exps []Expander, u string) ([]string, error) {
	for _, e := range exps {
		urls, err := e.Expand(ctx, u)
		if err != nil {
			return nil, err
		}
		if len(urls) > 0 {
			return urls, nil
		}
	}
	return []string{u}, nil
}
