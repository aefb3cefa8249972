package background

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"

	// Decoders for the formats the free image APIs actually serve.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/sakurafall/tokei/pkg/provider"
	"github.com/sakurafall/tokei/util/log"
)

// ImageLoadError describes a preload failure after both the direct and
// (if configured) proxied URLs were exhausted. It carries everything a
// user needs to file a useful bug report.
type ImageLoadError struct {
	DirectURL  string
	ProxiedURL string // "" if no proxy was configured
	Record     provider.ImageRecord
	Err        error
}

// Error implements the error interface.
func (e *ImageLoadError) Error() string {
	msg := "failed to load image " + e.DirectURL
	if e.ProxiedURL != "" {
		msg += " (proxy retry " + e.ProxiedURL + " also failed)"
	}
	if e.Record.ArtistName != "" {
		msg += " by " + e.Record.ArtistName
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ImageLoadError) Unwrap() error {
	return e.Err
}

// Loader preloads and decodes the image behind a record before it is
// ever shown, so a broken resource never reaches the screen.
type Loader struct {
	client *http.Client
}

// NewLoader creates a Loader using the given client.
func NewLoader(client *http.Client) *Loader {
	return &Loader{client: client}
}

// Load fetches and decodes rec's image. On a direct failure it retries
// exactly once through rec.ProxiedURL when one is present and distinct;
// on proxy success rec.URL is overwritten in place with the URL that
// actually worked. Both failing yields an *ImageLoadError.
func (l *Loader) Load(ctx context.Context, rec *provider.ImageRecord) (image.Image, error) {
	img, directErr := l.fetchAndDecode(ctx, rec.URL)
	if directErr == nil {
		return img, nil
	}

	if rec.ProxiedURL != "" && rec.ProxiedURL != rec.URL {
		log.Printf("Direct load failed (%v), retrying via proxy", directErr)
		img, proxyErr := l.fetchAndDecode(ctx, rec.ProxiedURL)
		if proxyErr == nil {
			rec.URL = rec.ProxiedURL
			return img, nil
		}
		return nil, &ImageLoadError{
			DirectURL:  rec.URL,
			ProxiedURL: rec.ProxiedURL,
			Record:     *rec,
			Err:        errors.Join(directErr, proxyErr),
		}
	}

	return nil, &ImageLoadError{
		DirectURL: rec.URL,
		Record:    *rec,
		Err:       directErr,
	}
}

func (l *Loader) fetchAndDecode(ctx context.Context, rawURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("reading image body: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}
