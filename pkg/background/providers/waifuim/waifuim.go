package waifuim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sakurafall/tokei/pkg/background"
	"github.com/sakurafall/tokei/pkg/provider"
)

// WaifuImProvider implements ImageProvider for waifu.im. Responses are
// an image array with the artist nested one level down.
type WaifuImProvider struct {
	client *http.Client
	proxy  *background.Proxy
}

func init() {
	background.RegisterProvider(background.SourceWaifuIm, func(client *http.Client, proxy *background.Proxy) provider.ImageProvider {
		return NewWaifuImProvider(client, proxy)
	})
}

// NewWaifuImProvider creates a new WaifuImProvider.
func NewWaifuImProvider(client *http.Client, proxy *background.Proxy) *WaifuImProvider {
	return &WaifuImProvider{client: client, proxy: proxy}
}

// Name returns the provider tag.
func (p *WaifuImProvider) Name() string {
	return string(background.SourceWaifuIm)
}

// Fetch requests one random image filtered by the is_nsfw parameter.
func (p *WaifuImProvider) Fetch(ctx context.Context, allowNSFW bool) (provider.ImageRecord, error) {
	reqURL := fmt.Sprintf(WaifuImAPIURL, allowNSFW)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return provider.ImageRecord{}, &provider.ProviderError{Provider: p.Name(), RequestURL: reqURL, Err: err}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return provider.ImageRecord{}, &provider.ProviderError{Provider: p.Name(), RequestURL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode != http.StatusOK {
		return provider.ImageRecord{}, &provider.ProviderError{
			Provider:    p.Name(),
			RequestURL:  reqURL,
			HTTPStatus:  resp.StatusCode,
			BodySnippet: provider.Snippet(body),
		}
	}
	if readErr != nil {
		return provider.ImageRecord{}, &provider.ProviderError{Provider: p.Name(), RequestURL: reqURL, Err: readErr}
	}

	var out waifuImResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return provider.ImageRecord{}, &provider.ProviderError{
			Provider:    p.Name(),
			RequestURL:  reqURL,
			BodySnippet: provider.Snippet(body),
			Err:         err,
		}
	}

	if len(out.Images) == 0 || out.Images[0].URL == "" {
		return provider.ImageRecord{}, &provider.ProviderError{
			Provider:    p.Name(),
			RequestURL:  reqURL,
			BodySnippet: provider.Snippet(body),
			Err:         errors.New("response missing image URL"),
		}
	}

	img := out.Images[0]
	rec := provider.ImageRecord{
		URL:       img.URL,
		SourceURL: img.Source,
	}
	if img.Artist != nil {
		rec.ArtistName = img.Artist.Name
		rec.ArtistHref = img.Artist.PixivHref
	}
	rec.ProxiedURL = p.proxy.Rewrite(rec.URL)
	return rec, nil
}

// waifu.im JSON structures

type waifuImResponse struct {
	Images []waifuImImage `json:"images"`
}

type waifuImImage struct {
	URL    string         `json:"url"`
	Source string         `json:"source"`
	Artist *waifuImArtist `json:"artist"`
}

type waifuImArtist struct {
	Name      string `json:"name"`
	PixivHref string `json:"pixiv"`
}
