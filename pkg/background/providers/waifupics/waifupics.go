package waifupics

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sakurafall/tokei/pkg/background"
	"github.com/sakurafall/tokei/pkg/provider"
)

// WaifuPicsProvider implements ImageProvider for waifu.pics. The API
// returns a bare single-object payload with no attribution metadata.
type WaifuPicsProvider struct {
	client *http.Client
	proxy  *background.Proxy
}

func init() {
	background.RegisterProvider(background.SourceWaifuPics, func(client *http.Client, proxy *background.Proxy) provider.ImageProvider {
		return NewWaifuPicsProvider(client, proxy)
	})
}

// NewWaifuPicsProvider creates a new WaifuPicsProvider.
func NewWaifuPicsProvider(client *http.Client, proxy *background.Proxy) *WaifuPicsProvider {
	return &WaifuPicsProvider{client: client, proxy: proxy}
}

// Name returns the provider tag.
func (p *WaifuPicsProvider) Name() string {
	return string(background.SourceWaifuPics)
}

// Fetch requests one random image, selecting the sfw or nsfw endpoint.
func (p *WaifuPicsProvider) Fetch(ctx context.Context, allowNSFW bool) (provider.ImageRecord, error) {
	reqURL := WaifuPicsSFWURL
	if allowNSFW {
		reqURL = WaifuPicsNSFWURL
	}

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

	var out waifuPicsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return provider.ImageRecord{}, &provider.ProviderError{
			Provider:    p.Name(),
			RequestURL:  reqURL,
			BodySnippet: provider.Snippet(body),
			Err:         err,
		}
	}

	if out.URL == "" {
		return provider.ImageRecord{}, &provider.ProviderError{
			Provider:    p.Name(),
			RequestURL:  reqURL,
			BodySnippet: provider.Snippet(body),
			Err:         errors.New("response missing image URL"),
		}
	}

	rec := provider.ImageRecord{URL: out.URL}
	rec.ProxiedURL = p.proxy.Rewrite(rec.URL)
	return rec, nil
}

// waifu.pics JSON structure

type waifuPicsResponse struct {
	URL string `json:"url"`
}
