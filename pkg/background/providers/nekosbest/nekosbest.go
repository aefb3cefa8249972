package nekosbest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sakurafall/tokei/pkg/background"
	"github.com/sakurafall/tokei/pkg/provider"
)

// NekosBestProvider implements ImageProvider for nekos.best.
type NekosBestProvider struct {
	client *http.Client
	proxy  *background.Proxy
}

func init() {
	background.RegisterProvider(background.SourceNekosBest, func(client *http.Client, proxy *background.Proxy) provider.ImageProvider {
		return NewNekosBestProvider(client, proxy)
	})
}

// NewNekosBestProvider creates a new NekosBestProvider.
func NewNekosBestProvider(client *http.Client, proxy *background.Proxy) *NekosBestProvider {
	return &NekosBestProvider{client: client, proxy: proxy}
}

// Name returns the provider tag.
func (p *NekosBestProvider) Name() string {
	return string(background.SourceNekosBest)
}

// Fetch requests one random image. nekos.best serves SFW content only,
// so allowNSFW has no query-parameter expression here.
func (p *NekosBestProvider) Fetch(ctx context.Context, _ bool) (provider.ImageRecord, error) {
	reqURL := NekosBestAPIURL

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

	var out nekosBestResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return provider.ImageRecord{}, &provider.ProviderError{
			Provider:    p.Name(),
			RequestURL:  reqURL,
			BodySnippet: provider.Snippet(body),
			Err:         err,
		}
	}

	if len(out.Results) == 0 || out.Results[0].URL == "" {
		return provider.ImageRecord{}, &provider.ProviderError{
			Provider:    p.Name(),
			RequestURL:  reqURL,
			BodySnippet: provider.Snippet(body),
			Err:         errors.New("response missing image URL"),
		}
	}

	res := out.Results[0]
	rec := provider.ImageRecord{
		URL:        res.URL,
		AnimeName:  res.AnimeName,
		ArtistName: res.ArtistName,
		ArtistHref: res.ArtistHref,
		SourceURL:  res.SourceURL,
	}
	rec.ProxiedURL = p.proxy.Rewrite(rec.URL)
	return rec, nil
}

// nekos.best JSON structures

type nekosBestResponse struct {
	Results []nekosBestResult `json:"results"`
}

type nekosBestResult struct {
	URL        string `json:"url"`
	ArtistName string `json:"artist_name"`
	ArtistHref string `json:"artist_href"`
	SourceURL  string `json:"source_url"`
	AnimeName  string `json:"anime_name"`
}
