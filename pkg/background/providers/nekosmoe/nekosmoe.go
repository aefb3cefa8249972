package nekosmoe

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

// NekosMoeProvider implements ImageProvider for nekos.moe.
type NekosMoeProvider struct {
	client *http.Client
	proxy  *background.Proxy
}

func init() {
	background.RegisterProvider(background.SourceNekosMoe, func(client *http.Client, proxy *background.Proxy) provider.ImageProvider {
		return NewNekosMoeProvider(client, proxy)
	})
}

// NewNekosMoeProvider creates a new NekosMoeProvider.
func NewNekosMoeProvider(client *http.Client, proxy *background.Proxy) *NekosMoeProvider {
	return &NekosMoeProvider{client: client, proxy: proxy}
}

// Name returns the provider tag.
func (p *NekosMoeProvider) Name() string {
	return string(background.SourceNekosMoe)
}

// Fetch requests one random post and synthesizes the image URL from its ID.
func (p *NekosMoeProvider) Fetch(ctx context.Context, allowNSFW bool) (provider.ImageRecord, error) {
	reqURL := fmt.Sprintf(NekosMoeAPIURL, allowNSFW)

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

	var out nekosMoeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return provider.ImageRecord{}, &provider.ProviderError{
			Provider:    p.Name(),
			RequestURL:  reqURL,
			BodySnippet: provider.Snippet(body),
			Err:         err,
		}
	}

	if len(out.Images) == 0 || out.Images[0].ID == "" {
		return provider.ImageRecord{}, &provider.ProviderError{
			Provider:    p.Name(),
			RequestURL:  reqURL,
			BodySnippet: provider.Snippet(body),
			Err:         errors.New("response missing image ID"),
		}
	}

	img := out.Images[0]
	rec := provider.ImageRecord{
		URL:        fmt.Sprintf(NekosMoeImageURL, img.ID),
		ArtistName: img.Artist,
		SourceURL:  fmt.Sprintf(NekosMoePostURL, img.ID),
	}
	rec.ProxiedURL = p.proxy.Rewrite(rec.URL)
	return rec, nil
}

// nekos.moe JSON structures

type nekosMoeResponse struct {
	Images []nekosMoeImage `json:"images"`
}

type nekosMoeImage struct {
	ID     string `json:"id"`
	Artist string `json:"artist"`
}
