package nekosia

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sakurafall/tokei/pkg/background"
	"github.com/sakurafall/tokei/pkg/provider"
)

// NekosiaProvider implements ImageProvider for nekosia.cat, whose
// responses nest the displayable URL two objects deep.
type NekosiaProvider struct {
	client *http.Client
	proxy  *background.Proxy
}

func init() {
	background.RegisterProvider(background.SourceNekosia, func(client *http.Client, proxy *background.Proxy) provider.ImageProvider {
		return NewNekosiaProvider(client, proxy)
	})
}

// NewNekosiaProvider creates a new NekosiaProvider.
func NewNekosiaProvider(client *http.Client, proxy *background.Proxy) *NekosiaProvider {
	return &NekosiaProvider{client: client, proxy: proxy}
}

// Name returns the provider tag.
func (p *NekosiaProvider) Name() string {
	return string(background.SourceNekosia)
}

// Fetch requests one random image. nekosia.cat serves SFW content only,
// so allowNSFW has no query-parameter expression here.
func (p *NekosiaProvider) Fetch(ctx context.Context, _ bool) (provider.ImageRecord, error) {
	reqURL := NekosiaAPIURL

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

	var out nekosiaResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return provider.ImageRecord{}, &provider.ProviderError{
			Provider:    p.Name(),
			RequestURL:  reqURL,
			BodySnippet: provider.Snippet(body),
			Err:         err,
		}
	}

	if out.Image == nil || out.Image.Original == nil || out.Image.Original.URL == "" {
		return provider.ImageRecord{}, &provider.ProviderError{
			Provider:    p.Name(),
			RequestURL:  reqURL,
			BodySnippet: provider.Snippet(body),
			Err:         errors.New("response missing image.original.url"),
		}
	}

	rec := provider.ImageRecord{URL: out.Image.Original.URL}
	if out.Attribution != nil && out.Attribution.Artist != nil {
		rec.ArtistName = out.Attribution.Artist.Username
		rec.ArtistHref = out.Attribution.Artist.ProfileURL
	}
	if out.Source != nil {
		rec.SourceURL = out.Source.URL
	}
	rec.ProxiedURL = p.proxy.Rewrite(rec.URL)
	return rec, nil
}

// nekosia.cat JSON structures

type nekosiaResponse struct {
	Image       *nekosiaImage       `json:"image"`
	Attribution *nekosiaAttribution `json:"attribution"`
	Source      *nekosiaSource      `json:"source"`
}

type nekosiaImage struct {
	Original *nekosiaVariant `json:"original"`
}

type nekosiaVariant struct {
	URL string `json:"url"`
}

type nekosiaAttribution struct {
	Artist *nekosiaArtist `json:"artist"`
}

type nekosiaArtist struct {
	Username   string `json:"username"`
	ProfileURL string `json:"profile"`
}

type nekosiaSource struct {
	URL string `json:"url"`
}
