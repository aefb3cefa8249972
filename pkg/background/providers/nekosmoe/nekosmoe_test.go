package nekosmoe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sakurafall/tokei/pkg/provider"
	"github.com/stretchr/testify/assert"
)

type redirectTransport struct {
	target string
}

func (t *redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	u, _ := req.URL.Parse(t.target)
	req.URL.Scheme = u.Scheme
	req.URL.Host = u.Host
	return http.DefaultTransport.RoundTrip(req)
}

func TestNekosMoeProvider_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"images": [{"id": "Hy4", "artist": "neko_artist"}]}`))
	}))
	defer ts.Close()

	p := NewNekosMoeProvider(&http.Client{Transport: &redirectTransport{target: ts.URL}}, nil)
	rec, err := p.Fetch(context.Background(), false)

	assert.NoError(t, err)
	assert.Equal(t, "https://nekos.moe/image/Hy4", rec.URL)
	assert.Equal(t, "https://nekos.moe/post/Hy4", rec.SourceURL)
	assert.Equal(t, "neko_artist", rec.ArtistName)
}

func TestNekosMoeProvider_Fetch_MissingID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"images": [{"artist": "x"}]}`))
	}))
	defer ts.Close()

	p := NewNekosMoeProvider(&http.Client{Transport: &redirectTransport{target: ts.URL}}, nil)
	_, err := p.Fetch(context.Background(), true)

	var perr *provider.ProviderError
	assert.Error(t, err)
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, "nekos_moe", perr.Provider)
	assert.Contains(t, perr.RequestURL, "nsfw=true")
	assert.Contains(t, perr.Error(), "missing image ID")
}
