package nekosbest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sakurafall/tokei/pkg/background"
	"github.com/sakurafall/tokei/pkg/provider"
	"github.com/stretchr/testify/assert"
)

// redirectTransport routes every request to the test server.
type redirectTransport struct {
	target string
}

func (t *redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	u, _ := req.URL.Parse(t.target)
	req.URL.Scheme = u.Scheme
	req.URL.Host = u.Host
	return http.DefaultTransport.RoundTrip(req)
}

func clientFor(ts *httptest.Server) *http.Client {
	return &http.Client{Transport: &redirectTransport{target: ts.URL}}
}

func TestNekosBestProvider_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [{
				"url": "https://x/img.png",
				"anime_name": "Foo",
				"artist_name": "Bar",
				"artist_href": "https://pixiv.net/bar",
				"source_url": "https://x/post/1"
			}]
		}`))
	}))
	defer ts.Close()

	p := NewNekosBestProvider(clientFor(ts), nil)
	rec, err := p.Fetch(context.Background(), false)

	assert.NoError(t, err)
	assert.Equal(t, "https://x/img.png", rec.URL)
	assert.Equal(t, "Foo", rec.AnimeName)
	assert.Equal(t, "Bar", rec.ArtistName)
	assert.Equal(t, "https://pixiv.net/bar", rec.ArtistHref)
	assert.Equal(t, "https://x/post/1", rec.SourceURL)
	assert.Empty(t, rec.ProxiedURL)
}

func TestNekosBestProvider_Fetch_WithProxy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{"url": "https://x/img.png"}]}`))
	}))
	defer ts.Close()

	proxy := background.NewProxy("https://relay.example/?u=")
	p := NewNekosBestProvider(clientFor(ts), proxy)
	rec, err := p.Fetch(context.Background(), false)

	assert.NoError(t, err)
	assert.Equal(t, "https://x/img.png", rec.URL)
	assert.Equal(t, "https://relay.example/?u=https%3A%2F%2Fx%2Fimg.png", rec.ProxiedURL)
}

func TestNekosBestProvider_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "HTTP Error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"message":"down"}`))
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "Malformed JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{invalid_json`))
			},
		},
		{
			name: "Missing Image Field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"results": [{"artist_name": "Bar"}]}`))
			},
		},
		{
			name: "Empty Results",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"results": []}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			p := NewNekosBestProvider(clientFor(ts), nil)
			_, err := p.Fetch(context.Background(), false)

			var perr *provider.ProviderError
			assert.Error(t, err)
			assert.True(t, errors.As(err, &perr))
			assert.Equal(t, "nekos_best", perr.Provider)
			assert.Equal(t, NekosBestAPIURL, perr.RequestURL)
			if tt.wantStatus != 0 {
				assert.Equal(t, tt.wantStatus, perr.HTTPStatus)
			}
		})
	}
}
