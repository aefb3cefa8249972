package background

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sakurafall/tokei/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPNG encodes a small solid-color image for serving from mocks.
func testPNG(t *testing.T, c color.NRGBA, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoader_Load_Direct(t *testing.T) {
	data := testPNG(t, color.NRGBA{R: 0xff, A: 0xff}, 8, 8)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer ts.Close()

	l := NewLoader(ts.Client())
	rec := provider.ImageRecord{URL: ts.URL + "/img.png"}

	img, err := l.Load(context.Background(), &rec)
	assert.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, ts.URL+"/img.png", rec.URL) // unchanged on direct success
}

func TestLoader_Load_ProxyRetryOnce(t *testing.T) {
	data := testPNG(t, color.NRGBA{G: 0xff, A: 0xff}, 4, 4)
	var direct, proxied int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/direct.png":
			direct++
			w.WriteHeader(http.StatusForbidden)
		case "/proxied.png":
			proxied++
			_, _ = w.Write(data)
		}
	}))
	defer ts.Close()

	l := NewLoader(ts.Client())
	rec := provider.ImageRecord{
		URL:        ts.URL + "/direct.png",
		ProxiedURL: ts.URL + "/proxied.png",
		ArtistName: "Aoi",
	}

	img, err := l.Load(context.Background(), &rec)
	assert.NoError(t, err)
	assert.NotNil(t, img)
	assert.Equal(t, 1, direct)
	assert.Equal(t, 1, proxied)

	// The record now points at the URL that actually loaded.
	assert.Equal(t, ts.URL+"/proxied.png", rec.URL)
}

func TestLoader_Load_BothFail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	l := NewLoader(ts.Client())
	rec := provider.ImageRecord{
		URL:        ts.URL + "/direct.png",
		ProxiedURL: ts.URL + "/proxied.png",
		ArtistName: "Aoi",
	}

	_, err := l.Load(context.Background(), &rec)

	var lerr *ImageLoadError
	assert.Error(t, err)
	assert.True(t, errors.As(err, &lerr))
	assert.Equal(t, ts.URL+"/direct.png", lerr.DirectURL)
	assert.Equal(t, ts.URL+"/proxied.png", lerr.ProxiedURL)
	assert.Contains(t, lerr.Error(), "Aoi") // attribution kept for diagnostics
}

func TestLoader_Load_NoProxyFailsImmediately(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	l := NewLoader(ts.Client())
	rec := provider.ImageRecord{URL: ts.URL + "/direct.png"}

	_, err := l.Load(context.Background(), &rec)

	var lerr *ImageLoadError
	assert.True(t, errors.As(err, &lerr))
	assert.Empty(t, lerr.ProxiedURL)
	assert.Equal(t, 1, calls)
}

func TestLoader_Load_UndecodableBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not an image</html>"))
	}))
	defer ts.Close()

	l := NewLoader(ts.Client())
	rec := provider.ImageRecord{URL: ts.URL + "/img.png"}

	_, err := l.Load(context.Background(), &rec)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decoding image")
}
