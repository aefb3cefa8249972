package background

import (
	"net/http"

	"github.com/sakurafall/tokei/config"
)

// UserAgentTransport wraps an http.RoundTripper and stamps the app
// User-Agent onto every request. Several of the free image APIs reject
// requests with default library agents.
type UserAgentTransport struct {
	Base      http.RoundTripper
	UserAgent string
}

// RoundTrip executes a single HTTP transaction, adding the User-Agent header.
func (t *UserAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	ua := t.UserAgent
	if ua == "" {
		ua = config.UserAgent
	}
	cloned.Header.Set("User-Agent", ua)
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(cloned)
}

// NewHTTPClient returns the shared client used for provider and widget
// calls, with the app User-Agent applied.
func NewHTTPClient() *http.Client {
	return &http.Client{Transport: &UserAgentTransport{}}
}
