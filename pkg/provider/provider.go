package provider

import (
	"context"
	"fmt"
)

// ImageRecord represents a normalized image returned by a provider.
// URL is always set. All attribution fields are optional and vary by
// provider. URL may be overwritten in place with the URL that actually
// loaded (relay proxy fallback) so attribution stays consistent with
// what is on screen.
type ImageRecord struct {
	URL        string // Absolute URL of the displayable image
	ProxiedURL string // Alternate URL to retry through the relay proxy (optional)
	AnimeName  string // Series the character is from (optional)
	ArtistName string // Artist or uploader name (optional)
	ArtistHref string // Link to the artist's page (optional)
	SourceURL  string // Link to the original post (optional)
}

// ImageProvider defines the interface for an image API adapter.
// Adapters are stateless shape-normalizers: given the same response
// payload they always produce the same record.
type ImageProvider interface {
	// Name returns the provider tag (e.g. "nekos_best").
	Name() string
	// Fetch requests one random image from the provider and normalizes
	// the response into an ImageRecord. Every failure path returns a
	// *ProviderError carrying the request URL and a response snippet.
	Fetch(ctx context.Context, allowNSFW bool) (ImageRecord, error)
}

// ProviderError describes an adapter-level failure: network error,
// non-OK status, unparsable JSON, or a payload missing the expected
// image field. Its text is surfaced directly to the user for bug
// reports, so it carries enough context to reproduce the request.
type ProviderError struct {
	Provider    string
	RequestURL  string
	HTTPStatus  int
	BodySnippet string
	Err         error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("provider %s failed for %s", e.Provider, e.RequestURL)
	if e.HTTPStatus != 0 {
		msg += fmt.Sprintf(": status %d", e.HTTPStatus)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.BodySnippet != "" {
		msg += " (body: " + e.BodySnippet + ")"
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// SnippetMax bounds how much of a response body is kept for diagnostics.
const SnippetMax = 200

// Snippet truncates a response body for inclusion in a ProviderError.
func Snippet(body []byte) string {
	if len(body) > SnippetMax {
		return string(body[:SnippetMax]) + "..."
	}
	return string(body)
}
