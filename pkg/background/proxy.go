package background

import (
	"net/url"
	"sync"
)

// Proxy rewrites direct image URLs through a relay that accepts
// base + percentEncode(targetUrl) and streams the target back. Some
// providers hotlink-protect their CDNs; the relay gives the loader a
// second path. A nil Proxy or empty base disables rewriting.
type Proxy struct {
	mu   sync.RWMutex
	base string
}

// NewProxy returns a Proxy relaying through base, which may be empty.
func NewProxy(base string) *Proxy {
	return &Proxy{base: base}
}

// SetBase changes the relay base. Safe to call while fetches are in
// flight; in-flight rewrites keep the base they started with.
func (p *Proxy) SetBase(base string) {
	p.mu.Lock()
	p.base = base
	p.mu.Unlock()
}

// Rewrite returns the proxied form of direct, or "" when no proxy is
// configured. The direct URL is percent-encoded in full so query
// parameters survive the round trip.
func (p *Proxy) Rewrite(direct string) string {
	if p == nil {
		return ""
	}
	p.mu.RLock()
	base := p.base
	p.mu.RUnlock()
	if base == "" || direct == "" {
		return ""
	}
	return base + url.QueryEscape(direct)
}
