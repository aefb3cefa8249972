package background

import (
	"net/http"
	"sort"

	"github.com/sakurafall/tokei/pkg/provider"
)

// ProviderFactory defines the function signature for creating a provider adapter.
type ProviderFactory func(client *http.Client, proxy *Proxy) provider.ImageProvider

var providerRegistry = make(map[Source]ProviderFactory)

// RegisterProvider registers a new image provider factory under its source tag.
// Adapters call this from init().
func RegisterProvider(tag Source, factory ProviderFactory) {
	providerRegistry[tag] = factory
}

// RegisteredSources returns the tags of all registered real providers, sorted.
func RegisteredSources() []Source {
	tags := make([]Source, 0, len(providerRegistry))
	for tag := range providerRegistry {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
