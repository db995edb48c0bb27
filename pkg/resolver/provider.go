package resolver

import (
	"strings"
)

// Provider is a named preset mapping to a fixed pair of upstream servers.
type Provider string

const (
	ProviderCloudflare Provider = "cloudflare"
	ProviderGoogle     Provider = "google"
	ProviderOpenDNS    Provider = "opendns"
)

var providerServers = map[Provider][]string{
	ProviderCloudflare: {"1.1.1.1", "1.0.0.1"},
	ProviderGoogle:     {"8.8.8.8", "8.8.4.4"},
	ProviderOpenDNS:    {"208.67.222.222", "208.67.220.220"},
}

// Servers returns the upstream servers for the provider, matching the name
// case-insensitively.
func (p Provider) Servers() ([]string, bool) {
	servers, ok := providerServers[Provider(strings.ToLower(string(p)))]
	return servers, ok
}

// ParseProvider maps a provider name to its preset, or a ProviderError when
// the name is unknown.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := providerServers[p]; !ok {
		return "", &ProviderError{Provider: s}
	}
	return p, nil
}
