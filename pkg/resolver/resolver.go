// Package resolver memoizes hostname-to-address resolution behind a bounded
// TTL cache and rewrites URL hostnames to their resolved addresses. Upstream
// lookups go through an injectable Lookuper; concurrent misses for the same
// hostname share a single upstream call.
package resolver

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/nitedns/smartdns/pkg/cache"
	"github.com/nitedns/smartdns/pkg/telemetry/metrics"
	"github.com/nitedns/smartdns/pkg/upstream"
	"golang.org/x/sync/singleflight"
)

// Lookuper resolves a hostname to its IPv4 addresses, most preferred first.
type Lookuper interface {
	Lookup(ctx context.Context, host string) ([]string, error)
}

// Configurable is implemented by lookupers whose upstream servers and result
// order can be changed at runtime. The default upstream client implements it.
type Configurable interface {
	SetServers(servers []string)
	SetOrder(order upstream.Order)
}

// Result is a successful resolution. RewrittenURL is the input URL with the
// first occurrence of the hostname replaced by the resolved address.
type Result struct {
	Hostname     string
	Address      string
	RewrittenURL string
}

type Options struct {
	Provider  Provider
	Servers   []string
	Order     upstream.Order
	TTL       time.Duration
	Capacity  int
	Timeout   time.Duration
	Hostsfile string
	SkipProbe bool
	Lookuper  Lookuper
}

type Option func(*Options)

// WithProvider selects a named provider preset for the upstream servers.
func WithProvider(p Provider) Option {
	return func(o *Options) {
		o.Provider = p
	}
}

// WithServers sets an explicit upstream server list, bypassing the provider
// presets.
func WithServers(servers ...string) Option {
	return func(o *Options) {
		o.Servers = servers
	}
}

// WithOrder sets the address-family result order.
func WithOrder(order upstream.Order) Option {
	return func(o *Options) {
		o.Order = order
	}
}

// WithTTL bounds how long a resolved address is served from the cache.
func WithTTL(ttl time.Duration) Option {
	return func(o *Options) {
		o.TTL = ttl
	}
}

// WithCapacity bounds how many hostnames the cache holds before evicting the
// least recently used one.
func WithCapacity(capacity int) Option {
	return func(o *Options) {
		o.Capacity = capacity
	}
}

// WithTimeout bounds each upstream exchange.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// WithHostsfile overrides the hosts file consulted before network lookups.
func WithHostsfile(path string) Option {
	return func(o *Options) {
		o.Hostsfile = path
	}
}

// WithProbe enables the reachability probe of the upstream servers at
// construction time.
func WithProbe() Option {
	return func(o *Options) {
		o.SkipProbe = false
	}
}

// WithLookuper injects the DNS lookup capability, replacing the default
// upstream client.
func WithLookuper(l Lookuper) Option {
	return func(o *Options) {
		o.Lookuper = l
	}
}

// Resolver memoizes lookups through one privately owned cache.
type Resolver struct {
	cache    *cache.Cache
	lookuper Lookuper
	group    singleflight.Group
}

// New creates a resolver. Without WithLookuper, a DNS client is built from
// the provider/server options; without servers, the system resolvers are
// used.
func New(opts ...Option) (*Resolver, error) {
	options := &Options{
		Order:     upstream.OrderIPv4First,
		TTL:       cache.DefaultTTL,
		Capacity:  cache.DefaultCapacity,
		SkipProbe: true,
	}

	for _, opt := range opts {
		opt(options)
	}

	servers := options.Servers
	if len(options.Provider) > 0 {
		presets, ok := options.Provider.Servers()
		if !ok {
			return nil, &ProviderError{Provider: string(options.Provider)}
		}
		servers = presets
	}

	lookuper := options.Lookuper
	if lookuper == nil {
		client, err := upstream.NewClient(upstream.Config{
			Servers:   servers,
			Order:     options.Order,
			Timeout:   options.Timeout,
			Hostsfile: options.Hostsfile,
			SkipProbe: options.SkipProbe,
		})
		if err != nil {
			return nil, err
		}
		lookuper = client
	} else if len(servers) > 0 {
		if c, ok := lookuper.(Configurable); ok {
			c.SetServers(servers)
			c.SetOrder(options.Order)
		}
	}

	return &Resolver{
		cache:    cache.New(options.Capacity, options.TTL),
		lookuper: lookuper,
	}, nil
}

// SetProvider switches the upstream servers to a named provider's preset. The
// server list is left untouched when the provider is unknown.
func (r *Resolver) SetProvider(p Provider) error {
	servers, ok := p.Servers()
	if !ok {
		return &ProviderError{Provider: string(p)}
	}

	r.SetServers(servers)
	return nil
}

// SetServers overwrites the upstream server list, bypassing the provider
// presets. The change only affects this resolver's lookups.
func (r *Resolver) SetServers(servers []string) {
	c, ok := r.lookuper.(Configurable)
	if !ok {
		slog.Debug("resolver: lookuper is not configurable, ignoring server update")
		return
	}

	c.SetServers(servers)
}

// SetOrder changes the address-family result order of subsequent lookups.
func (r *Resolver) SetOrder(order upstream.Order) {
	c, ok := r.lookuper.(Configurable)
	if !ok {
		slog.Debug("resolver: lookuper is not configurable, ignoring order update")
		return
	}

	c.SetOrder(order)
}

// Resolve resolves rawURL's hostname and returns the URL rewritten to use the
// resolved address. Cached addresses are served until their TTL passes;
// concurrent misses for the same hostname share one upstream lookup, and the
// first address of that lookup is cached.
//
// Scheme validation fails with ErrInvalidURL, URL parse failures propagate
// unchanged, and upstream failures are wrapped in a *LookupError.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*Result, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return nil, ErrInvalidURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	host := u.Hostname()
	if len(host) == 0 {
		return nil, ErrInvalidURL
	}

	address, ok := r.cache.Get(host)
	if ok {
		metrics.CacheHits.Inc()
	} else {
		metrics.CacheMisses.Inc()

		v, err, _ := r.group.Do(host, func() (any, error) {
			metrics.Lookups.Inc()

			addrs, err := r.lookuper.Lookup(ctx, host)
			if err != nil {
				metrics.LookupErrors.Inc()
				return nil, err
			}

			if len(addrs) == 0 {
				metrics.LookupErrors.Inc()
				return nil, ErrNoAddresses
			}

			r.cache.Set(host, addrs[0])
			return addrs[0], nil
		})
		if err != nil {
			return nil, &LookupError{Host: host, Err: err}
		}

		address = v.(string)
	}

	return &Result{
		Hostname:     host,
		Address:      address,
		RewrittenURL: strings.Replace(rawURL, host, address, 1),
	}, nil
}
