// Package upstream implements the DNS transport the resolver delegates to: an
// A-record lookup over a configurable list of upstream servers, with hosts
// file entries and literal addresses answered locally.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/miekg/dns"
	"github.com/nitedns/smartdns/pkg/log"
)

var (
	ErrNoRecords = errors.New("upstream: no records found")
	ErrNoServers = errors.New("upstream: no DNS servers configured")
)

const defaultTimeout = 5 * time.Second

// Config is the complete lookup configuration. Lookups read a snapshot of it,
// so SetServers and SetOrder swap configuration without blocking in-flight
// queries.
type Config struct {
	// Servers to query, tried in order until one answers. Empty means the
	// system servers from resolv.conf.
	Servers []string

	// Order is the address-family preference for mixed results.
	Order Order

	// Timeout applies per upstream exchange.
	Timeout time.Duration

	// Hostsfile overrides the default /etc/hosts path.
	Hostsfile string

	// SkipProbe disables the reachability probe of the configured servers at
	// construction time.
	SkipProbe bool
}

type Client struct {
	config atomic.Pointer[Config]
	client *dns.Client
	hosts  map[string][]string
}

// NewClient validates cfg and returns a client querying the configured
// servers. With no servers configured, the system servers are used.
func NewClient(cfg Config) (*Client, error) {
	order, err := ParseOrder(string(cfg.Order))
	if err != nil {
		return nil, err
	}
	cfg.Order = order

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	if len(cfg.Servers) == 0 {
		cfg.Servers = SystemServers()
	}

	cfg.Servers = NormalizeServers(cfg.Servers)
	if len(cfg.Servers) == 0 {
		return nil, ErrNoServers
	}

	if !cfg.SkipProbe {
		validServers, err := ValidateServers(cfg.Servers)
		if err != nil {
			return nil, err
		}
		cfg.Servers = validServers
	}

	c := &Client{
		client: &dns.Client{Timeout: cfg.Timeout},
		hosts:  make(map[string][]string),
	}
	c.config.Store(&cfg)

	if err := c.loadHostsFile(cfg.Hostsfile); err != nil {
		return nil, fmt.Errorf("upstream: failed to load hosts file: %w", err)
	}

	return c, nil
}

// Lookup resolves host to its IPv4 addresses. Literal addresses, localhost,
// and hosts file entries are answered without touching the network; anything
// else is an A query against the configured servers, tried in order until one
// returns records.
func (c *Client) Lookup(ctx context.Context, host string) ([]string, error) {
	if host == "localhost" || host == "127.0.0.1" || host == "::1" || host == "[::1]" {
		return []string{"127.0.0.1"}, nil
	}

	if ip := net.ParseIP(host); ip != nil {
		return []string{ip.String()}, nil
	}

	host = strings.TrimSuffix(host, ".")

	if ips, ok := c.hosts[host]; ok && len(ips) > 0 {
		return ips, nil
	}

	cfg := c.config.Load()
	logger := log.FromContext(ctx)

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), dns.TypeA)

	for _, server := range cfg.Servers {
		in, _, err := c.client.ExchangeContext(ctx, m, server)
		if err != nil {
			logger.Debug("upstream: query failed", "host", host, "server", server, "error", err)
			continue
		}

		var ips []string
		for _, answer := range in.Answer {
			if a, ok := answer.(*dns.A); ok {
				ips = append(ips, a.A.String())
			}
		}

		if len(ips) > 0 {
			return slices.Compact(ips), nil
		}
	}

	return nil, fmt.Errorf("%w for '%s'", ErrNoRecords, host)
}

// SetServers replaces the upstream server list for subsequent lookups.
func (c *Client) SetServers(servers []string) {
	cfg := *c.config.Load()
	cfg.Servers = NormalizeServers(servers)
	c.config.Store(&cfg)
}

// SetOrder replaces the address-family preference for subsequent lookups.
func (c *Client) SetOrder(order Order) {
	cfg := *c.config.Load()
	cfg.Order = order
	c.config.Store(&cfg)
}

// Servers returns the current upstream server list.
func (c *Client) Servers() []string {
	return slices.Clone(c.config.Load().Servers)
}

// Order returns the current address-family preference.
func (c *Client) Order() Order {
	return c.config.Load().Order
}
