package upstream

import (
	"errors"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const resolvConfPath = "/etc/resolv.conf"

// NormalizeServers trims the given addresses, drops empty entries, and
// defaults the port to 53 when missing.
func NormalizeServers(servers []string) []string {
	normalized := make([]string, 0, len(servers))

	for _, server := range servers {
		server = strings.TrimSpace(server)
		if len(server) == 0 {
			continue
		}

		host, port, err := net.SplitHostPort(server)
		if err != nil {
			host = server
		}

		if len(port) == 0 {
			port = "53"
		}

		normalized = append(normalized, net.JoinHostPort(host, port))
	}

	return normalized
}

// SystemServers returns the nameservers configured in resolv.conf, or nil
// when none can be read.
func SystemServers() []string {
	conf, err := dns.ClientConfigFromFile(resolvConfPath)
	if err != nil {
		slog.Debug("upstream: failed to read resolv.conf", "error", err)
		return nil
	}

	servers := make([]string, 0, len(conf.Servers))
	for _, server := range conf.Servers {
		servers = append(servers, net.JoinHostPort(server, conf.Port))
	}

	return servers
}

// ValidateServers probes each server with an NS query for the root zone and
// returns the ones that answer. It fails when no server responds.
func ValidateServers(servers []string) ([]string, error) {
	m := new(dns.Msg)
	m.SetQuestion(".", dns.TypeNS)
	m.RecursionDesired = true

	c := new(dns.Client)
	c.Timeout = 5 * time.Second

	result := make([]string, 0, len(servers))
	for _, server := range servers {
		resp, _, err := c.Exchange(m, server)
		if err != nil {
			slog.Debug("upstream: DNS server is not responding", "server", server, "error", err)
			continue
		}

		if resp == nil {
			slog.Debug("upstream: no response from DNS server", "server", server)
			continue
		}

		if resp.Rcode != dns.RcodeSuccess && resp.Rcode != dns.RcodeNameError {
			slog.Debug("upstream: DNS server returned error code", "server", server, "code", dns.RcodeToString[resp.Rcode])
			continue
		}

		result = append(result, server)
	}

	if len(result) == 0 {
		return nil, errors.New("upstream: no valid DNS server found")
	}

	return result, nil
}
