package upstream

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startDNSServer runs an in-process UDP DNS server answering A queries from
// the given zone (fqdn -> addresses) and returns its address.
func startDNSServer(t *testing.T, zone map[string][]string) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	mux := dns.NewServeMux()
	mux.HandleFunc(".", func(w dns.ResponseWriter, req *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(req)

		q := req.Question[0]
		if q.Qtype == dns.TypeA {
			for _, ip := range zone[q.Name] {
				rr, err := dns.NewRR(fmt.Sprintf("%s 60 IN A %s", q.Name, ip))
				if err == nil {
					m.Answer = append(m.Answer, rr)
				}
			}
		}

		_ = w.WriteMsg(m)
	})

	server := &dns.Server{PacketConn: pc, Handler: mux}
	go func() {
		_ = server.ActivateAndServe()
	}()
	t.Cleanup(func() {
		_ = server.Shutdown()
	})

	return pc.LocalAddr().String()
}

func TestLookup(t *testing.T) {
	server := startDNSServer(t, map[string][]string{
		"example.com.": {"93.184.216.34", "93.184.216.35"},
	})

	c, err := NewClient(Config{
		Servers:   []string{server},
		Timeout:   time.Second,
		Hostsfile: "testdata/hosts",
		SkipProbe: true,
	})
	require.NoError(t, err)

	ips, err := c.Lookup(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"93.184.216.34", "93.184.216.35"}, ips)

	// trailing dot is stripped before querying
	ips, err = c.Lookup(context.Background(), "example.com.")
	require.NoError(t, err)
	assert.Equal(t, "93.184.216.34", ips[0])

	_, err = c.Lookup(context.Background(), "missing.example")
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestLookupLocalAnswers(t *testing.T) {
	c, err := NewClient(Config{
		Servers:   []string{"192.0.2.1"},
		Hostsfile: "testdata/hosts",
		SkipProbe: true,
	})
	require.NoError(t, err)

	ips, err := c.Lookup(context.Background(), "localhost")
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1"}, ips)

	ips, err = c.Lookup(context.Background(), "10.1.2.3")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.1.2.3"}, ips)

	// pinned in testdata/hosts, no network involved
	ips, err = c.Lookup(context.Background(), "pinned.internal")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.9.9.9"}, ips)
}

func TestSetServers(t *testing.T) {
	first := startDNSServer(t, map[string][]string{
		"example.com.": {"10.0.0.1"},
	})
	second := startDNSServer(t, map[string][]string{
		"example.com.": {"10.0.0.2"},
	})

	c, err := NewClient(Config{
		Servers:   []string{first},
		Timeout:   time.Second,
		Hostsfile: "testdata/hosts",
		SkipProbe: true,
	})
	require.NoError(t, err)

	ips, err := c.Lookup(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1"}, ips)

	c.SetServers([]string{second})
	assert.Equal(t, []string{second}, c.Servers())

	ips, err = c.Lookup(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.2"}, ips)
}

func TestValidateServers(t *testing.T) {
	server := startDNSServer(t, nil)

	valid, err := ValidateServers([]string{server})
	require.NoError(t, err)
	assert.Equal(t, []string{server}, valid)
}

func TestNewClientProbesServers(t *testing.T) {
	server := startDNSServer(t, map[string][]string{
		"example.com.": {"10.0.0.1"},
	})

	c, err := NewClient(Config{
		Servers:   []string{server},
		Timeout:   time.Second,
		Hostsfile: "testdata/hosts",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{server}, c.Servers())
}

func TestNormalizeServers(t *testing.T) {
	servers := NormalizeServers([]string{" 1.1.1.1", "8.8.8.8:5353", "", "9.9.9.9:53 "})
	assert.Equal(t, []string{"1.1.1.1:53", "8.8.8.8:5353", "9.9.9.9:53"}, servers)
}

func TestParseOrder(t *testing.T) {
	order, err := ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, OrderIPv4First, order)

	order, err = ParseOrder(" Verbatim ")
	require.NoError(t, err)
	assert.Equal(t, OrderVerbatim, order)

	order, err = ParseOrder("ipv6-first")
	require.NoError(t, err)
	assert.Equal(t, OrderIPv6First, order)

	_, err = ParseOrder("fastest")
	assert.Error(t, err)
}

func TestHostsfileMissing(t *testing.T) {
	_, err := NewClient(Config{
		Servers:   []string{"192.0.2.1"},
		Hostsfile: filepath.Join(t.TempDir(), "nope"),
		SkipProbe: true,
	})
	assert.Error(t, err)
}
