// Package smartdns wires the resolver, configuration, logging, and metrics
// into a command line application.
package smartdns

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/nitedns/smartdns/pkg/config"
	"github.com/nitedns/smartdns/pkg/log"
	"github.com/nitedns/smartdns/pkg/resolver"
	"github.com/nitedns/smartdns/pkg/upstream"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

type options struct {
	version string
	flags   []cli.Flag
}

type Option func(*options)

// WithVersion sets the application version.
func WithVersion(version string) Option {
	return func(o *options) {
		o.version = version
	}
}

// WithFlags adds custom CLI flags.
func WithFlags(flags ...cli.Flag) Option {
	return func(o *options) {
		o.flags = append(o.flags, flags...)
	}
}

// Run starts the smartdns CLI. It handles flag parsing, configuration
// loading, and logger setup, then resolves the URLs given as arguments.
func Run(opts ...Option) error {
	opt := &options{
		version: "0.0.0",
	}

	for _, o := range opts {
		o(opt)
	}

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file path",
		},
		&cli.StringFlag{
			Name:  "provider",
			Usage: "named DNS provider (cloudflare, google, opendns)",
		},
		&cli.StringSliceFlag{
			Name:  "server",
			Usage: "upstream DNS server, repeatable; overrides the provider",
		},
		&cli.StringFlag{
			Name:  "order",
			Usage: "result order (ipv4-first, ipv6-first, verbatim)",
		},
		&cli.DurationFlag{
			Name:  "ttl",
			Usage: "cache entry time to live",
			Value: time.Hour,
		},
		&cli.IntFlag{
			Name:  "capacity",
			Usage: "maximum number of cached hostnames",
			Value: 100,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "per upstream query timeout",
			Value: 5 * time.Second,
		},
		&cli.BoolFlag{
			Name:  "skip-probe",
			Usage: "skip the upstream server reachability probe",
		},
	}
	flags = append(flags, opt.flags...)

	app := &cli.App{
		Name:      "smartdns",
		Usage:     "resolve URL hostnames through a caching DNS resolver",
		UsageText: "smartdns [options] URL [URL...]",
		Version:   opt.version,
		Flags:     flags,
		Action:    run,
	}

	return app.Run(os.Args)
}

func run(c *cli.Context) error {
	opts := config.NewOptions()

	if path := c.String("config"); len(path) > 0 {
		loaded, err := config.LoadFrom(path)
		if err != nil {
			return err
		}
		opts = loaded
	}

	applyFlags(c, &opts)

	logger, err := log.NewLogger(opts.Logging)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if opts.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())

			if err := http.ListenAndServe(opts.Metrics.Bind, mux); err != nil {
				slog.Error("metrics server failed", "bind", opts.Metrics.Bind, "error", err)
			}
		}()
	}

	r, err := newResolver(opts)
	if err != nil {
		return err
	}

	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}

	for _, rawURL := range c.Args().Slice() {
		result, err := r.Resolve(c.Context, rawURL)
		if err != nil {
			return err
		}

		fmt.Printf("%s\t%s\t%s\n", result.Hostname, result.Address, result.RewrittenURL)
	}

	return nil
}

// applyFlags lets command line flags override the config file.
func applyFlags(c *cli.Context, opts *config.Options) {
	if c.IsSet("provider") {
		opts.Resolver.Provider = c.String("provider")
	}

	if c.IsSet("server") {
		opts.Resolver.Servers = c.StringSlice("server")
		opts.Resolver.Provider = ""
	}

	if c.IsSet("order") {
		opts.Resolver.Order = c.String("order")
	}

	if c.IsSet("ttl") {
		opts.Resolver.TTL = c.Duration("ttl")
	}

	if c.IsSet("capacity") {
		opts.Resolver.Capacity = c.Int("capacity")
	}

	if c.IsSet("timeout") {
		opts.Resolver.Timeout = c.Duration("timeout")
	}

	if c.IsSet("skip-probe") {
		opts.Resolver.SkipProbe = c.Bool("skip-probe")
	}
}

func newResolver(opts config.Options) (*resolver.Resolver, error) {
	order, err := upstream.ParseOrder(opts.Resolver.Order)
	if err != nil {
		return nil, err
	}

	rOpts := []resolver.Option{
		resolver.WithOrder(order),
		resolver.WithTTL(opts.Resolver.TTL),
		resolver.WithCapacity(opts.Resolver.Capacity),
		resolver.WithTimeout(opts.Resolver.Timeout),
	}

	if len(opts.Resolver.Provider) > 0 {
		provider, err := resolver.ParseProvider(opts.Resolver.Provider)
		if err != nil {
			return nil, err
		}
		rOpts = append(rOpts, resolver.WithProvider(provider))
	}

	if len(opts.Resolver.Servers) > 0 {
		rOpts = append(rOpts, resolver.WithServers(opts.Resolver.Servers...))
	}

	if len(opts.Resolver.Hostsfile) > 0 {
		rOpts = append(rOpts, resolver.WithHostsfile(opts.Resolver.Hostsfile))
	}

	if !opts.Resolver.SkipProbe {
		rOpts = append(rOpts, resolver.WithProbe())
	}

	return resolver.New(rOpts...)
}
