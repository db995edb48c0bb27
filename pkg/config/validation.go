package config

import (
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidConfig reports a setting that failed validation, naming the YAML
// path of the offending field.
type ErrInvalidConfig struct {
	Structure []string
	Value     any
	Message   string
}

func newInvalidConfig(structure []string, value any, message string) ErrInvalidConfig {
	return ErrInvalidConfig{
		Structure: structure,
		Value:     value,
		Message:   message,
	}
}

func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", strings.Join(e.Structure, "."), e.Message)
}

var (
	validLevels    = []string{"", "debug", "info", "warn", "error"}
	validHandlers  = []string{"", "text", "json"}
	validOrders    = []string{"", "ipv4-first", "ipv6-first", "verbatim"}
	validProviders = []string{"", "cloudflare", "google", "opendns"}
)

// Validate checks opts for settings the resolver and logger would reject.
func Validate(opts Options) error {
	if !slices.Contains(validLevels, strings.ToLower(opts.Logging.Level)) {
		return newInvalidConfig([]string{"logging", "level"}, opts.Logging.Level, "level must be one of debug, info, warn, error")
	}

	if !slices.Contains(validHandlers, strings.ToLower(opts.Logging.Handler)) {
		return newInvalidConfig([]string{"logging", "handler"}, opts.Logging.Handler, "handler must be text or json")
	}

	if !slices.Contains(validOrders, strings.ToLower(opts.Resolver.Order)) {
		return newInvalidConfig([]string{"resolver", "order"}, opts.Resolver.Order, "order must be one of ipv4-first, ipv6-first, verbatim")
	}

	if !slices.Contains(validProviders, strings.ToLower(opts.Resolver.Provider)) {
		return newInvalidConfig([]string{"resolver", "provider"}, opts.Resolver.Provider, "provider must be one of cloudflare, google, opendns")
	}

	if opts.Resolver.TTL < 0 {
		return newInvalidConfig([]string{"resolver", "ttl"}, opts.Resolver.TTL, "ttl can't be negative")
	}

	if opts.Resolver.Capacity < 0 {
		return newInvalidConfig([]string{"resolver", "capacity"}, opts.Resolver.Capacity, "capacity can't be negative")
	}

	if opts.Resolver.Timeout < 0 {
		return newInvalidConfig([]string{"resolver", "timeout"}, opts.Resolver.Timeout, "timeout can't be negative")
	}

	if opts.Metrics.Enabled && len(strings.TrimSpace(opts.Metrics.Bind)) == 0 {
		return newInvalidConfig([]string{"metrics", "bind"}, opts.Metrics.Bind, "bind is required when metrics are enabled")
	}

	return nil
}
