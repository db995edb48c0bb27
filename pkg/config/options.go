// Package config loads and validates smartdns configuration from YAML.
package config

import (
	"time"
)

type Options struct {
	Watch    bool            `yaml:"watch" json:"watch"`
	Logging  LoggingOptions  `yaml:"logging" json:"logging"`
	Resolver ResolverOptions `yaml:"resolver" json:"resolver"`
	Metrics  MetricsOptions  `yaml:"metrics" json:"metrics"`
}

type LoggingOptions struct {
	Level   string `yaml:"level" json:"level"`
	Handler string `yaml:"handler" json:"handler"`
	Output  string `yaml:"output" json:"output"`
}

type ResolverOptions struct {
	Provider  string        `yaml:"provider" json:"provider"`
	Servers   []string      `yaml:"servers" json:"servers"`
	Order     string        `yaml:"order" json:"order"`
	TTL       time.Duration `yaml:"ttl" json:"ttl"`
	Capacity  int           `yaml:"capacity" json:"capacity"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	Hostsfile string        `yaml:"hosts_file" json:"hosts_file"`
	SkipProbe bool          `yaml:"skip_probe" json:"skip_probe"`
}

type MetricsOptions struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Bind    string `yaml:"bind" json:"bind"`
}

// NewOptions returns the default configuration.
func NewOptions() Options {
	return Options{
		Logging: LoggingOptions{
			Level:   "info",
			Handler: "text",
			Output:  "stderr",
		},
		Resolver: ResolverOptions{
			Order:    "ipv4-first",
			TTL:      time.Hour,
			Capacity: 100,
			Timeout:  5 * time.Second,
		},
		Metrics: MetricsOptions{
			Bind: ":9100",
		},
	}
}
