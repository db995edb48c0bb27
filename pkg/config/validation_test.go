package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateDefaults(t *testing.T) {
	assert.NoError(t, Validate(NewOptions()))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"bad level", func(o *Options) { o.Logging.Level = "verbose" }},
		{"bad handler", func(o *Options) { o.Logging.Handler = "xml" }},
		{"bad order", func(o *Options) { o.Resolver.Order = "fastest" }},
		{"bad provider", func(o *Options) { o.Resolver.Provider = "quad9" }},
		{"negative ttl", func(o *Options) { o.Resolver.TTL = -time.Second }},
		{"negative capacity", func(o *Options) { o.Resolver.Capacity = -1 }},
		{"negative timeout", func(o *Options) { o.Resolver.Timeout = -time.Second }},
		{"metrics without bind", func(o *Options) { o.Metrics.Enabled = true; o.Metrics.Bind = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := NewOptions()
			tt.mutate(&opts)

			err := Validate(opts)
			assert.Error(t, err)

			var invalid ErrInvalidConfig
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestValidateCaseInsensitive(t *testing.T) {
	opts := NewOptions()
	opts.Resolver.Provider = "CloudFlare"
	opts.Logging.Level = "DEBUG"

	assert.NoError(t, Validate(opts))
}
